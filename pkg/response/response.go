package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/pkg/apperror"
)

// Every body carries "message" and "request_id"; endpoint specific fields sit
// next to them at the top level (e.g. "email", "userId", "response").

// Success writes status with message and the extra fields.
func Success(c *gin.Context, status int, message string, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, body(c, message, fields))
}

// Error writes status with message and optional validation details.
func Error(c *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	var fields gin.H
	if details != nil {
		fields = gin.H{"details": details}
	}
	c.JSON(status, body(c, message, fields))
}

// Abort is Error for middleware: it stops the handler chain.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, body(c, message, nil))
}

// Fail renders err through the apperror taxonomy. Server-side failures are
// logged with their cause; the client only ever sees the safe message.
func Fail(c *gin.Context, logger logrus.FieldLogger, err error) {
	ae := apperror.From(err)
	if logger != nil && (ae.Status >= http.StatusInternalServerError || ae.Kind == apperror.KindUpstream) {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"kind":       ae.Kind,
		}).Error("request failed")
	}
	c.JSON(ae.Status, body(c, ae.Message, nil))
}

func body(c *gin.Context, message string, fields gin.H) gin.H {
	out := gin.H{}
	for k, v := range fields {
		out[k] = v
	}
	out["message"] = message
	if rid := c.GetString("request_id"); rid != "" {
		out["request_id"] = rid
	}
	return out
}
