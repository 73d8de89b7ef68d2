package middleware

import (
	"github.com/gin-gonic/gin"
)

// ClientIPHeaders are consulted, in order, only when the peer is a trusted proxy.
var ClientIPHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// TrustProxies makes c.ClientIP() honour forwarding headers only for requests
// whose peer address falls in trusted. With no trusted proxies the socket
// address is used and forwarding headers are ignored.
func TrustProxies(engine *gin.Engine, trusted []string) error {
	engine.ForwardedByClientIP = true
	engine.RemoteIPHeaders = ClientIPHeaders
	if len(trusted) == 0 {
		trusted = nil
	}
	return engine.SetTrustedProxies(trusted)
}

// RealIP stores the resolved client IP under "real_ip" for rate limiting and OTP mails.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", c.ClientIP())
		c.Next()
	}
}
