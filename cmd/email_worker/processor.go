package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
	"github.com/oksasatya/go-travel-assistant/pkg/mailer"
	mailtpl "github.com/oksasatya/go-travel-assistant/pkg/mailer/templates"
)

type outcome int

const (
	outcomeAck     outcome = iota
	outcomeDrop            // malformed job; redelivery cannot help
	outcomeRequeue         // transient send failure
)

type sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type processor struct {
	sender   sender
	resolver mailtpl.GeoResolver
	logger   logrus.FieldLogger
	timeout  time.Duration
}

// handle renders and sends one queued EmailJob.
func (p *processor) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		p.logger.WithError(err).Warn("bad message")
		return outcomeDrop
	}
	if job.To == "" {
		p.logger.Warn("message without recipient")
		return outcomeDrop
	}

	helpers.EnsureRecipientAndEmail(&job)
	mailtpl.Localize(ctx, p.resolver, job.Data)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			p.logger.WithError(err).WithField("template", job.Template).Error("render failed")
			return outcomeDrop
		}
		subject, text, html = s, t, h
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.sender.Send(sendCtx, job.To, subject, text, html); err != nil {
		p.logger.WithError(err).WithField("to", job.To).Error("send failed")
		return outcomeRequeue
	}
	p.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return outcomeAck
}
