// Package notify delivers signup OTP codes by email.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/config"
	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	"github.com/oksasatya/go-travel-assistant/pkg/mailer"
	tpl "github.com/oksasatya/go-travel-assistant/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Sender is satisfied by *mailer.Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

func otpData(cfg *config.Config, msg gateway.OTPMessage) map[string]any {
	return tpl.NewSignupOTPData(cfg, msg.Email, msg.Code,
		tpl.WithTime(time.Now()),
		tpl.WithExpiresIn(msg.ExpiresIn),
		tpl.WithIP(msg.IP),
		tpl.WithUserAgent(msg.UserAgent),
	)
}

// QueueMailer hands the OTP mail to cmd/email_worker through RabbitMQ.
type QueueMailer struct {
	Pub Publisher
	Cfg *config.Config
}

func NewQueueMailer(pub Publisher, cfg *config.Config) *QueueMailer {
	return &QueueMailer{Pub: pub, Cfg: cfg}
}

func (m *QueueMailer) SendOTP(ctx context.Context, msg gateway.OTPMessage) error {
	job := mailer.EmailJob{To: msg.Email, Template: tpl.SignupOTP, Data: otpData(m.Cfg, msg)}
	if err := m.Pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue otp email: %w", err)
	}
	return nil
}

// DirectMailer renders and sends the OTP mail within the request.
type DirectMailer struct {
	Sender   Sender
	Cfg      *config.Config
	Resolver tpl.GeoResolver // optional
}

func NewDirectMailer(sender Sender, cfg *config.Config, resolver tpl.GeoResolver) *DirectMailer {
	return &DirectMailer{Sender: sender, Cfg: cfg, Resolver: resolver}
}

func (m *DirectMailer) SendOTP(ctx context.Context, msg gateway.OTPMessage) error {
	data := otpData(m.Cfg, msg)
	tpl.Localize(ctx, m.Resolver, data)
	subject, text, html, err := tpl.Render(tpl.SignupOTP, data)
	if err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}
	if err := m.Sender.Send(ctx, msg.Email, subject, text, html); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// LogMailer is used when MAIL_SEND_ENABLED=false. The code itself only shows
// up at debug level.
type LogMailer struct {
	Logger logrus.FieldLogger
}

func (m *LogMailer) SendOTP(_ context.Context, msg gateway.OTPMessage) error {
	if m.Logger == nil {
		return nil
	}
	l := m.Logger.WithFields(logrus.Fields{"email": msg.Email, "expires_in": msg.ExpiresIn.String()})
	l.Info("mail disabled; otp issued")
	l.WithField("otp", msg.Code).Debug("otp code")
	return nil
}

var (
	_ gateway.OTPMailer = (*QueueMailer)(nil)
	_ gateway.OTPMailer = (*DirectMailer)(nil)
	_ gateway.OTPMailer = (*LogMailer)(nil)
)
