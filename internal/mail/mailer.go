package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

// SMTPSender delivers transactional mail over authenticated SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendVerification(ctx context.Context, to, token string) error {
	link := s.cfg.BaseURL + "/api/user/verifyEmail?token=" + url.QueryEscape(token)
	body := fmt.Sprintf(
		`<p>Welcome! Please verify your email address by clicking the link below. The link is valid for 10 minutes.</p>
<p><a href="%s">Verify your email</a></p>`, link)
	return s.send(ctx, to, "Email Verification", body)
}

func (s *SMTPSender) SendOTP(ctx context.Context, to, otp string) error {
	body := fmt.Sprintf(`<p>Your OTP for password reset is: <b>%s</b>. It is valid for 10 minutes.</p>`, otp)
	return s.send(ctx, to, "Password reset OTP", body)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogSender stands in when no SMTP account is configured. It only logs the
// would-be delivery, never the OTP or token themselves.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) SendVerification(ctx context.Context, to, token string) error {
	s.Logger.Info("mail not configured, skipping verification mail", "to", to)
	return nil
}

func (s *LogSender) SendOTP(ctx context.Context, to, otp string) error {
	s.Logger.Info("mail not configured, skipping otp mail", "to", to)
	return nil
}
