// Package channels chứa các kênh gửi thông báo ra ngoài hệ thống.
package channels

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/sanjeevkuinkel/shopOnly/config"
)

// EmailSender gửi email qua SMTP, cấu hình lấy từ Configuration.
type EmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailSender tạo sender từ cấu hình SMTP.
func NewEmailSender(cfg *config.Configuration) (*EmailSender, error) {
	if cfg.SMTP_Host == "" || cfg.SMTP_From == "" {
		return nil, fmt.Errorf("SMTP chưa được cấu hình (SMTP_HOST, SMTP_FROM)")
	}
	return &EmailSender{
		host:     cfg.SMTP_Host,
		port:     cfg.SMTP_Port,
		username: cfg.SMTP_Username,
		password: cfg.SMTP_Password,
		from:     cfg.SMTP_From,
	}, nil
}

// Send gửi một email dạng text tới recipient, đính kèm các file trong
// attachments (nếu có).
func (s *EmailSender) Send(recipient, subject, body string, attachments ...string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain; charset=utf-8", body)
	for _, path := range attachments {
		msg.Attach(path)
	}

	dialer := gomail.NewDialer(s.host, s.port, s.username, s.password)
	return dialer.DialAndSend(msg)
}
