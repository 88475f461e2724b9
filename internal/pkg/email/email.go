package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// Configured SMTP 是否已配置。未配置时发送方直接跳过（发信是尽力而为）。
func (s *Service) Configured() bool {
	return s.cfg.SMTPHost != ""
}

// SendVerification 发送邮箱验证邮件
func (s *Service) SendVerification(to, verifyLink string) error {
	subject := "Verify your email - thats.wtf"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #e5e5e5; background-color: #0a0a0a;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #a855f7;">Verify your email</h2>
        <p>Hey,</p>
        <p>You're one click away from claiming your page. Hit the button below to verify your email:</p>
        <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background-color: #a855f7; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Verify email</a>
        </div>
        <p>Or paste this link into your browser:</p>
        <p style="background-color: #1a1a1a; padding: 10px; word-break: break-all;">%s</p>
        <p>The link expires in 24 hours.</p>
        <p>If you didn't sign up, you can ignore this email.</p>
        <hr style="border: none; border-top: 1px solid #2a2a2a; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically. Please don't reply.</p>
    </div>
</body>
</html>
`, verifyLink, verifyLink)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
