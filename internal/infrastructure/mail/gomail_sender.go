// Package mail implementa el transporte SMTP de las notificaciones.
package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/pkg/config"
)

// GomailSender implementa notification.Sender sobre SMTP usando gomail.
// Cada envío abre y cierra su propia conexión; el volumen de avisos es bajo.
type GomailSender struct {
	dialer *gomail.Dialer
	from   string
}

var _ notification.Sender = (*GomailSender)(nil)

// NewGomailSender construye el transporte a partir de la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig) *GomailSender {
	return &GomailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía el correo con cuerpo en texto plano y alternativa HTML.
func (s *GomailSender) Send(to, subject, textBody, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	if htmlBody != "" {
		m.AddAlternative("text/html", htmlBody)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailTransport, err)
	}
	return nil
}
