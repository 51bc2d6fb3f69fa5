package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"gopkg.in/gomail.v2"
	"routing/internal/pkg/config"
)

var ErrInvalidRecipient = errors.New("invalid recipient")

type Mailer struct {
	sender sender
	from   string
}

func New(cfg config.Mail) *Mailer {
	return NewWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From)
}

func NewWithSender(sender sender, from string) *Mailer {
	return &Mailer{
		sender: sender,
		from:   from,
	}
}

type dialResult struct {
	conn gomail.SendCloser
	err  error
}

// SendEmail сначала открывает SMTP сессию и только потом, если ctx еще жив, передает письмо.
// Отмена во время соединения закрывает сессию без отправки. Начатую передачу gomail прервать не дает.
func (m *Mailer) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, to)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", addr.Address)
	msg.SetHeader("Subject", subject)
	msg.SetDateHeader("Date", time.Now())
	msg.SetBody("text/html", htmlBody)

	dialed := make(chan dialResult, 1)
	go func() {
		conn, err := m.sender.Dial()
		dialed <- dialResult{conn: conn, err: err}
	}()

	var conn gomail.SendCloser
	select {
	case <-ctx.Done():
		go func() {
			if r := <-dialed; r.err == nil {
				_ = r.conn.Close()
			}
		}()
		return fmt.Errorf("send email to %s: %w", addr.Address, ctx.Err())
	case r := <-dialed:
		if r.err != nil {
			return fmt.Errorf("send email to %s: dial: %w", addr.Address, r.err)
		}
		conn = r.conn
	}

	if err := ctx.Err(); err != nil {
		_ = conn.Close()
		return fmt.Errorf("send email to %s: %w", addr.Address, err)
	}

	done := make(chan error, 1)
	go func() {
		err := gomail.Send(conn, msg)
		if closeErr := conn.Close(); err == nil {
			err = closeErr
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("send email to %s: %w", addr.Address, ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email to %s: %w", addr.Address, err)
		}
		return nil
	}
}
