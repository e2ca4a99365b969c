// Package notify implements the two outbound notification channels:
// SMTP email carrying the delivery note and WhatsApp text via Twilio.
// Both implementations are plain channel adapters; retry and partial-failure
// semantics live in the domain dispatcher.
package notify

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
	"warehouse/internal/pkg/errs"

	"github.com/wneessen/go-mail"
)

// SMTPConfig carries the SMTP connection and sender settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPEmailSender implements the DocumentEmailSender channel over SMTP.
// The shipment's delivery note is attached to the message; the driver is
// copied in when an address is configured.
type SMTPEmailSender struct {
	cfg SMTPConfig
}

// NewSMTPEmailSender creates an email sender with the given SMTP settings.
func NewSMTPEmailSender(cfg SMTPConfig) *SMTPEmailSender {
	return &SMTPEmailSender{cfg: cfg}
}

// SendShipmentDocument emails the delivery note to the shop.
// Fails when the shop has no email address or the shipment carries no
// generated document.
func (s *SMTPEmailSender) SendShipmentDocument(
	ctx context.Context,
	sh *shipment.Shipment,
	receiver *shop.Shop,
	drv *driver.Driver,
) error {
	if receiver.Email() == "" {
		return errs.NewValueIsRequiredError("shop email")
	}
	if !sh.HasDocument() {
		return errs.NewObjectNotFoundError("document", sh.ID())
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(receiver.Email()); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	if drv != nil && drv.Email() != "" {
		if err := msg.Cc(drv.Email()); err != nil {
			return fmt.Errorf("set cc: %w", err)
		}
	}

	msg.Subject(fmt.Sprintf("Delivery note %s", sh.Number()))
	msg.SetBodyString(mail.TypeTextPlain, s.body(sh, receiver))
	msg.AttachFile(sh.DocumentPath())

	client, err := mail.NewClient(
		s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send shipment email: %w", err)
	}

	return nil
}

func (s *SMTPEmailSender) body(sh *shipment.Shipment, receiver *shop.Shop) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"please find attached the delivery note for shipment %s, "+
			"planned for %s.\n\n"+
			"Net value: %s\n",
		receiver.Name(),
		sh.Number(),
		sh.Date().Format("2006-01-02"),
		sh.NetTotal().StringFixed(2),
	)
}
