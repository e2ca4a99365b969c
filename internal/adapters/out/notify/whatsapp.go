package notify

import (
	"context"
	"fmt"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
	"warehouse/internal/pkg/errs"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioConfig carries the Twilio account and sender settings.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// TwilioWhatsAppSender implements the TextMessageSender channel over the
// Twilio WhatsApp API. The shop receives the shipment summary; the driver
// receives a copy when a number is configured.
type TwilioWhatsAppSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioWhatsAppSender creates a WhatsApp sender with the given Twilio settings.
func NewTwilioWhatsAppSender(cfg TwilioConfig) *TwilioWhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioWhatsAppSender{
		client: client,
		from:   cfg.FromNumber,
	}
}

// SendShipmentMessage sends the shipment summary text to the shop and,
// when configured, to the driver. Fails when the shop has no WhatsApp number.
func (s *TwilioWhatsAppSender) SendShipmentMessage(
	_ context.Context,
	sh *shipment.Shipment,
	receiver *shop.Shop,
	drv *driver.Driver,
) error {
	if receiver.WhatsAppNumber() == "" {
		return errs.NewValueIsRequiredError("shop whatsapp number")
	}

	body := s.body(sh, receiver)
	if err := s.send(receiver.WhatsAppNumber(), body); err != nil {
		return fmt.Errorf("send shop whatsapp: %w", err)
	}

	if drv != nil && drv.WhatsAppNumber() != "" {
		if err := s.send(drv.WhatsAppNumber(), body); err != nil {
			return fmt.Errorf("send driver whatsapp: %w", err)
		}
	}

	return nil
}

func (s *TwilioWhatsAppSender) send(to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + s.from)
	params.SetTo("whatsapp:" + to)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}

func (s *TwilioWhatsAppSender) body(sh *shipment.Shipment, receiver *shop.Shop) string {
	return fmt.Sprintf(
		"Shipment %s for %s on %s: %d items, net value %s.",
		sh.Number(),
		receiver.Name(),
		sh.Date().Format("2006-01-02"),
		len(sh.Items()),
		sh.NetTotal().StringFixed(2),
	)
}
