package services

import (
	"context"
	"log/slog"
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
)

// DocumentEmailSender delivers the shipment document by email to the shop,
// with the driver in copy when configured.
type DocumentEmailSender interface {
	SendShipmentDocument(ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver) error
}

// TextMessageSender delivers a short shipment notification text to the shop
// and, when configured, to the driver.
type TextMessageSender interface {
	SendShipmentMessage(ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver) error
}

// DispatchResult reports the per-channel outcome of a notification attempt.
// Both channels are attempted independently; a failure on one never aborts
// the other or the operation that triggered the dispatch.
type DispatchResult struct {
	EmailSent    bool
	EmailErr     error
	WhatsAppSent bool
	WhatsAppErr  error
}

// PartialFailure reports whether at least one channel failed.
// The triggering operation still succeeds; this is the caller's
// "partial success" signal.
func (r DispatchResult) PartialFailure() bool {
	return r.EmailErr != nil || r.WhatsAppErr != nil
}

// NotificationDispatcher is a domain service coordinating the two best-effort
// notification channels around a shipment. A successful send marks the
// corresponding sent-flag on the shipment; the flag becomes durable when the
// surrounding transaction commits. Failures are logged and reflected in the
// DispatchResult only; there is no automatic retry.
type NotificationDispatcher struct {
	email  DocumentEmailSender
	text   TextMessageSender
	logger *slog.Logger
}

// NewNotificationDispatcher creates a dispatcher over the two channel implementations.
func NewNotificationDispatcher(
	email DocumentEmailSender,
	text TextMessageSender,
	logger *slog.Logger,
) NotificationDispatcher {
	return NotificationDispatcher{
		email:  email,
		text:   text,
		logger: logger.With("component", "notification_dispatcher"),
	}
}

// Dispatch attempts both channels for a shipment. Each channel fails
// independently; the shipment's sent-flags are only ever set, never cleared,
// so re-dispatching after a partial failure cannot undo an earlier success.
func (d NotificationDispatcher) Dispatch(
	ctx context.Context,
	s *shipment.Shipment,
	sh *shop.Shop,
	drv *driver.Driver,
) DispatchResult {
	result := DispatchResult{}

	if err := d.DispatchEmail(ctx, s, sh, drv); err != nil {
		result.EmailErr = err
	} else {
		result.EmailSent = true
	}

	if err := d.DispatchText(ctx, s, sh, drv); err != nil {
		result.WhatsAppErr = err
	} else {
		result.WhatsAppSent = true
	}

	return result
}

// DispatchEmail attempts the document-email channel and marks the shipment's
// email flag on success. The error is returned for the caller's result
// signal and logged here; it must not abort the triggering operation.
func (d NotificationDispatcher) DispatchEmail(
	ctx context.Context,
	s *shipment.Shipment,
	sh *shop.Shop,
	drv *driver.Driver,
) error {
	if err := d.email.SendShipmentDocument(ctx, s, sh, drv); err != nil {
		d.logger.ErrorContext(ctx, "Failed to send shipment email",
			"shipment", s.Number(), "error", err)
		return err
	}

	s.MarkEmailSent(time.Now().UTC())
	return nil
}

// DispatchText attempts the text-message channel and marks the shipment's
// whatsapp flag on success. The error is returned for the caller's result
// signal and logged here; it must not abort the triggering operation.
func (d NotificationDispatcher) DispatchText(
	ctx context.Context,
	s *shipment.Shipment,
	sh *shop.Shop,
	drv *driver.Driver,
) error {
	if err := d.text.SendShipmentMessage(ctx, s, sh, drv); err != nil {
		d.logger.ErrorContext(ctx, "Failed to send shipment WhatsApp message",
			"shipment", s.Number(), "error", err)
		return err
	}

	s.MarkWhatsAppSent(time.Now().UTC())
	return nil
}
