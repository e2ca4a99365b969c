package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
	"warehouse/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendShipmentDocument(
	ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver,
) error {
	args := m.Called(ctx, s, sh, drv)
	return args.Error(0)
}

type MockTextSender struct {
	mock.Mock
}

func (m *MockTextSender) SendShipmentMessage(
	ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver,
) error {
	args := m.Called(ctx, s, sh, drv)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		shipment.GenerateNumber(date, 1),
		kernel.NewUUID(),
		nil,
		date,
		nil,
		"",
	)
	require.NoError(t, err)
	return s
}

func testShop(t *testing.T) *shop.Shop {
	t.Helper()
	sh, err := shop.NewShop(kernel.NewUUID(), "Corner Bakery Outlet", "12 Main St", "Springfield",
		"shop@example.com", "+15550001111")
	require.NoError(t, err)
	return sh
}

func testDriver(t *testing.T) *driver.Driver {
	t.Helper()
	drv, err := driver.NewDriver(kernel.NewUUID(), "Sam Porter", "driver@example.com", "+15550002222")
	require.NoError(t, err)
	return drv
}

func TestNotificationDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("should mark both flags when both channels succeed", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		result := dispatcher.Dispatch(ctx, s, testShop(t), testDriver(t))

		assert.True(t, result.EmailSent)
		assert.True(t, result.WhatsAppSent)
		assert.False(t, result.PartialFailure())
		assert.True(t, s.EmailSent())
		assert.True(t, s.WhatsAppSent())
		email.AssertExpectations(t)
		text.AssertExpectations(t)
	})

	t.Run("should still attempt text when email fails", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		emailErr := errors.New("smtp connection refused")
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(emailErr)
		text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		result := dispatcher.Dispatch(ctx, s, testShop(t), testDriver(t))

		assert.False(t, result.EmailSent)
		assert.ErrorIs(t, result.EmailErr, emailErr)
		assert.True(t, result.WhatsAppSent)
		assert.True(t, result.PartialFailure())

		assert.False(t, s.EmailSent(), "email flag must not be set on failure")
		assert.True(t, s.WhatsAppSent())
		text.AssertExpectations(t)
	})

	t.Run("should report email success when only text fails", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		textErr := errors.New("twilio 429")
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(textErr)

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		result := dispatcher.Dispatch(ctx, s, testShop(t), testDriver(t))

		assert.True(t, result.EmailSent)
		assert.False(t, result.WhatsAppSent)
		assert.ErrorIs(t, result.WhatsAppErr, textErr)
		assert.True(t, result.PartialFailure())

		assert.True(t, s.EmailSent())
		assert.False(t, s.WhatsAppSent())
	})

	t.Run("should report total failure when both channels fail", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp down"))
		text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("twilio down"))

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		result := dispatcher.Dispatch(ctx, s, testShop(t), testDriver(t))

		assert.False(t, result.EmailSent)
		assert.False(t, result.WhatsAppSent)
		assert.True(t, result.PartialFailure())
		assert.False(t, s.EmailSent())
		assert.False(t, s.WhatsAppSent())
	})
}

func TestNotificationDispatcher_SingleChannels(t *testing.T) {
	ctx := context.Background()

	t.Run("should mark only the email flag on DispatchEmail", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		err := dispatcher.DispatchEmail(ctx, s, testShop(t), testDriver(t))

		require.NoError(t, err)
		assert.True(t, s.EmailSent())
		assert.False(t, s.WhatsAppSent())
		text.AssertNotCalled(t, "SendShipmentMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should mark only the whatsapp flag on DispatchText", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		err := dispatcher.DispatchText(ctx, s, testShop(t), testDriver(t))

		require.NoError(t, err)
		assert.True(t, s.WhatsAppSent())
		assert.False(t, s.EmailSent())
		email.AssertNotCalled(t, "SendShipmentDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should return the channel error without marking", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		sendErr := errors.New("timeout")
		text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(sendErr)

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		err := dispatcher.DispatchText(ctx, s, testShop(t), testDriver(t))

		require.ErrorIs(t, err, sendErr)
		assert.False(t, s.WhatsAppSent())
	})

	t.Run("should not clear a flag set by an earlier success", func(t *testing.T) {
		email := new(MockEmailSender)
		text := new(MockTextSender)
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(nil).Once()
		email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("flaky")).Once()

		dispatcher := services.NewNotificationDispatcher(email, text, testLogger())
		s := testShipment(t)

		require.NoError(t, dispatcher.DispatchEmail(ctx, s, testShop(t), testDriver(t)))
		require.Error(t, dispatcher.DispatchEmail(ctx, s, testShop(t), testDriver(t)))

		assert.True(t, s.EmailSent(), "a later failure must not reset the flag")
	})
}

func TestDispatchResult_PartialFailure(t *testing.T) {
	t.Run("should be false when no channel errored", func(t *testing.T) {
		result := services.DispatchResult{EmailSent: true, WhatsAppSent: true}
		assert.False(t, result.PartialFailure())
	})

	t.Run("should be true when any channel errored", func(t *testing.T) {
		assert.True(t, services.DispatchResult{EmailErr: errors.New("x")}.PartialFailure())
		assert.True(t, services.DispatchResult{WhatsAppErr: errors.New("x")}.PartialFailure())
	})
}
