package commands_test

import (
	"errors"
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := storedShipment(t)
	sh := storedShop(t)
	cmd, err := commands.NewConfirmShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, aggregate.ShopID()).Return(sh, nil).Once()

	documents := new(MockDocumentGenerator)
	documents.On("Generate", ctx, aggregate, sh, (*driver.Driver)(nil)).
		Return("/artifacts/note.xlsx", nil).Once()

	email := new(MockEmailSender)
	email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	text := new(MockTextSender)
	text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), documents, newDispatcher(email, text))

	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Confirmed, result.Shipment.Status())
	assert.Equal(t, "/artifacts/note.xlsx", result.Shipment.DocumentPath())
	assert.True(t, result.Notifications.EmailSent)
	assert.True(t, result.Notifications.WhatsAppSent)
	assert.False(t, result.Notifications.PartialFailure())
	assert.True(t, result.Shipment.EmailSent())
	assert.True(t, result.Shipment.WhatsAppSent())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	documents.AssertExpectations(t)
}

func TestConfirmShipmentCommandHandler_Handle_PartialNotificationFailure(t *testing.T) {
	ctx := t.Context()
	aggregate := storedShipment(t)
	sh := storedShop(t)
	cmd, err := commands.NewConfirmShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, aggregate.ShopID()).Return(sh, nil).Once()

	documents := new(MockDocumentGenerator)
	documents.On("Generate", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("/artifacts/note.xlsx", nil).Once()

	email := new(MockEmailSender)
	email.On("SendShipmentDocument", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))
	text := new(MockTextSender)
	text.On("SendShipmentMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), documents, newDispatcher(email, text))

	result, err := h.Handle(ctx, cmd)

	// channel failure does not fail the confirmation
	require.NoError(t, err)
	assert.Equal(t, shipment.Confirmed, result.Shipment.Status())
	assert.True(t, result.Notifications.PartialFailure())
	assert.False(t, result.Notifications.EmailSent)
	assert.True(t, result.Notifications.WhatsAppSent)
	assert.False(t, result.Shipment.EmailSent())
	assert.True(t, result.Shipment.WhatsAppSent())
	uow.AssertExpectations(t)
}

func TestConfirmShipmentCommandHandler_Handle_DocumentGenerationFatal(t *testing.T) {
	ctx := t.Context()
	aggregate := storedShipment(t)
	sh := storedShop(t)
	cmd, err := commands.NewConfirmShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, aggregate.ShopID()).Return(sh, nil).Once()

	genErr := errors.New("disk full")
	documents := new(MockDocumentGenerator)
	documents.On("Generate", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", genErr).Once()

	email := new(MockEmailSender)
	text := new(MockTextSender)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), documents, newDispatcher(email, text))

	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, genErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	email.AssertNotCalled(t, "SendShipmentDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	text.AssertNotCalled(t, "SendShipmentMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestConfirmShipmentCommandHandler_Handle_ShipmentNotFound(t *testing.T) {
	ctx := t.Context()
	aggregate := storedShipment(t)
	cmd, err := commands.NewConfirmShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).
			Return(nil, errs.NewObjectNotFoundError("shipment", aggregate.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmShipmentCommandHandler(
		factory, new(MockShopDirectory), new(MockDriverDirectory),
		new(MockDocumentGenerator), newDispatcher(new(MockEmailSender), new(MockTextSender)))

	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestConfirmShipmentCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := storedShipment(t)
	require.NoError(t, aggregate.ForceSetStatus(shipment.Cancelled))
	sh := storedShop(t)
	cmd, err := commands.NewConfirmShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, aggregate.ShopID()).Return(sh, nil).Once()

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory),
		new(MockDocumentGenerator), newDispatcher(new(MockEmailSender), new(MockTextSender)))

	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}
