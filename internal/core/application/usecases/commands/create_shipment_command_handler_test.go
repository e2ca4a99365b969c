package commands_test

import (
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sh := storedShop(t)
	prod := storedProduct(t, 2.50)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	input, err := commands.NewItemInput(prod.ID(), decimal.NewFromInt(10), "")
	require.NoError(t, err)
	cmd, err := commands.NewCreateShipmentCommand(sh.ID(), nil, date, []commands.ItemInput{input}, "first run")
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, sh.ID()).Return(sh, nil).Once()
	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, prod.ID()).Return(prod, nil).Once()
	drivers := new(MockDriverDirectory)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, shops, drivers, catalog)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, shipment.Draft, created.Status())
	assert.True(t, created.ShopID().IsEqual(sh.ID()))
	require.Len(t, created.Items(), 1)
	// catalog price snapshotted onto the line
	assert.True(t, created.Items()[0].UnitPrice().Equal(decimal.NewFromFloat(2.50)))
	assert.True(t, created.Items()[0].TotalPrice().Equal(decimal.NewFromInt(25)))
	require.NoError(t, shipment.ValidateNumber(created.Number()))

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	shops.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ResolvesDriver(t *testing.T) {
	ctx := t.Context()
	sh := storedShop(t)
	driverID := kernel.NewUUID()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	cmd, err := commands.NewCreateShipmentCommand(sh.ID(), &driverID, date, nil, "")
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, sh.ID()).Return(sh, nil).Once()
	drivers := new(MockDriverDirectory)
	drivers.On("Get", ctx, driverID).
		Return(nil, errs.NewObjectNotFoundError("driver", driverID)).Once()

	factory := new(MockShipmentUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(factory, shops, drivers, new(MockProductCatalog))

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_UnknownShop(t *testing.T) {
	ctx := t.Context()
	shopID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		shopID, nil, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil, "")
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, shopID).
		Return(nil, errs.NewObjectNotFoundError("shop", shopID)).Once()

	factory := new(MockShipmentUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), new(MockProductCatalog))

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	sh := storedShop(t)
	productID := kernel.NewUUID()
	input, err := commands.NewItemInput(productID, decimal.NewFromInt(1), "")
	require.NoError(t, err)
	cmd, err := commands.NewCreateShipmentCommand(
		sh.ID(), nil, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		[]commands.ItemInput{input}, "")
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, sh.ID()).Return(sh, nil).Once()
	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, productID).
		Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()

	factory := new(MockShipmentUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), catalog)

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateShipmentCommand{} // not constructed properly

	h := commands.NewCreateShipmentCommandHandler(
		new(MockShipmentUoWFactory), new(MockShopDirectory),
		new(MockDriverDirectory), new(MockProductCatalog))

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
}

func TestCreateShipmentCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	sh := storedShop(t)
	cmd, err := commands.NewCreateShipmentCommand(
		sh.ID(), nil, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil, "")
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, sh.ID()).Return(sh, nil).Once()

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
			Return(errors.New("unique violation")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), new(MockProductCatalog))

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	sh := storedShop(t)
	cmd, err := commands.NewCreateShipmentCommand(
		sh.ID(), nil, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil, "")
	require.NoError(t, err)

	shops := new(MockShopDirectory)
	shops.On("Get", ctx, sh.ID()).Return(sh, nil).Once()

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(
		factory, shops, new(MockDriverDirectory), new(MockProductCatalog))

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	uow.AssertExpectations(t)
}
