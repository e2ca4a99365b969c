package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/driver"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/model/shop"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShipmentRepository) FindByFilter(
	ctx context.Context, filter shipment.Filter,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindPageByFilter(
	ctx context.Context, filter shipment.Filter, page, size int,
) (ports.ShipmentPage, error) {
	args := m.Called(ctx, filter, page, size)
	return args.Get(0).(ports.ShipmentPage), args.Error(1)
}

func (m *MockShipmentRepository) FindDocumentPaths(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockShopDirectory struct{ mock.Mock }

func (m *MockShopDirectory) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

type MockDriverDirectory struct{ mock.Mock }

func (m *MockDriverDirectory) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockDocumentGenerator struct{ mock.Mock }

func (m *MockDocumentGenerator) Generate(
	ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver,
) (string, error) {
	args := m.Called(ctx, s, sh, drv)
	return args.String(0), args.Error(1)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendShipmentDocument(
	ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver,
) error {
	args := m.Called(ctx, s, sh, drv)
	return args.Error(0)
}

type MockTextSender struct{ mock.Mock }

func (m *MockTextSender) SendShipmentMessage(
	ctx context.Context, s *shipment.Shipment, sh *shop.Shop, drv *driver.Driver,
) error {
	args := m.Called(ctx, s, sh, drv)
	return args.Error(0)
}

// newDispatcher builds a dispatcher over the given mock channels with a
// discarding logger.
func newDispatcher(email services.DocumentEmailSender, text services.TextMessageSender) services.NotificationDispatcher {
	return services.NewNotificationDispatcher(
		email, text, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func storedShop(t *testing.T) *shop.Shop {
	t.Helper()
	sh, err := shop.NewShop(kernel.NewUUID(), "Main Street Shop", "1 Main St", "Springfield",
		"shop@example.com", "+15550001111")
	require.NoError(t, err)
	return sh
}

func storedProduct(t *testing.T, price float64) *product.Product {
	t.Helper()
	prod, err := product.NewProduct(kernel.NewUUID(), "BRD-001", "Sourdough Loaf", "pcs",
		decimal.NewFromFloat(price), true)
	require.NoError(t, err)
	return prod
}

// storedShipment builds a draft shipment with one regular line, as the
// repository would return it.
func storedShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	item, err := shipment.NewItem(
		kernel.NewUUID(), decimal.NewFromInt(10), decimal.NewFromFloat(1.50),
		shipment.Regular, nil, "")
	require.NoError(t, err)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		shipment.GenerateNumber(date, 1),
		kernel.NewUUID(),
		nil,
		date,
		[]*shipment.Item{item},
		"",
	)
	require.NoError(t, err)
	return s
}
