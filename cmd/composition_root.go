package cmd

import (
	"log/slog"

	"warehouse/internal/adapters/out/docgen"
	"warehouse/internal/adapters/out/notify"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/driverrepo"
	"warehouse/internal/adapters/out/postgres/productrepo"
	"warehouse/internal/adapters/out/postgres/shoprepo"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All dependencies
// flow from here; nothing below cmd reads configuration on its own.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher services.NotificationDispatcher
	documents  ports.DocumentGenerator
}

// NewCompositionRoot builds the object graph for the given configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	catalog := productrepo.NewGormProductRepository(gormDB)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: services.NewNotificationDispatcher(
			notify.NewSMTPEmailSender(notify.SMTPConfig{
				Host:     config.SMTPHost,
				Port:     config.SMTPPort,
				Username: config.SMTPUsername,
				Password: config.SMTPPassword,
				From:     config.SMTPFrom,
			}),
			notify.NewTwilioWhatsAppSender(notify.TwilioConfig{
				AccountSID: config.TwilioAccountSID,
				AuthToken:  config.TwilioAuthToken,
				FromNumber: config.TwilioWhatsAppNumber,
			}),
			logger,
		),
		documents: docgen.NewExcelDocumentGenerator(config.DocumentStorageDir, catalog),
	}
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

// ProductCatalog returns the catalog directory adapter.
func (c *CompositionRoot) ProductCatalog() ports.ProductCatalog {
	return productrepo.NewGormProductRepository(c.gormDB)
}

// ShopDirectory returns the shop directory adapter.
func (c *CompositionRoot) ShopDirectory() ports.ShopDirectory {
	return shoprepo.NewGormShopRepository(c.gormDB)
}

// DriverDirectory returns the driver directory adapter.
func (c *CompositionRoot) DriverDirectory() ports.DriverDirectory {
	return driverrepo.NewGormDriverRepository(c.gormDB)
}

// ShipmentRepository returns a repository on the pooled connection for reads
// and background jobs running outside a unit of work.
func (c *CompositionRoot) ShipmentRepository() ports.ShipmentRepository {
	return c.uowFactory.Create().ShipmentRepository()
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		c.shipmentUoWFactory(),
		c.ShopDirectory(),
		c.DriverDirectory(),
		c.ProductCatalog(),
	)
}

func (c *CompositionRoot) CreateConfirmShipmentCommandHandler() commands.ConfirmShipmentCommandHandler {
	return commands.NewConfirmShipmentCommandHandler(
		c.shipmentUoWFactory(),
		c.ShopDirectory(),
		c.DriverDirectory(),
		c.documents,
		c.dispatcher,
	)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	return commands.NewUpdateShipmentStatusCommandHandler(
		c.shipmentUoWFactory(),
		c.ShopDirectory(),
		c.DriverDirectory(),
		c.dispatcher,
	)
}

func (c *CompositionRoot) CreateAddReturnItemsCommandHandler() commands.AddReturnItemsCommandHandler {
	return commands.NewAddReturnItemsCommandHandler(
		c.shipmentUoWFactory(),
		c.ShopDirectory(),
		c.DriverDirectory(),
		c.ProductCatalog(),
		c.documents,
	)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(
		c.shipmentUoWFactory(),
		c.ShopDirectory(),
		c.DriverDirectory(),
		c.ProductCatalog(),
		c.documents,
	)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateSendWhatsAppCommandHandler() commands.SendWhatsAppCommandHandler {
	return commands.NewSendWhatsAppCommandHandler(
		c.shipmentUoWFactory(),
		c.ShopDirectory(),
		c.DriverDirectory(),
		c.dispatcher,
	)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.ShipmentRepository())
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(
		c.ShipmentRepository(),
		services.NewReportAggregator(),
	)
}

func (c *CompositionRoot) CreateDashboardReportQueryHandler() queries.DashboardReportQueryHandler {
	return queries.NewDashboardReportQueryHandler(
		c.ShipmentRepository(),
		c.ProductCatalog(),
		services.NewReportAggregator(),
	)
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.ShipmentRepository(),
		c.config.DocumentStorageDir,
		c.logger,
	)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
