package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
// Writes always persist the shipment row together with its full item
// collection; updates replace the items wholesale, which keeps the mapping
// trivial at the cost of rewriting unchanged lines.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment with its items.
// A duplicate shipment number surfaces as a ValueIsInvalidError.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("number", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment, guarded by the optimistic version
// token. The items are replaced wholesale inside the same transaction.
// A concurrent writer that committed first makes the version predicate miss
// and the call fails with VersionIsInvalidError.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select(
			"ShopID", "DriverID", "Date", "Status", "Notes", "DocumentPath",
			"EmailSent", "EmailSentAt", "WhatsappSent", "WhatsappSentAt",
			"Version", "UpdatedAt",
		).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("shipment")
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) replaceItems(ctx context.Context, dto ShipmentDTO) error {
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Items) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dto.Items).Error
}

// Get retrieves a shipment with its items by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a shipment and its items. The items are removed explicitly
// so the operation does not depend on the database-level cascade being in
// place.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", id.Bytes()).
		Delete(&ItemDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}

	return nil
}

// FindByFilter returns the whole filtered set ordered by (date desc, id desc).
func (r *GormShipmentRepository) FindByFilter(
	ctx context.Context,
	filter shipment.Filter,
) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Items").
		Order("date DESC, id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// FindPageByFilter returns one page of the filtered set in the same order,
// together with the size of the whole filtered set.
func (r *GormShipmentRepository) FindPageByFilter(
	ctx context.Context,
	filter shipment.Filter,
	page, size int,
) (ports.ShipmentPage, error) {
	var total int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&ShipmentDTO{}), filter).
		Count(&total).Error
	if err != nil {
		return ports.ShipmentPage{}, err
	}

	var dtos []ShipmentDTO
	err = r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Items").
		Order("date DESC, id DESC").
		Offset(page * size).
		Limit(size).
		Find(&dtos).Error
	if err != nil {
		return ports.ShipmentPage{}, err
	}

	shipments, err := r.toDomainSlice(dtos)
	if err != nil {
		return ports.ShipmentPage{}, err
	}

	return ports.ShipmentPage{
		Shipments:     shipments,
		TotalElements: total,
	}, nil
}

// FindDocumentPaths returns the document references of every shipment that
// has one.
func (r *GormShipmentRepository) FindDocumentPaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("document_path <> ''").
		Pluck("document_path", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// applyFilter translates the shared shipment filter into a WHERE clause.
// This is the single SQL rendering of the filter: listing and reporting both
// go through it, so identical filters always select identical sets. The date
// range bounds are inclusive whole days, matching Filter.Matches.
func (r *GormShipmentRepository) applyFilter(db *gorm.DB, filter shipment.Filter) *gorm.DB {
	if from := filter.DateFrom(); from != nil {
		db = db.Where("date >= ?", *from)
	}
	if to := filter.DateTo(); to != nil {
		db = db.Where("date < ?", to.Add(24*time.Hour))
	}
	if shopID := filter.ShopID(); shopID != nil {
		db = db.Where("shop_id = ?", shopID.Bytes())
	}
	if driverID := filter.DriverID(); driverID != nil {
		db = db.Where("driver_id = ?", driverID.Bytes())
	}
	if statuses := filter.Statuses(); len(statuses) > 0 {
		values := make([]int, 0, len(statuses))
		for _, status := range statuses {
			values = append(values, int(status))
		}
		db = db.Where("status IN ?", values)
	}
	return db
}

func (r *GormShipmentRepository) toDomainSlice(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, aggregate)
	}
	return shipments, nil
}
