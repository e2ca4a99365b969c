// Package shoprepo provides GORM-backed persistence for the shop directory.
package shoprepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shop"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShopDTO represents the database structure for retail shops.
type ShopDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:255"`
	Address        string
	City           string `gorm:"size:128"`
	Email          string `gorm:"size:255"`
	WhatsappNumber string `gorm:"size:32"`
}

// TableName specifies the database table name for shop entities.
func (ShopDTO) TableName() string {
	return "shops"
}

// GormShopRepository implements the ShopDirectory port using GORM.
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GORM shop repository.
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Add saves a shop. Used by seeding and tests.
func (r *GormShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := ShopDTO{
		ID:             s.ID().Bytes(),
		Name:           s.Name(),
		Address:        s.Address(),
		City:           s.City(),
		Email:          s.Email(),
		WhatsappNumber: s.WhatsAppNumber(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a shop by ID.
func (r *GormShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShopDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shop", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomain(dto ShopDTO) (*shop.Shop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return shop.NewShop(id, dto.Name, dto.Address, dto.City, dto.Email, dto.WhatsappNumber)
}
