package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"lampstore/internal/model"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*model.ShippingAddress, error)
	FindByID(ctx context.Context, userID, addressID string) (*model.ShippingAddress, error)
	Create(ctx context.Context, address *model.ShippingAddress) error
	Update(ctx context.Context, address *model.ShippingAddress) error
	Delete(ctx context.Context, userID, addressID string) error
	SetDefault(ctx context.Context, userID, addressID string) error
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.ShippingAddress, error) {
	var addresses []*model.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error

	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepoImpl) FindByID(ctx context.Context, userID, addressID string) (*model.ShippingAddress, error) {
	var address model.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error

	if err != nil {
		return nil, err
	}

	return &address, nil
}

// Create inserts the address; a new default clears any competing
// default in the same transaction so at most one survives per user.
func (r *addressRepoImpl) Create(ctx context.Context, address *model.ShippingAddress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaults(tx, address.UserID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (r *addressRepoImpl) Update(ctx context.Context, address *model.ShippingAddress) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefaults(tx, address.UserID); err != nil {
				return err
			}
		}

		result := tx.Model(&model.ShippingAddress{}).
			Where("id = ? AND user_id = ?", address.ID, address.UserID).
			Updates(map[string]interface{}{
				"full_name":            address.FullName,
				"address_line1":        address.AddressLine1,
				"address_line2":        address.AddressLine2,
				"city":                 address.City,
				"state":                address.State,
				"postal_code":          address.PostalCode,
				"country":              address.Country,
				"phone":                address.Phone,
				"special_instructions": address.SpecialInstructions,
				"is_default":           address.IsDefault,
				"updated_at":           time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *addressRepoImpl) Delete(ctx context.Context, userID, addressID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.ShippingAddress{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *addressRepoImpl) SetDefault(ctx context.Context, userID, addressID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearDefaults(tx, userID); err != nil {
			return err
		}

		result := tx.Model(&model.ShippingAddress{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Updates(map[string]interface{}{
				"is_default": true,
				"updated_at": time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func clearDefaults(tx *gorm.DB, userID string) error {
	return tx.Model(&model.ShippingAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Updates(map[string]interface{}{
			"is_default": false,
			"updated_at": time.Now(),
		}).Error
}
