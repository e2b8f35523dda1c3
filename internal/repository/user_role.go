package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lampstore/internal/model"
)

type UserRoleRepository interface {
	Get(ctx context.Context, userID string) (*model.UserRole, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type userRoleRepoImpl struct {
	db *gorm.DB
}

func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepoImpl{db: db}
}

func (r *userRoleRepoImpl) Get(ctx context.Context, userID string) (*model.UserRole, error) {
	var role model.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&role).Error

	if err != nil {
		return nil, err
	}

	return &role, nil
}

func (r *userRoleRepoImpl) IsAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := r.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// no role row means a plain customer
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return role.IsAdmin, nil
}
