package service

import (
	"context"

	"github.com/google/uuid"

	"lampstore/internal/dto"
	"lampstore/internal/model"
	"lampstore/internal/repository"
)

type AddressService interface {
	List(ctx context.Context, userID string) ([]*model.ShippingAddress, error)
	Create(ctx context.Context, userID string, req *dto.AddressRequest) (*model.ShippingAddress, error)
	Update(ctx context.Context, userID, addressID string, req *dto.AddressRequest) (*model.ShippingAddress, error)
	Delete(ctx context.Context, userID, addressID string) error
	SetDefault(ctx context.Context, userID, addressID string) error
}

type addressServiceImpl struct {
	addressRepo repository.AddressRepository
}

func NewAddressService(addressRepo repository.AddressRepository) AddressService {
	return &addressServiceImpl{
		addressRepo: addressRepo,
	}
}

func (s *addressServiceImpl) List(ctx context.Context, userID string) ([]*model.ShippingAddress, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *addressServiceImpl) Create(ctx context.Context, userID string, req *dto.AddressRequest) (*model.ShippingAddress, error) {
	address := addressFromRequest(userID, req)
	address.ID = uuid.NewString()

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}

	return address, nil
}

func (s *addressServiceImpl) Update(ctx context.Context, userID, addressID string, req *dto.AddressRequest) (*model.ShippingAddress, error) {
	address := addressFromRequest(userID, req)
	address.ID = addressID

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, err
	}

	return s.addressRepo.FindByID(ctx, userID, addressID)
}

func (s *addressServiceImpl) Delete(ctx context.Context, userID, addressID string) error {
	return s.addressRepo.Delete(ctx, userID, addressID)
}

func (s *addressServiceImpl) SetDefault(ctx context.Context, userID, addressID string) error {
	return s.addressRepo.SetDefault(ctx, userID, addressID)
}

func addressFromRequest(userID string, req *dto.AddressRequest) *model.ShippingAddress {
	return &model.ShippingAddress{
		UserID:              userID,
		FullName:            req.FullName,
		AddressLine1:        req.AddressLine1,
		AddressLine2:        req.AddressLine2,
		City:                req.City,
		State:               req.State,
		PostalCode:          req.PostalCode,
		Country:             req.Country,
		Phone:               req.Phone,
		SpecialInstructions: req.SpecialInstructions,
		IsDefault:           req.IsDefault,
	}
}
