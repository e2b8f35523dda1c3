package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lampstore/internal/dto"
	"lampstore/internal/model"
	"lampstore/internal/repository"
)

// OrderDetail is an order with its line items and, for admin views,
// the buyer's default shipping address.
type OrderDetail struct {
	model.Order
	OrderItems      []*model.OrderItem     `json:"order_items"`
	ShippingAddress *model.ShippingAddress `json:"shipping_address,omitempty"`
}

type OrderService interface {
	ListForUser(ctx context.Context, userID string) ([]*OrderDetail, error)
	ListAll(ctx context.Context) ([]*OrderDetail, error)
	// SetShipped flips the shipped flag and tracking number; marking
	// shipped also dispatches the shipping-notification email.
	SetShipped(ctx context.Context, orderID string, req *dto.ShippingUpdateRequest, buyerEmail, buyerName string) (*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo    repository.OrderRepository
	addressRepo  repository.AddressRepository
	emailService EmailService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	emailService EmailService,
) OrderService {
	return &orderServiceImpl{
		orderRepo:    orderRepo,
		addressRepo:  addressRepo,
		emailService: emailService,
	}
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID string) ([]*OrderDetail, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return s.withItems(ctx, orders, false)
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]*OrderDetail, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return s.withItems(ctx, orders, true)
}

func (s *orderServiceImpl) withItems(ctx context.Context, orders []*model.Order, includeAddress bool) ([]*OrderDetail, error) {
	details := make([]*OrderDetail, len(orders))
	for i, order := range orders {
		items, err := s.orderRepo.GetOrderItems(ctx, order.ID)
		if err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}

		detail := &OrderDetail{Order: *order, OrderItems: items}

		if includeAddress {
			addresses, err := s.addressRepo.ListByUser(ctx, order.UserID)
			if err == nil && len(addresses) > 0 {
				// default first per repository ordering
				detail.ShippingAddress = addresses[0]
			}
		}

		details[i] = detail
	}

	return details, nil
}

func (s *orderServiceImpl) SetShipped(ctx context.Context, orderID string, req *dto.ShippingUpdateRequest, buyerEmail, buyerName string) (*model.Order, error) {
	order, err := s.orderRepo.SetShipped(ctx, orderID, req.Shipped, req.TrackingNumber)
	if err != nil {
		return nil, err
	}

	if req.Shipped && buyerEmail != "" {
		go s.notifyShipped(order.ID, buyerEmail, buyerName, req.TrackingNumber)
	}

	return order, nil
}

func (s *orderServiceImpl) notifyShipped(orderID, email, name, trackingNumber string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.emailService.SendShippingNotification(ctx, &dto.OrderEmailRequest{
		OrderID:        orderID,
		UserEmail:      email,
		UserName:       name,
		TrackingNumber: trackingNumber,
	})
	if err != nil {
		log.Printf("send shipping notification for %s: %v", orderID, err)
	}
}
