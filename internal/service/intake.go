package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"lampstore/internal/dto"
	"lampstore/internal/model"
	"lampstore/internal/repository"
)

// IntakeService covers the public intake surfaces: newsletter signups
// and contact-form submissions.
type IntakeService interface {
	SubscribeNewsletter(ctx context.Context, email string) error
	ListSubscriptions(ctx context.Context) ([]*model.NewsletterSubscription, error)
	SubmitContactForm(ctx context.Context, req *dto.ContactEmailRequest) error
}

type intakeServiceImpl struct {
	newsletterRepo repository.NewsletterRepository
	contactRepo    repository.ContactRepository
	emailService   EmailService
}

func NewIntakeService(
	newsletterRepo repository.NewsletterRepository,
	contactRepo repository.ContactRepository,
	emailService EmailService,
) IntakeService {
	return &intakeServiceImpl{
		newsletterRepo: newsletterRepo,
		contactRepo:    contactRepo,
		emailService:   emailService,
	}
}

func (s *intakeServiceImpl) SubscribeNewsletter(ctx context.Context, email string) error {
	err := s.newsletterRepo.Subscribe(ctx, email)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadySubscribed
	}
	if err != nil {
		return fmt.Errorf("subscribe newsletter: %w", err)
	}

	return nil
}

func (s *intakeServiceImpl) ListSubscriptions(ctx context.Context) ([]*model.NewsletterSubscription, error) {
	return s.newsletterRepo.List(ctx)
}

func (s *intakeServiceImpl) SubmitContactForm(ctx context.Context, req *dto.ContactEmailRequest) error {
	err := s.contactRepo.Create(ctx, &model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return fmt.Errorf("store contact submission: %w", err)
	}

	// relayed best-effort; the submission row is the durable record
	go s.relayContactEmail(req)

	return nil
}

func (s *intakeServiceImpl) relayContactEmail(req *dto.ContactEmailRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.emailService.SendContactEmail(ctx, req); err != nil {
		log.Printf("relay contact email from %s: %v", req.Email, err)
	}
}
