package repository

import (
	"context"

	"gorm.io/gorm"

	"lampstore/internal/model"
)

type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) error
	List(ctx context.Context) ([]*model.NewsletterSubscription, error)
}

type ContactRepository interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
}

type newsletterRepoImpl struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepoImpl{db: db}
}

func (r *newsletterRepoImpl) Subscribe(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Create(&model.NewsletterSubscription{
		Email: email,
	}).Error
}

func (r *newsletterRepoImpl) List(ctx context.Context) ([]*model.NewsletterSubscription, error) {
	var subs []*model.NewsletterSubscription
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subs).Error

	if err != nil {
		return nil, err
	}

	return subs, nil
}

type contactRepoImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepoImpl{db: db}
}

func (r *contactRepoImpl) Create(ctx context.Context, submission *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}
