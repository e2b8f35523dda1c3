package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lampstore/internal/dto"
	"lampstore/internal/model"
	"lampstore/internal/repository"
)

// ProductDetail is a product with its category name and gallery
// images attached.
type ProductDetail struct {
	model.Product
	CategoryName string                `json:"category_name,omitempty"`
	Images       []*model.ProductImage `json:"images,omitempty"`
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*ProductDetail, error)
	GetProduct(ctx context.Context, productID string) (*ProductDetail, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)

	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID string, req *dto.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req *dto.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*ProductDetail, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	details := make([]*ProductDetail, len(products))
	for i, p := range products {
		detail := &ProductDetail{Product: *p}
		if p.CategoryID != nil {
			detail.CategoryName = categoryNames[*p.CategoryID]
		}
		details[i] = detail
	}

	return details, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*ProductDetail, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetail{Product: *product}

	if product.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *product.CategoryID)
		if err == nil {
			detail.CategoryName = category.Name
		}
	}

	images, err := s.productRepo.Images(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product images: %w", err)
	}
	detail.Images = images

	return detail, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	product := productFromRequest(req)
	product.ID = uuid.NewString()

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID string, req *dto.ProductRequest) (*model.Product, error) {
	product := productFromRequest(req)
	product.ID = productID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.Delete(ctx, productID)
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (s *catalogServiceImpl) UpdateCategory(ctx context.Context, categoryID string, req *dto.CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return s.categoryRepo.FindByID(ctx, categoryID)
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, categoryID string) error {
	return s.categoryRepo.Delete(ctx, categoryID)
}

func productFromRequest(req *dto.ProductRequest) *model.Product {
	return &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		ShippingPrice: req.ShippingPrice,
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		InStock:       req.InStock,
		Quantity:      req.Quantity,
		Featured:      req.Featured,
		OnSale:        req.OnSale,
	}
}
