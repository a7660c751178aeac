package service

import (
	"context"
	"net/url"
	"strconv"

	"ecommerce-backend/internal/product/model"
	"ecommerce-backend/internal/product/repository"
	userModel "ecommerce-backend/internal/user/model"
	appErrors "ecommerce-backend/pkg/errors"
	"ecommerce-backend/pkg/query"
	"ecommerce-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const maxPerPage = 100

type ProductService struct {
	repo *repository.ProductRepository
}

func NewService(repo *repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, request *model.CreateProductRequest) (*model.Product, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	product := &model.Product{
		Slug:        slug.Make(request.Name),
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Stock:       request.Stock,
		Category:    request.Category,
		UserID:      ownerID,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) List(ctx context.Context, params url.Values) (*model.ProductListResponse, error) {
	perPage := query.DefaultPerPage
	if raw := params.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= maxPerPage {
			perPage = parsed
		}
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	products, filtered, err := s.repo.List(ctx, params, perPage)
	if err != nil {
		return nil, err
	}

	return &model.ProductListResponse{
		Products:      products,
		ProductCount:  total,
		FilteredCount: filtered,
		ResultPerPage: perPage,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	return s.repo.GetBySlug(ctx, productSlug)
}

func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, request *model.UpdateProductRequest) (*model.Product, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		product.Name = *request.Name
		product.Slug = slug.Make(*request.Name)
	}
	if request.Description != nil {
		product.Description = *request.Description
	}
	if request.Price != nil {
		product.Price = *request.Price
	}
	if request.Stock != nil {
		product.Stock = *request.Stock
	}
	if request.Category != nil {
		product.Category = *request.Category
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	return s.repo.Delete(ctx, productID)
}

// CreateOrUpdateReview records the reviewer's rating for a product. The
// reviewer's display name is snapshotted onto the review at write time.
func (s *ProductService) CreateOrUpdateReview(ctx context.Context, reviewer *userModel.User, request *model.CreateReviewRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.repo.GetByID(ctx, request.ProductID); err != nil {
		return err
	}

	review := &model.Review{
		ProductID: request.ProductID,
		UserID:    reviewer.ID,
		Name:      reviewer.Name,
		Rating:    request.Rating,
		Comment:   utils.SanitizeText(request.Comment),
	}

	return s.repo.UpsertReview(ctx, review)
}

func (s *ProductService) ListReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	return s.repo.ListReviews(ctx, productID)
}

// DeleteReview removes a review. Only the review's author or an admin may
// delete it; the product's aggregate rating is refreshed afterwards.
func (s *ProductService) DeleteReview(ctx context.Context, actor *userModel.User, productID, reviewID uuid.UUID) error {
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != actor.ID && !actor.IsAdmin() {
		return appErrors.ErrInsufficientPermissions
	}

	return s.repo.DeleteReview(ctx, productID, reviewID)
}
