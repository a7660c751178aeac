package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"ecommerce-backend/internal/database"
	"ecommerce-backend/internal/product/model"
	appErrors "ecommerce-backend/pkg/errors"
	"ecommerce-backend/pkg/query"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fields callers may filter catalog listings on. Anything else in the query
// string is dropped before it reaches the store.
var filterableFields = []string{"category", "price", "stock", "ratings"}

type ProductRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.DB.WithContext(ctx).
		Preload("Reviews").
		First(&product, "id = ?", productID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.DB.WithContext(ctx).
		Preload("Reviews").
		Where("slug = ?", slug).
		First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// List runs the search/filter/pagination pipeline over the catalog and
// returns the page plus the filtered total (counted before pagination).
func (r *ProductRepository) List(ctx context.Context, params url.Values, perPage int) ([]model.Product, int64, error) {
	base := r.db.DB.WithContext(ctx).Model(&model.Product{})

	features := query.New(base, params).
		Search("name").
		Filter(filterableFields...)

	var filtered int64
	if err := features.Query().Count(&filtered).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []model.Product
	err := features.Paginate(perPage).Query().
		Preload("Reviews").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, filtered, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.DB.WithContext(ctx).Model(&model.Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"slug":        product.Slug,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"category":    product.Category,
			"updated_at":  product.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Product{}, "id = ?", productID)

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := r.db.DB.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrProductNotFound
	}

	return nil
}

// UpsertReview inserts a review or, when the (product, user) pair already
// exists, replaces its rating and comment in a single statement. Concurrent
// reviewers therefore cannot lose each other's writes.
func (r *ProductRepository) UpsertReview(ctx context.Context, review *model.Review) error {
	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	err := r.db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":       review.Name,
			"rating":     review.Rating,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt,
		}),
	}).Create(review).Error

	if err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	return r.recomputeRatings(ctx, review.ProductID)
}

func (r *ProductRepository) ListReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

func (r *ProductRepository) GetReview(ctx context.Context, reviewID uuid.UUID) (*model.Review, error) {
	var review model.Review
	err := r.db.DB.WithContext(ctx).First(&review, "id = ?", reviewID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

func (r *ProductRepository) DeleteReview(ctx context.Context, productID, reviewID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Delete(&model.Review{}, "id = ? AND product_id = ?", reviewID, productID)

	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrReviewNotFound
	}

	return r.recomputeRatings(ctx, productID)
}

// recomputeRatings refreshes the aggregate columns from the review table in
// one statement. A product with no reviews goes back to a zero rating.
func (r *ProductRepository) recomputeRatings(ctx context.Context, productID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).Exec(`
        UPDATE products SET
            ratings = COALESCE((SELECT AVG(rating) FROM reviews WHERE product_id = ?), 0),
            num_of_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = ?),
            updated_at = ?
        WHERE id = ?`,
		productID, productID, time.Now(), productID,
	).Error

	if err != nil {
		return fmt.Errorf("failed to recompute ratings: %w", err)
	}

	return nil
}
