package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-backend/internal/database"
	"ecommerce-backend/internal/order/model"
	appErrors "ecommerce-backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	order.ID = uuid.New()
	order.Status = model.StatusProcessing
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()

	for i := range order.Items {
		order.Items[i].ID = uuid.New()
		order.Items[i].OrderID = order.ID
	}

	if err := r.db.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", orderID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]model.Order, float64, error) {
	var orders []model.Order
	err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	var totalAmount float64
	err = r.db.DB.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalAmount).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to sum order totals: %w", err)
	}

	return orders, totalAmount, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string, deliveredAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if deliveredAt != nil {
		updates["delivered_at"] = *deliveredAt
	}

	result := r.db.DB.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Order{}, "id = ?", orderID)

	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrOrderNotFound
	}

	return nil
}
