package database

import (
	"fmt"

	orderModel "ecommerce-backend/internal/order/model"
	productModel "ecommerce-backend/internal/product/model"
	userModel "ecommerce-backend/internal/user/model"
)

func (d *Database) Migrate() error {
	err := d.DB.AutoMigrate(
		&userModel.User{},
		&productModel.Product{},
		&productModel.Review{},
		&orderModel.Order{},
		&orderModel.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
