package service

import (
	"context"
	"time"

	"ecommerce-backend/internal/order/model"
	"ecommerce-backend/internal/order/repository"
	productRepository "ecommerce-backend/internal/product/repository"
	userModel "ecommerce-backend/internal/user/model"
	appErrors "ecommerce-backend/pkg/errors"
	"ecommerce-backend/pkg/utils"

	"github.com/google/uuid"
)

type OrderService struct {
	repo     *repository.OrderRepository
	products *productRepository.ProductRepository
}

func NewService(repo *repository.OrderRepository, products *productRepository.ProductRepository) *OrderService {
	return &OrderService{repo: repo, products: products}
}

// Create places an order. Item names and prices are snapshotted from the
// current catalog; the client only chooses products and quantities.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, request *model.CreateOrderRequest) (*model.Order, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	items := make([]model.OrderItem, 0, len(request.Items))
	var itemsPrice float64
	for _, item := range request.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		itemsPrice += product.Price * float64(item.Quantity)
	}

	// Orders arrive already paid; the payment reference is recorded as-is.
	paidAt := time.Now()

	order := &model.Order{
		UserID:          userID,
		ShippingAddress: request.ShippingAddress,
		City:            request.City,
		Country:         request.Country,
		PostalCode:      request.PostalCode,
		PhoneNumber:     request.PhoneNumber,
		PaymentID:       request.PaymentID,
		PaymentStatus:   request.PaymentStatus,
		PaidAt:          &paidAt,
		ItemsPrice:      itemsPrice,
		TaxPrice:        request.TaxPrice,
		ShippingPrice:   request.ShippingPrice,
		TotalPrice:      itemsPrice + request.TaxPrice + request.ShippingPrice,
		Items:           items,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, actor *userModel.User, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != actor.ID && !actor.IsAdmin() {
		return nil, appErrors.ErrInsufficientPermissions
	}

	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) (*model.OrderListResponse, error) {
	orders, totalAmount, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &model.OrderListResponse{
		Orders:      orders,
		TotalAmount: totalAmount,
	}, nil
}

// UpdateStatus advances an order's lifecycle. Shipping decrements stock for
// every item; delivery stamps the time and is terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, request *model.UpdateOrderStatusRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status == model.StatusDelivered {
		return appErrors.ErrOrderDelivered
	}

	if request.Status == model.StatusShipped && order.Status != model.StatusShipped {
		for _, item := range order.Items {
			if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
	}

	var deliveredAt *time.Time
	if request.Status == model.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	return s.repo.UpdateStatus(ctx, orderID, request.Status, deliveredAt)
}

func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.repo.Delete(ctx, orderID)
}
