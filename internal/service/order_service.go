package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"urban-luxury/internal/events"
	"urban-luxury/internal/model"
	"urban-luxury/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	orderIDPrefix     = "ORD"
	orderSuffixLength = 9
	orderSuffixAlpha  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// orderService implements OrderService.
type orderService struct {
	repo      repository.OrderRepository
	publisher events.Publisher
	now       func() time.Time
	random    io.Reader
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, publisher events.Publisher, logger zerolog.Logger) OrderService {
	return &orderService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		random:    rand.Reader,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// NewOrderID returns an identifier of the form ORD-<unix ms>-<9 base36 chars>,
// drawing the suffix from r.
func NewOrderID(now time.Time, r io.Reader) (string, error) {
	var b strings.Builder
	b.WriteString(orderIDPrefix)
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')

	base := big.NewInt(int64(len(orderSuffixAlpha)))
	for i := 0; i < orderSuffixLength; i++ {
		n, err := rand.Int(r, base)
		if err != nil {
			return "", fmt.Errorf("failed to generate order ID: %w", err)
		}
		b.WriteByte(orderSuffixAlpha[n.Int64()])
	}

	return b.String(), nil
}

// Create validates the request and stores a new order in the placed state.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if req == nil || req.Product == nil || req.UserInfo == nil || strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, model.ErrMissingOrderFields
	}

	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if !model.ValidPaymentMethod(method) {
		s.logger.Warn().Str("payment_method", req.PaymentMethod).Msg("invalid payment method")
		return nil, model.ErrInvalidPaymentMethod
	}

	now := s.now()
	orderID, err := NewOrderID(now, s.random)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate order ID")
		return nil, err
	}

	userInfo := *req.UserInfo
	userInfo.Email = strings.TrimSpace(userInfo.Email)

	order := &model.Order{
		ID:            uuid.New(),
		OrderID:       orderID,
		Product:       *req.Product,
		UserInfo:      userInfo,
		PaymentMethod: method,
		Status:        model.OrderStatusPlaced,
		CreatedAt:     now.UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("product_id", order.Product.ID).
		Str("payment_method", method).
		Msg("order created successfully")

	s.publisher.Publish(ctx, events.OrdersUpdated)

	return order, nil
}

// List retrieves orders, newest first.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	filter.UserEmail = strings.TrimSpace(filter.UserEmail)

	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.logger.Debug().
		Bool("filtered", filter.UserEmail != "").
		Int("count", len(orders)).
		Msg("orders listed")

	return orders, nil
}

// GetByOrderID retrieves a single order.
func (s *orderService) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus changes the status of an order.
func (s *orderService) UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, model.MissingField("status")
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("status", status).
		Msg("order status updated")

	s.publisher.Publish(ctx, events.OrdersUpdated)

	return order, nil
}
