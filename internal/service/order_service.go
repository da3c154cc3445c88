package service

import "context"

// OrderStats aggregates a user's orders.
type OrderStats struct {
	TotalOrders     int     `json:"totalOrders"`
	PendingOrders   int     `json:"pendingOrders"`
	DeliveredOrders int     `json:"deliveredOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// OrderService is the server-side order contract. Like CartService, the only
// implementation is an inert placeholder.
type OrderService interface {
	Create(ctx context.Context, userID uint) (*StubNotice, error)
	List(ctx context.Context, userID uint) ([]interface{}, error)
	Get(ctx context.Context, userID uint, orderID string) (*StubNotice, error)
	UpdateStatus(ctx context.Context, userID uint, orderID string) (*StubNotice, error)
	UpdatePayment(ctx context.Context, userID uint, orderID string) (*StubNotice, error)
	Stats(ctx context.Context, userID uint) (*OrderStats, error)
}

const orderComingSoon = "Order functionality coming soon"

type stubOrderService struct{}

// NewOrderService creates the placeholder order service.
func NewOrderService() OrderService {
	return &stubOrderService{}
}

func (s *stubOrderService) Create(ctx context.Context, userID uint) (*StubNotice, error) {
	return &StubNotice{Message: orderComingSoon}, nil
}

func (s *stubOrderService) List(ctx context.Context, userID uint) ([]interface{}, error) {
	return []interface{}{}, nil
}

func (s *stubOrderService) Get(ctx context.Context, userID uint, orderID string) (*StubNotice, error) {
	return &StubNotice{Message: orderComingSoon}, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, userID uint, orderID string) (*StubNotice, error) {
	return &StubNotice{Message: orderComingSoon}, nil
}

func (s *stubOrderService) UpdatePayment(ctx context.Context, userID uint, orderID string) (*StubNotice, error) {
	return &StubNotice{Message: orderComingSoon}, nil
}

func (s *stubOrderService) Stats(ctx context.Context, userID uint) (*OrderStats, error) {
	return &OrderStats{}, nil
}
