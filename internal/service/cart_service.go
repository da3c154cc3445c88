package service

import "context"

// StubNotice is the acknowledgement returned by endpoints whose backing
// logic does not exist yet. Handlers serialize it verbatim, so swapping a
// stub service for a real one is a substitution, not a contract change.
type StubNotice struct {
	Message string `json:"message"`
}

// CartView is the shape of a cart payload.
type CartView struct {
	Items []CartItemView `json:"items"`
}

// CartItemView is a single cart entry.
type CartItemView struct {
	CropID   uint    `json:"cropId"`
	Quantity float64 `json:"quantity"`
}

// CartSummary aggregates a cart.
type CartSummary struct {
	ItemCount   int     `json:"itemCount"`
	TotalAmount float64 `json:"totalAmount"`
}

// CartService is the server-side cart contract. The only implementation is an
// inert placeholder: reads return empty shapes and mutations acknowledge
// without touching any store.
type CartService interface {
	Get(ctx context.Context, userID uint) (*CartView, error)
	Add(ctx context.Context, userID uint) (*StubNotice, error)
	UpdateItem(ctx context.Context, userID uint, itemID string) (*StubNotice, error)
	RemoveItem(ctx context.Context, userID uint, itemID string) (*StubNotice, error)
	Clear(ctx context.Context, userID uint) (*StubNotice, error)
	Summary(ctx context.Context, userID uint) (*CartSummary, error)
}

const cartComingSoon = "Cart functionality coming soon"

type stubCartService struct{}

// NewCartService creates the placeholder cart service.
func NewCartService() CartService {
	return &stubCartService{}
}

func (s *stubCartService) Get(ctx context.Context, userID uint) (*CartView, error) {
	return &CartView{Items: []CartItemView{}}, nil
}

func (s *stubCartService) Add(ctx context.Context, userID uint) (*StubNotice, error) {
	return &StubNotice{Message: cartComingSoon}, nil
}

func (s *stubCartService) UpdateItem(ctx context.Context, userID uint, itemID string) (*StubNotice, error) {
	return &StubNotice{Message: cartComingSoon}, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID uint, itemID string) (*StubNotice, error) {
	return &StubNotice{Message: cartComingSoon}, nil
}

func (s *stubCartService) Clear(ctx context.Context, userID uint) (*StubNotice, error) {
	return &StubNotice{Message: cartComingSoon}, nil
}

func (s *stubCartService) Summary(ctx context.Context, userID uint) (*CartSummary, error) {
	return &CartSummary{ItemCount: 0, TotalAmount: 0}, nil
}
