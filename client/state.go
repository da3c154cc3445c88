package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// CartItem pairs a crop snapshot with a desired quantity. Carts live only in
// local storage, keyed by user id; the server's cart endpoints are stubs.
type CartItem struct {
	Crop     Crop    `json:"crop"`
	Quantity float64 `json:"quantity"`
}

// Purchase is a local-only record of a simulated purchase: a crop snapshot
// plus a timestamp and a local id. It is never sent to the server.
type Purchase struct {
	Crop         Crop      `json:"crop"`
	PurchaseID   int64     `json:"purchaseId"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

// MarketStore holds a session's marketplace state: the available-crop cache,
// the user's own listings, the cart, and the purchase history. Cart and
// purchases persist through Storage under keys scoped to the user id.
//
// Quantity changes made by PurchaseCrop are a display-only simulation. They
// are never written to the server and a later RefreshCrops will overwrite
// them with server truth.
type MarketStore struct {
	api     *Client
	storage Storage

	mu        sync.Mutex
	user      *User
	available []Crop
	mine      []Crop
	cart      []CartItem
	purchases []Purchase
}

// NewMarketStore creates a store over the given API client and storage.
// Both are injected; the store owns no globals.
func NewMarketStore(api *Client, storage Storage) *MarketStore {
	return &MarketStore{api: api, storage: storage}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("agrimarket_cart_%d", userID)
}

func purchasesKey(userID uint) string {
	return fmt.Sprintf("agrimarket_purchases_%d", userID)
}

// SetUser switches the session. Cart and purchase history for the new user
// are loaded from storage; a nil user clears all session state.
func (s *MarketStore) SetUser(user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.cart = nil
	s.purchases = nil
	s.mine = nil
	if user == nil {
		return nil
	}

	if data, err := s.storage.Get(cartKey(user.ID)); err != nil {
		return fmt.Errorf("load cart: %w", err)
	} else if data != nil {
		if err := json.Unmarshal(data, &s.cart); err != nil {
			s.cart = nil
		}
	}

	if data, err := s.storage.Get(purchasesKey(user.ID)); err != nil {
		return fmt.Errorf("load purchases: %w", err)
	} else if data != nil {
		if err := json.Unmarshal(data, &s.purchases); err != nil {
			s.purchases = nil
		}
	}
	return nil
}

// persist writes cart and purchases for the current user. Caller holds the lock.
func (s *MarketStore) persist() {
	if s.user == nil {
		return
	}
	if data, err := json.Marshal(s.cart); err == nil {
		_ = s.storage.Set(cartKey(s.user.ID), data)
	}
	if data, err := json.Marshal(s.purchases); err == nil {
		_ = s.storage.Set(purchasesKey(s.user.ID), data)
	}
}

// RefreshCrops refetches the available-crop cache from the listing service,
// replacing any locally simulated quantities.
func (s *MarketStore) RefreshCrops(ctx context.Context) error {
	crops, err := s.api.Crops(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.available = crops
	s.mu.Unlock()
	return nil
}

// RefreshMyCrops refetches the user's own listings.
func (s *MarketStore) RefreshMyCrops(ctx context.Context) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return nil
	}

	crops, err := s.api.MyCrops(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mine = crops
	s.mu.Unlock()
	return nil
}

// AvailableCrops returns a copy of the available-crop cache.
func (s *MarketStore) AvailableCrops() []Crop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Crop(nil), s.available...)
}

// MyCrops returns a copy of the user's own listing cache.
func (s *MarketStore) MyCrops() []Crop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Crop(nil), s.mine...)
}

// CartItems returns a copy of the cart.
func (s *MarketStore) CartItems() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartItem(nil), s.cart...)
}

// Purchases returns a copy of the purchase history.
func (s *MarketStore) Purchases() []Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Purchase(nil), s.purchases...)
}

// AddToCart adds quantity of a crop to the cart, capped at the crop's listed
// quantity. Requests beyond the cap are ignored.
func (s *MarketStore) AddToCart(crop Crop, quantity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.cart {
		if item.Crop.ID == crop.ID {
			if item.Quantity+quantity <= crop.Quantity {
				s.cart[i].Quantity += quantity
				s.persist()
			}
			return
		}
	}
	if quantity <= crop.Quantity {
		s.cart = append(s.cart, CartItem{Crop: crop, Quantity: quantity})
		s.persist()
	}
}

// UpdateCartQuantity sets a cart entry's quantity. Zero or negative removes
// the entry; amounts above the listed quantity are ignored.
func (s *MarketStore) UpdateCartQuantity(cropID uint, quantity float64) {
	if quantity <= 0 {
		s.RemoveFromCart(cropID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.cart {
		if item.Crop.ID == cropID && quantity <= item.Crop.Quantity {
			s.cart[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// RemoveFromCart drops a crop from the cart.
func (s *MarketStore) RemoveFromCart(cropID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0]
	for _, item := range s.cart {
		if item.Crop.ID != cropID {
			kept = append(kept, item)
		}
	}
	s.cart = kept
	s.persist()
}

// ClearCart empties the cart.
func (s *MarketStore) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persist()
}

// CartTotal sums price times quantity across the cart.
func (s *MarketStore) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.cart {
		total += item.Crop.Price * item.Quantity
	}
	return total
}

// CartItemCount sums quantities across the cart.
func (s *MarketStore) CartItemCount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0.0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// PurchaseCrop appends a purchase snapshot and decrements the matching crop's
// quantity by one in the local caches, dropping it once it reaches zero. This
// never contacts the server; quantities drift from server truth until the
// next refresh.
func (s *MarketStore) PurchaseCrop(crop Crop) Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := Purchase{
		Crop:         crop,
		PurchaseID:   time.Now().UnixMilli(),
		PurchaseDate: time.Now().UTC(),
	}
	s.purchases = append(s.purchases, record)

	s.available = decrementCrop(s.available, crop.ID)
	s.mine = decrementCrop(s.mine, crop.ID)

	s.persist()
	return record
}

// PurchaseCartItems simulates purchasing every cart entry, clamped to the
// cached quantity of each crop, then clears the cart.
func (s *MarketStore) PurchaseCartItems() {
	for _, item := range s.CartItems() {
		var inStore *Crop
		for _, c := range s.AvailableCrops() {
			if c.ID == item.Crop.ID {
				crop := c
				inStore = &crop
				break
			}
		}
		if inStore == nil {
			continue
		}
		n := item.Quantity
		if inStore.Quantity < n {
			n = inStore.Quantity
		}
		for i := 0.0; i < n; i++ {
			s.PurchaseCrop(*inStore)
		}
	}
	s.ClearCart()
}

func decrementCrop(crops []Crop, id uint) []Crop {
	kept := crops[:0]
	for _, c := range crops {
		if c.ID == id {
			c.Quantity--
		}
		if c.Quantity > 0 {
			kept = append(kept, c)
		}
	}
	return kept
}
