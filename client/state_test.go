package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wheat() Crop {
	return Crop{ID: 1, Crop: "Wheat", FarmerName: "Asha", Quantity: 3, Price: 25, Available: true}
}

func newStoreWithUser(t *testing.T, storage Storage, userID uint) *MarketStore {
	t.Helper()
	s := NewMarketStore(nil, storage)
	require.NoError(t, s.SetUser(&User{ID: userID, Name: "Bala", UserType: "consumer"}))
	return s
}

func TestMarketStore_AddToCart(t *testing.T) {
	s := newStoreWithUser(t, NewMemoryStorage(), 1)
	crop := wheat()

	s.AddToCart(crop, 2)
	items := s.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 2.0, items[0].Quantity)

	// Same crop merges into the existing entry
	s.AddToCart(crop, 1)
	items = s.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, 3.0, items[0].Quantity)

	// Beyond the listed quantity is ignored
	s.AddToCart(crop, 1)
	assert.Equal(t, 3.0, s.CartItems()[0].Quantity)

	s.AddToCart(Crop{ID: 2, Crop: "Rice", Quantity: 1, Price: 40}, 5)
	assert.Len(t, s.CartItems(), 1)
}

func TestMarketStore_UpdateCartQuantity(t *testing.T) {
	s := newStoreWithUser(t, NewMemoryStorage(), 1)
	s.AddToCart(wheat(), 2)

	s.UpdateCartQuantity(1, 3)
	assert.Equal(t, 3.0, s.CartItems()[0].Quantity)

	// Above the listed quantity is ignored
	s.UpdateCartQuantity(1, 10)
	assert.Equal(t, 3.0, s.CartItems()[0].Quantity)

	// Zero removes the entry
	s.UpdateCartQuantity(1, 0)
	assert.Empty(t, s.CartItems())
}

func TestMarketStore_CartTotals(t *testing.T) {
	s := newStoreWithUser(t, NewMemoryStorage(), 1)
	s.AddToCart(wheat(), 2)
	s.AddToCart(Crop{ID: 2, Crop: "Rice", Quantity: 10, Price: 40}, 1)

	assert.Equal(t, 2*25.0+40.0, s.CartTotal())
	assert.Equal(t, 3.0, s.CartItemCount())

	s.ClearCart()
	assert.Zero(t, s.CartTotal())
	assert.Zero(t, s.CartItemCount())
}

func TestMarketStore_PurchaseCropDecrementsLocally(t *testing.T) {
	storage := NewMemoryStorage()
	s := newStoreWithUser(t, storage, 1)
	s.mu.Lock()
	s.available = []Crop{{ID: 1, Crop: "Wheat", Quantity: 2, Price: 25}}
	s.mu.Unlock()

	record := s.PurchaseCrop(s.AvailableCrops()[0])
	assert.Equal(t, "Wheat", record.Crop.Crop)
	assert.NotZero(t, record.PurchaseID)
	assert.Equal(t, 1.0, s.AvailableCrops()[0].Quantity)

	// Second purchase drains the listing and drops it from the cache
	s.PurchaseCrop(s.AvailableCrops()[0])
	assert.Empty(t, s.AvailableCrops())
	assert.Len(t, s.Purchases(), 2)
}

func TestMarketStore_PurchaseCartItemsClampsAndClears(t *testing.T) {
	s := newStoreWithUser(t, NewMemoryStorage(), 1)
	crop := wheat()
	s.mu.Lock()
	s.available = []Crop{crop}
	s.mu.Unlock()

	// Cart asks for more than the cache holds; purchases clamp to 3
	s.AddToCart(crop, 3)
	s.mu.Lock()
	s.cart[0].Quantity = 5
	s.mu.Unlock()

	s.PurchaseCartItems()

	assert.Len(t, s.Purchases(), 3)
	assert.Empty(t, s.AvailableCrops())
	assert.Empty(t, s.CartItems())
}

func TestMarketStore_StatePersistsAcrossSessions(t *testing.T) {
	storage := NewMemoryStorage()

	first := newStoreWithUser(t, storage, 1)
	first.AddToCart(wheat(), 2)
	first.PurchaseCrop(wheat())

	// A fresh store over the same storage sees the same user state
	second := newStoreWithUser(t, storage, 1)
	require.Len(t, second.CartItems(), 1)
	assert.Equal(t, 2.0, second.CartItems()[0].Quantity)
	assert.Len(t, second.Purchases(), 1)

	// A different user starts clean
	other := newStoreWithUser(t, storage, 2)
	assert.Empty(t, other.CartItems())
	assert.Empty(t, other.Purchases())
}

func TestMarketStore_SetUserNilClearsSession(t *testing.T) {
	s := newStoreWithUser(t, NewMemoryStorage(), 1)
	s.AddToCart(wheat(), 1)

	require.NoError(t, s.SetUser(nil))
	assert.Empty(t, s.CartItems())
	assert.Empty(t, s.Purchases())
	assert.Empty(t, s.MyCrops())
}

func TestFileStorage_RoundTrip(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	missing, err := storage.Get("agrimarket_cart_1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, storage.Set("agrimarket_cart_1", []byte(`[{"quantity":2}]`)))
	data, err := storage.Get("agrimarket_cart_1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"quantity":2}]`, string(data))

	require.NoError(t, storage.Remove("agrimarket_cart_1"))
	data, err = storage.Get("agrimarket_cart_1")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Removing a missing key is not an error
	require.NoError(t, storage.Remove("agrimarket_cart_1"))
}
