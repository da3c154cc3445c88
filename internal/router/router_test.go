package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrimarket/internal/auth"
	"agrimarket/internal/cache"
	"agrimarket/internal/config"
	"agrimarket/internal/handler"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
	"agrimarket/internal/service"
)

// newTestServer wires the full HTTP surface over a throwaway sqlite store.
// The cache client is nil, which behaves as a permanent miss.
func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.User{}, &model.Crop{}))

	cfg := &config.Config{ServerPort: "0", JWTSecret: "test-secret"}

	userRepo := repository.NewUserRepository(gormDB)
	cropRepo := repository.NewCropRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	cropService := service.NewCropService(cropRepo, userRepo, (*cache.Client)(nil))

	e := echo.New()
	Register(
		e,
		cfg,
		jwtService,
		authService,
		handler.NewAuthHandler(authService),
		handler.NewCropHandler(cropService),
		handler.NewCartHandler(service.NewCartService()),
		handler.NewOrderHandler(service.NewOrderService()),
	)
	return e, gormDB
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func registerUser(t *testing.T, e *echo.Echo, name, email, userType string) string {
	t.Helper()
	rec, body := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret1",
		"userType": userType,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return body["token"].(string)
}

func createCrop(t *testing.T, e *echo.Echo, token string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	rec, body := doJSON(t, e, http.MethodPost, "/api/crops", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	return body["data"].(map[string]interface{})
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRegister_Validation(t *testing.T) {
	e, gormDB := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at least 6 characters", body["message"])

	rec, body = doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "asha@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide all required fields", body["message"])

	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count, "rejected registrations must create no user record")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e, gormDB := newTestServer(t)

	registerUser(t, e, "Asha", "asha@x.com", "farmer")

	rec, body := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Imposter", "email": "asha@x.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists with this email", body["message"])

	var count int64
	require.NoError(t, gormDB.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogin_Flow(t *testing.T) {
	e, _ := newTestServer(t)
	registerUser(t, e, "Asha", "asha@x.com", "farmer")

	rec, body := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "asha@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := body["token"].(string)
	loginID := body["user"].(map[string]interface{})["id"]

	rec, body = doJSON(t, e, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	me := body["user"].(map[string]interface{})
	assert.Equal(t, loginID, me["id"])
	assert.Equal(t, "asha@x.com", me["email"])
	assert.Equal(t, "farmer", me["userType"])

	// Wrong password and unknown email read identically
	rec, wrongPass := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "asha@x.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, unknown := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPass["message"], unknown["message"])
	assert.Equal(t, "Invalid email or password", unknown["message"])
}

func TestAuth_TokenErrors(t *testing.T) {
	e, gormDB := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, no token", body["message"])

	rec, body = doJSON(t, e, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, token failed", body["message"])

	// A valid token whose user row has vanished resolves to 404
	token := registerUser(t, e, "Ghost", "ghost@x.com", "consumer")
	require.NoError(t, gormDB.Where("email = ?", "ghost@x.com").Delete(&model.User{}).Error)

	rec, body = doJSON(t, e, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", body["message"])
}

func TestProfile_Update(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "Asha", "asha@x.com", "farmer")

	rec, body := doJSON(t, e, http.MethodPut, "/api/auth/profile", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No fields to update", body["message"])

	rec, body = doJSON(t, e, http.MethodPut, "/api/auth/profile", token, map[string]string{
		"phone": "555-0101", "address": "Pune",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "555-0101", user["phone"])
	assert.Equal(t, "Pune", user["address"])
	assert.Equal(t, "Asha", user["name"])
}

func TestMarketplace_RegisterLoginCreateList(t *testing.T) {
	e, _ := newTestServer(t)

	registerUser(t, e, "Asha", "asha@x.com", "farmer")

	rec, body := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "asha@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := body["token"].(string)

	created := createCrop(t, e, token, map[string]interface{}{
		"crop": "Wheat", "quantity": 100, "location": "Pune", "price": 25,
	})
	assert.Equal(t, "Asha", created["farmerName"])
	assert.Equal(t, true, created["available"])
	assert.Equal(t, "other", created["category"])
	assert.Equal(t, "kg", created["unit"])
	assert.Equal(t, "", created["description"])

	rec, body = doJSON(t, e, http.MethodGet, "/api/crops", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	data := body["data"].([]interface{})
	crop := data[0].(map[string]interface{})
	assert.Equal(t, "Wheat", crop["crop"])
	assert.Equal(t, "Asha", crop["farmerName"])
	assert.Equal(t, true, crop["available"])
}

func TestCrop_Validation(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "Asha", "asha@x.com", "farmer")

	rec, body := doJSON(t, e, http.MethodPost, "/api/crops", token, map[string]interface{}{
		"crop": "Wheat", "quantity": 100,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide crop, quantity, location, and price", body["message"])
}

func TestCrop_NotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/api/crops/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Crop not found", body["message"])

	rec, body = doJSON(t, e, http.MethodGet, "/api/crops/not-a-number", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Crop not found", body["message"])
}

func TestCrop_GetIsIdempotent(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "Asha", "asha@x.com", "farmer")
	created := createCrop(t, e, token, map[string]interface{}{
		"crop": "Wheat", "quantity": 100, "location": "Pune", "price": 25,
	})
	path := fmt.Sprintf("/api/crops/%v", created["id"])

	rec1, first := doJSON(t, e, http.MethodGet, path, "", nil)
	rec2, second := doJSON(t, e, http.MethodGet, path, "", nil)

	assert.Equal(t, http.StatusOK, rec1.Code)
	assert.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, first["data"], second["data"])
}

func TestCrop_OwnershipEnforced(t *testing.T) {
	e, _ := newTestServer(t)
	farmerToken := registerUser(t, e, "Asha", "asha@x.com", "farmer")
	consumerToken := registerUser(t, e, "Bala", "bala@x.com", "consumer")

	created := createCrop(t, e, farmerToken, map[string]interface{}{
		"crop": "Wheat", "quantity": 100, "location": "Pune", "price": 25,
	})
	path := fmt.Sprintf("/api/crops/%v", created["id"])

	rec, body := doJSON(t, e, http.MethodPut, path, consumerToken, map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to update this crop", body["message"])

	rec, body = doJSON(t, e, http.MethodDelete, path, consumerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to delete this crop", body["message"])

	rec, body = doJSON(t, e, http.MethodPut, path, farmerToken, map[string]interface{}{"price": 30})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Crop updated successfully", body["message"])
	assert.EqualValues(t, 30, body["data"].(map[string]interface{})["price"])
	// Owner survives the update untouched
	assert.EqualValues(t, created["userId"], body["data"].(map[string]interface{})["userId"])

	rec, body = doJSON(t, e, http.MethodDelete, path, farmerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Crop deleted successfully", body["message"])

	rec, _ = doJSON(t, e, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCrop_ListAvailableFiltersAndMyCropsDoesNot(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "Asha", "asha@x.com", "farmer")

	createCrop(t, e, token, map[string]interface{}{
		"crop": "Wheat", "quantity": 100, "location": "Pune", "price": 25,
	})
	second := createCrop(t, e, token, map[string]interface{}{
		"crop": "Rice", "quantity": 50, "location": "Pune", "price": 40,
	})

	rec, _ := doJSON(t, e, http.MethodPut, fmt.Sprintf("/api/crops/%v", second["id"]), token,
		map[string]interface{}{"available": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doJSON(t, e, http.MethodGet, "/api/crops", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	for _, item := range body["data"].([]interface{}) {
		assert.Equal(t, true, item.(map[string]interface{})["available"])
	}

	rec, body = doJSON(t, e, http.MethodGet, "/api/crops/my-crops", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["count"])
}

func TestCartAndOrder_Stubs(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "Bala", "bala@x.com", "consumer")

	rec, body := doJSON(t, e, http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["data"].(map[string]interface{})["items"])

	for _, call := range []struct{ method, path string }{
		{http.MethodPost, "/api/cart"},
		{http.MethodPut, "/api/cart/1"},
		{http.MethodDelete, "/api/cart/1"},
		{http.MethodDelete, "/api/cart"},
	} {
		rec, body = doJSON(t, e, call.method, call.path, token, map[string]interface{}{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Cart functionality coming soon", body["message"])
	}

	rec, body = doJSON(t, e, http.MethodGet, "/api/cart/summary", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	summary := body["data"].(map[string]interface{})
	assert.EqualValues(t, 0, summary["itemCount"])
	assert.EqualValues(t, 0, summary["totalAmount"])

	rec, body = doJSON(t, e, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["data"])

	for _, call := range []struct{ method, path string }{
		{http.MethodPost, "/api/orders"},
		{http.MethodGet, "/api/orders/1"},
		{http.MethodPut, "/api/orders/1/status"},
		{http.MethodPut, "/api/orders/1/payment"},
	} {
		rec, body = doJSON(t, e, call.method, call.path, token, map[string]interface{}{})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Order functionality coming soon", body["message"])
	}

	rec, body = doJSON(t, e, http.MethodGet, "/api/orders/stats", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	stats := body["data"].(map[string]interface{})
	assert.EqualValues(t, 0, stats["totalOrders"])
	assert.EqualValues(t, 0, stats["totalRevenue"])

	// Stub mutations leave no trace
	rec, body = doJSON(t, e, http.MethodGet, "/api/cart", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["data"].(map[string]interface{})["items"])
}

func TestCrop_ImageStubs(t *testing.T) {
	e, _ := newTestServer(t)
	token := registerUser(t, e, "Asha", "asha@x.com", "farmer")
	created := createCrop(t, e, token, map[string]interface{}{
		"crop": "Wheat", "quantity": 100, "location": "Pune", "price": 25,
	})

	rec, body := doJSON(t, e, http.MethodPost, fmt.Sprintf("/api/crops/%v/images", created["id"]), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Image upload not implemented yet", body["message"])

	rec, body = doJSON(t, e, http.MethodDelete, fmt.Sprintf("/api/crops/%v/images/0", created["id"]), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Image delete not implemented yet", body["message"])
}

func TestRequireUserType(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireUserType(model.UserTypeFarmer)

	run := func(user *model.AuthUser) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(handler.CurrentUserKey, user)
		}
		err := mw(next)(c)
		if err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	assert.Equal(t, http.StatusOK, run(&model.AuthUser{ID: 1, UserType: "farmer"}).Code)
	assert.Equal(t, http.StatusForbidden, run(&model.AuthUser{ID: 2, UserType: "consumer"}).Code)
	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
}
