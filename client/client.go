// Package client is a Go client for the AgriMarket REST API plus the
// session-scoped marketplace state the browser frontend keeps: an
// available-crop cache, the user's own listings, a local-only cart, and a
// local-only purchase history.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User mirrors the API's user payload.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	UserType     string    `json:"userType"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Crop mirrors the API's crop payload.
type Crop struct {
	ID          uint      `json:"id"`
	FarmerName  string    `json:"farmerName"`
	UserID      uint      `json:"userId"`
	Crop        string    `json:"crop"`
	Quantity    float64   `json:"quantity"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Available   bool      `json:"available"`
	Unit        string    `json:"unit"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Session is the result of a successful register or login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CropInput is the payload for creating a listing.
type CropInput struct {
	Crop        string   `json:"crop"`
	Quantity    float64  `json:"quantity"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// ProfileInput carries optional profile fields; empty values are omitted.
type ProfileInput struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	UserType string `json:"userType,omitempty"`
}

// APIError is a non-2xx response decoded into its {message} body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a thin wrapper over the HTTP API. It is safe for concurrent use
// once the token is set.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:3001/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope is the common response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Token   string          `json:"token"`
	User    json.RawMessage `json:"user"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		apiErr := &APIError{Status: res.StatusCode, Message: "An error occurred"}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Message != "" {
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, name, email, password, userType string) (*Session, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"userType": userType,
	})
	if err != nil {
		return nil, err
	}
	return c.session(env)
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return c.session(env)
}

func (c *Client) session(env *envelope) (*Session, error) {
	var user User
	if err := json.Unmarshal(env.User, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	c.token = env.Token
	return &Session{Token: env.Token, User: user}, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(env.User, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies the supplied profile fields.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (*User, error) {
	env, err := c.do(ctx, http.MethodPut, "/auth/profile", in)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(env.User, &user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// Crops lists all available crops.
func (c *Client) Crops(ctx context.Context) ([]Crop, error) {
	env, err := c.do(ctx, http.MethodGet, "/crops", nil)
	if err != nil {
		return nil, err
	}
	var crops []Crop
	if err := json.Unmarshal(env.Data, &crops); err != nil {
		return nil, fmt.Errorf("decode crops: %w", err)
	}
	return crops, nil
}

// Crop fetches a single listing by id.
func (c *Client) Crop(ctx context.Context, id uint) (*Crop, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/crops/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var crop Crop
	if err := json.Unmarshal(env.Data, &crop); err != nil {
		return nil, fmt.Errorf("decode crop: %w", err)
	}
	return &crop, nil
}

// CreateCrop creates a listing owned by the authenticated user.
func (c *Client) CreateCrop(ctx context.Context, in CropInput) (*Crop, error) {
	env, err := c.do(ctx, http.MethodPost, "/crops", in)
	if err != nil {
		return nil, err
	}
	var crop Crop
	if err := json.Unmarshal(env.Data, &crop); err != nil {
		return nil, fmt.Errorf("decode crop: %w", err)
	}
	return &crop, nil
}

// UpdateCrop applies the supplied fields to an owned listing.
func (c *Client) UpdateCrop(ctx context.Context, id uint, fields map[string]interface{}) (*Crop, error) {
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/crops/%d", id), fields)
	if err != nil {
		return nil, err
	}
	var crop Crop
	if err := json.Unmarshal(env.Data, &crop); err != nil {
		return nil, fmt.Errorf("decode crop: %w", err)
	}
	return &crop, nil
}

// DeleteCrop removes an owned listing.
func (c *Client) DeleteCrop(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/crops/%d", id), nil)
	return err
}

// MyCrops lists the authenticated user's listings.
func (c *Client) MyCrops(ctx context.Context) ([]Crop, error) {
	env, err := c.do(ctx, http.MethodGet, "/crops/my-crops", nil)
	if err != nil {
		return nil, err
	}
	var crops []Crop
	if err := json.Unmarshal(env.Data, &crops); err != nil {
		return nil, fmt.Errorf("decode crops: %w", err)
	}
	return crops, nil
}
