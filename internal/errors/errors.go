package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Domain errors. Messages double as the wire-level {message} bodies, so they
// keep the exact phrasing the API contract promises.
var (
	// ErrMissingFields is returned when a registration is missing required input.
	ErrMissingFields = errors.New("Please provide all required fields")
	// ErrPasswordLength is returned when a registration password is under 6 characters.
	ErrPasswordLength = errors.New("Password must be at least 6 characters")
	// ErrMissingCredentials is returned when a login omits email or password.
	ErrMissingCredentials = errors.New("Please provide email and password")
	// ErrEmailTaken is returned when registering an email that is already present.
	ErrEmailTaken = errors.New("User already exists with this email")
	// ErrInvalidCredentials is returned on login failure. The message is kept
	// identical for unknown email and wrong password to avoid user enumeration.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrUserNotFound is returned when a user record no longer exists.
	ErrUserNotFound = errors.New("User not found")
	// ErrNoFields is returned when a partial update carries no fields.
	ErrNoFields = errors.New("No fields to update")
	// ErrMissingCropFields is returned when a crop listing is missing required input.
	ErrMissingCropFields = errors.New("Please provide crop, quantity, location, and price")
	// ErrCropNotFound is returned when a crop listing does not exist.
	ErrCropNotFound = errors.New("Crop not found")
	// ErrNotCropOwner is returned when a user mutates a crop they do not own.
	// Handlers pick the operation-specific message for the response body.
	ErrNotCropOwner = errors.New("not the crop owner")
)

// Response is the JSON body sent for every failed request.
type Response struct {
	Message string `json:"message"`
}

// MapError converts a domain error to the echo HTTP error the handlers
// return. Unknown errors become an opaque 500 so backing-store failures never
// leak detail to the client.
func MapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrPasswordLength),
		errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrNoFields),
		errors.Is(err, ErrMissingCropFields):
		return NewHTTP(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTP(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrCropNotFound):
		return NewHTTP(http.StatusNotFound, err.Error())
	default:
		return NewHTTP(http.StatusInternalServerError, "Server error")
	}
}

// NewHTTP builds an echo HTTP error with the standard {message} body.
func NewHTTP(status int, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, Response{Message: message})
}
