package transport

import "github.com/Skotchmaster/sweet_shop/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type CreateSweetRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Category    string   `json:"category"    validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Quantity    *int     `json:"quantity"    validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

// UpdateSweetRequest distinguishes omitted fields from explicit nulls.
type UpdateSweetRequest struct {
	Name        Optional[string]  `json:"name"`
	Category    Optional[string]  `json:"category"`
	Price       Optional[float64] `json:"price"`
	Quantity    Optional[int]     `json:"quantity"`
	Description Optional[string]  `json:"description"`
	ImageURL    Optional[string]  `json:"imageUrl"`
}

func (r UpdateSweetRequest) Empty() bool {
	return !r.Name.Set && !r.Category.Set && !r.Price.Set &&
		!r.Quantity.Set && !r.Description.Set && !r.ImageURL.Set
}

type StockRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type SearchFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

type MessageResponse struct {
	Message string `json:"message"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SeedResponse struct {
	Message     string            `json:"message"`
	Credentials map[string]string `json:"credentials,omitempty"`
}
