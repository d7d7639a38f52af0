package handler

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finquote/quoting-portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// --- Products ---

type createProductRequest struct {
	Name        string           `json:"name"        validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"required" swaggertype:"number"`
	Category    string           `json:"category"`
}

// updateProductRequest is a partial update: omitted fields are left unchanged.
type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Category    *string          `json:"category"`
}

func (r updateProductRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
	}
}

type productResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" swaggertype:"number"`
	Category    string      `json:"category"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// --- Quote requests ---

type submitQuoteRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
	Message   string `json:"message"`
}

type submitQuoteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type updateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type quoteResponse struct {
	ID           string      `json:"id"`
	ClientID     string      `json:"client_id"`
	ProductID    string      `json:"product_id"`
	Quantity     int         `json:"quantity"`
	Message      string      `json:"message"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	ClientName   string      `json:"client_name"`
	ClientEmail  string      `json:"client_email"`
	ProductName  string      `json:"product_name"`
	ProductPrice json.Number `json:"product_price" swaggertype:"number"`
}

func toQuoteResponse(v *domain.QuoteView) quoteResponse {
	return quoteResponse{
		ID:           v.ID,
		ClientID:     v.ClientID,
		ProductID:    v.ProductID,
		Quantity:     v.Quantity,
		Message:      v.Message,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
		ClientName:   v.ClientName,
		ClientEmail:  v.ClientEmail,
		ProductName:  v.ProductName,
		ProductPrice: money(v.ProductPrice),
	}
}
