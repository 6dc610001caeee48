package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Image struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url" validate:"required,url"`
}

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Images        []Image         `json:"images"`
	Category      string          `json:"category"`
	Stock         int             `json:"stock"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=2,max=200"`
	Description   string          `json:"description" validate:"max=5000"`
	Price         decimal.Decimal `json:"price" validate:"required,gt=0"`
	OriginalPrice decimal.Decimal `json:"originalPrice" validate:"gte=0"`
	Images        []Image         `json:"images" validate:"omitempty,dive"`
	Category      string          `json:"category" validate:"required,max=100"`
	Stock         int             `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price         *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Images        []Image          `json:"images,omitempty" validate:"omitempty,dive"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Stock         *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
}
