package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProductFields holds the client-writable columns of a product.
// Price is capped below 10^18 so it fits decimal(20,2).
type ProductFields struct {
	Name       string          `gorm:"column:nombre;size:50;not null" json:"nombre" validate:"required,min=1,max=50"`
	CategoryID uint            `gorm:"column:categoria_id;not null;index" json:"categoria_id"`
	Price      decimal.Decimal `gorm:"column:precio;type:decimal(20,2);not null" json:"precio" validate:"decimal_gt=0,decimal_lt=1e18"`
	Stock      int             `gorm:"column:stock;not null" json:"stock" validate:"gte=0"`
	URL        string          `gorm:"column:url;size:200;not null" json:"url" validate:"required,min=1,max=200"`

	absent absentFields
}

// absentFields marks required members that a decoded body left out.
type absentFields uint8

const (
	absentCategoryID absentFields = 1 << iota
	absentPrice
	absentStock
)

// UnmarshalJSON decodes a product body. categoria_id, precio and stock must
// be present. A categoria_id that is zero or negative decodes to 0, which
// never names a category.
func (f *ProductFields) UnmarshalJSON(data []byte) error {
	var body struct {
		Name       string           `json:"nombre"`
		CategoryID *int64           `json:"categoria_id"`
		Price      *decimal.Decimal `json:"precio"`
		Stock      *int             `json:"stock"`
		URL        string           `json:"url"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	*f = ProductFields{Name: body.Name, URL: body.URL}
	switch {
	case body.CategoryID == nil:
		f.absent |= absentCategoryID
	case *body.CategoryID > 0:
		f.CategoryID = uint(*body.CategoryID)
	}
	if body.Price == nil {
		f.absent |= absentPrice
	} else {
		f.Price = *body.Price
	}
	if body.Stock == nil {
		f.absent |= absentStock
	} else {
		f.Stock = *body.Stock
	}
	return nil
}

// Product represents a sellable item that belongs to exactly one category.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ProductFields
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (p *Product) TableName() string {
	return "producto"
}
