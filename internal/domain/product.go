package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item that can be attached to orders.
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	Name      string          `gorm:"size:100;index;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // always > 0
	Stock     int             `gorm:"not null;default:0" json:"stock"`          // never negative
	CreatedAt time.Time       `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "crm_product"
}
