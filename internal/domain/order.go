package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order groups an ordered set of products bought by a customer.
// CustomerID becomes nil when the customer is deleted.
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	CustomerID  *int64          `gorm:"index" json:"customer_id,string,omitempty"`
	Customer    *Customer       `gorm:"constraint:OnDelete:SET NULL;" json:"customer,omitempty"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE;" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"<-:create;index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "crm_order"
}

// ProductIDs returns the attached product ids in attachment order.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// OrderItem is the order/product association row. UnitPrice is the product
// price captured when the product was attached.
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false" json:"id,string"`
	OrderID   int64           `gorm:"uniqueIndex:idx_order_product;not null" json:"order_id,string"`
	ProductID int64           `gorm:"uniqueIndex:idx_order_product;index;not null" json:"product_id,string"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT;" json:"product,omitempty"`
	Position  int             `gorm:"not null;default:0" json:"position"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "crm_order_item"
}
