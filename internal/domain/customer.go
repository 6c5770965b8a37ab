package domain

import "time"

// Customer is a CRM contact. Email is unique across all customers.
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id,string" csv:"id"`
	Name      string    `gorm:"size:100;index;not null" json:"name" csv:"name"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email" csv:"email"`
	Phone     string    `gorm:"size:100" json:"phone" csv:"phone"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at" csv:"created_at"`
	UpdatedAt time.Time `json:"updated_at" csv:"-"`
}

// TableName Specify table name
func (Customer) TableName() string {
	return "crm_customer"
}
