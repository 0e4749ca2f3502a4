package models

import "time"

// Payment methods accepted on a sale.
const (
	PaymentCash = "Cash"
	PaymentCard = "Card"
	PaymentQR   = "QR"
)

// Sale is a sales document. TotalAmount is maintained by a database trigger
// whenever sale items change; this layer always writes it as 0.
type Sale struct {
	SaleID        uint       `gorm:"column:sale_id;primaryKey;autoIncrement" json:"sale_id"`
	SaleDatetime  time.Time  `gorm:"column:sale_datetime;not null" json:"sale_datetime"`
	TotalAmount   float64    `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string     `gorm:"size:10;not null" json:"payment_method"`
	Notes         *string    `gorm:"size:255" json:"notes"`
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Sale) TableName() string { return "sale" }

type SaleItem struct {
	SaleItemID uint    `gorm:"column:sale_item_id;primaryKey;autoIncrement" json:"sale_item_id"`
	SaleID     uint    `gorm:"column:sale_id;not null;index" json:"sale_id"`
	ProductID  uint    `gorm:"column:product_id;not null" json:"product_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Discount   float64 `gorm:"type:decimal(10,2);not null;default:0" json:"discount"`

	Movements []InventoryMovement `gorm:"foreignKey:SaleItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SaleItem) TableName() string { return "sale_item" }
