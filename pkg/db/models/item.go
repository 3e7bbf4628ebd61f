package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a purchasable inventory unit tied to one invoice.
// QuantityPurchased is fixed at creation; QuantityAvailable only ever moves
// down through assignment creation and stays within [0, QuantityPurchased].
type Item struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceID         uuid.UUID       `gorm:"column:invoice_id;type:uuid;not null;index"`
	Name              string          `gorm:"column:name;not null"`
	Category          string          `gorm:"column:category;not null"`
	QuantityPurchased int             `gorm:"column:quantity_purchased;not null"`
	QuantityAvailable int             `gorm:"column:quantity_available;not null"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
