package models

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is a vendor invoice that inventory items are purchased against.
// FileName/FilePath point at the uploaded document on the local blob store.
type Invoice struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	InvoiceNumber string     `gorm:"column:invoice_number;not null;uniqueIndex:uq_invoices_invoice_number"`
	VendorName    string     `gorm:"column:vendor_name;not null"`
	PurchaseDate  time.Time  `gorm:"column:purchase_date;not null"`
	FileName      *string    `gorm:"column:file_name"`
	FilePath      *string    `gorm:"column:file_path"`
	Notes         *string    `gorm:"column:notes"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
