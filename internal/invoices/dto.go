package invoices

import (
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
)

// InvoiceDTO is the JSON shape returned by the invoices API.
type InvoiceDTO struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	VendorName    string    `json:"vendorName"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	FileName      *string   `json:"fileName,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toDTO(invoice models.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		VendorName:    invoice.VendorName,
		PurchaseDate:  invoice.PurchaseDate,
		FileName:      invoice.FileName,
		Notes:         invoice.Notes,
		CreatedAt:     invoice.CreatedAt,
	}
}

func toDTOs(invoices []models.Invoice) []InvoiceDTO {
	dtos := make([]InvoiceDTO, 0, len(invoices))
	for _, invoice := range invoices {
		dtos = append(dtos, toDTO(invoice))
	}
	return dtos
}
