package items

import (
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is the JSON shape returned by the items API.
type ItemDTO struct {
	ID                uuid.UUID       `json:"id"`
	InvoiceID         uuid.UUID       `json:"invoiceId"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	QuantityPurchased int             `json:"quantityPurchased"`
	QuantityAvailable int             `json:"quantityAvailable"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func toDTO(item models.Item) ItemDTO {
	return ItemDTO{
		ID:                item.ID,
		InvoiceID:         item.InvoiceID,
		Name:              item.Name,
		Category:          item.Category,
		QuantityPurchased: item.QuantityPurchased,
		QuantityAvailable: item.QuantityAvailable,
		UnitPrice:         item.UnitPrice,
		CreatedAt:         item.CreatedAt,
	}
}

func toDTOs(items []models.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toDTO(item))
	}
	return dtos
}
