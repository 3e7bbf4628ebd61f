package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/altamira-labs/stocktrack-backend/api/responses"
	"github.com/altamira-labs/stocktrack-backend/api/validators"
	"github.com/altamira-labs/stocktrack-backend/internal/items"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type createItemBody struct {
	InvoiceID         uuid.UUID       `json:"invoiceId" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Category          string          `json:"category" validate:"required"`
	QuantityPurchased int             `json:"quantityPurchased" validate:"required,gt=0"`
	// Accepted but ignored; the server always starts availability at the
	// purchased quantity.
	QuantityAvailable *int            `json:"quantityAvailable"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
}

type createItemsBatchBody struct {
	Items []createItemBody `json:"items" validate:"required,min=1,dive"`
}

func (b createItemBody) toInput() items.CreateItemInput {
	return items.CreateItemInput{
		InvoiceID:         b.InvoiceID,
		Name:              b.Name,
		Category:          b.Category,
		QuantityPurchased: b.QuantityPurchased,
		UnitPrice:         b.UnitPrice,
	}
}

// CreateItems accepts either a single item object or {"items": [...]}.
func CreateItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body"))
			return
		}

		if _, isBatch := probe["items"]; isBatch {
			var body createItemsBatchBody
			if err := decodeAndValidate(raw, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			inputs := make([]items.CreateItemInput, 0, len(body.Items))
			for _, item := range body.Items {
				inputs = append(inputs, item.toInput())
			}
			dtos, err := svc.CreateBatch(r.Context(), inputs)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccessStatus(w, http.StatusCreated, dtos)
			return
		}

		var body createItemBody
		if err := decodeAndValidate(raw, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.Create(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListItems returns all items newest first.
func ListItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// ListItemsByInvoice returns the items purchased on one invoice.
func ListItemsByInvoice(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invoiceID, err := uuid.Parse(chi.URLParam(r, "invoiceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice id"))
			return
		}
		dtos, err := svc.ListByInvoice(r.Context(), invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// ListLowStockItems returns items running low, most depleted first.
func ListLowStockItems(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.ListLowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

func decodeAndValidate(raw []byte, dest any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return validators.ValidateStruct(dest)
}
