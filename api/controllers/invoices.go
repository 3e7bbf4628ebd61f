package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/altamira-labs/stocktrack-backend/api/responses"
	"github.com/altamira-labs/stocktrack-backend/internal/invoices"
	"github.com/altamira-labs/stocktrack-backend/pkg/config"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// multipart field budget beyond the file itself
const formOverheadBytes = 1 << 20

// CreateInvoice accepts the multipart invoice form with an optional document.
func CreateInvoice(svc invoices.Service, uploads config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxBytes := uploads.MaxBytes()
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+formOverheadBytes)

		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit").
					WithDetails(map[string]any{"maxMB": uploads.MaxMB}))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		purchaseDate, err := parseDateField(r.FormValue("purchaseDate"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := invoices.CreateInvoiceInput{
			InvoiceNumber: r.FormValue("invoiceNumber"),
			VendorName:    r.FormValue("vendorName"),
			PurchaseDate:  purchaseDate,
		}
		if notes := strings.TrimSpace(r.FormValue("notes")); notes != "" {
			input.Notes = &notes
		}

		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(io.LimitReader(file, maxBytes+1))
			if readErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, readErr, "read uploaded file"))
				return
			}
			if int64(len(data)) > maxBytes {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the upload size limit").
					WithDetails(map[string]any{"maxMB": uploads.MaxMB}))
				return
			}
			input.File = &invoices.FileUpload{Name: header.Filename, Data: data}
		} else if !errors.Is(err, http.ErrMissingFile) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file field"))
			return
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListInvoices returns all invoices ordered by purchase date.
func ListInvoices(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// GetInvoice returns a single invoice by id.
func GetInvoice(svc invoices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "invoiceId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice id"))
			return
		}
		dto, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func parseDateField(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "purchaseDate is required")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "purchaseDate must be RFC3339 or YYYY-MM-DD")
}
