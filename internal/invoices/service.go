package invoices

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db"
	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes invoice operations.
type Service interface {
	Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceDTO, error)
	List(ctx context.Context) ([]InvoiceDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
}

// CreateInvoiceInput holds the validated multipart payload.
type CreateInvoiceInput struct {
	InvoiceNumber string
	VendorName    string
	PurchaseDate  time.Time
	Notes         *string
	File          *FileUpload
}

// FileUpload carries the optional invoice document. The controller caps the
// read at the configured size before the service ever sees the bytes.
type FileUpload struct {
	Name string
	Data []byte
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedMIMETypes = []string{"application/pdf", "image/jpeg", "image/png"}

type blobStore interface {
	Save(ctx context.Context, fileName string, src io.Reader) (string, error)
	Remove(path string) error
}

type service struct {
	repo  Repository
	blobs blobStore
}

// NewService wires the invoice service dependencies.
func NewService(repo Repository, blobs blobStore) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoices repository required")
	}
	if blobs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "blob store required")
	}
	return &service{repo: repo, blobs: blobs}, nil
}

func (s *service) Create(ctx context.Context, input CreateInvoiceInput) (*InvoiceDTO, error) {
	number := strings.TrimSpace(input.InvoiceNumber)
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoiceNumber is required")
	}
	vendor := strings.TrimSpace(input.VendorName)
	if vendor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendorName is required")
	}
	if input.PurchaseDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchaseDate is required")
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		VendorName:    vendor,
		PurchaseDate:  input.PurchaseDate,
		Notes:         input.Notes,
	}

	if input.File != nil {
		if err := validateUpload(input.File); err != nil {
			return nil, err
		}
		path, err := s.blobs.Save(ctx, input.File.Name, bytes.NewReader(input.File.Data))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store invoice file")
		}
		name := filepath.Base(input.File.Name)
		invoice.FileName = &name
		invoice.FilePath = &path
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		if invoice.FilePath != nil {
			_ = s.blobs.Remove(*invoice.FilePath)
		}
		if db.IsUniqueViolation(err, "uq_invoices_invoice_number") || db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "invoice number already exists").
				WithDetails(map[string]any{"invoiceNumber": number})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create invoice")
	}

	dto := toDTO(*invoice)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]InvoiceDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list invoices")
	}
	return toDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id required")
	}
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoice")
	}
	dto := toDTO(*invoice)
	return &dto, nil
}

func validateUpload(file *FileUpload) error {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !allowedExtensions[ext] {
		return pkgerrors.New(pkgerrors.CodeValidation, "file type not allowed").
			WithDetails(map[string]any{"allowed": []string{"pdf", "jpg", "jpeg", "png"}})
	}
	if len(file.Data) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}

	detected := mimetype.Detect(file.Data)
	for _, allowed := range allowedMIMETypes {
		if detected.Is(allowed) {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "file content does not match an allowed type").
		WithDetails(map[string]any{"detected": detected.String()})
}
