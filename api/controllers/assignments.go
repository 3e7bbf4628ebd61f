package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/altamira-labs/stocktrack-backend/api/responses"
	"github.com/altamira-labs/stocktrack-backend/api/validators"
	"github.com/altamira-labs/stocktrack-backend/internal/assignments"
	pkgerrors "github.com/altamira-labs/stocktrack-backend/pkg/errors"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
)

type createAssignmentBody struct {
	ItemID         uuid.UUID `json:"itemId" validate:"required"`
	Quantity       int       `json:"quantity" validate:"required,gt=0"`
	AssignedTo     string    `json:"assignedTo" validate:"required"`
	Reason         *string   `json:"reason"`
	AssignmentDate string    `json:"assignmentDate"`
}

// CreateAssignment hands stock to a person, decrementing the item's
// availability in the same transaction.
func CreateAssignment(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAssignmentBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := assignments.CreateAssignmentInput{
			ItemID:     body.ItemID,
			Quantity:   body.Quantity,
			AssignedTo: body.AssignedTo,
			Reason:     body.Reason,
		}
		if value := strings.TrimSpace(body.AssignmentDate); value != "" {
			parsed, err := parseAssignmentDate(value)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.AssignmentDate = parsed
		}

		dto, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListAssignments returns the full assignment history, newest first.
func ListAssignments(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

// RecentAssignments returns the latest assignments annotated with item info.
func RecentAssignments(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dtos, err := svc.Recent(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dtos)
	}
}

func parseAssignmentDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "assignmentDate must be RFC3339 or YYYY-MM-DD")
}
