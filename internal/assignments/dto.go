package assignments

import (
	"time"

	"github.com/altamira-labs/stocktrack-backend/pkg/db/models"
	"github.com/google/uuid"
)

// AssignmentDTO is the JSON shape returned by the assignments API.
type AssignmentDTO struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"itemId"`
	Quantity       int       `json:"quantity"`
	AssignedTo     string    `json:"assignedTo"`
	Reason         *string   `json:"reason,omitempty"`
	AssignmentDate time.Time `json:"assignmentDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// RecentAssignmentDTO annotates an assignment with its item for the dashboard
// activity feed.
type RecentAssignmentDTO struct {
	AssignmentDTO
	ItemName     string `json:"itemName"`
	ItemCategory string `json:"itemCategory"`
}

func toDTO(assignment models.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:             assignment.ID,
		ItemID:         assignment.ItemID,
		Quantity:       assignment.Quantity,
		AssignedTo:     assignment.AssignedTo,
		Reason:         assignment.Reason,
		AssignmentDate: assignment.AssignmentDate,
		CreatedAt:      assignment.CreatedAt,
	}
}

func toDTOs(rows []models.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, toDTO(row))
	}
	return dtos
}

func toRecentDTOs(rows []AssignmentWithItem) []RecentAssignmentDTO {
	dtos := make([]RecentAssignmentDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, RecentAssignmentDTO{
			AssignmentDTO: AssignmentDTO{
				ID:             row.ID,
				ItemID:         row.ItemID,
				Quantity:       row.Quantity,
				AssignedTo:     row.AssignedTo,
				Reason:         row.Reason,
				AssignmentDate: row.AssignmentDate,
				CreatedAt:      row.CreatedAt,
			},
			ItemName:     row.ItemName,
			ItemCategory: row.ItemCategory,
		})
	}
	return dtos
}
