package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment records handing a quantity of an item to a person. Rows are
// append-only; there is no edit or return path.
type Assignment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ItemID         uuid.UUID `gorm:"column:item_id;type:uuid;not null;index"`
	Quantity       int       `gorm:"column:quantity;not null"`
	AssignedTo     string    `gorm:"column:assigned_to;not null"`
	Reason         *string   `gorm:"column:reason"`
	AssignmentDate time.Time `gorm:"column:assignment_date;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
