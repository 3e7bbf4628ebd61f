package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/altamira-labs/stocktrack-backend/internal/assignments"
	"github.com/altamira-labs/stocktrack-backend/internal/notifications"
	"github.com/altamira-labs/stocktrack-backend/pkg/enums"
	"github.com/altamira-labs/stocktrack-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

const (
	reminderWindow = 7 * 24 * time.Hour
	reminderAge    = 30 * 24 * time.Hour
)

// Only assignments of pricier items are worth chasing.
var reminderPriceFloor = decimal.NewFromInt(100)

type agedAssignmentLister interface {
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]assignments.AssignmentWithItem, error)
}

// AssignmentReminderJobParams configure the assignment follow-up check.
type AssignmentReminderJobParams struct {
	Logger        *logger.Logger
	Assignments   agedAssignmentLister
	Notifications notificationPublisher
}

// NewAssignmentReminderJob constructs the assignment-reminder scan job.
func NewAssignmentReminderJob(params AssignmentReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Assignments == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications service required")
	}
	return &assignmentReminderJob{
		logg:          params.Logger,
		assignments:   params.Assignments,
		notifications: params.Notifications,
		now:           time.Now,
	}, nil
}

type assignmentReminderJob struct {
	logg          *logger.Logger
	assignments   agedAssignmentLister
	notifications notificationPublisher
	now           func() time.Time
}

func (j *assignmentReminderJob) Name() string { return "assignment-reminder" }

func (j *assignmentReminderJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-reminderAge)
	rows, err := j.assignments.ListOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query aged assignments: %w", err)
	}

	var errs []error
	created := 0
	for _, assignment := range rows {
		if !assignment.UnitPrice.GreaterThan(reminderPriceFloor) {
			continue
		}
		days := int(j.now().UTC().Sub(assignment.AssignmentDate).Hours() / 24)
		emitted, err := j.notifications.Publish(ctx, notifications.PublishInput{
			Type:  enums.NotificationTypeAssignmentReminder,
			Title: fmt.Sprintf("Assignment check-in: %s", assignment.ItemName),
			Message: fmt.Sprintf("%d× %s assigned to %s for %d days",
				assignment.Quantity, assignment.ItemName, assignment.AssignedTo, days),
			Priority:    enums.NotificationPriorityLow,
			RelatedID:   assignment.ID,
			DedupWindow: reminderWindow,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("assignment %s: %w", assignment.ID, err))
			continue
		}
		if emitted {
			created++
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"scanned": len(rows),
		"created": created,
	})
	j.logg.Info(logCtx, "assignment reminder scan complete")
	return multierr.Combine(errs...)
}
