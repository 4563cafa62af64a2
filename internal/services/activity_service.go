package services

import (
	"context"

	"staffing-backend/internal/auth"
	"staffing-backend/internal/models"
	"staffing-backend/pkg/logger"
)

// ActivityService writes the audit trail. Failures are logged and never fail the caller.
type ActivityService struct {
	store ActivityLogStore
	log   logger.Logger
}

func NewActivityService(store ActivityLogStore, log logger.Logger) *ActivityService {
	return &ActivityService{store: store, log: log}
}

func (s *ActivityService) Record(ctx context.Context, session auth.Session, action, targetType, targetID, description, oldValue, newValue string) {
	entry := &models.ActivityLog{
		ActorID:     session.UserID,
		ActorRole:   session.Role,
		ActionType:  action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	if err := s.store.Create(ctx, entry); err != nil {
		s.log.InternalError("failed to write activity log", err, "action", action, "target_id", targetID)
	}
}

// List is restricted to admins.
func (s *ActivityService) List(ctx context.Context, session auth.Session, filter models.ActivityLogFilter) ([]*models.ActivityLog, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.store.List(ctx, filter)
}
