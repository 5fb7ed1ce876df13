package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Audit actions recorded for appointments.
const (
	AuditActionCreate        = "appointment.create"
	AuditActionUpdateStatus  = "appointment.update_status"
	AuditActionUpdateDetails = "appointment.update_details"
	AuditActionDelete        = "appointment.delete"
)

// ActorResolver returns the id of the caller behind ctx, if any.
type ActorResolver func(ctx context.Context) (string, bool)

// AuditService emits one structured log entry per mutation. Entries are not
// persisted; log shipping is expected to collect them.
type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{})
}

type auditService struct {
	log   *logrus.Logger
	actor ActorResolver
}

func NewAuditService(log *logrus.Logger, actor ActorResolver) AuditService {
	return &auditService{
		log:   log,
		actor: actor,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) {
	s.write(ctx, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.write(ctx, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) {
	s.write(ctx, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, action, entityName, entityID string, oldValue, newValue interface{}) {
	fields := logrus.Fields{
		"audit":     true,
		"action":    action,
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	}
	if s.actor != nil {
		if userID, ok := s.actor(ctx); ok {
			fields["user_id"] = userID
		}
	}
	s.log.WithFields(fields).Info("audit")
}
