// Package audit records a trail of admin-gated mutations.
package audit

import (
	"log"

	"gorm.io/gorm"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// Service writes audit events. Recording is best-effort: a failed write is
// logged and never fails the mutation it describes.
type Service struct {
	db *gorm.DB
}

// NewService creates a new audit service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.db.Create(event).Error
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.Log(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogMutation records the outcome of an admin-gated write.
func (s *Service) LogMutation(eventType entities.AuditEventType, entityType string, entityID *uint, description, ip string, err error) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Status:      entities.AuditStatusSuccess,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: truncate(description, 500),
		IPAddress:   ip,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
	}
	s.LogAsync(event)
}

// RecentEvents returns the newest events up to limit.
func (s *Service) RecentEvents(limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []entities.AuditEvent
	err := s.db.Order("id DESC").Limit(limit).Find(&events).Error
	return events, err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
