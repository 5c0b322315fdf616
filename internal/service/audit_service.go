package service

import (
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// dedupWindow suppresses identical audit rows fired in rapid succession;
// expired keys are swept by the cache janitor.
const (
	dedupWindow = 1 * time.Second
	dedupSweep  = 5 * time.Second
)

// AuditEntry describes one auditable action
type AuditEntry struct {
	UserID     uint
	Action     string
	EntityType string
	EntityID   uint
	Details    interface{}
	IPAddress  string
	UserAgent  string
}

// AuditService records audit logs. Writes are best-effort: failures are
// logged and never abort the primary operation.
type AuditService interface {
	Record(entry AuditEntry)
	ListLogs(filter repository.LogFilter) ([]*models.Log, int64, error)
}

// auditService implements AuditService
type auditService struct {
	logRepo repository.LogRepository
	dedup   *gocache.Cache
	logger  *logger.Logger
}

// NewAuditService creates a new audit service with a TTL-based dedup cache
func NewAuditService(logRepo repository.LogRepository, logger *logger.Logger) AuditService {
	return &auditService{
		logRepo: logRepo,
		dedup:   gocache.New(dedupWindow, dedupSweep),
		logger:  logger,
	}
}

// Record writes one audit log row unless an identical action for the same
// user and entity was recorded within the dedup window
func (s *auditService) Record(entry AuditEntry) {
	key := fmt.Sprintf("%d|%s|%s|%d", entry.UserID, entry.Action, entry.EntityType, entry.EntityID)
	if _, found := s.dedup.Get(key); found {
		return
	}
	s.dedup.Set(key, struct{}{}, gocache.DefaultExpiration)

	details := ""
	if entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to serialize audit details")
		} else {
			details = string(raw)
		}
	}

	log := &models.Log{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    details,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
	}

	if err := s.logRepo.CreateLog(log); err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"action":      entry.Action,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
		}).Error("Failed to write audit log")
	}
}

// ListLogs retrieves audit logs matching the filter
func (s *auditService) ListLogs(filter repository.LogFilter) ([]*models.Log, int64, error) {
	return s.logRepo.ListLogs(filter)
}
