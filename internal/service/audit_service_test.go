package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
)

// fakeLogRepository records audit rows in memory
type fakeLogRepository struct {
	logs []*models.Log
}

func (r *fakeLogRepository) CreateLog(log *models.Log) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeLogRepository) ListLogs(filter repository.LogFilter) ([]*models.Log, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}

func TestRecordWritesLogRow(t *testing.T) {
	repo := &fakeLogRepository{}
	svc := NewAuditService(repo, testLogger())

	svc.Record(AuditEntry{
		UserID:     1,
		Action:     "CREATE_BILL",
		EntityType: "Bill",
		EntityID:   42,
		Details:    map[string]string{"title": "Phí vệ sinh"},
		IPAddress:  "10.0.0.1",
		UserAgent:  "test-agent",
	})

	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	assert.Equal(t, uint(1), log.UserID)
	assert.Equal(t, "CREATE_BILL", log.Action)
	assert.Equal(t, "Bill", log.EntityType)
	assert.Equal(t, uint(42), log.EntityID)
	assert.Contains(t, log.Details, "Phí vệ sinh")
	assert.Equal(t, "10.0.0.1", log.IPAddress)
}

func TestRecordDeduplicatesRapidRepeats(t *testing.T) {
	repo := &fakeLogRepository{}
	svc := NewAuditService(repo, testLogger())

	entry := AuditEntry{UserID: 1, Action: "UPDATE_BILL", EntityType: "Bill", EntityID: 7}
	svc.Record(entry)
	svc.Record(entry)
	svc.Record(entry)

	assert.Len(t, repo.logs, 1)
}

func TestRecordDistinguishesEntities(t *testing.T) {
	repo := &fakeLogRepository{}
	svc := NewAuditService(repo, testLogger())

	svc.Record(AuditEntry{UserID: 1, Action: "DELETE_BILL", EntityType: "Bill", EntityID: 1})
	svc.Record(AuditEntry{UserID: 1, Action: "DELETE_BILL", EntityType: "Bill", EntityID: 2})
	svc.Record(AuditEntry{UserID: 2, Action: "DELETE_BILL", EntityType: "Bill", EntityID: 1})

	assert.Len(t, repo.logs, 3)
}

func TestRecordSurvivesUnserializableDetails(t *testing.T) {
	repo := &fakeLogRepository{}
	svc := NewAuditService(repo, testLogger())

	svc.Record(AuditEntry{
		UserID:     1,
		Action:     "EXPORT_BILLS",
		EntityType: "Bill",
		Details:    make(chan int), // not serializable
	})

	require.Len(t, repo.logs, 1)
	assert.Empty(t, repo.logs[0].Details)
}
