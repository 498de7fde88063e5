package checkin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/internal/points"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCheckinTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	attendance := `
CREATE TABLE IF NOT EXISTS attendance_entries (
  id TEXT PRIMARY KEY,
  event_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  points_earned INTEGER NOT NULL,
  method TEXT NOT NULL,
  recorded_by TEXT,
  created_at DATETIME,
  UNIQUE (event_id, user_id)
);`
	totals := `
CREATE TABLE IF NOT EXISTS points_totals (
  user_id TEXT PRIMARY KEY,
  total INTEGER NOT NULL DEFAULT 0,
  events_attended INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(attendance).Error)
	require.NoError(t, conn.Exec(totals).Error)

	return conn
}

func TestRecordAttendanceInsertsEntryAndBumpsTotal(t *testing.T) {
	conn := setupCheckinTestDB(t)
	repo := NewRepository(db.NewWithConn(conn))
	ctx := context.Background()
	eventID := uuid.New()
	userID := uuid.New()

	entry, err := repo.RecordAttendance(ctx, CreateEntryDTO{
		EventID:      eventID,
		UserID:       userID,
		PointsEarned: 10,
		Method:       enums.CheckinMethodCode,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)

	total, err := points.NewRepository(conn).TotalFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10, total.Total)
	assert.Equal(t, 1, total.EventsAttended)

	exists, err := repo.HasEntry(ctx, eventID, userID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRecordAttendanceAccumulatesAcrossEvents(t *testing.T) {
	conn := setupCheckinTestDB(t)
	repo := NewRepository(db.NewWithConn(conn))
	ctx := context.Background()
	userID := uuid.New()

	_, err := repo.RecordAttendance(ctx, CreateEntryDTO{
		EventID:      uuid.New(),
		UserID:       userID,
		PointsEarned: 10,
		Method:       enums.CheckinMethodCode,
	})
	require.NoError(t, err)
	_, err = repo.RecordAttendance(ctx, CreateEntryDTO{
		EventID:      uuid.New(),
		UserID:       userID,
		PointsEarned: 5,
		Method:       enums.CheckinMethodManual,
	})
	require.NoError(t, err)

	total, err := points.NewRepository(conn).TotalFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 15, total.Total)
	assert.Equal(t, 2, total.EventsAttended)
}

// Two inserts for the same (event, user) pair: the schema's unique constraint
// rejects the second and the whole transaction rolls back, so the running
// total is bumped exactly once.
func TestRecordAttendanceDuplicateRollsBackTotal(t *testing.T) {
	conn := setupCheckinTestDB(t)
	repo := NewRepository(db.NewWithConn(conn))
	ctx := context.Background()
	eventID := uuid.New()
	userID := uuid.New()

	dto := CreateEntryDTO{
		EventID:      eventID,
		UserID:       userID,
		PointsEarned: 10,
		Method:       enums.CheckinMethodCode,
	}
	_, err := repo.RecordAttendance(ctx, dto)
	require.NoError(t, err)

	_, err = repo.RecordAttendance(ctx, dto)
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""), "expected unique violation, got %v", err)

	var entries int64
	require.NoError(t, conn.Model(&models.AttendanceEntry{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&entries).Error)
	assert.Equal(t, int64(1), entries)

	total, err := points.NewRepository(conn).TotalFor(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 10, total.Total)
	assert.Equal(t, 1, total.EventsAttended)
}
