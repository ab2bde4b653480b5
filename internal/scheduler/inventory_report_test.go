package scheduler

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_scheduler_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestCollectSnapshot(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	snapshot, err := CollectSnapshot(db)
	require.NoError(t, err)
	assert.Equal(t, InventorySnapshot{}, snapshot)

	require.NoError(t, db.DB.Create(&entities.Book{Title: "Snow Country", Stock: 2}).Error)
	require.NoError(t, db.DB.Create(&entities.Book{Title: "Thousand Cranes", Stock: 3}).Error)
	require.NoError(t, db.DB.Create(&entities.Card{Name: "Alice Zhang", Type: entities.CardTypeStudent}).Error)
	require.NoError(t, db.DB.Create(&entities.Borrow{CardID: 1, BookID: 1, BorrowTime: 1000}).Error)
	require.NoError(t, db.DB.Create(&entities.Borrow{CardID: 1, BookID: 2, BorrowTime: 1000, ReturnTime: 2000}).Error)

	snapshot, err = CollectSnapshot(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, snapshot.Books)
	assert.EqualValues(t, 5, snapshot.TotalStock)
	assert.EqualValues(t, 1, snapshot.Cards)
	assert.EqualValues(t, 1, snapshot.OpenLoans, "closed loans do not count")
}

func TestInventoryReportScheduler_StartStop(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	s := NewInventoryReportScheduler(db, "* * * * *")
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	// Starting again is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
}

func TestInventoryReportScheduler_RejectsBadSchedule(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	s := NewInventoryReportScheduler(db, "not a schedule")
	require.Error(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}
