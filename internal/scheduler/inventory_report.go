// Package scheduler runs the periodic inventory report: a log line with the
// catalog size, total copies on the shelves and the number of open loans,
// for operators watching the back office without a metrics stack.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/entities"
)

// InventorySnapshot is one report's worth of totals.
type InventorySnapshot struct {
	Books      int64
	TotalStock int64
	Cards      int64
	OpenLoans  int64
}

// InventoryReportScheduler logs an InventorySnapshot on a cron schedule.
type InventoryReportScheduler struct {
	db       *database.Database
	schedule string

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewInventoryReportScheduler creates a new scheduler instance.
func NewInventoryReportScheduler(db *database.Database, schedule string) *InventoryReportScheduler {
	return &InventoryReportScheduler{
		db:       db,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *InventoryReportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReport); err != nil {
		return fmt.Errorf("failed to schedule inventory report: %w", err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Inventory report scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running report.
func (s *InventoryReportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Inventory report scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *InventoryReportScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *InventoryReportScheduler) runReport() {
	snapshot, err := CollectSnapshot(s.db)
	if err != nil {
		log.Printf("Inventory report: failed to collect snapshot: %v", err)
		return
	}
	log.Printf("Inventory report: %d books (%d copies in stock), %d cards, %d open loans",
		snapshot.Books, snapshot.TotalStock, snapshot.Cards, snapshot.OpenLoans)
}

// CollectSnapshot gathers the report totals from the store.
func CollectSnapshot(db *database.Database) (InventorySnapshot, error) {
	var snapshot InventorySnapshot

	if err := db.DB.Model(&entities.Book{}).Count(&snapshot.Books).Error; err != nil {
		return snapshot, err
	}
	err := db.DB.Model(&entities.Book{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&snapshot.TotalStock).Error
	if err != nil {
		return snapshot, err
	}
	if err := db.DB.Model(&entities.Card{}).Count(&snapshot.Cards).Error; err != nil {
		return snapshot, err
	}
	err = db.DB.Model(&entities.Borrow{}).
		Where("return_time = 0").
		Count(&snapshot.OpenLoans).Error
	return snapshot, err
}
