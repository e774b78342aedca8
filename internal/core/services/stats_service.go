package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"mylibrary/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// StatsService logs a daily snapshot of the lending state (open and overdue
// loan counts). Pure read path, no locking involved.
type StatsService struct {
	loanStore repositories.LoanStore
	cron      *cron.Cron
}

// NewStatsService creates a new stats service
func NewStatsService(loanStore repositories.LoanStore) *StatsService {
	return &StatsService{
		loanStore: loanStore,
		cron:      cron.New(),
	}
}

// Start schedules the daily snapshot (08:00 server time)
func (s *StatsService) Start() error {
	if _, err := s.cron.AddFunc("0 8 * * *", s.Snapshot); err != nil {
		return fmt.Errorf("failed to schedule loan stats snapshot: %w", err)
	}
	s.cron.Start()
	log.Println("🚀 StatsService started (daily snapshot at 08:00)")
	return nil
}

// Stop stops the scheduler
func (s *StatsService) Stop() {
	s.cron.Stop()
	log.Println("🛑 StatsService stopped")
}

// Snapshot logs current open and overdue loan counts
func (s *StatsService) Snapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	open, err := s.loanStore.CountOpen(ctx)
	if err != nil {
		log.Printf("❌ Loan stats snapshot failed: %v", err)
		return
	}
	overdue, err := s.loanStore.CountOverdue(ctx)
	if err != nil {
		log.Printf("❌ Loan stats snapshot failed: %v", err)
		return
	}

	log.Printf("📊 Loan stats: %d open, %d overdue", open, overdue)
}
