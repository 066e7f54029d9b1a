package jobs

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "backoffice/internal/config"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/robfig/cron/v3"
)

// InstalmentScanner walks live bookings every morning and reports
// instalments that are past due and not fully paid. Reporting only; it
// never mutates rows, collections stay a human decision.
type InstalmentScanner struct {
	LedgerRepo repositories.LedgerRepository
	DB         *sql.DB
}

func (s InstalmentScanner) ledger() repositories.LedgerRepository {
	if s.LedgerRepo.DB != nil {
		return s.LedgerRepo
	}
	db := s.DB
	if db == nil {
		db = intconfig.DB
	}
	return repositories.LedgerRepository{DB: db}
}

// Run executes one scan pass.
func (s InstalmentScanner) Run() {
	today := utils.FormatDate(utils.NowUTC())
	overdue, err := s.ledger().ListDueUnpaid(today)
	if err != nil {
		utils.LogEvent("", "jobs", "instalment_scan", fmt.Sprintf("scan failed: %v", err))
		return
	}
	if len(overdue) == 0 {
		utils.LogEvent("", "jobs", "instalment_scan", "no overdue instalments")
		return
	}
	for _, o := range overdue {
		utils.LogEvent("", "jobs", "instalment_scan",
			fmt.Sprintf("overdue folder=%s pax=%s due=%s expected=%s paid=%s status=%s",
				o.FolderNo, o.PaxName, o.DueDate,
				utils.FormatMoney(o.Amount), utils.FormatMoney(o.PaidAmount), o.Status))
	}
	utils.LogEvent("", "jobs", "instalment_scan", fmt.Sprintf("%d overdue instalment(s) found", len(overdue)))
}

// Scheduler owns the cron runner for background jobs.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the instalment scan with the given cron spec.
func NewScheduler(spec string, scanner InstalmentScanner) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(spec, scanner.Run); err != nil {
		return nil, fmt.Errorf("register instalment scan: %w", err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	utils.LogEvent("", "jobs", "scheduler_start", "background jobs running")
}

// Stop halts scheduling and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	utils.LogEvent("", "jobs", "scheduler_stop", "background jobs stopped")
}
