package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/karikadai/karikadai-backend/internal/stocks"
)

// StockResetJob restores each item type to its opening quantity once per
// day, after the configured opening hour. The shop restocks every morning
// before opening, so yesterday's remaining counts are meaningless.
type StockResetJob struct {
	stocks    stocks.Service
	resetHour int
	now       func() time.Time
}

// NewStockResetJob builds the daily stock reset job.
func NewStockResetJob(stocksSvc stocks.Service, resetHour int) (*StockResetJob, error) {
	if stocksSvc == nil {
		return nil, fmt.Errorf("stocks service required")
	}
	if resetHour < 0 || resetHour > 23 {
		return nil, fmt.Errorf("reset hour %d out of range", resetHour)
	}
	return &StockResetJob{
		stocks:    stocksSvc,
		resetHour: resetHour,
		now:       time.Now,
	}, nil
}

// Name implements Job.
func (j *StockResetJob) Name() string {
	return "stock-reset"
}

// Run implements Job. It is a no-op before the reset hour and when every
// stock row was already reset today, so the short cron tick is harmless.
func (j *StockResetJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	if now.Hour() < j.resetHour {
		return nil
	}

	due, err := j.resetDue(ctx, now)
	if err != nil {
		return err
	}
	if !due {
		return nil
	}

	return j.stocks.ResetDaily(ctx, now)
}

func (j *StockResetJob) resetDue(ctx context.Context, now time.Time) (bool, error) {
	rows, err := j.stocks.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list stocks: %w", err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	for _, row := range rows {
		if row.LastResetAt == nil || !sameDay(row.LastResetAt.UTC(), now) {
			return true, nil
		}
	}
	return false, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
