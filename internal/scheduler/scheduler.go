package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"MetalsWatch/internal/model"
	"MetalsWatch/internal/recorder"
	"MetalsWatch/internal/store"
	"MetalsWatch/internal/view"
)

// Scheduler manages all cron tasks: the periodic board refresh and the
// slower historical-series prefetch.
type Scheduler struct {
	Cron     *cron.Cron
	Store    *store.Store
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, st *store.Store, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Store:    st,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// RegisterAll registers the refresh and history tasks.
func (s *Scheduler) RegisterAll(refreshCron, historyCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(historyCron, s.historyTask); err != nil {
		return fmt.Errorf("register history task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running board refresh")
	s.Store.RefreshAll(s.Ctx)

	snap := s.Store.Snapshot()
	for _, it := range snap.Items {
		if it.Err != "" {
			log.Printf("[WARN] refresh %s: %s", it.ID, it.Err)
		}
	}

	at := snap.LastUpdated
	if at.IsZero() {
		// every item failed; stamp the attempt itself
		at = time.Now()
	}
	if err := s.Recorder.RecordRefresh(&recorder.RefreshSnapshot{
		At:    at,
		Items: snap.Items,
	}); err != nil {
		log.Printf("[ERROR] record refresh: %v", err)
	}

	fmt.Print(view.FormatBoard(snap))
}

// historyTask prefetches the short window for every item that already has
// a quote, so the detail view opens warm.
func (s *Scheduler) historyTask() {
	log.Println("[INFO] running history prefetch")
	snap := s.Store.Snapshot()
	for _, it := range snap.Items {
		if !it.HasQuote() || len(it.History[model.WindowDay]) > 0 {
			continue
		}
		s.Store.FetchHistory(s.Ctx, it.ID, model.WindowDay)

		if loaded, ok := s.Store.LookupItem(it.ID); ok {
			if points := loaded.History[model.WindowDay]; len(points) > 0 {
				if err := s.Recorder.RecordHistoryFetch(&recorder.HistoryFetch{
					ItemID: it.ID,
					Window: model.WindowDay,
					Points: len(points),
				}); err != nil {
					log.Printf("[ERROR] record history fetch: %v", err)
				}
			}
		}
	}
}
