package scheduler

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	forecastsync "github.com/forecastd/forecastd/internal/sync"
)

// Scheduler drives periodic syncs with a flex window, plus on-demand runs
// when the location preference changes. Runs never overlap: periodic and
// manual triggers serialize on one mutex.
type Scheduler struct {
	scheduler *gocron.Scheduler
	orch      *forecastsync.Orchestrator
	interval  time.Duration
	flex      time.Duration
	timeout   time.Duration

	mu sync.Mutex
}

func New(orch *forecastsync.Orchestrator, interval, flex time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		orch:      orch,
		interval:  interval,
		flex:      flex,
		timeout:   2 * time.Minute,
	}
}

// Start schedules the periodic job and kicks off an immediate first sync.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 180
	}

	_, err := s.scheduler.Every(minutes).Minutes().SingletonMode().Do(func() {
		// Spread runs across the flex window so ticks do not all land on
		// the exact interval boundary.
		if s.flex > 0 {
			time.Sleep(time.Duration(rand.Int63n(int64(s.flex))))
		}
		s.runOnce()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.SyncNow()
	return nil
}

// SyncNow triggers a sync outside the periodic cadence.
func (s *Scheduler) SyncNow() {
	go s.runOnce()
}

func (s *Scheduler) runOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.orch.Run(ctx); err != nil {
		log.Printf("scheduler: sync failed: %v", err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
