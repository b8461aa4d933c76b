package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"vocabquest/internal/security"
	"vocabquest/internal/service"
)

// Scheduler runs the recurring background jobs: weekly progress digests and
// rate limiter bookkeeping
type Scheduler struct {
	scheduler *gocron.Scheduler
	emails    *service.EmailService
	limiter   *security.RateLimiter
}

// New creates a new scheduler instance
func New(emails *service.EmailService, limiter *security.RateLimiter) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		emails:    emails,
		limiter:   limiter,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Week().Monday().At("08:00").Do(s.sendWeeklyDigests)
	s.scheduler.Every(10).Minutes().Do(s.limiter.Cleanup)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sendWeeklyDigests() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := s.emails.SendWeeklyDigests(ctx); err != nil {
		log.Printf("Error sending weekly digests: %v", err)
	}
}
