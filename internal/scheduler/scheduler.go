package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/flowdeck/flowdeck-server/internal/models"
	"github.com/flowdeck/flowdeck-server/internal/repository"
	"github.com/flowdeck/flowdeck-server/internal/schedule"
)

// Scheduler runs the daily recurring-rule expansion. The cron entry fires
// once per day; Notify allows an immediate out-of-band run. Double runs are
// harmless: generated events carry a (rule_id, rule_date) key the store
// deduplicates on.
type Scheduler struct {
	ruleRepo  *repository.RuleRepository
	eventRepo *repository.EventRepository
	cronSpec  string
	notifyCh  chan struct{}
}

func New(ruleRepo *repository.RuleRepository, eventRepo *repository.EventRepository, cronSpec string) *Scheduler {
	return &Scheduler{
		ruleRepo:  ruleRepo,
		eventRepo: eventRepo,
		cronSpec:  cronSpec,
		notifyCh:  make(chan struct{}, 1),
	}
}

// Notify triggers an immediate expansion run. Non-blocking if a run is
// already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// A run is already pending, skip
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.cronSpec, s.Notify); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	log.Printf("Scheduler started (cron %q)", s.cronSpec)

	// Catch up immediately in case the daily fire time already passed.
	s.runAll(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped")
			return ctx.Err()
		case <-s.notifyCh:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	now := time.Now()

	rules, err := s.ruleRepo.GetAllActive(ctx)
	if err != nil {
		log.Printf("Failed to load active rules: %v", err)
		return
	}

	due, err := schedule.ExpandAllDueToday(rules, now)
	if err != nil {
		log.Printf("Failed to expand rules: %v", err)
		return
	}
	if len(due) == 0 {
		return
	}

	inserted, err := s.eventRepo.InsertGenerated(ctx, due)
	if err != nil {
		log.Printf("Failed to insert generated events: %v", err)
		return
	}
	log.Printf("Recurring expansion: %d rule(s) due, %d event(s) inserted", len(due), len(inserted))
}

// GenerateForUser expands today's due rules for one user and returns the
// titles of the rules whose events were actually inserted. Re-running on the
// same day returns an empty list.
func (s *Scheduler) GenerateForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]string, error) {
	rules, err := s.ruleRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	due, err := schedule.ExpandAllDueToday(rules, now)
	if err != nil {
		return nil, err
	}

	inserted, err := s.eventRepo.InsertGenerated(ctx, due)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(inserted))
	byID := ruleTitles(rules)
	for _, event := range inserted {
		if event.RuleID != nil {
			titles = append(titles, byID[*event.RuleID])
		}
	}
	return titles, nil
}

func ruleTitles(rules []*models.RecurringRule) map[uuid.UUID]string {
	titles := make(map[uuid.UUID]string, len(rules))
	for _, rule := range rules {
		titles[rule.RuleID] = rule.Title
	}
	return titles
}
