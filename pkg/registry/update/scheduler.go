package update

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/github/gh-bundles/pkg/logger"
)

var schedulerLog = logger.New("registry:update:scheduler")

// Frequency names one of the periodic check cadences spec.md §4.7 supports.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyManual Frequency = "manual"
)

var frequencySpecs = map[Frequency]string{
	FrequencyDaily:  "@every 24h",
	FrequencyWeekly: "@every 168h",
}

// allowTimersInTestsEnv, when set to any non-empty value, lets the scheduler
// run its startup one-shot timer when GO_TEST_MODE is "true" instead of skipping it (the
// default skip avoids leaking goroutines across fast unit test runs).
const allowTimersInTestsEnv = "UPDATE_SCHEDULER_ALLOW_TIMERS_IN_TESTS"

// Scheduler runs an UpdateChecker on a cron cadence plus a one-shot check
// shortly after startup, and optionally triggers AutoUpdateService for
// scopes with auto-update enabled.
type Scheduler struct {
	checker  *UpdateChecker
	onResult func(scopeKey string, candidates []Candidate)

	mu      sync.Mutex
	cronJob *cron.Cron
	started bool
}

// NewScheduler builds a Scheduler. onResult is invoked after every
// scheduled or startup check, scoped to one scopeKey at a time.
func NewScheduler(checker *UpdateChecker, onResult func(scopeKey string, candidates []Candidate)) *Scheduler {
	return &Scheduler{checker: checker, onResult: onResult}
}

// Start begins periodic checks for scopeKey at frequency, plus a one-shot
// check startupDelay after Start is called (skipped when GO_TEST_MODE is "true" unless
// UPDATE_SCHEDULER_ALLOW_TIMERS_IN_TESTS is set).
func (s *Scheduler) Start(ctx context.Context, scopeKey string, frequency Frequency, startupDelay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cronJob == nil {
		s.cronJob = cron.New()
	}

	if spec, ok := frequencySpecs[frequency]; ok {
		_, err := s.cronJob.AddFunc(spec, func() {
			s.runCheck(ctx, scopeKey, true)
		})
		if err != nil {
			return err
		}
	}

	if !s.started {
		s.cronJob.Start()
		s.started = true
	}

	if os.Getenv("GO_TEST_MODE") == "true" && os.Getenv(allowTimersInTestsEnv) == "" {
		schedulerLog.Print("skipping startup timer under test")
		return nil
	}

	time.AfterFunc(startupDelay, func() {
		s.runCheck(ctx, scopeKey, true)
	})
	return nil
}

// Stop halts all scheduled checks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cronJob != nil {
		s.cronJob.Stop()
		s.started = false
	}
}

// CheckNow runs an immediate, cache-bypassing check for scopeKey.
func (s *Scheduler) CheckNow(ctx context.Context, scopeKey string) ([]Candidate, error) {
	return s.runCheck(ctx, scopeKey, true)
}

func (s *Scheduler) runCheck(ctx context.Context, scopeKey string, bypass bool) ([]Candidate, error) {
	candidates, err := s.checker.Check(ctx, scopeKey, bypass)
	if err != nil {
		schedulerLog.Printf("update check failed for %s: %v", scopeKey, err)
		return nil, err
	}
	if s.onResult != nil {
		s.onResult(scopeKey, candidates)
	}
	return candidates, nil
}
