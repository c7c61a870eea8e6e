// Package heartbeat keeps the managed database from being reclaimed by the
// hosting provider's inactivity policy. On a fixed schedule it writes one
// sentinel row and prunes rows older than the retention period. A failed
// run is logged and retried on the next tick; it never crashes the process.
package heartbeat

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/models"
	"github.com/folio-labs/portfolio-backend/services"
)

const (
	// DefaultInterval is how often the sentinel write runs. The provider's
	// inactivity timer is 90 days, so anything inside 24-48h is generous.
	DefaultInterval = 24 * time.Hour

	// Retention is how long sentinel rows are kept before pruning.
	Retention = 7 * 24 * time.Hour

	// AlertAfter is how long the task may go without a successful run
	// before an external alert is raised.
	AlertAfter = 72 * time.Hour
)

type Task struct {
	repo           *database.KeepAliveRepo
	mailer         services.Mailer
	logger         zerolog.Logger
	interval       time.Duration
	alertRecipient string
	cron           *cron.Cron
	now            func() time.Time

	mu          sync.Mutex
	lastSuccess time.Time
	alerted     bool
}

// New builds a heartbeat task. mailer and alertRecipient may be empty, in
// which case missed-run alerts are only logged.
func New(repo *database.KeepAliveRepo, mailer services.Mailer, interval time.Duration, alertRecipient string) *Task {
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := time.Now
	return &Task{
		repo:           repo,
		mailer:         mailer,
		logger:         log.With().Str("component", "heartbeat").Logger(),
		interval:       interval,
		alertRecipient: alertRecipient,
		now:            now,
		lastSuccess:    now(),
	}
}

// Start schedules the task and fires one run immediately so a fresh deploy
// registers activity right away.
func (t *Task) Start() error {
	t.cron = cron.New()
	if _, err := t.cron.AddFunc(fmt.Sprintf("@every %s", t.interval), t.Run); err != nil {
		return fmt.Errorf("failed to schedule heartbeat: %w", err)
	}
	t.cron.Start()
	go t.Run()
	t.logger.Info().Dur("interval", t.interval).Msg("Heartbeat scheduled")
	return nil
}

// Stop halts the schedule. An in-flight run finishes on its own.
func (t *Task) Stop() {
	if t.cron != nil {
		t.cron.Stop()
	}
}

// Run performs one heartbeat cycle. Errors are absorbed here: the schedule
// itself is the retry mechanism.
func (t *Task) Run() {
	if err := t.runOnce(); err != nil {
		t.logger.Error().Err(err).Msg("Heartbeat run failed, will retry on next tick")
		t.maybeAlert()
		return
	}

	t.mu.Lock()
	t.lastSuccess = t.now()
	t.alerted = false
	t.mu.Unlock()
}

func (t *Task) runOnce() error {
	entry := models.KeepAliveLog{Note: "heartbeat", CreatedAt: t.now()}
	if err := t.repo.Add(&entry); err != nil {
		return fmt.Errorf("insert sentinel row: %w", err)
	}

	pruned, err := t.repo.DeleteOlderThan(t.now().Add(-Retention))
	if err != nil {
		return fmt.Errorf("prune sentinel rows: %w", err)
	}

	t.logger.Info().
		Str("entryID", entry.ID.String()).
		Int64("pruned", pruned).
		Msg("Heartbeat run completed")
	return nil
}

// LastSuccess returns when the task last completed a full cycle.
func (t *Task) LastSuccess() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSuccess
}

// maybeAlert raises a one-shot external alert once no run has succeeded
// for longer than AlertAfter. The alert re-arms after the next success.
func (t *Task) maybeAlert() {
	t.mu.Lock()
	since := t.now().Sub(t.lastSuccess)
	shouldAlert := since > AlertAfter && !t.alerted
	if shouldAlert {
		t.alerted = true
	}
	t.mu.Unlock()

	if !shouldAlert {
		return
	}

	t.logger.Error().Dur("since", since).Msg("No successful heartbeat within alert threshold")

	if t.mailer == nil || t.alertRecipient == "" {
		return
	}
	subject, body := services.HeartbeatAlertEmail(since.Hours())
	if err := t.mailer.Send(subject, body, []string{t.alertRecipient}); err != nil {
		t.logger.Error().Err(err).Msg("Failed to send heartbeat alert email")
	}
}
