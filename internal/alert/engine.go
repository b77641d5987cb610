package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/cache"
	"github.com/swellbound/surfcast/internal/models"
	"github.com/swellbound/surfcast/internal/observability/metrics"
)

// ConditionsProvider supplies the current-conditions snapshot for a spot.
type ConditionsProvider interface {
	BuildCurrentConditions(ctx context.Context, location models.Location) (*models.CurrentConditions, error)
}

// Engine evaluates alert rules against current conditions and fires
// notifications. It borrows rules and spots from the store for the duration
// of one pass; nothing is held across cycles.
type Engine struct {
	conditions      ConditionsProvider
	conditionsCache *cache.ConditionsCache
	store           Store
	dispatcher      Dispatcher

	// refireInterval suppresses re-fires of a rule for this long after its
	// last trigger. Zero keeps the historical behavior of firing on every
	// matching cycle.
	refireInterval time.Duration

	now func() time.Time
}

func NewEngine(conditions ConditionsProvider, conditionsCache *cache.ConditionsCache, store Store, dispatcher Dispatcher, refireInterval time.Duration) *Engine {
	return &Engine{
		conditions:      conditions,
		conditionsCache: conditionsCache,
		store:           store,
		dispatcher:      dispatcher,
		refireInterval:  refireInterval,
		now:             time.Now,
	}
}

// RunSummary reports the outcome of one evaluation pass.
type RunSummary struct {
	Evaluated int
	Fired     int
	Failed    int
}

// RunOnce evaluates every enabled rule once. A failure fetching conditions
// for one rule's spot is recorded and the pass moves on to the next rule.
func (e *Engine) RunOnce(ctx context.Context) (*RunSummary, error) {
	started := e.now()

	rules, err := e.store.ListEnabledRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing enabled rules: %w", err)
	}

	summary := &RunSummary{}
	for _, rule := range rules {
		fired, err := e.evaluateRule(ctx, rule)
		summary.Evaluated++
		if err != nil {
			summary.Failed++
			metrics.AlertErrored()
			log.Warn().Err(err).Str("rule_id", rule.ID).Str("location_id", rule.LocationID).
				Msg("Alert evaluation failed, continuing with next rule")
			continue
		}
		if fired {
			summary.Fired++
		}
	}

	metrics.ObserveEvaluationSeconds(e.now().Sub(started).Seconds())
	log.Info().Int("evaluated", summary.Evaluated).Int("fired", summary.Fired).
		Int("failed", summary.Failed).Msg("Alert evaluation pass complete")

	return summary, nil
}

func (e *Engine) evaluateRule(ctx context.Context, rule models.AlertRule) (bool, error) {
	location, err := e.store.GetLocation(ctx, rule.LocationID)
	if err != nil {
		return false, fmt.Errorf("loading spot: %w", err)
	}

	conditions, err := e.conditionsFor(ctx, *location)
	if err != nil {
		return false, fmt.Errorf("fetching conditions: %w", err)
	}

	return e.Evaluate(ctx, rule, *location, *conditions)
}

// Evaluate runs one rule against one snapshot and returns whether it fired.
// On a fire it dispatches the notification and persists the rule's trigger
// bookkeeping, exactly once per evaluation pass.
func (e *Engine) Evaluate(ctx context.Context, rule models.AlertRule, location models.Location, conditions models.CurrentConditions) (bool, error) {
	metrics.AlertEvaluated()

	if !rule.Enabled {
		return false, nil
	}
	if !Matches(rule, conditions) {
		return false, nil
	}

	now := e.now()
	if e.refireInterval > 0 && rule.LastTriggeredAt != nil && now.Sub(*rule.LastTriggeredAt) < e.refireInterval {
		log.Debug().Str("rule_id", rule.ID).Time("last_triggered", *rule.LastTriggeredAt).
			Msg("Alert matched but is within the re-fire interval")
		return false, nil
	}

	title, body := formatNotification(location, conditions)
	metadata := map[string]string{
		"alertId":    rule.ID,
		"locationId": rule.LocationID,
	}
	if err := e.dispatcher.Dispatch(ctx, rule.OwnerID, title, body, metadata); err != nil {
		// Delivery is fire-and-forget; the trigger still counts.
		log.Warn().Err(err).Str("rule_id", rule.ID).Msg("Notification dispatch failed")
	}

	rule.LastTriggeredAt = &now
	rule.NotificationsSentCount++
	if err := e.store.SaveRule(ctx, rule); err != nil {
		return true, fmt.Errorf("persisting trigger bookkeeping: %w", err)
	}

	metrics.AlertFired()
	log.Info().Str("rule_id", rule.ID).Str("location_id", rule.LocationID).
		Float64("wave_height", conditions.WaveHeight).Msg("Alert fired")

	return true, nil
}

// Matches reports whether the snapshot satisfies the rule's predicate. An
// inverted numeric range never matches; an empty wind direction preference
// matches any direction.
func Matches(rule models.AlertRule, conditions models.CurrentConditions) bool {
	if rule.MinWaveHeight > rule.MaxWaveHeight || rule.MinWindSpeed > rule.MaxWindSpeed {
		return false
	}
	if conditions.WaveHeight < rule.MinWaveHeight || conditions.WaveHeight > rule.MaxWaveHeight {
		return false
	}
	if conditions.WindSpeed < rule.MinWindSpeed || conditions.WindSpeed > rule.MaxWindSpeed {
		return false
	}
	return rule.PrefersWindDirection(conditions.WindDirection)
}

func (e *Engine) conditionsFor(ctx context.Context, location models.Location) (*models.CurrentConditions, error) {
	if e.conditionsCache != nil {
		if conditions, ok := e.conditionsCache.Get(location.ID); ok {
			return conditions, nil
		}
	}

	conditions, err := e.conditions.BuildCurrentConditions(ctx, location)
	if err != nil {
		return nil, err
	}

	if e.conditionsCache != nil {
		e.conditionsCache.Add(location.ID, conditions)
	}
	return conditions, nil
}

func formatNotification(location models.Location, conditions models.CurrentConditions) (title, body string) {
	title = fmt.Sprintf("Surf's up at %s", location.Name)
	body = fmt.Sprintf("%.1fft waves, wind %.0fmph %s",
		conditions.WaveHeight, conditions.WindSpeed, conditions.WindDirection)
	return title, body
}
