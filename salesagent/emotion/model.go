package emotion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultDecay is the weight the previous pleasure keeps on each update.
const DefaultDecay = 0.7

// UpdateRule computes the next vector from the current one, the turn's sentiment score and a
// decay factor. Inputs arrive already clamped to [0,1]; the result is clamped by the caller.
type UpdateRule func(current Vector, sentiment, decay float64) Vector

// DecayRule moves pleasure toward the sentiment by exponential decay. Arousal and dominance
// pass through unchanged.
func DecayRule(current Vector, sentiment, decay float64) Vector {
	next := current
	next.Pleasure = current.Pleasure*decay + sentiment*(1-decay)
	return next
}

type Option func(*Model)

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithUpdateRule replaces DecayRule, e.g. with a rule that also moves arousal and dominance.
func WithUpdateRule(rule UpdateRule) Option {
	return func(m *Model) {
		if rule != nil {
			m.rule = rule
		}
	}
}

// Model reads and updates PAD vectors in a Store. Concurrent updates for the same key are not
// serialized: the last upsert wins.
type Model struct {
	store  Store
	rule   UpdateRule
	logger *slog.Logger
}

func NewModel(store Store, opts ...Option) *Model {
	m := &Model{
		store:  store,
		rule:   DecayRule,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetVector returns the stored vector for key, or Neutral when none exists. It never fails:
// store errors are logged and the neutral vector is returned.
func (m *Model) GetVector(ctx context.Context, key string) Vector {
	key = strings.TrimSpace(key)
	if key == "" || m.store == nil {
		return Neutral()
	}
	v, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.Warn("emotion.GetVector: store read failed, using neutral", "key", key, "error", err)
		return Neutral()
	}
	if !ok {
		return Neutral()
	}
	return v.Clamp()
}

// Update applies the update rule with DefaultDecay and persists the result.
func (m *Model) Update(ctx context.Context, key string, sentiment float64) (Vector, error) {
	return m.UpdateWithDecay(ctx, key, sentiment, DefaultDecay)
}

// UpdateWithDecay applies the update rule and upserts the clamped result. The only error is a
// persistence failure (or ErrEmptyKey).
func (m *Model) UpdateWithDecay(ctx context.Context, key string, sentiment, decay float64) (Vector, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Vector{}, ErrEmptyKey
	}
	if m.store == nil {
		return Vector{}, fmt.Errorf("emotion.Update: no store configured")
	}

	current := m.GetVector(ctx, key)
	next := m.rule(current, clamp01(sentiment), clamp01(decay)).Clamp()
	if err := m.store.Upsert(ctx, key, next); err != nil {
		return Vector{}, fmt.Errorf("emotion.Update: upsert %q: %w", key, err)
	}
	m.logger.Debug("emotion.Update: stored", "key", key, "sentiment", sentiment, "from", current.String(), "to", next.String(), "label", next.Label())
	return next, nil
}

// Delete removes the vector for key. Intended for lead deletion only.
func (m *Model) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if m.store == nil {
		return nil
	}
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("emotion.Delete: %q: %w", key, err)
	}
	return nil
}
