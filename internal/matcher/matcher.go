// Package matcher turns a user's answers into a ranked party list. It asks
// the remote scoring service first when one is configured and falls back
// to the local scorer on any failure.
package matcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/fixtures"
	"github.com/spigell/stemwijzer/internal/logger"
	"github.com/spigell/stemwijzer/internal/metrics"
	"github.com/spigell/stemwijzer/internal/remote"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

// Source names where a calculation result came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Remote is the delegation attempt. *remote.Client implements it.
type Remote interface {
	TryCalculate(ctx context.Context, answers sw.Answers) remote.Outcome
}

// Calculation is the result of CalculateMatches. RemoteError is set when a
// remote attempt was made and rejected.
type Calculation struct {
	Result      sw.ScoreResult
	Source      Source
	RemoteError *remote.RemoteError
}

type Matcher struct {
	remote  Remote
	store   *fixtures.Store
	scorer  *sw.Scorer
	logger  *zap.Logger
	metrics *metrics.Recorder
}

type Option func(*Matcher)

// WithRemote enables remote delegation.
func WithRemote(r Remote) Option {
	return func(m *Matcher) {
		m.remote = r
	}
}

func WithScorer(s *sw.Scorer) Option {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(m *Matcher) {
		m.metrics = r
	}
}

// New builds a matcher reading fixtures from store. A nil store serves the
// built-in tables.
func New(store *fixtures.Store, opts ...Option) *Matcher {
	if store == nil {
		store = fixtures.NewStore(fixtures.Default(), fixtures.Source{}, nil)
	}

	m := &Matcher{
		store:  store,
		scorer: sw.NewScorer(),
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RemoteEnabled reports whether CalculateMatches tries the remote service.
func (m *Matcher) RemoteEnabled() bool {
	return m.remote != nil
}

// Tables returns the fixtures the next calculation will use.
func (m *Matcher) Tables() *fixtures.Tables {
	return m.store.Tables()
}

// CalculateMatches tries the remote service once and scores locally when it
// is disabled or its answer is rejected. The error is only set by the local
// scorer.
func (m *Matcher) CalculateMatches(ctx context.Context, answers sw.Answers) (Calculation, error) {
	if m.remote == nil {
		return m.calculateLocally(answers, nil)
	}

	start := time.Now()
	outcome := m.remote.TryCalculate(ctx, answers)
	if outcome.Ok() {
		m.metrics.Calculation(string(SourceRemote), time.Since(start))
		m.logger.Debug("using remote calculation", zap.String(logger.FieldSource, string(SourceRemote)))
		return Calculation{Result: *outcome.Result, Source: SourceRemote}, nil
	}

	remoteErr := outcome.Err
	if remoteErr == nil {
		remoteErr = &remote.RemoteError{Reason: remote.ReasonMalformed, Message: "empty outcome"}
	}

	m.metrics.RemoteFailure(string(remoteErr.Reason))
	m.logger.Warn("remote calculation failed, falling back to local scorer",
		zap.String("reason", string(remoteErr.Reason)),
		zap.Int(logger.FieldAnswers, len(answers)),
		zap.Error(remoteErr),
	)

	return m.calculateLocally(answers, remoteErr)
}

// CalculateLocally scores with the local scorer only.
func (m *Matcher) CalculateLocally(answers sw.Answers) (Calculation, error) {
	return m.calculateLocally(answers, nil)
}

func (m *Matcher) calculateLocally(answers sw.Answers, remoteErr *remote.RemoteError) (Calculation, error) {
	start := time.Now()
	tables := m.store.Tables()

	result, err := m.scorer.Score(answers, tables.Positions, tables.Catalog)
	if err != nil {
		return Calculation{}, fmt.Errorf("local scoring: %w", err)
	}

	m.metrics.Calculation(string(SourceLocal), time.Since(start))
	m.logger.Debug("using local calculation",
		zap.String(logger.FieldSource, string(SourceLocal)),
		zap.Int(logger.FieldAnswers, len(answers)),
	)

	return Calculation{Result: result, Source: SourceLocal, RemoteError: remoteErr}, nil
}
