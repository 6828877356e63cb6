package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/stemwijzer/internal/fixtures"
	"github.com/spigell/stemwijzer/internal/metrics"
	"github.com/spigell/stemwijzer/internal/remote"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

type stubRemote struct {
	outcome remote.Outcome
	calls   int
	got     sw.Answers
}

func (s *stubRemote) TryCalculate(_ context.Context, answers sw.Answers) remote.Outcome {
	s.calls++
	s.got = answers
	return s.outcome
}

func testStore(t *testing.T) *fixtures.Store {
	t.Helper()

	tables, err := fixtures.NewTables(
		[]sw.Question{
			{ID: 1, Text: "Meer klimaatbeleid", Category: sw.CategoryClimate},
			{ID: 2, Text: "Minder immigratie", Category: sw.CategoryImmigration},
		},
		[]sw.PartyPosition{
			{Name: "Groen", Stances: map[int]sw.AnswerOption{1: sw.StronglyAgree, 2: sw.StronglyDisagree}},
			{Name: "Grens", Stances: map[int]sw.AnswerOption{1: sw.StronglyDisagree, 2: sw.StronglyAgree}},
		},
	)
	require.NoError(t, err)
	return fixtures.NewStore(tables, fixtures.Source{}, nil)
}

func userAnswers() sw.Answers {
	return sw.Answers{
		1: {Answer: sw.StronglyAgree, Importance: sw.VeryImportant},
		2: {Answer: sw.Disagree, Importance: sw.Important},
	}
}

func remoteResult() *sw.ScoreResult {
	return &sw.ScoreResult{
		PartyScores: []sw.PartyScore{{PartyID: "remote-party", PartyName: "Remote", MatchPercentage: 77}},
		CategoryBreakdown: map[sw.Category]sw.CategoryStats{
			sw.CategoryClimate: {QuestionsCount: 1, AnsweredCount: 1},
		},
	}
}

func TestCalculateMatchesLocalWithoutRemote(t *testing.T) {
	m := New(testStore(t))

	calc, err := m.CalculateMatches(context.Background(), userAnswers())
	require.NoError(t, err)

	assert.False(t, m.RemoteEnabled())
	assert.Equal(t, SourceLocal, calc.Source)
	assert.Nil(t, calc.RemoteError)
	require.Len(t, calc.Result.PartyScores, 2)
	assert.Equal(t, "groen", calc.Result.PartyScores[0].PartyID)
}

func TestCalculateMatchesUsesRemoteResult(t *testing.T) {
	stub := &stubRemote{outcome: remote.Outcome{Result: remoteResult()}}
	rec := metrics.New()
	m := New(testStore(t), WithRemote(stub), WithMetrics(rec))

	calc, err := m.CalculateMatches(context.Background(), userAnswers())
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, userAnswers(), stub.got)
	assert.Equal(t, SourceRemote, calc.Source)
	assert.Equal(t, *remoteResult(), calc.Result)
	assert.Nil(t, calc.RemoteError)
}

func TestCalculateMatchesFallsBackOnEveryReason(t *testing.T) {
	local, err := New(testStore(t)).CalculateLocally(userAnswers())
	require.NoError(t, err)

	for _, reason := range remote.Reasons {
		t.Run(string(reason), func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			stub := &stubRemote{outcome: remote.Outcome{Err: &remote.RemoteError{Reason: reason, Err: errors.New("nope")}}}
			m := New(testStore(t), WithRemote(stub), WithLogger(zap.New(core)))

			calc, err := m.CalculateMatches(context.Background(), userAnswers())
			require.NoError(t, err)

			assert.Equal(t, 1, stub.calls, "no retry")
			assert.Equal(t, SourceLocal, calc.Source)
			require.NotNil(t, calc.RemoteError)
			assert.Equal(t, reason, calc.RemoteError.Reason)
			assert.Equal(t, local.Result, calc.Result)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
			assert.Equal(t, string(reason), entries[0].ContextMap()["reason"])
		})
	}
}

func TestCalculateMatchesCountsFallbacks(t *testing.T) {
	rec := metrics.New()
	stub := &stubRemote{outcome: remote.Outcome{Err: &remote.RemoteError{Reason: remote.ReasonStatus, Status: 503}}}
	m := New(testStore(t), WithRemote(stub), WithMetrics(rec))

	for i := 0; i < 3; i++ {
		_, err := m.CalculateMatches(context.Background(), userAnswers())
		require.NoError(t, err)
	}

	families, err := rec.Registry().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				for _, l := range metric.GetLabel() {
					counts[f.GetName()+"/"+l.GetValue()] = c.GetValue()
				}
			}
		}
	}

	assert.Equal(t, 3.0, counts["stemwijzer_remote_failures_total/status"])
	assert.Equal(t, 3.0, counts["stemwijzer_calculations_total/local"])
	assert.Zero(t, counts["stemwijzer_calculations_total/remote"])
}

func TestCalculateMatchesEmptyOutcomeFallsBack(t *testing.T) {
	m := New(testStore(t), WithRemote(&stubRemote{}))

	calc, err := m.CalculateMatches(context.Background(), userAnswers())
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, calc.Source)
	require.NotNil(t, calc.RemoteError)
	assert.Equal(t, remote.ReasonMalformed, calc.RemoteError.Reason)
}

func TestCalculateLocallyStrictStances(t *testing.T) {
	m := New(testStore(t), WithScorer(sw.NewScorer(sw.WithStrictStances(true))))

	_, err := m.CalculateLocally(sw.Answers{99: {Answer: sw.Agree, Importance: sw.Important}})
	require.Error(t, err)
	assert.ErrorIs(t, err, sw.ErrMissingStance)
}

func TestCalculateUsesSwappedTables(t *testing.T) {
	store := testStore(t)
	m := New(store)

	swapped, err := fixtures.NewTables(
		[]sw.Question{{ID: 1, Text: "Meer klimaatbeleid", Category: sw.CategoryClimate}},
		[]sw.PartyPosition{{Name: "Nieuw", Stances: map[int]sw.AnswerOption{1: sw.StronglyAgree}}},
	)
	require.NoError(t, err)
	store.Swap(swapped)

	calc, err := m.CalculateLocally(userAnswers())
	require.NoError(t, err)
	require.Len(t, calc.Result.PartyScores, 1)
	assert.Equal(t, "nieuw", calc.Result.PartyScores[0].PartyID)
}

func TestNewWithNilStoreUsesDefaults(t *testing.T) {
	m := New(nil)
	calc, err := m.CalculateLocally(userAnswers())
	require.NoError(t, err)
	assert.Len(t, calc.Result.PartyScores, fixtures.Default().Positions.Len())
}
