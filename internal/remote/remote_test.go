package remote

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

const fullBreakdown = `{
	"Klimaat": {"questionsCount": 3},
	"Immigratie": {"questionsCount": 2},
	"Zorg": {"questionsCount": 2, "answeredCount": 1, "importantCount": 1},
	"Woningmarkt": {"questionsCount": 2},
	"Economie": {"questionsCount": 3},
	"Europa": {"questionsCount": 2},
	"Onderwijs": {"questionsCount": 2},
	"Natuur": {"questionsCount": 2},
	"Veiligheid": {"questionsCount": 2}
}`

const validResult = `{
	"partyScores": [
		{"partyId": "sp", "partyName": "SP", "partyColor": "#ef4444", "matchPercentage": 88,
		 "categoryMatches": {"Zorg": {"score": 200, "weight": 2, "count": 1}}},
		{"partyId": "vvd", "partyName": "VVD", "partyColor": "#1e40af", "matchPercentage": 12}
	],
	"categoryBreakdown": ` + fullBreakdown + `
}`

// withParties builds a response body around a full category breakdown.
func withParties(parties string) string {
	return `{"partyScores":` + parties + `,"categoryBreakdown":` + fullBreakdown + `}`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(zap.NewNop(), srv.URL, opts...)
}

func answers() sw.Answers {
	return sw.Answers{
		4: {Answer: sw.StronglyAgree, Importance: sw.VeryImportant},
		7: {Answer: sw.Disagree, Importance: sw.Minor},
	}
}

func TestTryCalculateAccepted(t *testing.T) {
	var got map[string]sw.WireAnswer
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, calculatePath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(validResult))
	}, WithToken(" secret "))

	outcome := client.TryCalculate(context.Background(), answers())
	require.True(t, outcome.Ok(), "unexpected failure: %v", outcome.Err)

	decoded, err := sw.DecodeAnswers(got)
	require.NoError(t, err)
	assert.Equal(t, answers(), decoded)

	result := outcome.Result
	require.Len(t, result.PartyScores, 2)
	assert.Equal(t, "sp", result.PartyScores[0].PartyID)
	assert.Equal(t, 88, result.PartyScores[0].MatchPercentage)
	assert.Equal(t, sw.CategoryMatch{Score: 200, Weight: 2, Count: 1}, result.PartyScores[0].CategoryMatches[sw.CategoryHealthcare])
	assert.Equal(t, sw.CategoryStats{QuestionsCount: 2, AnsweredCount: 1, ImportantCount: 1}, result.CategoryBreakdown[sw.CategoryHealthcare])
	assert.Len(t, result.CategoryBreakdown, len(sw.Categories))
}

func TestTryCalculateAcceptsWholeFloats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(withParties(`[{"partyId":"sp","matchPercentage":88.0}]`)))
	})

	outcome := client.TryCalculate(context.Background(), answers())
	require.True(t, outcome.Ok(), "unexpected failure: %v", outcome.Err)
	assert.Equal(t, 88, outcome.Result.PartyScores[0].MatchPercentage)
}

func TestTryCalculateOmitsAuthorizationWithoutToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(validResult))
	})

	assert.True(t, client.TryCalculate(context.Background(), answers()).Ok())
}

func TestTryCalculateGzip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))

		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(validResult))
		require.NoError(t, zw.Close())

		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	})

	outcome := client.TryCalculate(context.Background(), answers())
	require.True(t, outcome.Ok(), "unexpected failure: %v", outcome.Err)
	assert.Len(t, outcome.Result.PartyScores, 2)
}

func TestTryCalculateFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		reason Reason
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", reason: ReasonStatus},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"Answers cannot be empty"}`, reason: ReasonStatus},
		{name: "not json", status: http.StatusOK, body: "<html>", reason: ReasonMalformed},
		{name: "array", status: http.StatusOK, body: `[]`, reason: ReasonMalformed},
		{name: "application error", status: http.StatusOK, body: `{"error":"Failed to calculate","message":"db down"}`, reason: ReasonApplication},
		{name: "missing party scores", status: http.StatusOK, body: `{"categoryBreakdown":{}}`, reason: ReasonMalformed},
		{name: "missing breakdown", status: http.StatusOK, body: `{"partyScores":[]}`, reason: ReasonMalformed},
		{name: "null party scores", status: http.StatusOK, body: `{"partyScores":null,"categoryBreakdown":{}}`, reason: ReasonMalformed},
		{name: "wrong shape", status: http.StatusOK, body: `{"partyScores":"many","categoryBreakdown":{}}`, reason: ReasonMalformed},
		{name: "percentage out of range", status: http.StatusOK, body: withParties(`[{"partyId":"sp","matchPercentage":140}]`), reason: ReasonMalformed},
		{name: "empty party id", status: http.StatusOK, body: withParties(`[{"partyId":"","matchPercentage":40}]`), reason: ReasonMalformed},
		{name: "fractional percentage", status: http.StatusOK, body: withParties(`[{"partyId":"sp","matchPercentage":99.9}]`), reason: ReasonMalformed},
		{name: "fractional category count", status: http.StatusOK, body: withParties(`[{"partyId":"sp","matchPercentage":50,"categoryMatches":{"Zorg":{"score":100,"weight":1,"count":1.5}}}]`), reason: ReasonMalformed},
		{name: "no parties", status: http.StatusOK, body: withParties(`[]`), reason: ReasonMalformed},
		{name: "empty breakdown", status: http.StatusOK, body: `{"partyScores":[{"partyId":"sp","matchPercentage":50}],"categoryBreakdown":{}}`, reason: ReasonMalformed},
		{name: "partial breakdown", status: http.StatusOK, body: `{"partyScores":[{"partyId":"sp","matchPercentage":50}],"categoryBreakdown":{"Zorg":{"questionsCount":2}}}`, reason: ReasonMalformed},
		{name: "unknown breakdown category", status: http.StatusOK, body: `{"partyScores":[{"partyId":"sp","matchPercentage":50}],"categoryBreakdown":{"Foo":{"questionsCount":1},"Klimaat":{},"Immigratie":{},"Zorg":{},"Woningmarkt":{},"Economie":{},"Europa":{},"Onderwijs":{},"Natuur":{}}}`, reason: ReasonMalformed},
		{name: "unknown party category", status: http.StatusOK, body: withParties(`[{"partyId":"sp","matchPercentage":50,"categoryMatches":{"Foo":{"score":100,"weight":1,"count":1}}}]`), reason: ReasonMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			outcome := client.TryCalculate(context.Background(), answers())
			require.False(t, outcome.Ok())
			require.NotNil(t, outcome.Err)
			assert.Nil(t, outcome.Result)
			assert.Equal(t, tt.reason, outcome.Err.Reason)
			assert.NotEmpty(t, outcome.Err.Error())
		})
	}
}

func TestTryCalculateStatusCarriesCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	outcome := client.TryCalculate(context.Background(), answers())
	require.NotNil(t, outcome.Err)
	assert.Equal(t, http.StatusBadGateway, outcome.Err.Status)
	assert.Contains(t, outcome.Err.Error(), "status 502")
}

func TestTryCalculateTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	outcome := New(nil, url).TryCalculate(context.Background(), answers())
	require.NotNil(t, outcome.Err)
	assert.Equal(t, ReasonTransport, outcome.Err.Reason)
	assert.Error(t, errors.Unwrap(outcome.Err))
}

func TestTryCalculateTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	outcome := client.TryCalculate(context.Background(), answers())
	require.NotNil(t, outcome.Err)
	assert.Equal(t, ReasonTransport, outcome.Err.Reason)
}

func TestTryCalculateCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(validResult))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := client.TryCalculate(ctx, answers())
	require.NotNil(t, outcome.Err)
	assert.Equal(t, ReasonTransport, outcome.Err.Reason)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}

func TestSetFavoriteParty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, favoritePartyPath+"/42", r.URL.Path)

		var req favoriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "groenlinks", req.PartyID)

		_, _ = w.Write([]byte(`{"message":"Favorite party updated","favoriteParty":"groenlinks"}`))
	})

	ack, err := client.SetFavoriteParty(context.Background(), 42, " groenlinks ")
	require.NoError(t, err)
	assert.Equal(t, &FavoriteResponse{Message: "Favorite party updated", FavoriteParty: "groenlinks"}, ack)
}

func TestSetFavoritePartyStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Party ID is required", http.StatusBadRequest)
	})

	_, err := client.SetFavoriteParty(context.Background(), 42, "sp")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Status)
	assert.Equal(t, "server error: 400 - Party ID is required", err.Error())
}

func TestSetFavoritePartyRejectsInput(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := client.SetFavoriteParty(context.Background(), 0, "sp")
	assert.Error(t, err)
	_, err = client.SetFavoriteParty(context.Background(), 1, "  ")
	assert.Error(t, err)
	assert.Zero(t, calls)
}
