package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/logger"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

// Reason classifies why a remote calculation was not accepted.
type Reason string

const (
	ReasonTransport   Reason = "transport"
	ReasonStatus      Reason = "status"
	ReasonMalformed   Reason = "malformed"
	ReasonApplication Reason = "application"
)

// Reasons lists every failure reason, for metric label initialisation.
var Reasons = []Reason{ReasonTransport, ReasonStatus, ReasonMalformed, ReasonApplication}

var validate = validator.New(validator.WithRequiredStructEnabled())

// RemoteError describes a rejected remote calculation.
type RemoteError struct {
	Reason Reason
	// Status is the HTTP status code, 0 for transport failures.
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "remote %s failure", e.Reason)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Outcome is either a result accepted from the remote service or the reason
// it was rejected. Exactly one of Result and Err is set.
type Outcome struct {
	Result *sw.ScoreResult
	Err    *RemoteError
}

func (o Outcome) Ok() bool {
	return o.Err == nil && o.Result != nil
}

func failed(reason Reason, status int, message string, err error) Outcome {
	return Outcome{Err: &RemoteError{Reason: reason, Status: status, Message: message, Err: err}}
}

// TryCalculate asks the remote service to score the answers. It never
// returns a Go error: every failure is folded into the Outcome.
func (c *Client) TryCalculate(ctx context.Context, answers sw.Answers) Outcome {
	log := c.logger.With(zap.Int(logger.FieldAnswers, len(answers)))

	resp, err := c.postJSON(ctx, c.url(calculatePath), sw.EncodeAnswers(answers))
	if err != nil {
		log.Debug("remote calculation request failed", zap.Error(err))
		return failed(ReasonTransport, 0, "", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return failed(ReasonTransport, resp.StatusCode, "read body", err)
	}

	if !isSuccess(resp.StatusCode) {
		return failed(ReasonStatus, resp.StatusCode, logger.Truncate(string(body), 200), nil)
	}

	outcome := decodeCalculation(body)
	if outcome.Ok() {
		log.Debug("remote calculation accepted", zap.Int("parties", len(outcome.Result.PartyScores)))
	}
	return outcome
}

func decodeCalculation(body []byte) Outcome {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return failed(ReasonMalformed, 0, "response is not a JSON object", err)
	}

	if appErr, ok := raw["error"]; ok && appErr != nil {
		message := fmt.Sprint(appErr)
		if detail, ok := raw["message"].(string); ok && detail != "" {
			message = fmt.Sprintf("%s: %s", message, detail)
		}
		return failed(ReasonApplication, 0, message, nil)
	}

	for _, key := range []string{"partyScores", "categoryBreakdown"} {
		if v, ok := raw[key]; !ok || v == nil {
			return failed(ReasonMalformed, 0, fmt.Sprintf("missing %s", key), nil)
		}
	}

	var result sw.ScoreResult
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &result,
		DecodeHook: wholeNumberHook,
	})
	if err != nil {
		return failed(ReasonMalformed, 0, "", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return failed(ReasonMalformed, 0, "unexpected shape", err)
	}

	if err := validate.Struct(result); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return failed(ReasonMalformed, 0, fmt.Sprintf("invalid field %s", verrs[0].Namespace()), err)
		}
		return failed(ReasonMalformed, 0, "", err)
	}

	if err := checkCategories(result); err != nil {
		return failed(ReasonMalformed, 0, "unexpected categories", err)
	}

	return Outcome{Result: &result}
}

// wholeNumberHook refuses fractional JSON numbers for integer fields instead
// of letting mapstructure truncate them.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if f := data.(float64); f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}

// checkCategories holds a remote result to the shape the local scorer
// produces: at least one party, a breakdown over exactly the fixed category
// set and per-party matches keyed by known categories only.
func checkCategories(result sw.ScoreResult) error {
	if len(result.PartyScores) == 0 {
		return errors.New("no party scores")
	}

	if len(result.CategoryBreakdown) != len(sw.Categories) {
		return fmt.Errorf("breakdown lists %d categories, want %d", len(result.CategoryBreakdown), len(sw.Categories))
	}
	for cat := range result.CategoryBreakdown {
		if !cat.Valid() {
			return fmt.Errorf("breakdown: unknown category %q", cat)
		}
	}

	for _, p := range result.PartyScores {
		for cat := range p.CategoryMatches {
			if !cat.Valid() {
				return fmt.Errorf("party %s: unknown category %q", p.PartyID, cat)
			}
		}
	}
	return nil
}
