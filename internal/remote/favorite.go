package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// StatusError is returned when the backend answers a favorite-party update
// with a non-2xx status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: %d - %s", e.Status, e.Body)
}

type favoriteRequest struct {
	PartyID string `json:"partyId"`
}

// FavoriteResponse is the backend acknowledgement of a favorite-party update.
type FavoriteResponse struct {
	Message       string `json:"message"`
	FavoriteParty string `json:"favoriteParty"`
}

// SetFavoriteParty records partyID as the favorite of userID. It is not
// retried.
func (c *Client) SetFavoriteParty(ctx context.Context, userID int64, partyID string) (*FavoriteResponse, error) {
	partyID = strings.TrimSpace(partyID)
	if userID <= 0 {
		return nil, fmt.Errorf("user id must be positive, got %d", userID)
	}
	if partyID == "" {
		return nil, fmt.Errorf("party id is required")
	}

	url := fmt.Sprintf("%s/%d", c.url(favoritePartyPath), userID)
	resp, err := c.postJSON(ctx, url, favoriteRequest{PartyID: partyID})
	if err != nil {
		return nil, fmt.Errorf("update favorite party: %w", err)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read favorite party response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		text := strings.TrimSpace(string(body))
		if text == "" {
			text = resp.Status
		}
		return nil, &StatusError{Status: resp.StatusCode, Body: text}
	}

	var ack FavoriteResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &ack); err != nil {
			return nil, fmt.Errorf("decode favorite party response: %w", err)
		}
	}

	if ack.FavoriteParty == "" {
		ack.FavoriteParty = partyID
	}
	if ack.Message == "" {
		ack.Message = "favorite party updated"
	}

	c.logger.Debug("favorite party updated", zap.Int64("user_id", userID), zap.String("party_id", partyID))
	return &ack, nil
}
