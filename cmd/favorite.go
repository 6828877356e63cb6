package cmd

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/remote"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite <user-id> <party>",
	Short: "Store a favorite party for a user on the remote backend",
	Args:  cobra.ExactArgs(2),
	Run: func(_ *cobra.Command, args []string) {
		favorite(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}

func favorite(rawUserID, party string) {
	logger, config := setup()

	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil || userID <= 0 {
		logger.Fatal("user id must be a positive integer", zap.String("user_id", rawUserID))
	}

	store, err := newStore(config, logger)
	if err != nil {
		logger.Fatal("preparing fixtures", zap.Error(err))
	}

	// Accept both "GroenLinks" and "groenlinks".
	partyID := sw.PartyID(party)
	if _, err := store.Tables().Positions.Party(partyID); err != nil {
		logger.Warn("party is not in the local position table, sending anyway", zap.String("party", partyID))
	}

	client, err := newRemote(config.Remote, logger)
	if err != nil {
		logger.Fatal("preparing the remote client", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ack, err := client.SetFavoriteParty(ctx, userID, partyID)
	if err != nil {
		var statusErr *remote.StatusError
		if errors.As(err, &statusErr) {
			logger.Fatal("backend rejected the favorite party", zap.Int("status", statusErr.Status), zap.Error(err))
		}
		logger.Fatal("updating the favorite party", zap.Error(err))
	}

	logger.Info(ack.Message, zap.Int64("user_id", userID), zap.String("party", ack.FavoriteParty))
}
