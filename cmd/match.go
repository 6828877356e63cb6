package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/matcher"
	"github.com/spigell/stemwijzer/internal/questionnaire"
	"github.com/spigell/stemwijzer/internal/remote"
	"github.com/spigell/stemwijzer/internal/render"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

const (
	PromptNoFavorite = "No thanks"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Answer the statements and see which parties match you best",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("answers-file", "a", "", "read answers from a YAML or JSON file instead of asking")
	matchCmd.Flags().String("save", "", "save the given answers to a YAML or JSON file")
	matchCmd.Flags().IntP("top", "n", render.DefaultTop, "how many parties to show, 0 shows all")
	matchCmd.Flags().StringP("output", "o", string(render.FormatTable), "output format: table or json")
	matchCmd.Flags().Bool("local", false, "never ask the remote backend, always score locally")
	matchCmd.Flags().Int64("user-id", 0, "offer to store a favorite party for this user on the remote backend")

	viper.BindPFlag("top", matchCmd.Flags().Lookup("top"))
}

func match(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()
	logger.Debug("starting the stemwijzer", zap.String("version", version))

	output, _ := cmd.Flags().GetString("output")
	format := render.Format(strings.ToLower(output))
	if format != render.FormatTable && format != render.FormatJSON {
		logger.Fatal("unknown output format", zap.String("output", string(format)))
	}

	store, err := newStore(config, logger)
	if err != nil {
		logger.Fatal("preparing fixtures", zap.Error(err))
	}

	opts := []matcher.Option{
		matcher.WithLogger(logger),
		matcher.WithScorer(newScorer(config)),
	}

	var client *remote.Client
	local, _ := cmd.Flags().GetBool("local")
	if config.Remote.Enabled && !local {
		client, err = newRemote(config.Remote, logger)
		if err != nil {
			logger.Fatal("preparing the remote client", zap.Error(err),
				zap.String("hint", "set remote.base-url and remote.token-file in the configuration file or STEMWIJZER_REMOTE_* variables"),
			)
		}
		opts = append(opts, matcher.WithRemote(client))
	}

	m := matcher.New(store, opts...)

	answers, err := collectAnswers(cmd, m, logger)
	if err != nil {
		logger.Fatal("collecting answers", zap.Error(err))
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := questionnaire.SaveFile(path, answers); err != nil {
			logger.Fatal("saving answers", zap.Error(err))
		}
		logger.Info("answers saved", zap.String("file", path), zap.Int("answers", len(answers)))
	}

	if len(answers) == 0 {
		logger.Info("exiting", zap.String("reason", "no questions answered"))
		return
	}

	calc, err := m.CalculateMatches(ctx, answers)
	if err != nil {
		logger.Fatal("calculating matches", zap.Error(err))
	}

	source := "locally"
	if calc.Source == matcher.SourceRemote {
		source = "by " + config.Remote.BaseURL
	}

	if err := render.Result(os.Stdout, calc.Result, render.Options{
		Format: format,
		Top:    viper.GetInt("top"),
		Source: source,
	}); err != nil {
		logger.Fatal("printing the result", zap.Error(err))
	}

	userID, _ := cmd.Flags().GetInt64("user-id")
	if userID > 0 && format == render.FormatTable {
		if client == nil {
			logger.Warn("favorite party is stored on the remote backend, enable remote to use --user-id")
			return
		}
		if err := offerFavorite(ctx, client, userID, calc.Result, logger); err != nil {
			logger.Fatal("storing the favorite party", zap.Error(err))
		}
	}
}

func collectAnswers(cmd *cobra.Command, m *matcher.Matcher, logger *zap.Logger) (sw.Answers, error) {
	if path, _ := cmd.Flags().GetString("answers-file"); path != "" {
		answers, err := questionnaire.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Info("answers loaded", zap.String("file", path), zap.Int("answers", len(answers)))
		return answers, nil
	}

	return questionnaire.New(nil, logger).Run(m.Tables().Catalog)
}

// offerFavorite lets the user pick one of the ranked parties as favorite.
func offerFavorite(ctx context.Context, client *remote.Client, userID int64, result sw.ScoreResult, logger *zap.Logger) error {
	scores := result.Top(render.DefaultTop)
	items := make([]string, 0, len(scores)+1)
	for _, p := range scores {
		items = append(items, fmt.Sprintf("%s (%d%%)", p.PartyName, p.MatchPercentage))
	}
	items = append(items, PromptNoFavorite)

	prompt := promptui.Select{
		Label: "Choose your favorite party and press ENTER",
		Items: items,
	}

	idx, selected, err := prompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptNoFavorite {
		return nil
	}

	ack, err := client.SetFavoriteParty(ctx, userID, scores[idx].PartyID)
	if err != nil {
		return err
	}

	logger.Info(ack.Message, zap.String("party", ack.FavoriteParty))
	return nil
}
