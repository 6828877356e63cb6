package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/favorites"
	"github.com/spigell/stemwijzer/internal/fixtures"
	"github.com/spigell/stemwijzer/internal/matcher"
	"github.com/spigell/stemwijzer/internal/metrics"
	"github.com/spigell/stemwijzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring and favorite party API over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8081)")
	serveCmd.Flags().String("database", "", "SQLite file for favorite parties, ':memory:' keeps them in memory")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("favorites.database", serveCmd.Flags().Lookup("database"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()
	logger.Info("starting the stemwijzer server", zap.String("version", version))

	store, err := newStore(config, logger)
	if err != nil {
		logger.Fatal("preparing fixtures", zap.Error(err))
	}

	recorder := metrics.New()

	favs, err := favorites.Open(ctx, config.Favorites.Database)
	if err != nil {
		logger.Fatal("opening the favorites database", zap.Error(err))
	}
	defer favs.Close()
	recorder.TrackFavorites(favs.Count)

	m := matcher.New(store,
		matcher.WithLogger(logger),
		matcher.WithScorer(newScorer(config)),
		matcher.WithMetrics(recorder),
	)

	go reloadOnHangup(ctx, store, recorder, logger)

	srv := server.New(config.Server, m, favs, recorder, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal("HTTP server error", zap.Error(err))
	}

	logger.Info("stemwijzer server stopped")
}

// reloadOnHangup re-reads the fixture files on every SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, store *fixtures.Store, recorder *metrics.Recorder, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("reloading fixtures", zap.String("reason", "SIGHUP"))
			err := store.Reload()
			recorder.FixtureReload(err == nil)
		}
	}
}
