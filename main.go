package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	logLevel   string
	addrFlag   string
	version    = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:           "royale-server",
	Short:         "Battle royale simulation server",
	Long:          "Authoritative battle royale simulation with a websocket spectator stream.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation and spectator server",
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "royale-server v%s\n", version)
	},
}

var defsCmd = &cobra.Command{
	Use:   "defs",
	Short: "Validate and list obstacle definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		defs, err := loadDefs(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range defs.Names() {
			t, _ := defs.Lookup(name)
			def, _ := defs.Def(t)
			marker := ""
			if t == defs.Default() {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%3d %-20s hp=%-6g airdrop=%-5t%s\n", t, name, def.Health, def.Airdrop, marker)
		}
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <journal.zst>",
	Short: "Summarize a sync journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frames, err := ReadJournalFile(args[0])
		if err != nil {
			return err
		}
		var full, part, deleted, pings int
		for _, f := range frames {
			full += len(f.Full)
			part += len(f.Part)
			deleted += len(f.Deleted)
			pings += len(f.Pings)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "frames=%d full=%d part=%d deleted=%d pings=%d\n", len(frames), full, part, deleted, pings)
		if len(frames) > 0 {
			fmt.Fprintf(out, "ticks %d..%d\n", frames[0].Tick, frames[len(frames)-1].Tick)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML configuration file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error); overrides config")
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "HTTP listen address; overrides config")

	rootCmd.AddCommand(serveCmd, versionCmd, defsCmd, replayCmd)
}

func loadDefs(cfg *Config) (*Defs, error) {
	if cfg.Server.DefsFile == "" {
		return LoadDefaultDefs()
	}
	return LoadDefsFile(cfg.Server.DefsFile)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if addrFlag != "" {
		cfg.Server.Addr = addrFlag
	}
	level, err := ParseLogLevel(cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	defs, err := loadDefs(cfg)
	if err != nil {
		return fmt.Errorf("load obstacle defs: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameID := NewGameID()

	var tracker EventTracker
	if cfg.Storage.AnalyticsDB != "" {
		db, err := OpenDB(cfg.Storage.AnalyticsDB)
		if err != nil {
			return fmt.Errorf("analytics db: %w", err)
		}
		defer db.Close()
		analytics := NewAnalytics(db, gameID, logger)
		defer analytics.Stop()
		tracker = analytics
	}

	game := NewGame(gameID, cfg, defs, tracker, logger)

	hub := NewHub(logger)
	game.AddSink(hub)

	var journal *Journal
	if cfg.Storage.JournalDir != "" {
		journal, err = OpenJournal(cfg.Storage.JournalDir, game.ID, logger)
		if err != nil {
			return err
		}
		game.AddSink(journal)
		logger.Info("journaling sync frames", "path", journal.Path())
	}

	server := &http.Server{Addr: cfg.Server.Addr, Handler: SetupRoutes(game, hub, logger)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return game.Run(gctx) })
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error {
		logger.Info("server starting", "addr", cfg.Server.Addr, "version", version, "game", game.ID)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if journal != nil {
		if cerr := journal.Close(); cerr != nil {
			logger.Error("journal close", "err", cerr)
		}
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
