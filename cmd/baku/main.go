package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bakuworry/internal/client"
	"bakuworry/internal/config"
	"bakuworry/internal/domain"
	"bakuworry/internal/repository/sqlite"
	"bakuworry/internal/service"
	"bakuworry/internal/session"
	"bakuworry/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app wires the client components for one session
type app struct {
	cfg        *config.ClientConfig
	logger     *zap.Logger
	store      *sqlite.KVStore
	identity   *service.IdentityProvider
	progress   *service.ProgressService
	onboarding *service.OnboardingService
	machine    *session.Machine
}

var (
	dataPath string
	botField string
)

var rootCmd = &cobra.Command{
	Use:   "baku",
	Short: "Feed your worries to the Baku",
	Long: `The Baku is the eater of nightmares. Write down what burdens you
and it will devour the worry, growing stronger with every meal.

Run without arguments to open the interactive screen.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			model := tui.New(ctx, a.machine, a.identity, a.progress, a.logger)
			_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		})
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed [worry]",
	Short: "Feed a single worry without the interactive screen",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			a.identity.Start(ctx)

			if a.machine.ShowingOnboarding() {
				a.onboarding.Complete(ctx)
			}

			out := cmd.OutOrStdout()
			a.machine.Subscribe(func(t domain.Transition) {
				fmt.Fprintf(out, "%s -> %s\n", t.From, t.To)
			})
			a.progress.OnLevelUp(func(e domain.LevelUp) {
				fmt.Fprintf(out, "LEVEL UP! The Baku reached level %d\n", e.Level)
			})

			a.machine.SetBotField(botField)
			a.machine.SetText(strings.Join(args, " "))
			if err := a.machine.Feed(ctx); err != nil {
				return err
			}

			p := a.progress.Progress()
			fmt.Fprintf(out, "\n%s\n\nLevel %d, %d XP\n", a.machine.Response(), p.Level, p.XP)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the Baku's level and XP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			p := a.progress.Progress()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Level: %d\n", p.Level)
			fmt.Fprintf(out, "XP:    %d (%d/%d to next level)\n", p.XP, p.XPIntoLevel(), domain.XPPerLevel)
			fmt.Fprintf(out, "Onboarding seen: %t\n", a.onboarding.HasSeen())
			return nil
		})
	},
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Walk through the introduction and mark it as seen",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			out := cmd.OutOrStdout()
			for i, step := range domain.OnboardingSteps {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, step.Title, step.Description)
			}
			a.onboarding.Complete(ctx)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the local data file (overrides BAKU_DATA_PATH)")

	feedCmd.Flags().StringVar(&botField, "bot-field", "", "Fill the hidden form field")
	_ = feedCmd.Flags().MarkHidden("bot-field")

	rootCmd.AddCommand(feedCmd, statusCmd, onboardCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// withApp builds the client components, runs fn, and releases them
func withApp(ctx context.Context, fn func(context.Context, *app) error) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath != "" {
		cfg.DataPath = dataPath
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	store, err := sqlite.NewKVStore(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("failed to open local data: %w", err)
	}
	defer store.Close()

	api := client.New(cfg.APIURL, cfg.SiteKey, &http.Client{Timeout: 30 * time.Second}, logger)

	a := &app{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		identity:   service.NewIdentityProvider(store, api, logger),
		progress:   service.NewProgressService(store, logger),
		onboarding: service.NewOnboardingService(store, logger),
	}
	a.progress.Load(ctx)
	a.onboarding.Load(ctx)

	submission := service.NewSubmissionService(api, a.identity, cfg.IsDevelopment(), logger)
	a.machine = session.NewMachine(submission, a.progress, a.onboarding, session.DefaultConfig(), logger)

	logger.Info("Baku client started",
		zap.String("api", cfg.APIURL),
		zap.String("data", cfg.DataPath),
	)

	return fn(ctx, a)
}

// newLogger writes to the configured log file since the terminal belongs to the UI
func newLogger(cfg *config.ClientConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{cfg.LogFile}
	zcfg.ErrorOutputPaths = []string{cfg.LogFile}
	return zcfg.Build()
}
