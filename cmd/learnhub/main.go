package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"learnhub/internal/bootstrap"
	"learnhub/internal/platform/config"
	apperrors "learnhub/internal/platform/errors"
	"learnhub/internal/platform/logging"
	"learnhub/internal/ui/nav"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.Reason(err))
		os.Exit(1)
	}
}

type rootOptions struct {
	statePath string
	apiURL    string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "learnhub",
		Short:         "Personalized programming lessons in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.statePath, "state", config.DefaultStateDir(), "directory holding config.yaml, state.db and logs")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "learning API base URL (overrides "+config.EnvAPIURL+" and config.yaml)")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log requests to stderr")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newLearnerCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newContentCmd(opts))
	root.AddCommand(newDoctorCmd(opts))
	return root
}

// loadApp wires the application. Interactive runs always log to the state
// directory because the TUI owns the terminal.
func loadApp(opts *rootOptions, interactive bool) (*bootstrap.App, error) {
	cfg, err := config.New(opts.statePath, opts.apiURL)
	if err != nil {
		return nil, err
	}
	var logger *zap.Logger
	if opts.verbose && !interactive {
		logger, err = logging.NewConsole()
	} else {
		logger, err = logging.NewFile(cfg.LogPath, opts.verbose)
	}
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the learnhub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			route, ok := nav.ParseRoute(start)
			if !ok {
				return fmt.Errorf("unknown start route %q", start)
			}
			app, err := loadApp(opts, true)
			if err != nil {
				return err
			}
			defer func() { _ = app.Logger.Sync() }()
			return bootstrap.RunTUI(app, route)
		},
	}
	cmd.Flags().StringVar(&start, "start", "landing", "first screen: landing|onboarding|dashboard")
	return cmd
}

func newLearnerCmd(opts *rootOptions) *cobra.Command {
	learner := &cobra.Command{Use: "learner", Short: "Learner profile commands"}

	var username, goals, experience, style string
	create := &cobra.Command{
		Use:   "create --username <name> --goals <text>",
		Short: "Create a learner profile and remember its id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(username) == "" {
				return fmt.Errorf("--username is required")
			}
			if strings.TrimSpace(goals) == "" {
				return fmt.Errorf("--goals is required")
			}
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			out, err := app.LearnerCLI.Register(context.Background(), username, goals, experience, style)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "learner created: %s (%s)\n", out.LearnerID, out.Username)
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "username")
	create.Flags().StringVar(&goals, "goals", "", "learning goals, e.g. Python")
	create.Flags().StringVar(&experience, "experience", "beginner", "experience level: beginner|intermediate|advanced")
	create.Flags().StringVar(&style, "style", "", "learning style: combination|visual|audio|hands-on (optional)")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the remembered learner id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			out, err := app.LearnerCLI.Current(context.Background())
			if errors.Is(err, apperrors.ErrNoLearner) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no learner registered")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.LearnerID)
			return nil
		},
	}

	forget := &cobra.Command{
		Use:   "forget",
		Short: "Forget the remembered learner id",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			if err := app.LearnerCLI.Forget(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "learner forgotten")
			return nil
		},
	}

	learner.AddCommand(create, show, forget)
	return learner
}

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Learning session commands"}

	var learnerID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the learner's sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			sessions, err := app.SessionCLI.List(context.Background(), learnerID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				created := "-"
				if !s.CreatedAt.IsZero() {
					created = s.CreatedAt.Local().Format("2006-01-02")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d%%\t%s\n", s.ID, s.Topic, s.Progress, created)
			}
			return nil
		},
	}
	list.Flags().StringVar(&learnerID, "learner-id", "", "learner id (defaults to the remembered learner)")

	var startLearnerID, topic string
	start := &cobra.Command{
		Use:   "start",
		Short: "Start a new learning session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), startLearnerID, topic)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s topic=%q\n", out.SessionID, out.Topic)
			if out.Message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			}
			return nil
		},
	}
	start.Flags().StringVar(&startLearnerID, "learner-id", "", "learner id (defaults to the remembered learner)")
	start.Flags().StringVar(&topic, "topic", "", "session topic (defaults to Introduction to Programming)")

	var exportLearnerID, dir string
	export := &cobra.Command{
		Use:   "export --dir <path>",
		Short: "Write every session as a markdown note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("--dir is required")
			}
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Export(context.Background(), exportLearnerID, dir)
			if err != nil {
				return err
			}
			for _, p := range out.Paths {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions\n", len(out.Paths))
			return nil
		},
	}
	export.Flags().StringVar(&exportLearnerID, "learner-id", "", "learner id (defaults to the remembered learner)")
	export.Flags().StringVar(&dir, "dir", "", "target directory")

	session.AddCommand(list, start, export)
	return session
}

func newContentCmd(opts *rootOptions) *cobra.Command {
	content := &cobra.Command{Use: "content", Short: "Lesson content commands"}

	var learnerID string
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Ask the backend to generate new lesson content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Generate(context.Background(), learnerID)
			if err != nil {
				return err
			}
			if out.Message != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
			}
			if strings.TrimSpace(out.Content) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Content)
			}
			return nil
		},
	}
	generate.Flags().StringVar(&learnerID, "learner-id", "", "learner id (defaults to the remembered learner)")

	content.AddCommand(generate)
	return content
}

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the API and the remembered learner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "state:   %s\napi url: %s\n", app.Config.StateDir, app.API.BaseURL())

			var (
				health             string
				healthErr, listErr error
				sessions           int
			)
			var g errgroup.Group
			g.Go(func() error {
				health, healthErr = app.API.Health(context.Background())
				if healthErr != nil {
					return fmt.Errorf("api unreachable: %w", healthErr)
				}
				return nil
			})
			// Learner problems are reported below but do not fail the command.
			g.Go(func() error {
				out, err := app.SessionCLI.List(context.Background(), "")
				sessions, listErr = len(out), err
				return nil
			})
			waitErr := g.Wait()

			if healthErr != nil {
				_, _ = fmt.Fprintf(w, "health:  FAIL %s\n", apperrors.Reason(healthErr))
			} else {
				_, _ = fmt.Fprintf(w, "health:  %s\n", health)
			}
			switch {
			case errors.Is(listErr, apperrors.ErrNoLearner):
				_, _ = fmt.Fprintln(w, "learner: none registered (run learner create or the tui)")
			case listErr != nil:
				_, _ = fmt.Fprintf(w, "learner: FAIL %s\n", apperrors.Reason(listErr))
			default:
				_, _ = fmt.Fprintf(w, "learner: ok, %d sessions\n", sessions)
			}
			return waitErr
		},
	}
}
