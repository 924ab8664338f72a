package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	learnerinadapter "learnhub/internal/modules/learner/adapter/in"
	learneroutadapter "learnhub/internal/modules/learner/adapter/out"
	learnerservice "learnhub/internal/modules/learner/service"
	learnerusecase "learnhub/internal/modules/learner/usecase"
	sessioninadapter "learnhub/internal/modules/session/adapter/in"
	sessionoutadapter "learnhub/internal/modules/session/adapter/out"
	sessionservice "learnhub/internal/modules/session/service"
	sessionusecase "learnhub/internal/modules/session/usecase"
	"learnhub/internal/platform/api"
	"learnhub/internal/platform/clock"
	"learnhub/internal/platform/config"
	"learnhub/internal/platform/id"
	"learnhub/internal/platform/logging"
	uiapp "learnhub/internal/ui/app"
	"learnhub/internal/ui/nav"
)

type App struct {
	Config     config.Config
	Logger     *zap.Logger
	API        *api.Client
	LearnerCLI learnerinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	client := api.NewClient(cfg.APIURL, cfg.APITimeout, id.UUID{}, logger.Named("api"))

	identity, err := learneroutadapter.NewSQLiteIdentityStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new identity store: %w", err)
	}
	learnerUC := learnerusecase.NewInteractor(learnerservice.NewLearnerService(
		learneroutadapter.NewHTTPLearnerGateway(client),
		identity,
		logger.Named("learner"),
	))

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(
			sessionoutadapter.NewHTTPSessionGateway(client, logger.Named("session")),
			sessionoutadapter.NewVaultNoteStore(),
			logger.Named("session"),
		),
		learnerUC,
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		API:        client,
		LearnerCLI: learnerinadapter.NewCLIHandler(learnerUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
	}, nil
}

func RunTUI(app *App, start nav.Route) error {
	model := uiapp.NewModel(app.LearnerCLI, app.SessionCLI, app.API, uiapp.Options{
		StartRoute:       start,
		AskLearningStyle: app.Config.AskLearningStyle,
		APIURL:           app.API.BaseURL(),
		Clock:            clock.SystemClock{},
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	app.Logger.Info("tui started", zap.String("route", string(start)), zap.String("api_url", app.API.BaseURL()))
	_, err := program.Run()
	return err
}
