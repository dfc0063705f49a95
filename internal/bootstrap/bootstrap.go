package bootstrap

import (
	"errors"
	"fmt"
	"os"

	alertinadapter "wearlog/internal/modules/alert/adapter/in"
	alertoutadapter "wearlog/internal/modules/alert/adapter/out"
	alertdomain "wearlog/internal/modules/alert/domain"
	alertout "wearlog/internal/modules/alert/port/out"
	alertservice "wearlog/internal/modules/alert/service"
	alertusecase "wearlog/internal/modules/alert/usecase"
	profileinadapter "wearlog/internal/modules/profile/adapter/in"
	profileoutadapter "wearlog/internal/modules/profile/adapter/out"
	profileservice "wearlog/internal/modules/profile/service"
	profileusecase "wearlog/internal/modules/profile/usecase"
	trackinginadapter "wearlog/internal/modules/tracking/adapter/in"
	trackingoutadapter "wearlog/internal/modules/tracking/adapter/out"
	trackingservice "wearlog/internal/modules/tracking/service"
	trackingusecase "wearlog/internal/modules/tracking/usecase"
	"wearlog/internal/platform/clock"
	"wearlog/internal/platform/config"
	apperrors "wearlog/internal/platform/errors"
)

type App struct {
	TrackingCLI trackinginadapter.CLIHandler
	ProfileCLI  profileinadapter.CLIHandler
	AlertCLI    alertinadapter.CLIHandler

	closeFn func() error
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}

	sessionStore, err := trackingoutadapter.NewSQLiteSessionStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}
	txm := trackingoutadapter.NewSQLiteTxManager(sessionStore.DB())

	profileStore, err := profileoutadapter.NewSQLiteProfileStore(sessionStore.DB())
	if err != nil {
		return nil, fmt.Errorf("new profile store: %w", err)
	}
	catalog, err := profileoutadapter.NewYAMLMethodCatalog(cfg.MethodsPath)
	if err != nil {
		return nil, fmt.Errorf("new method catalog: %w", err)
	}
	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(profileStore, catalog))

	trackingSvc := trackingservice.NewTrackingService(clk, sessionStore, txm)
	trackingUC := trackingusecase.NewInteractor(trackingSvc, profileUC, sessionStore)

	alertSvc := alertservice.NewAlertService(clk, newNotifier(cfg), alertdomain.DefaultBands())
	alertUC := alertusecase.NewInteractor(alertSvc, trackingUC, profileUC)

	return &App{
		TrackingCLI: trackinginadapter.NewCLIHandler(trackingUC),
		ProfileCLI:  profileinadapter.NewCLIHandler(profileUC),
		AlertCLI:    alertinadapter.NewCLIHandler(alertUC),
		closeFn:     sessionStore.Close,
	}, nil
}

// newNotifier prefers the configured plugin and falls back to printing on
// stdout when no manifest exists.
func newNotifier(cfg config.Config) alertout.Notifier {
	manifest, err := alertoutadapter.LoadManifest(cfg.NotifierPath)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoNotifier) {
			fmt.Fprintf(os.Stderr, "notifier manifest ignored: %v\n", err)
		}
		return alertoutadapter.NewConsoleNotifier(os.Stdout)
	}
	return alertoutadapter.NewPluginNotifier(manifest)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}
