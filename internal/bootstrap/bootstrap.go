package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	historyinadapter "cronos/internal/modules/history/adapter/in"
	historyoutadapter "cronos/internal/modules/history/adapter/out"
	historyservice "cronos/internal/modules/history/service"
	historyusecase "cronos/internal/modules/history/usecase"
	routineinadapter "cronos/internal/modules/routine/adapter/in"
	routineoutadapter "cronos/internal/modules/routine/adapter/out"
	routineservice "cronos/internal/modules/routine/service"
	routineusecase "cronos/internal/modules/routine/usecase"
	sessioninadapter "cronos/internal/modules/session/adapter/in"
	sessionoutadapter "cronos/internal/modules/session/adapter/out"
	sessiondomain "cronos/internal/modules/session/domain"
	sessionout "cronos/internal/modules/session/port/out"
	sessionservice "cronos/internal/modules/session/service"
	sessionusecase "cronos/internal/modules/session/usecase"
	"cronos/internal/platform/clock"
	"cronos/internal/platform/config"
	"cronos/internal/platform/id"
	"cronos/internal/platform/kv"
	uiapp "cronos/internal/ui/app"
)

// countdownTicks is how many final seconds of a block get a tick cue.
const countdownTicks = 3

type App struct {
	RoutineCLI routineinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	HistoryCLI historyinadapter.CLIHandler

	runner  *sessionservice.Runner
	driver  *sessionservice.Driver
	logger  hclog.Logger
	closers []io.Closer
}

func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	app := &App{logger: logger}
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	routineUC := routineusecase.NewInteractor(routineservice.NewRoutineService(clk, ids, routineoutadapter.NewKVRoutineStore(store)))
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(clk, ids, historyoutadapter.NewKVEntryStore(store)))

	ports := sessionservice.Ports{
		Cues:     sessionoutadapter.NoopCuePlayer{},
		Notifier: sessionoutadapter.NoopNotifier{},
		History:  sessionoutadapter.NewHistoryRecorderAdapter(historyUC),
		Active:   sessionoutadapter.NewKVActiveSessionStore(store),
	}
	if cfg.Sound {
		ports.Cues = sessionoutadapter.NewBellCuePlayer(os.Stdout)
	}
	if cfg.Notifications {
		ports.Notifier = sessionoutadapter.NewDesktopNotifier()
	}
	var lock sessionout.WakeLock = sessionoutadapter.NoopWakeLock{}
	if cfg.WakeLock {
		lock = sessionoutadapter.NewInhibitWakeLock()
	}

	opts := sessiondomain.Options{StartCueDelay: cfg.StartCueDelay, CountdownTicks: countdownTicks}
	app.runner = sessionservice.NewRunner(clk, ids, opts, ports, logger.Named("session"))
	app.driver = sessionservice.NewDriver(app.runner, lock, cfg.PollInterval, logger.Named("driver"))

	if _, err := app.runner.Restore(context.Background()); err != nil {
		logger.Warn("could not restore active session", "error", err)
	}

	sessionUC := sessionusecase.NewInteractor(app.runner, sessionoutadapter.NewRoutineSourceAdapter(routineUC), logger.Named("session"))
	app.RoutineCLI = routineinadapter.NewCLIHandler(routineUC)
	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.HistoryCLI = historyinadapter.NewCLIHandler(historyUC)
	return app, nil
}

func openStore(cfg config.Config) (kv.Store, error) {
	switch cfg.Storage {
	case config.StorageFile:
		return kv.NewFileStore(cfg.DataDir), nil
	case config.StorageSQLite, "":
		store, err := kv.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// Close stops pending cue timers and releases the store.
func (a *App) Close() error {
	a.runner.Close()
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunTUI runs the timing driver and the terminal UI side by side. Leaving the UI stops
// the driver; a driver failure tears the UI down.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	model := uiapp.NewModel(app.RoutineCLI, app.SessionCLI, app.HistoryCLI)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))

	g.Go(func() error {
		return app.driver.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
