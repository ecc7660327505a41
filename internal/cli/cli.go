// Package cli wires the command surface: argument dispatch, dependency
// construction, table rendering, and error-to-exit-code translation.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fxwatch/fxwatch/internal/apperrors"
	"github.com/fxwatch/fxwatch/internal/clients/freecurrency"
	"github.com/fxwatch/fxwatch/internal/core/ports"
	"github.com/fxwatch/fxwatch/internal/core/services"
	"github.com/fxwatch/fxwatch/internal/repositories/database/pgsql"
	"github.com/fxwatch/fxwatch/pkg/config"
	"github.com/fxwatch/fxwatch/pkg/database"
)

const usageText = `Usage: fxwatch <command> [arguments]

Commands:
  migrate                                      apply database migrations
  currency:fetch [codes...]                    fetch currency metadata from the provider
  currency:list                                list known currencies
  pair:create <FROM> <TO> [--observe=bool]     register a currency pair
  pair:list [--currency=CODE]                  list currency pairs
  pair:observe <pairID> <on|off>               toggle automatic refresh for a pair
  pair:rate <pairID> [--date=D] [--to-date=D]  show stored rates for a pair
  rate:fetch <pairID>                          fetch and store the current rate
  worker <name> <on|off> [--iterations=N] [--interval=SECONDS]
                                               control a background worker
`

// usageError marks bad invocations; Run prints usage alongside the message.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// App owns configuration and logging and dispatches subcommands.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

// Run executes the command named by args and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return 1
	}

	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "migrate":
		err = a.runMigrate()
	case "currency:fetch":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runCurrencyFetch(ctx, s, rest) })
	case "currency:list":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runCurrencyList(ctx, s) })
	case "pair:create":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runPairCreate(ctx, s, rest) })
	case "pair:list":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runPairList(ctx, s, rest) })
	case "pair:observe":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runPairObserve(ctx, s, rest) })
	case "pair:rate":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runPairRate(ctx, s, rest) })
	case "rate:fetch":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runRateFetch(ctx, s, rest) })
	case "worker":
		err = a.withServices(ctx, func(s *serviceSet) error { return a.runWorkerControl(ctx, s, rest) })
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", command, usageText)
		return 1
	}

	if err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "Error: %s\n\n%s", uerr.msg, usageText)
			return 1
		}
		a.logCommandError(err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		return 1
	}
	return 0
}

// serviceSet bundles the constructed services for one command invocation.
type serviceSet struct {
	currencies *services.CurrencyService
	pairs      *services.CurrencyPairService
	fetch      *services.FetchRateService
	query      *services.RateQueryService
	pairRepo   ports.CurrencyPairRepository
}

// withServices opens the database pool, builds the service graph, runs the
// command, and tears the pool down afterwards.
func (a *App) withServices(ctx context.Context, fn func(*serviceSet) error) error {
	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	return fn(a.buildServices(pool))
}

func (a *App) buildServices(pool *pgxpool.Pool) *serviceSet {
	currencyRepo := pgsql.NewPgxCurrencyRepository(pool)
	pairRepo := pgsql.NewPgxCurrencyPairRepository(pool)
	rateRepo := pgsql.NewPgxExchangeRateRepository(pool)
	apiClient := freecurrency.NewClient(a.cfg.APIBaseURL, a.cfg.APIKey, a.cfg.HTTPTimeout)

	return &serviceSet{
		currencies: services.NewCurrencyService(currencyRepo, apiClient),
		pairs:      services.NewCurrencyPairService(pairRepo, currencyRepo),
		fetch:      services.NewFetchRateService(pairRepo, rateRepo, apiClient),
		query:      services.NewRateQueryService(pairRepo, rateRepo),
		pairRepo:   pairRepo,
	}
}

func (a *App) runMigrate() error {
	if err := database.RunMigrations(a.cfg.DatabaseURL, a.cfg.MigrationsPath); err != nil {
		return err
	}
	fmt.Println("Database migrations applied.")
	return nil
}

// logCommandError keeps validation and not-found failures distinguishable in
// logs; every non-usage failure still exits 1.
func (a *App) logCommandError(err error) {
	switch {
	case errors.Is(err, apperrors.ErrInfrastructure):
		a.logger.Error("infrastructure failure", slog.String("error", err.Error()))
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidDate), errors.Is(err, apperrors.ErrInvalidRange):
		a.logger.Warn("invalid input", slog.String("error", err.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		a.logger.Warn("not found", slog.String("error", err.Error()))
	}
}
