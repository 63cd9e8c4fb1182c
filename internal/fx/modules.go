package fx

import (
	"database/sql"

	"academy-ledger/internal/api"
	"academy-ledger/internal/config"
	"academy-ledger/internal/database"
	"academy-ledger/internal/db"
	"academy-ledger/internal/logger"
	"academy-ledger/internal/repository"
	"academy-ledger/internal/server"
	"academy-ledger/internal/service"

	"go.uber.org/fx"
)

var (
	_ service.StudentStore  = (*repository.StudentRepository)(nil)
	_ service.CategoryStore = (*repository.CategoryRepository)(nil)
	_ service.LeagueStore   = (*repository.LeagueRepository)(nil)
	_ service.GameStore     = (*repository.GameRepository)(nil)
	_ service.PaymentStore  = (*repository.PaymentRepository)(nil)
	_ service.ExpenseStore  = (*repository.ExpenseRepository)(nil)
	_ service.SettingsStore = (*repository.SettingsRepository)(nil)
	_ service.UserStore     = (*repository.UserRepository)(nil)
	_ service.RateFetcher   = (*api.RateClient)(nil)
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos, bound to the store interfaces the services consume
	fx.Provide(fx.Annotate(repository.NewStudentRepository, fx.As(new(service.StudentStore)))),
	fx.Provide(fx.Annotate(repository.NewCategoryRepository, fx.As(new(service.CategoryStore)))),
	fx.Provide(fx.Annotate(repository.NewLeagueRepository, fx.As(new(service.LeagueStore)))),
	fx.Provide(fx.Annotate(repository.NewGameRepository, fx.As(new(service.GameStore)))),
	fx.Provide(fx.Annotate(repository.NewPaymentRepository, fx.As(new(service.PaymentStore)))),
	fx.Provide(fx.Annotate(repository.NewExpenseRepository, fx.As(new(service.ExpenseStore)))),
	fx.Provide(fx.Annotate(repository.NewSettingsRepository, fx.As(new(service.SettingsStore)))),
	fx.Provide(fx.Annotate(repository.NewUserRepository, fx.As(new(service.UserStore)))),
	// api client
	fx.Provide(fx.Annotate(api.NewRateClient, fx.As(new(service.RateFetcher)))),
	// svc
	fx.Provide(service.NewStudentService),
	fx.Provide(service.NewLeagueService),
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewPaymentService),
	fx.Provide(service.NewExpenseService),
	fx.Provide(service.NewDashboardService),
	fx.Provide(service.NewSettingsService),
	fx.Provide(service.NewUserService),
	fx.Provide(service.NewRateService),
	// server
	fx.Provide(server.NewServer),
)
