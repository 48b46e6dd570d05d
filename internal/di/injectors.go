//go:build wireinject
// +build wireinject

package di

import (
	"comicbot/internal"
	"comicbot/internal/bot"
	"comicbot/internal/bot/handler"
	"comicbot/internal/catalog"
	"comicbot/internal/controllers"
	"comicbot/internal/follows"
	"comicbot/internal/notifier"
	"comicbot/internal/providers"
	"comicbot/internal/scheduler"
	"comicbot/internal/selector"
	"comicbot/internal/structures"
	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		catalog.NewZstdCompressor,
		catalog.NewClient,
		follows.NewStore,
		bot.NewDispatcher,
		bot.NewDiscordSession,
		bot.NewDiscordMessenger,
		selector.NewSelector,
		notifier.NewNotifier,
		handler.NewHandler,
		bot.NewBot,
		scheduler.NewCheckpoint,
		scheduler.NewScheduler,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
