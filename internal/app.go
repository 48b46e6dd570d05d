package internal

import (
	"comicbot/internal/bot"
	botinterfaces "comicbot/internal/bot/interfaces"
	"comicbot/internal/follows"
	"comicbot/internal/providers"
	"comicbot/internal/scheduler/interfaces"
	"comicbot/internal/structures"
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

type App struct {
	WebServer *http.Server
}

// NewHandler builds the keep-alive HTTP surface: application routes behind the metrics middleware, plus /metrics.
func NewHandler(conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	appMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		appMux.Handle(route.Url, route.Handler)
	}
	instrumented := providers.MetricsMiddleware(metrics, router.Paths(), appMux)

	mux := http.NewServeMux()
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumented)
	return mux
}

func NewApp(conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, store follows.StoreInterface, discord bot.BotInterface, dispatcher botinterfaces.DispatcherInterface, scheduler interfaces.SchedulerInterface) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	// A corrupt follow file must stop the bot before it overwrites the data.
	if err := store.Load(); err != nil {
		logger.Errorf(providers.TypeApp, "Follow store: %s", err)
		return nil, err
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      NewHandler(conf, router, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if err := discord.Open(); err != nil {
		_ = app.WebServer.Close()
		return nil, fmt.Errorf("discord connection: %w", err)
	}
	scheduler.Init()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()
	if err := discord.Close(); err != nil {
		logger.Warnf(providers.TypeApp, "Closing discord session: %s", err)
	}
	dispatcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil && runErr == nil {
		runErr = err
	}
	if err := store.Persist(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return nil, runErr
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
