package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"insurance-server/cmd/api/wire"
	"insurance-server/cmd/config"
	"insurance-server/internal/infra/async"
	"insurance-server/internal/infra/httpserver"
	"insurance-server/internal/infra/node"
	"insurance-server/internal/insurance/httpapi"
	"insurance-server/internal/insurance/seed"
	"insurance-server/internal/insurance/usecases"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	config := config.LoadConfig()

	level := logLevelMapping[config.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	info := node.GetNodeInfo()
	handler := baseHandler.WithAttrs([]slog.Attr{
		slog.String("version", info.Version),
		slog.String("node", info.ID),
	})
	slog.SetDefault(slog.New(handler))
	slog.Info("insurance server is initializing", slog.String("environment", config.General.Environment))
	slog.Debug("config loaded", "data", config)

	shutdownOtel := startOTel(info)

	appCtx, cancelFn := context.WithCancel(context.Background())

	if config.Database.Seed {
		repository := handleWireInjector(wire.InitializeTemplateRepository()).(usecases.TemplateRepository)
		if _, err := seed.Load(appCtx, repository, time.Now()); err != nil {
			slog.Error("seeding templates", slog.String("error", err.Error()))
			panic(err)
		}
	}

	internalBroker := async.NewLocalBroker()
	feedController := handleWireInjector(wire.InitializeSubmissionFeedController(internalBroker)).(*httpapi.SubmissionFeedController)

	httpServer := httpserver.NewServer(
		httpserver.ServerOptions{
			Addr:           config.HTTP.Addr,
			AllowedOrigins: config.HTTP.AllowedOrigins,
		},
		handleWireInjector(wire.InitializeInsuranceController()).(httpserver.Controller),
		feedController,
	)
	go httpServer.Run()
	slog.Info("http server listening", slog.String("addr", config.HTTP.Addr))

	workers := []async.Worker{
		handleWireInjector(wire.InitializeTemplateCacheWorker()).(async.Worker),
		handleWireInjector(wire.InitializeSubmissionFeed(internalBroker)).(async.Worker),
	}
	if config.Notifications.Enabled() {
		workers = append(workers, handleWireInjector(wire.InitializeSubmissionNotifier(internalBroker)).(async.Worker))
	}

	var wg sync.WaitGroup
	for _, worker := range workers {
		wg.Add(1)
		go worker.Run(appCtx, wg.Done)
	}

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel
	slog.Info("shutting down")

	httpServer.Shutdown()
	feedController.Shutdown()
	for _, worker := range workers {
		worker.Shutdown()
	}
	cancelFn()
	wg.Wait()
	internalBroker.Stop()

	if err := shutdownOtel(); err != nil {
		slog.Error("stopping otel providers", slog.String("error", err.Error()))
	}
	slog.Info("good bye!!!")
	os.Exit(0)
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

func handleWireInjector(value any, err error) any {
	if err != nil {
		panic(err)
	}

	return value
}
