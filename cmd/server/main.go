package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"matchcore/internal/adminapi"
	"matchcore/internal/dispatch"
	"matchcore/internal/engine"
	"matchcore/internal/events"
	"matchcore/internal/logging"
	"matchcore/internal/metrics"
	"matchcore/internal/server"
)

func main() {
	port := flag.Int("port", 0, "TCP port the order protocol listens on")
	flag.IntVar(port, "p", 0, "shorthand for --port")
	adminPort := flag.Int("admin-port", 0, "HTTP port for /healthz and /metrics (0 disables the admin surface)")
	flag.Parse()
	if *port == 0 {
		panic("missing required --port (or -p)")
	}

	logger, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())

	reg := prometheus.NewRegistry()
	m := metrics.New()
	m.Register(reg)

	emitter := metrics.NewInstrumentedEmitter(events.NewLineEmitter(os.Stdout), m)
	eng := engine.New(emitter)
	d := dispatch.New(eng, logger, m)
	srv := server.New(d, logger)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		panic(fmt.Sprintf("failed to listen on port %d: %v", *port, err))
	}

	logger.Info(ctx, "matchcore.startup", zap.Int("port", *port), zap.Int("admin_port", *adminPort))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Serve(ctx, ln); err != nil {
			logger.Error(ctx, "matchcore.server_error", zap.Error(err))
		}
	}()

	var adminApp *fiber.App
	if *adminPort != 0 {
		adminApp = adminapi.New(eng, reg)
		app := adminApp
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.Listen(fmt.Sprintf(":%d", *adminPort)); err != nil {
				logger.Error(ctx, "matchcore.admin_server_error", zap.Error(err))
			}
		}()
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGTERM, syscall.SIGINT)
	<-sigterm

	logger.Info(ctx, "matchcore.shutting_down")
	cancel()
	if adminApp != nil {
		if err := adminApp.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error(ctx, "matchcore.admin_shutdown_error", zap.Error(err))
		}
	}

	wg.Wait()
	logger.Info(ctx, "matchcore.shutdown_complete")
}
