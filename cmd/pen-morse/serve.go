package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/config"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/health"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/observe"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/translate"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport"
	grpctransport "github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport/grpc"
	httptransport "github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport/http"
)

// ServeParams are the flags of the serve command.
type ServeParams struct {
	Config string `short:"c" optional:"true" help:"Path to config file (e.g. configs/pen-morse.yaml)."`
}

func serveCmd() *cobra.Command {
	return boa.CmdT[ServeParams]{
		Use:         "serve",
		Short:       "Run the translator service",
		ParamEnrich: paramEnricher(),
		RunFunc: func(params *ServeParams, cmd *cobra.Command, args []string) {
			exitOnError("serve", runServe(commandContext(cmd), params))
		},
	}.ToCobra()
}

func runServe(ctx context.Context, params *ServeParams) error {
	cfg, err := config.Load(params.Config)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	config.SetupLogging(cfg.Logging, os.Stderr)
	slog.Info("pen-morse starting", "version", appVersion())

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := observe.Discard()
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		mp, shutdown, err := observe.InitProvider("pen-morse", appVersion())
		if err != nil {
			return fmt.Errorf("initialising metrics: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("metrics shutdown", "error", err)
			}
		}()
		if metrics, err = observe.NewMetrics(mp); err != nil {
			return fmt.Errorf("creating instruments: %w", err)
		}
		metricsHandler = promhttp.Handler()
	}

	svc := translate.New(metrics, translate.WithMaxExportDuration(cfg.Export.MaxDuration))
	return serve(ctx, cfg, svc, metrics, health.New(cfg.Server.HealthPort, metricsHandler))
}

// serve binds every enabled transport, then runs them with hs until ctx is
// cancelled or one of them fails. hs reports ready only once every listener
// is open.
func serve(ctx context.Context, cfg *config.Config, svc transport.Service, metrics *observe.Metrics, hs *health.Server) error {
	var transports []transport.Transport
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP, metrics))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC, metrics))
	}
	if len(transports) == 0 {
		return errors.New("no transports enabled, enable at least one in config")
	}

	listeners := make([]net.Listener, 0, len(transports)+1)
	closeAll := func() {
		for _, lis := range listeners {
			_ = lis.Close()
		}
	}
	for _, t := range transports {
		lis, err := t.Bind()
		if err != nil {
			closeAll()
			return fmt.Errorf("transport %s: %w", t.Name(), err)
		}
		listeners = append(listeners, lis)
	}
	healthLis, err := hs.Bind()
	if err != nil {
		closeAll()
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hs.Serve(ctx, healthLis) })
	for i, t := range transports {
		lis := listeners[i]
		g.Go(func() error {
			slog.Info("starting transport", "name", t.Name())
			if err := t.Serve(ctx, lis, svc); err != nil {
				return fmt.Errorf("transport %s: %w", t.Name(), err)
			}
			return nil
		})
	}

	hs.SetReady(true)
	slog.Info("pen-morse ready",
		"transports", len(transports),
		"health_addr", healthLis.Addr().String())

	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")
	hs.SetReady(false)

	err = g.Wait()
	for _, t := range transports {
		if cerr := t.Close(); cerr != nil {
			slog.Error("transport close error", "name", t.Name(), "error", cerr)
		}
	}
	slog.Info("pen-morse stopped")
	return err
}

func exitOnError(cmd string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}
