package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/molgen/internal/interfaces/http"
	"github.com/turtacn/molgen/internal/interfaces/http/handlers"
	"github.com/turtacn/molgen/internal/interfaces/http/middleware"
)

type serveOptions struct {
	host        string
	port        int
	corsOrigins []string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MolGen HTTP API",
		Long: "Start the REST API. Every enabled infrastructure component must be reachable;\n" +
			"SIGINT or SIGTERM drains in-flight requests and exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := *cliCtx.Config
			if opts.host != "" {
				cfg.Server.Host = opts.host
			}
			if opts.port >= 0 {
				cfg.Server.Port = opts.port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cliCtx, &cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.host, "host", "", "listen host (overrides server.host)")
	f.IntVar(&opts.port, "port", -1, "listen port (overrides server.port)")
	f.StringSliceVar(&opts.corsOrigins, "cors-origin", nil, "allowed CORS origins; \"*.example.org\" matches subdomains")

	return cmd
}

func runServe(ctx context.Context, cliCtx *CLIContext, cfg *config.Config, opts *serveOptions) error {
	log := cliCtx.Logger

	if cfg.Database.Enabled && cfg.Database.MigrateOnStart {
		if err := migrateUp(cfg, log); err != nil {
			return err
		}
	}

	app, err := Bootstrap(ctx, cfg, log, BootstrapOptions{Strict: true})
	if err != nil {
		return err
	}
	defer app.Close()

	var links handlers.ImageLinker
	if app.Images != nil {
		links = app.Images
	}
	routerCfg := httpapi.RouterConfig{
		MoleculeHandler: handlers.NewMoleculeHandler(app.Service, links, log),
		HealthHandler:   handlers.NewHealthHandler(Version, app.HealthCheckers()...),
		Mode:            cfg.Server.Mode,
		Logger:          log,
	}
	if app.Metrics != nil {
		routerCfg.Metrics = app.Metrics
		routerCfg.MetricsHandler = app.Collector.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	if len(opts.corsOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = opts.corsOrigins
		cors.AllowWildcard = true
		routerCfg.CORS = &cors
	}

	if cliCtx.ConfigPath != "" {
		watchErr := config.Watch(cliCtx.ConfigPath,
			func(next *config.Config) {
				logging.SetLevel(log, next.Log.Level)
				log.Info("Configuration reloaded", logging.String("log_level", next.Log.Level))
			},
			func(err error) {
				log.Warn("Ignoring invalid configuration change", logging.Err(err))
			})
		if watchErr != nil {
			log.Warn("Config hot reload disabled", logging.Err(watchErr))
		}
	}

	srv := httpapi.NewServer(cfg.Server, httpapi.NewRouter(routerCfg), log)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

//Personal.AI order the ending
