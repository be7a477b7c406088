// Command assistants-mcp serves the assistant API over MCP, on stdio or HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/openassistants/assistants-mcp-go/catalog"
	"github.com/openassistants/assistants-mcp-go/config"
	"github.com/openassistants/assistants-mcp-go/httprpc"
	"github.com/openassistants/assistants-mcp-go/internal/engine"
	"github.com/openassistants/assistants-mcp-go/internal/logctx"
	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/provider"
	"github.com/openassistants/assistants-mcp-go/provider/memory"
	"github.com/openassistants/assistants-mcp-go/stdio"
	"github.com/openassistants/assistants-mcp-go/tools"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "assistants-mcp",
		Short:         "MCP server exposing an assistant API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the protocol on the configured transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	// A missing .env file is fine; explicit env vars win either way.
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	logger := slog.New(logctx.Handler{
		Handler: slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: env.SlogLevel()}),
	})
	slog.SetDefault(logger)

	file := config.DefaultFile()
	if env.ConfigFile != "" {
		file, err = config.LoadFile(env.ConfigFile)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := buildProviders(ctx, file)
	if err != nil {
		return err
	}

	var catOpts []catalog.Option
	if env.ResourceDir != "" {
		fsCat, err := catalog.NewFSCatalog(env.ResourceDir)
		if err != nil {
			return err
		}
		go func() {
			if err := fsCat.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("resource watcher stopped", slog.String("err", err.Error()))
			}
		}()
		catOpts = append(catOpts, catalog.WithFSCatalog(fsCat))
	}
	cat := catalog.New(memory.Models, providers.Names(), catOpts...)

	eng := engine.New(providers, tools.NewCatalog(), cat,
		engine.WithLogger(logger),
		engine.WithServerInfo(mcp.ImplementationInfo{Name: "assistants-mcp", Version: version}),
	)
	logger.Info("server starting",
		slog.String("transport", env.Transport),
		slog.String("instance_id", eng.InstanceID()),
		slog.Any("providers", providers.Names()),
	)

	switch env.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, env.ListenAddr, eng, logger)
	default:
		err := stdio.New(eng, stdio.WithLogger(logger)).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

func buildProviders(ctx context.Context, file *config.File) (*provider.Registry, error) {
	providers := provider.NewRegistry()
	if err := providers.RegisterFactory(memory.Name, memory.Factory); err != nil {
		return nil, err
	}

	for _, pc := range file.Providers {
		if !pc.IsEnabled() {
			continue
		}
		cfg := provider.Config{
			Endpoint:   pc.Endpoint,
			Credential: pc.Credential,
			Options:    pc.Options,
		}
		if err := providers.Register(ctx, pc.Name, cfg, pc.Priority); err != nil {
			return nil, err
		}
	}
	if file.Default != "" {
		if err := providers.SetDefault(file.Default); err != nil {
			return nil, err
		}
	}
	return providers, nil
}

func serveHTTP(ctx context.Context, addr string, eng *engine.Engine, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           httprpc.New(eng, httprpc.WithLogger(logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
