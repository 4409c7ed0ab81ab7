// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"m4o.io/gpstools"
	"m4o.io/gpstools/cmd/gpstools/cli"
	"m4o.io/gpstools/internal/config"
	"m4o.io/gpstools/internal/logging"
	"m4o.io/gpstools/internal/server"
	"m4o.io/gpstools/service"
	"m4o.io/gpstools/store"
)

func init() {
	cli.RootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.StringP("config", "c", "", "path of the TOML configuration file")
	flags.Bool("print-config", false, "print a sample configuration and exit")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gpstools HTTP server",
	Long:  "Serve upload, download and waypoint editing of GPS files over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()

		sample, err := flags.GetBool("print-config")
		if err != nil {
			return err
		}

		if sample {
			_, err = fmt.Fprint(cmd.OutOrStdout(), config.SampleConfig())

			return err
		}

		path, err := flags.GetString("config")
		if err != nil {
			return err
		}

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return run(ctx, cfg)
	},
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return err
	}

	slog.SetDefault(logger)

	s, closer, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("could not close store", "error", err)
		}
	}()

	compression, err := gpstools.ParseCompression(cfg.Codec.Compression)
	if err != nil {
		return err
	}

	codec, err := gpstools.NewCodec(gpstools.WithCompression(compression))
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)

	router := server.NewRouter(service.New(s, codec), server.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         logger,
	})

	logger.Info("store opened", "backend", cfg.Storage.Backend, "compression", compression)

	return server.Run(ctx, cfg.Server.Bind, router, logger)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openStore(ctx context.Context, cfg config.Storage) (store.Store, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nopCloser{}, nil
	case config.BackendDir:
		d, err := store.NewDir(cfg.Dir)

		return d, nopCloser{}, err
	case config.BackendSQLite:
		db, err := store.OpenSQLite(ctx, cfg.SQLitePath)

		return db, db, err
	case config.BackendPostgres:
		db, err := store.OpenPostgres(ctx, cfg.PostgresURL)

		return db, db, err
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
