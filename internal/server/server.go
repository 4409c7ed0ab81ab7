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

// Package server exposes the file service over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"m4o.io/gpstools/service"
)

const (
	defaultMaxUpload = 32 << 20
	shutdownTimeout  = 10 * time.Second
)

// Options configures the router.
type Options struct {
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// NewRouter registers the file API, health and metrics endpoints.
func NewRouter(svc *service.FileService, opts Options) *gin.Engine {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUpload
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	h := &handler{svc: svc, maxUpload: opts.MaxUploadBytes}

	r := gin.New()
	r.Use(gin.Recovery(), Logger(opts.Logger), CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/file", h.uploadFile)

	files := r.Group("/files")
	{
		files.POST("", h.uploadFiles)
		files.GET("/:id", h.download)
		files.DELETE("/:id", h.delete)
		files.GET("/:id/points", h.wayPoints)
		files.PUT("/:id/points", h.updateWayPoints)
	}

	return r
}

// Run serves handler on addr until ctx is done, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("gpstools listening", "addr", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)

		return err
	}

	return <-errCh
}
