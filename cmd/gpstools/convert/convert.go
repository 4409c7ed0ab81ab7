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

package convert

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/destel/rill"
	"github.com/spf13/cobra"

	"m4o.io/gpstools"
	"m4o.io/gpstools/cmd/gpstools/cli"
	"m4o.io/gpstools/gpx"
	"m4o.io/gpstools/model"
	"m4o.io/gpstools/service"
	"m4o.io/gpstools/tcx"
)

type options struct {
	to      service.Format
	outDir  string
	codec   *gpstools.Codec
	workers int
}

func init() {
	cli.RootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringP("to", "t", string(service.FormatGPX), "output format: gpx, tcx or bin")
	flags.StringP("out", "o", "", "output directory, next to each input when omitted")
	flags.StringP("compression", "c", gpstools.DefaultCompression.String(), "compression of bin output: raw, zlib, lzma, lz4 or zstd")
	flags.IntP("workers", "w", runtime.GOMAXPROCS(-1), "number of files converted concurrently")
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert GPX, TCX and container files",
	Long:  "Convert GPX, TCX courses and binary container files to GPX, TCX or binary containers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseOptions(cmd)
		if err != nil {
			return err
		}

		return convertAll(args, opts)
	},
}

func parseOptions(cmd *cobra.Command) (options, error) {
	flags := cmd.Flags()

	to, err := flags.GetString("to")
	if err != nil {
		return options{}, err
	}

	format, err := service.ParseFormat(to)
	if err != nil {
		return options{}, err
	}

	outDir, err := flags.GetString("out")
	if err != nil {
		return options{}, err
	}

	name, err := flags.GetString("compression")
	if err != nil {
		return options{}, err
	}

	compression, err := gpstools.ParseCompression(name)
	if err != nil {
		return options{}, err
	}

	codec, err := gpstools.NewCodec(gpstools.WithCompression(compression))
	if err != nil {
		return options{}, err
	}

	workers, err := flags.GetInt("workers")
	if err != nil {
		return options{}, err
	}

	if workers < 1 {
		workers = 1
	}

	return options{to: format, outDir: outDir, codec: codec, workers: workers}, nil
}

// convertAll converts every file, continuing past failures, and returns
// the joined errors.
func convertAll(paths []string, opts options) error {
	if opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	var (
		mu   sync.Mutex
		errs []error
	)

	err := rill.ForEach(rill.FromSlice(paths, nil), opts.workers, func(path string) error {
		target, err := convertFile(path, opts)
		if err != nil {
			slog.Error("conversion failed", "file", path, "error", err)

			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			mu.Unlock()

			return nil
		}

		slog.Info("converted", "file", path, "output", target)

		return nil
	})
	if err != nil {
		return err
	}

	return errors.Join(errs...)
}

func outputPath(path string, opts options) string {
	dir := opts.outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	return filepath.Join(dir, base+"."+string(opts.to))
}

func convertFile(path string, opts options) (string, error) {
	target := outputPath(path, opts)

	if filepath.Clean(target) == filepath.Clean(path) {
		return "", fmt.Errorf("refusing to overwrite input with %s: %w", target, model.ErrInvalidArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	c, _, err := cli.Load(f)
	if err != nil {
		return "", err
	}

	out, err := os.Create(target)
	if err != nil {
		return "", err
	}

	if err = render(out, c, opts); err != nil {
		_ = out.Close()
		_ = os.Remove(target)

		return "", err
	}

	return target, out.Close()
}

func render(w io.Writer, c *model.GpsContainer, opts options) error {
	switch opts.to {
	case service.FormatTCX:
		return tcx.Export(w, c)
	case service.FormatBinary:
		return opts.codec.Encode(w, c)
	default:
		return gpx.Encode(w, c)
	}
}
