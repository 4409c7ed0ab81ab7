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

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/gpstools/cmd/gpstools/cli"
	"m4o.io/gpstools/model"
)

var out io.Writer = os.Stdout

type summary struct {
	Name         *string            `json:"name,omitempty"`
	Format       string             `json:"format"`
	WayPoints    int                `json:"wayPoints"`
	TrackPoints  int                `json:"trackPoints"`
	LengthMeters float64            `json:"lengthMeters"`
	BoundingBox  *model.BoundingBox `json:"boundingBox,omitempty"`
}

var input *os.File

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.VarP(cli.NewReaderValue(os.Stdin, &input, "file"), "input", "i", "GPX, TCX or binary container file, stdin when omitted")
}

var infoCmd = &cobra.Command{
	Use:   "info [<GPX, TCX or container file>]",
	Short: "Print information about a GPX, TCX or container file",
	Long:  "Print the name, waypoint and track point counts, track length and bounding box of a GPX, TCX or container file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := input
		if len(args) == 1 {
			var err error
			if f, err = os.Open(args[0]); err != nil {
				return err
			}
		}

		jsonfmt, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		in, err := cli.WrapInputFile(f, jsonfmt)
		if err != nil {
			return err
		}

		s, err := runInfo(in)

		if cerr := in.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(s)
		}

		renderTxt(s)

		return nil
	},
}

func runInfo(in io.Reader) (*summary, error) {
	c, format, err := cli.Load(in)
	if err != nil {
		return nil, err
	}

	s := &summary{
		Name:        c.Name,
		Format:      format,
		WayPoints:   len(c.WayPoints),
		TrackPoints: c.TrackPointCount(),
	}

	if c.Track != nil {
		s.LengthMeters = c.Track.Length()
	}

	if bbox := c.BoundingBox(); !bbox.IsEmpty() {
		s.BoundingBox = bbox
	}

	return s, nil
}

func renderJSON(s *summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(s *summary) {
	name := "(none)"
	if s.Name != nil {
		name = *s.Name
	}

	bbox := "[]"
	if s.BoundingBox != nil {
		bbox = s.BoundingBox.String()
	}

	fmt.Fprintf(out, "Name: %s\n", name)
	fmt.Fprintf(out, "Format: %s\n", s.Format)
	fmt.Fprintf(out, "WayPoints: %s\n", humanize.Comma(int64(s.WayPoints)))
	fmt.Fprintf(out, "TrackPoints: %s\n", humanize.Comma(int64(s.TrackPoints)))
	fmt.Fprintf(out, "Length: %s\n", humanize.SIWithDigits(s.LengthMeters, 2, "m"))
	fmt.Fprintf(out, "BoundingBox: %s\n", bbox)
}
