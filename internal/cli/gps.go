package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/pkg/controller"
	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/graphics"
)

// defaultRadii are the CEP radii in meters drawn when --radii is not given.
var defaultRadii = []float64{30, 45, 60, 75}

// coordinateHelp is appended to commands taking LAT LON arguments.
const coordinateHelp = `

Coordinates are WGS84 decimal degrees. Put flags before the coordinates;
a negative latitude needs "--" in front of it.`

// parseCoordinate parses LAT and LON arguments.
func parseCoordinate(lat, lon string) (float64, float64, error) {
	y, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "latitude %q is not a number", lat)
	}
	x, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "longitude %q is not a number", lon)
	}
	return y, x, nil
}

// parseRadii parses a comma-separated list of distances.
func parseRadii(s string) ([]float64, error) {
	parts := parseList(s)
	radii := make([]float64, 0, len(parts))
	for _, p := range parts {
		r, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "radius %q is not a number", p)
		}
		radii = append(radii, r)
	}
	return radii, nil
}

// pointCommand creates the point command.
func (c *CLI) pointCommand() *cobra.Command {
	var heading float64
	var crumbs string

	cmd := &cobra.Command{
		Use:   "point LAT LON",
		Short: "Draw the current GPS position",
		Long: `Draw the current GPS position as a marker rotated to the heading. The
breadcrumb mode decides what happens to the previous position: none moves
the marker, symbols leaves a small marker behind, lines draws a track
segment.` + coordinateHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := parseCoordinate(args[0], args[1])
			if err != nil {
				return err
			}
			mode, err := graphics.ParseBreadcrumbs(crumbs)
			if err != nil {
				return err
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			ctl.Breadcrumbs = mode
			id, err := ctl.DrawPoint(cmd.Context(), lat, lon, heading)
			if err != nil {
				return err
			}
			printSuccess("Drew position as graphic %s", StyleNumber.Render(id.String()))
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Float64Var(&heading, "heading", 0, "heading in degrees clockwise from north")
	cmd.Flags().StringVar(&crumbs, "breadcrumbs", graphics.None.String(), "breadcrumb mode: none, symbols, lines")

	return cmd
}

// cepCommand creates the cep command.
func (c *CLI) cepCommand() *cobra.Command {
	var radii string

	cmd := &cobra.Command{
		Use:   "cep LAT LON",
		Short: "Draw a circular error probable",
		Long: `Draw a circular error probable: a center marker and one hollow circle per
radius. Radii are in meters; the focus map needs a projected coordinate
system with linear units.` + coordinateHelp,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := parseCoordinate(args[0], args[1])
			if err != nil {
				return err
			}
			rs, err := parseRadii(radii)
			if err != nil {
				return err
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			id, err := ctl.DrawCEP(cmd.Context(), lat, lon, rs)
			if err != nil {
				return err
			}
			printSuccess("Drew CEP as graphic %s", StyleNumber.Render(id.String()))
			printCounts(count{len(rs), "circles"})
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&radii, "radii", formatRadii(defaultRadii), "comma-separated radii in meters")

	return cmd
}

func formatRadii(rs []float64) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// =============================================================================
// Track Replay
// =============================================================================

// fix is one GPS reading of a track file.
type fix struct {
	line              int
	lat, lon, heading float64
}

// readTrack reads lat,lon,heading records. A first line that does not parse
// is taken as a header; the heading column is optional.
func readTrack(r io.Reader) ([]fix, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var fixes []fix
	for first := true; ; first = false {
		rec, err := cr.Read()
		if err == io.EOF {
			return fixes, nil
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read track")
		}
		line, _ := cr.FieldPos(0)
		f, err := parseFix(rec)
		if err != nil {
			if first {
				continue
			}
			return nil, errors.New(errors.ErrCodeInvalidFormat, "track line %d: %s", line, errors.UserMessage(err))
		}
		f.line = line
		fixes = append(fixes, f)
	}
}

func parseFix(rec []string) (fix, error) {
	if len(rec) < 2 {
		return fix{}, fmt.Errorf("want lat,lon[,heading], got %d fields", len(rec))
	}
	lat, lon, err := parseCoordinate(rec[0], rec[1])
	if err != nil {
		return fix{}, err
	}
	f := fix{lat: lat, lon: lon}
	if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
		if f.heading, err = strconv.ParseFloat(strings.TrimSpace(rec[2]), 64); err != nil {
			return fix{}, fmt.Errorf("heading %q is not a number", rec[2])
		}
	}
	return f, nil
}

// trackOpts holds the command-line flags for the track command.
type trackOpts struct {
	breadcrumbs string        // breadcrumb mode name
	delay       time.Duration // pause between fixes
	follow      bool          // keep the position in view
	extent      float64       // extent factor used by follow
}

// trackCommand creates the track command for replaying recorded fixes.
func (c *CLI) trackCommand() *cobra.Command {
	opts := trackOpts{breadcrumbs: graphics.Lines.String(), extent: 0.9}

	cmd := &cobra.Command{
		Use:   "track FILE",
		Short: "Replay a CSV of lat,lon,heading fixes",
		Long: `Replay a CSV of lat,lon,heading fixes through the GPS marker, leaving a
breadcrumb trail. A header line is allowed and lines starting with # are
ignored. With --follow the view is recentered whenever a fix leaves the
inner part of the current extent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := graphics.ParseBreadcrumbs(opts.breadcrumbs)
			if err != nil {
				return err
			}
			in, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", args[0])
			}
			fixes, err := readTrack(in)
			in.Close()
			if err != nil {
				return err
			}
			if len(fixes) == 0 {
				printInfo("No fixes in %s", args[0])
				return nil
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			ctl.Breadcrumbs = mode
			return c.runTrack(cmd.Context(), ctl, fixes, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.breadcrumbs, "breadcrumbs", opts.breadcrumbs, "breadcrumb mode: none, symbols, lines")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "pause between fixes, e.g. 1s")
	cmd.Flags().BoolVar(&opts.follow, "follow", false, "recenter the view when a fix leaves it")
	cmd.Flags().Float64Var(&opts.extent, "extent", opts.extent, "fraction of the extent a fix may move in before --follow recenters")

	return cmd
}

func (c *CLI) runTrack(ctx context.Context, ctl *controller.Controller, fixes []fix, opts *trackOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	moves := 0
	for i, f := range fixes {
		if i > 0 && opts.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.delay):
			}
		}
		id, err := ctl.DrawPoint(ctx, f.lat, f.lon, f.heading)
		if err != nil {
			return atLine(f.line, err)
		}
		logger.Debug("fix drawn", "line", f.line, "lat", f.lat, "lon", f.lon, "heading", f.heading, "id", id)
		if opts.follow {
			moved, err := ctl.RefreshDisplayAt(f.lat, f.lon, opts.extent)
			if err != nil {
				return atLine(f.line, err)
			}
			if moved {
				moves++
			}
		} else if err := ctl.RefreshDisplay(); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Replayed %d fixes", len(fixes)))
	printSuccess("Replayed %s fixes", StyleNumber.Render(strconv.Itoa(len(fixes))))
	printCounts(count{moves, "recenters"})
	return nil
}

// atLine prefixes err's message with a track line, keeping its code.
func atLine(line int, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.New(code, "line %d: %s", line, errors.UserMessage(err))
}
