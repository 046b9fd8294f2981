package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/chazu/charmander/pkg/cell"
	"github.com/chazu/charmander/pkg/engine"
	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/model"
	"github.com/chazu/charmander/pkg/preview"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "charmander",
		Short:        "Check, probe and mesh CSG geometry setups",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newCheckCommand(),
		newLocateCommand(),
		newTrackCommand(),
		newMeshCommand(),
	)
	return cmd
}

// loadGeometry evaluates and validates the setup in path. Warnings are
// written to w; any evaluation or validation error fails the load.
func loadGeometry(path string, w io.Writer) (*model.Geometry, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, 0, len(evalErrs))
		for _, e := range evalErrs {
			errs = append(errs, fmt.Errorf("%s: %w", path, e))
		}
		return nil, errors.Join(errs...)
	}

	vr := model.ValidateAll(g)
	for _, warn := range vr.Warnings {
		fmt.Fprintf(w, "%s: %v\n", path, warn)
	}
	if !vr.OK() {
		errs := make([]error, 0, len(vr.Errors))
		for _, e := range vr.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", path, e))
		}
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// parseFloats parses every argument as a float64.
func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", a, err)
		}
		out[i] = f
	}
	return out, nil
}

func cellName(cells []*cell.Cell, i int) string {
	if i < 0 {
		return "(none)"
	}
	if cells[i].Name == "" {
		return fmt.Sprintf("#%d", i)
	}
	return cells[i].Name
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Evaluate and validate a setup script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGeometry(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%d surfaces, %d cells (units: %s)\n", g.SurfaceCount(), g.CellCount(), g.Defaults.Units)
			for _, s := range g.SurfaceList() {
				fmt.Fprintf(tw, "surface\t%s\t%s\n", labelOr(s.Name, s.ID), s.Spec)
			}
			for _, c := range g.CellList() {
				fmt.Fprintf(tw, "cell\t%s\t%d bounds\n", labelOr(c.Name, c.ID), len(c.Bounds))
			}
			return tw.Flush()
		},
	}
}

func labelOr(name string, id model.ID) string {
	if name != "" {
		return name
	}
	return id.Short()
}

func newLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locate FILE X Y Z",
		Short: "Print the cell containing a point",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGeometry(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			cells, err := g.BuildCells()
			if err != nil {
				return err
			}
			p := geom.Point{X: v[0], Y: v[1], Z: v[2]}
			fmt.Fprintln(cmd.OutOrStdout(), cellName(cells, cell.Find(cells, p)))
			return nil
		},
	}
}

type trackOpts struct {
	maxSegments int
}

func newTrackCommand() *cobra.Command {
	opts := trackOpts{}

	cmd := &cobra.Command{
		Use:   "track FILE X Y Z U V W",
		Short: "Follow a ray through the cells of a setup",
		Long: `Follow the ray starting at (X, Y, Z) along (U, V, W) and print each
cell it crosses with the length travelled inside it. The direction is
normalized before tracking.`,
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGeometry(args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			d := geom.Direction{X: v[3], Y: v[4], Z: v[5]}
			if d.Length() < geom.FPTolerance {
				return errors.New("direction must be non-zero")
			}
			cells, err := g.BuildCells()
			if err != nil {
				return err
			}

			p := geom.Point{X: v[0], Y: v[1], Z: v[2]}
			segs := cell.Track(cells, p, geom.Normalize(d), opts.maxSegments)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CELL\tSTART\tLENGTH")
			for _, s := range segs {
				length := strconv.FormatFloat(s.Length, 'g', 6, 64)
				if math.IsInf(s.Length, 1) {
					length = "inf"
				}
				fmt.Fprintf(tw, "%s\t%v\t%s\n", cellName(cells, s.Cell), s.Start, length)
			}
			if len(segs) == 0 {
				fmt.Fprintf(tw, "%s\t%v\t-\n", cellName(cells, -1), p)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&opts.maxSegments, "max-segments", 100, "Stop after this many boundary crossings")
	return cmd
}

type meshOpts struct {
	output string
	format string
}

func newMeshCommand() *cobra.Command {
	opts := meshOpts{}

	cmd := &cobra.Command{
		Use:   "mesh FILE",
		Short: "Tessellate every cell of a setup into triangle meshes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			result := preview.New().Evaluate(string(src))
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: warning: %s\n", args[0], diagText(w))
			}
			if !result.OK() {
				errs := make([]error, 0, len(result.Errors))
				for _, e := range result.Errors {
					errs = append(errs, fmt.Errorf("%s: %s", args[0], diagText(e)))
				}
				return errors.Join(errs...)
			}

			var data []byte
			switch opts.format {
			case "json":
				data, err = json.Marshal(result)
			case "yaml":
				data, err = yaml.Marshal(result)
			default:
				return fmt.Errorf("unknown format %q, expected json or yaml", opts.format)
			}
			if err != nil {
				return err
			}

			if opts.output == "" || opts.output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(opts.output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write meshes to this file instead of stdout")
	cmd.Flags().StringVar(&opts.format, "format", "json", "Output format: json or yaml")
	return cmd
}

func diagText(d preview.Diagnostic) string {
	switch {
	case d.Line > 0:
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	case d.Name != "":
		return fmt.Sprintf("%q: %s", d.Name, d.Message)
	}
	return d.Message
}
