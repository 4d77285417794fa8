package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/galemesh/galemesh/pkg/config"
	"github.com/galemesh/galemesh/pkg/layout"
	"github.com/galemesh/galemesh/pkg/preview"
	"github.com/galemesh/galemesh/pkg/refine"
)

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "galemesh",
		Short:        "galemesh — wind-farm mesh refinement planner",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newValidateCmd())
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a run description without planning anything",
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := config.Load(file); err != nil {
				return err
			}
			fmt.Println("run description validated successfully")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML run description")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var (
		file       string
		layoutPath string
		out        string
		stlPath    string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the sizing plan for a run description",
		RunE: func(_ *cobra.Command, _ []string) error {
			f, err := config.Load(file)
			if err != nil {
				return err
			}
			in, err := f.Resolve()
			if err != nil {
				return err
			}

			if layoutPath != "" {
				if err := applyLayout(in, layoutPath); err != nil {
					return err
				}
			}

			slog.Debug("planning refinement",
				"turbines", len(in.Turbines),
				"placement", in.Placement.String(),
				"dimension", in.Dimension)

			plan, err := refine.BuildRefinement(in)
			if err != nil {
				return err
			}

			xMin, xMax := plan.Envelope.XRange()
			yMin, yMax := plan.Envelope.YRange()
			slog.Info("plan complete",
				"zones", len(plan.Zones),
				"envelope_x", fmt.Sprintf("[%g, %g]", xMin, xMax),
				"envelope_y", fmt.Sprintf("[%g, %g]", yMin, yMax))

			if stlPath != "" {
				mesh, err := preview.Render(plan.Zones)
				if err != nil {
					return err
				}
				if err := preview.SaveSTL(stlPath, mesh); err != nil {
					return err
				}
				slog.Info("wrote preview", "path", stlPath, "triangles", mesh.TriangleCount())
			}

			return writePlan(plan, out)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML run description")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "layout script placing turbines and zones")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the plan as JSON (default stdout)")
	cmd.Flags().StringVar(&stlPath, "preview", "", "write an STL preview of the sizing zones")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// applyLayout evaluates a layout script and merges its output into the run
// input: turbines and zones append, an inflow declaration overrides.
func applyLayout(in *refine.Input, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("layout: read %s: %w", path, err)
	}

	l, evalErrs, err := layout.NewEngine().Evaluate(string(src))
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			slog.Error("layout script error", "path", path, "error", e.Error())
		}
		return fmt.Errorf("layout: %d error(s) in %s", len(evalErrs), path)
	}

	in.Turbines = append(in.Turbines, l.Turbines...)
	in.CustomZones = append(in.CustomZones, l.CustomZones...)
	if l.HasInflow {
		in.InflowAngle = l.InflowAngle
	}
	return nil
}

func writePlan(plan *refine.Plan, out string) error {
	doc := exportPlan(plan)
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("plan: encode: %w", err)
	}
	b = append(b, '\n')

	if out == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return fmt.Errorf("plan: write %s: %w", out, err)
	}
	return nil
}
