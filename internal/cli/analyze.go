package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/refcycle/vcrc/api/v1alpha1"
	"github.com/refcycle/vcrc/internal/report"
)

// Output formats.
const (
	OutputYAML  = "yaml"
	OutputJSON  = "json"
	OutputTable = "table"
)

type runFunc func(context.Context, *v1alpha1.CycleAnalysis) (*v1alpha1.CycleAnalysis, error)

func newAnalyzeCommand(a *app) *cobra.Command {
	var output, chart string
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Solve every operating condition and run the averaged entropy analysis",
		Example: `  vcrc analyze test/e2e/testdata/r32-split.yaml
  vcrc analyze -o table --chart losses.svg test/e2e/testdata/r717-two-stage.yaml
  cat doc.yaml | vcrc analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMetrics(cmd, func() error {
				out, err := run(cmd, args[0], output, a.evaluator.Evaluate)
				if err != nil {
					return err
				}
				if chart != "" {
					return report.SaveLossChart(out, chart)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", OutputYAML, "output format: yaml, json or table")
	cmd.Flags().StringVar(&chart, "chart", "", "write a bar chart of the averaged losses (.png, .svg, .pdf)")
	return cmd
}

func newSolveCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve every operating condition without the entropy analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMetrics(cmd, func() error {
				_, err := run(cmd, args[0], output, a.evaluator.Solve)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", OutputYAML, "output format: yaml, json or table")
	return cmd
}

// run decodes the document, runs fn and prints the result. The document is printed even when
// fn fails so its status explains the failure.
func run(cmd *cobra.Command, path, output string, fn runFunc) (*v1alpha1.CycleAnalysis, error) {
	if err := checkOutput(output); err != nil {
		return nil, err
	}
	raw, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return nil, err
	}
	doc, err := v1alpha1.Decode(raw)
	if err != nil {
		return nil, err
	}
	out, runErr := fn(cmd.Context(), doc)
	if err := write(cmd.OutOrStdout(), out, output); err != nil {
		return nil, err
	}
	return out, runErr
}

func checkOutput(output string) error {
	switch output {
	case OutputYAML, OutputJSON, OutputTable:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return raw, nil
}

func write(w io.Writer, doc *v1alpha1.CycleAnalysis, output string) error {
	switch output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case OutputTable:
		if err := report.WriteResults(w, doc); err != nil {
			return err
		}
		return report.WriteLosses(w, doc)
	default:
		raw, err := v1alpha1.Encode(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	}
}
