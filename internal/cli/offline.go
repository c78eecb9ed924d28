package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpggio/planwise/internal/domain/docs"
	"github.com/rpggio/planwise/internal/domain/phase"
	"github.com/rpggio/planwise/internal/domain/recommend"
	"github.com/spf13/cobra"
)

func newRecommendCmd() *cobra.Command {
	var projectType, scale string
	var features []string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print architecture recommendations for a project type",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := recommend.Default()
			return writeIndentedJSON(cmd.OutOrStdout(), map[string]any{
				"projectType":     projectType,
				"scale":           scale,
				"rulesVersion":    engine.Version(),
				"recommendations": engine.Recommend(projectType, scale, features),
			})
		},
	}
	cmd.Flags().StringVar(&projectType, "type", "", "Project type (e-commerce|saas|blog|portfolio|dashboard|documentation|api|marketing|custom)")
	cmd.Flags().StringVar(&scale, "scale", "medium", "Scale (small|medium|large|enterprise)")
	cmd.Flags().StringSliceVar(&features, "feature", nil, "Feature tag; repeatable")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newDocsCmd() *cobra.Command {
	var sections []string
	var format, projectName, outPath string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate project documentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := docs.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("%w: %q", err, format)
			}
			out, err := docs.Render(docs.Build(sections, projectName), f)
			if err != nil {
				return err
			}

			if outPath == "" {
				return writeDocs(cmd.OutOrStdout(), f, out)
			}
			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := writeAndClose(file, f, out); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&sections, "section", []string{docs.SectionAll}, "Section to include; repeatable ("+strings.Join(docs.Sections(), "|")+")")
	cmd.Flags().StringVar(&format, "format", string(docs.FormatMarkdown), "Output format (markdown|json|html)")
	cmd.Flags().StringVar(&projectName, "project", "", "Project name used in the title")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")
	return cmd
}

func newNextStepsCmd() *cobra.Command {
	var phaseName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "next-steps",
		Short: "Print suggested next steps for a development phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := phase.Parse(phaseName)
			if !ok {
				return fmt.Errorf("unknown phase %q (want one of %s)", phaseName, strings.Join(phase.Names(), ", "))
			}
			plan := recommend.NextSteps(p)
			w := cmd.OutOrStdout()
			if asJSON {
				return writeIndentedJSON(w, plan)
			}
			for i, s := range plan.Suggestions {
				fmt.Fprintf(w, "%d. %s [%s]\n   %s\n", i+1, s.Step, s.Priority, s.Description)
			}
			fmt.Fprintf(w, "Estimated time: %s\n", plan.EstimatedTime)
			return nil
		},
	}
	cmd.Flags().StringVar(&phaseName, "phase", "", "Phase ("+strings.Join(phase.Names(), "|")+")")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("phase")
	return cmd
}

// writeAndClose reports a failed Close when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, f docs.Format, out docs.Output) error {
	werr := writeDocs(wc, f, out)
	cerr := wc.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func writeDocs(w io.Writer, f docs.Format, out docs.Output) error {
	if f == docs.FormatJSON {
		return writeIndentedJSON(w, out.Document)
	}
	_, err := io.WriteString(w, out.Content)
	return err
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
