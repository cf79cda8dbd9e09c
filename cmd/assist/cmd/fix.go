package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streetlab/assist/internal/batchfile"
	"github.com/streetlab/assist/pkg/events"
)

var outputFile string

// fixCmd represents the fix command.
var fixCmd = &cobra.Command{
	Use:   "fix <batch.json>",
	Short: "Detect and fix street-name problems in a batch",
	Long: `Fix analyzes a batch file and then remediates every detected,
non-excepted problem in detection order, one at a time. Each fix
resubmits the corrected street (creating it when needed) and rewrites
the entity's street reference.

With --output the corrected batch is written back out; without it the
run is a dry report of what would change.

Examples:
  assist fix batch.json --output fixed.json
  assist fix batch.json --rules ru.yaml --variant ru`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule pack (default is the built-in English pack)")
	fixCmd.Flags().StringVar(&ruleVariant, "variant", ruleVariant, "rule variant to correct under")
	fixCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the corrected batch to this file")
}

func runFix(cmd *cobra.Command, args []string) error {
	s, err := newSession(args[0])
	if err != nil {
		return err
	}
	defer s.close()

	out := cmd.OutOrStdout()
	cancel := s.analyzer.Events().Subscribe(events.SubscriberFunc(func(e events.Event) error {
		switch e.Type {
		case events.ProblemDetected:
			data := e.Data.(events.ProblemData)
			fmt.Fprintf(out, "found  [%s %s] %s\n", data.Variant, data.ID, data.Title)
		case events.UserIssueFixed:
			data := e.Data.(events.ResolutionData)
			fmt.Fprintf(out, "kept   [%s] already corrected to %q\n", data.ID, data.CurrentName)
		case events.IssueFixFailed:
			data := e.Data.(events.ResolutionData)
			fmt.Fprintf(out, "failed [%s] entity not found\n", data.ID)
		}
		return nil
	}))
	defer cancel()

	s.analyzer.Analyze(s.file.View.Bounds, s.file.View.Zoom, &s.file.Batch, nil)

	if err := s.analyzer.FixAll(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(out, "fixed %d, skipped %d, pending %d\n",
		s.analyzer.FixedErrorNum(), s.analyzer.SkippedErrorNum(), s.analyzer.UnresolvedErrorNum())

	if outputFile != "" {
		s.file.Batch = *s.editor.Batch()
		if err := batchfile.Save(outputFile, s.file); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", outputFile)
	}
	return nil
}
