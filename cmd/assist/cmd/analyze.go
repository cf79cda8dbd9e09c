package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streetlab/assist"
	"github.com/streetlab/assist/internal/batchfile"
	"github.com/streetlab/assist/pkg/editor/memedit"
	"github.com/streetlab/assist/pkg/geomap"
	"github.com/streetlab/assist/pkg/logging"
	"github.com/streetlab/assist/pkg/persist"
	"github.com/streetlab/assist/pkg/rules"
)

var (
	rulesFile   string
	ruleVariant string
)

// analyzeCmd represents the analyze command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <batch.json>",
	Short: "Detect street-name problems in a batch",
	Long: `Analyze scans a batch file for entities whose street name differs
from its rule-normalized form and lists each detected problem.

Names on the exception list are never reported. Analysis is read-only:
no batch data is modified.

Examples:
  assist analyze batch.json
  assist analyze batch.json --rules ru.yaml --variant ru`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&rulesFile, "rules", "", "YAML rule pack (default is the built-in English pack)")
	analyzeCmd.Flags().StringVar(&ruleVariant, "variant", string(rules.DefaultVariant), "rule variant to correct under")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	s, err := newSession(args[0])
	if err != nil {
		return err
	}
	defer s.close()

	count := 0
	s.analyzer.Analyze(s.file.View.Bounds, s.file.View.Zoom, &s.file.Batch, func(obj assist.ObjectRef, title, _ string, _ geomap.Point) {
		count++
		fmt.Fprintf(cmd.OutOrStdout(), "%3d. [%s %s] %s\n", count, obj.Type, obj.ID, title)
	})

	if count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No problems detected")
	}
	return nil
}

// session bundles what the analyze and fix commands need: the loaded
// batch, the in-memory editor holding it, and an analyzer with the
// persisted exception list loaded.
type session struct {
	analyzer *assist.Analyzer
	editor   *memedit.Editor
	file     *batchfile.File
	kv       persist.KV
}

func (s *session) close() { _ = s.kv.Close() }

func newSession(path string) (*session, error) {
	file, err := batchfile.Load(path)
	if err != nil {
		return nil, err
	}

	corrector := rules.Default()
	if rulesFile != "" {
		corrector, err = rules.Load(rulesFile)
		if err != nil {
			return nil, err
		}
	}

	ed := memedit.FromBatch(&file.Batch)
	ed.SetExtent(file.View.Bounds)

	kv := persist.Open(stateDir(), logging.Default())

	an, err := assist.New(
		assist.WithEditor(ed),
		assist.WithRules(corrector),
		assist.WithVariant(rules.Variant(ruleVariant)),
		assist.WithPersistence(kv),
	)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	an.LoadExceptions()

	return &session{analyzer: an, editor: ed, file: file, kv: kv}, nil
}
