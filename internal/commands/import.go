package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pocketledger-dev/pocketledger/internal/categorize"
	"github.com/pocketledger-dev/pocketledger/internal/importer"
	"github.com/pocketledger-dev/pocketledger/internal/model"
)

func newImportCommand(configPath *string) *cobra.Command {
	var (
		format     string
		noHeader   bool
		autoAssign bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(*configPath, args[0], format, noHeader, autoAssign)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "bank format (default: detect from headers)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first line as data, not headers")
	cmd.Flags().BoolVar(&autoAssign, "categorize", true, "auto-categorize imported transactions")

	return cmd
}

func runImport(configPath, path, format string, noHeader, autoAssign bool) error {
	cfg, st, log, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	file, err := importer.Decode(f, !noHeader)
	if err != nil {
		return err
	}

	bankFormat := model.BankFormat(format)
	if bankFormat == "" {
		bankFormat = importer.DetectFile(file, cfg.Import.DefaultBankFormat())
	}

	parser := importer.DefaultRegistry().Get(bankFormat)
	if parser == nil {
		return fmt.Errorf("no parser registered for format %q", bankFormat)
	}
	log.Info().Str("format", string(bankFormat)).Str("file", path).Msg("parsing statement")

	result := parser.Parse(file)
	for _, perr := range result.Errors {
		log.Warn().Int("row", perr.Row).Str("field", perr.Field).Str("raw", perr.RawValue).Msg(perr.Message)
	}

	txns := make([]model.Transaction, len(result.Transactions))
	for i, parsed := range result.Transactions {
		parsed.ImportSource = model.SourceCSV
		txns[i] = model.Transaction{ParsedTransaction: parsed}
	}

	var firedRules []string
	if autoAssign && len(txns) > 0 {
		firedRules, err = assignCategories(st, txns)
		if err != nil {
			return err
		}
	}

	inserted, err := st.AddTransactionsBulk(txns)
	if err != nil {
		return fmt.Errorf("storing transactions: %w", err)
	}

	for _, ruleID := range firedRules {
		if err := st.IncrementRuleHit(ruleID); err != nil {
			return fmt.Errorf("incrementing rule hits: %w", err)
		}
	}

	fmt.Printf("Imported %d of %d rows (%d skipped, %d errors)\n",
		len(inserted), result.Stats.TotalRows, result.Stats.SkippedRows, len(result.Errors))
	if r := result.Stats.DateRange; r != nil {
		fmt.Printf("Date range: %s to %s\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

// assignCategories runs the categorization engine over not-yet-persisted
// transactions, writing results onto the records in place. Rule matches are
// attributed to the rule; the returned rule identifiers (one per firing,
// duplicates included) still need their hit counts incremented once the
// records are stored.
func assignCategories(st categoryLister, txns []model.Transaction) ([]string, error) {
	engine, err := buildEngine(st)
	if err != nil {
		return nil, err
	}
	var firedRules []string
	for i := range txns {
		r := engine.Categorize(txns[i])
		if !r.Matched() {
			continue
		}
		txns[i].CategoryID = r.CategoryID
		txns[i].ConfidenceScore = r.Confidence.Score()
		if r.RuleID != "" {
			txns[i].CategorizedBy = model.CategorizedRule
			firedRules = append(firedRules, r.RuleID)
		} else {
			txns[i].CategorizedBy = model.CategorizedAuto
		}
	}
	return firedRules, nil
}

type categoryLister interface {
	ListCategories() ([]model.Category, error)
	ListRules() ([]model.CategoryRule, error)
}

func buildEngine(st categoryLister) (*categorize.Engine, error) {
	cats, err := st.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	rules, err := st.ListRules()
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	return categorize.NewEngine(cats, rules), nil
}
