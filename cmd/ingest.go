package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"item-catalog/feature/items"
	"item-catalog/feature/items/ledger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the ingest command
	ingestSubmitter   string
	ingestUserID      string
	ingestDryRun      bool
	ingestFromArchive string
	yesConfirm        bool
)

// ingestCmd ingests one identify dump into the catalog.
var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest an identify dump into the catalog",
	Long: `Parses an identify dump, resolves every item against the catalog and writes
new items and merges.

When an item has the same name, keywords and type as a catalog record but
different content, nothing is written until you confirm the merge.

Examples:
  # Ingest a dump file
  ingest dump.txt --submitter Alice

  # Read the dump from stdin
  cat dump.txt | ingest

  # Classify only
  ingest dump.txt --dry-run

  # Merge possible duplicates without prompting
  ingest dump.txt --yes

  # Re-ingest an archived dump
  ingest --from-archive dumps/2026/05/01/<id>.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSubmitter, "submitter", "", "Name credited for the submission")
	ingestCmd.Flags().StringVar(&ingestUserID, "user-id", "", "User id credited for the submission")
	ingestCmd.Flags().BoolVar(&ingestDryRun, "dry-run", false, "Classify without writing")
	ingestCmd.Flags().StringVar(&ingestFromArchive, "from-archive", "", "Object key of an archived dump to re-ingest")
	ingestCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm merges of possible duplicates (non-interactive)")

	RootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	svc := rt.items.Service()

	raw, err := readDump(ctx, svc, args)
	if err != nil {
		return err
	}

	req := items.IngestRequest{
		Raw:       raw,
		Submitter: ledger.Submitter{Name: strings.TrimSpace(ingestSubmitter), UserID: strings.TrimSpace(ingestUserID)},
		DryRun:    ingestDryRun,
	}

	// Step 1: Classify and write what needs no confirmation
	rt.logger.Info("Ingesting dump...", zap.Int("bytes", len(raw)))
	report, err := svc.Ingest(ctx, req)
	if report != nil {
		printIngestReport(rt.logger, report)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest dump: %w", err)
	}

	if !report.Held {
		if report.DryRun {
			rt.logger.Info("Dry-run mode: No changes were made.")
		}
		return nil
	}

	// Step 2: The batch is held, show what would be merged
	printHeldResults(report)
	if ingestDryRun {
		rt.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}

	decision := items.DecisionCancel
	if confirmMerge() {
		decision = items.DecisionProceed
	}

	report, err = svc.Confirm(ctx, items.ConfirmRequest{IngestRequest: req, Decision: decision})
	if report != nil {
		printIngestReport(rt.logger, report)
	}
	if err != nil {
		return fmt.Errorf("failed to apply confirmed dump: %w", err)
	}
	if decision == items.DecisionCancel {
		rt.logger.Warn("Operation cancelled by user. No changes were made.")
	}
	return nil
}

// readDump reads the dump from the archive, the file argument or stdin.
func readDump(ctx context.Context, svc *items.Service, args []string) (string, error) {
	if ingestFromArchive != "" {
		raw, err := svc.Replay(ctx, ingestFromArchive)
		if err != nil {
			return "", fmt.Errorf("failed to load archived dump: %w", err)
		}
		return raw, nil
	}

	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to open dump: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read dump: %w", err)
	}
	return string(data), nil
}

// printIngestReport prints the outcome counts using the logger.
func printIngestReport(l *zap.Logger, report *items.Report) {
	s := report.Summary

	l.Info("Ingest report",
		zap.Int("observations", s.Total),
		zap.Int("new", s.New),
		zap.Int("merged", s.Merged),
		zap.Int("repeat", s.Repeat),
		zap.Int("needs_confirmation", s.NeedsConfirmation),
		zap.Int("rejected", s.Rejected),
		zap.Int("cancelled", s.Cancelled),
	)

	for _, res := range report.Results {
		if res.Outcome == items.OutcomeRejected {
			l.Warn("Rejected observation",
				zap.Int("index", res.Index),
				zap.String("identity", res.Identity),
				zap.String("reason", res.Reason),
			)
		}
	}
	if report.ArchiveKey != "" {
		l.Info("Dump archived", zap.String("key", report.ArchiveKey))
	}
}

// printHeldResults lists the observations waiting for confirmation and their changes.
func printHeldResults(report *items.Report) {
	fmt.Println("\n--- Possible duplicates ---")
	for _, res := range report.Results {
		if res.Outcome != items.OutcomeNeedsConfirmation {
			continue
		}
		fmt.Printf("#%d %s\n", res.Index, res.Identity)
		if res.DuplicateOf != "" {
			fmt.Printf("   existing record: %s\n", res.DuplicateOf)
		}
		for _, c := range res.Changes {
			fmt.Printf("   - %s\n", c)
		}
	}
	fmt.Println("---------------------------")
}

// confirmMerge prompts the user for confirmation or uses --yes flag.
func confirmMerge() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to merge these observations into the existing records: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
