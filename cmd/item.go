package cmd

import (
	"context"
	"fmt"
	"strings"

	"item-catalog/feature/items/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// itemDetailCmd shows one catalog record with its provenance.
var itemDetailCmd = &cobra.Command{
	Use:   "item [id]",
	Short: "View a catalog record and its contributors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runItemDetail(context.Background(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(itemDetailCmd)
}

func runItemDetail(ctx context.Context, id string) error {
	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}

	rt.logger.Debug("Loading item", zap.String("id", id))
	item, err := rt.items.Service().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load item %s: %w", id, err)
	}

	st := item.Stats

	fmt.Println("\n--- Item Detail View ---")
	fmt.Printf("ID:             %s\n", item.ID)
	fmt.Printf("Name:           %s\n", item.Name)
	fmt.Printf("Keywords:       %s\n", item.Keywords)
	fmt.Printf("Type:           %s\n", item.Type)
	fmt.Printf("Flags:          %s\n", strings.Join(item.Flags, ", "))
	fmt.Printf("Worn:           %s\n", strings.Join(item.Worn, ", "))
	if slot, ok := models.GuessSlot(item.Name, item.Keywords, item.Worn); ok {
		fmt.Printf("Likely slot:    %s\n", slot)
	}
	fmt.Println("------------------------")
	fmt.Printf("Weight:         %s\n", st.WeightSpan())
	fmt.Printf("AC:             %s\n", st.ACSpan())
	if st.Damage != "" {
		fmt.Printf("Damage:         %s\n", st.Damage)
	}
	if st.Condition != "" {
		fmt.Printf("Condition:      %s\n", st.Condition)
	}
	for _, a := range st.Affects {
		fmt.Printf("Affect:         %s %s\n", a.Name(), a.Span())
	}
	if item.Ego != "" {
		fmt.Printf("Ego:            %s\n", item.Ego)
	}
	fmt.Printf("Artifact:       %v\n", item.IsArtifact)
	fmt.Println("------------------------")
	fmt.Printf("Submissions:    %d\n", item.SubmissionCount)
	fmt.Printf("Contributors:   %s\n", strings.Join(item.Contributors, ", "))

	status := "\033[32mOK\033[0m"
	if item.FlaggedForReview {
		status = "\033[33mFLAGGED\033[0m"
	}
	fmt.Printf("Review:         %s\n", status)
	if item.DuplicateOf != nil {
		fmt.Printf("Duplicate of:   %s\n", *item.DuplicateOf)
	}
	fmt.Println("------------------------")
	return nil
}
