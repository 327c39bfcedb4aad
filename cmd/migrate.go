package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"item-catalog/feature/suggestions"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateJSON bool

// migrateCmd prepares the catalog schema and reports it.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(context.Background(), migrateJSON)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateJSON, "json", false, "Print the schema as JSON")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(ctx context.Context, asJSON bool) error {
	// openRuntime migrates the catalog and ledger tables.
	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}

	if err := suggestions.NewService(rt.db, rt.items.Store(), rt.logger).EnsureReady(ctx); err != nil {
		return err
	}

	schema, err := rt.items.Store().Schema(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	rt.logger.Info("Catalog schema ready", zap.Int("tables", len(schema)))

	if asJSON {
		out, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	tables := make([]string, 0, len(schema))
	for table := range schema {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		fmt.Printf("\n%s\n", table)
		for _, col := range schema[table] {
			fmt.Printf("  %-20s %s\n", col.Field, col.Type)
		}
	}
	return nil
}
