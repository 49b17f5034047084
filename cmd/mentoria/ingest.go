package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sandevgo/mentoria/internal/service/content"
	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/spf13/cobra"
)

var (
	ingestType    string
	ingestWorkers int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.json>",
	Short: "Load content items from a JSON file into the catalog",
	Long:  `Reads a JSON array of content items, embeds each one and stores it. Items without a content_type use --type.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		catalog, closeCatalog, err := newCatalog(ctx)
		if err != nil {
			return err
		}
		defer closeCatalog()

		report, err := catalog.Ingest(ctx, f, ingestType, ingestWorkers)
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().
			Int("stored", report.Stored).
			Int("failed", len(report.Failed)).
			Msg("ingest finished")

		if len(report.Failed) > 0 {
			keys := make([]string, 0, len(report.Failed))
			for k := range report.Failed {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", k, report.Failed[k])
			}
			return fmt.Errorf("%d items failed", len(report.Failed))
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestType, "type", "t", content.TypeMED, "content type for items that do not set one")
	ingestCmd.Flags().IntVarP(&ingestWorkers, "workers", "w", 4, "concurrent embedding requests")
	rootCmd.AddCommand(ingestCmd)
}
