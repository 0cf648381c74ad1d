package nullspacecmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/config"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [experiment-id...]",
	Short: "Fetch studies or a knowledge graph and print them as JSON",
	Long: `Fetch study records from the configured source and print them to
stdout as JSON. With --graph, assembles the knowledge graph over the
given experiment ids instead. With --query, ranks the catalog against
the query. Plain ids fetch those studies with their related records.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().Bool("graph", false, "assemble the knowledge graph instead of listing studies")
	fetchCmd.Flags().String("query", "", "rank the catalog against this query")
	fetchCmd.Flags().Int("limit", 0, "cap the number of results")
	fetchCmd.Flags().Duration("timeout", 60*time.Second, "overall fetch timeout")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	graph, _ := cmd.Flags().GetBool("graph")
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	// Logs would interleave with the JSON output, keep them quiet.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	explorer, err := buildExplorer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize explorer: %w", err)
	}
	defer explorer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := fetchResult(ctx, explorer, args, graph, query, limit)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// fetchResult selects what to fetch: a graph, ranked search results,
// the named studies, or the full catalog listing when nothing narrows
// the request.
func fetchResult(ctx context.Context, explorer nullspace.Explorer, args []string, graph bool, query string, limit int) (any, error) {
	switch {
	case graph:
		return explorer.KnowledgeGraph(ctx, args)
	case query != "":
		return explorer.Search(ctx, query, limit)
	case len(args) == 1:
		return explorer.Study(ctx, args[0])
	case len(args) > 1:
		details := make([]*nullspace.StudyDetail, 0, len(args))
		for _, id := range args {
			detail, err := explorer.Study(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("fetching %s: %w", id, err)
			}
			details = append(details, detail)
		}
		return details, nil
	default:
		return explorer.Studies(ctx, nullspace.StudyFilter{Limit: limit})
	}
}
