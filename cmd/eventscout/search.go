package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/networkai/event-scout/internal/keywords"
	"github.com/networkai/event-scout/internal/observability"
	"github.com/networkai/event-scout/internal/types"
)

var (
	searchKeywords []string
	searchVerbose  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find top upcoming events for a keyword set",
	Long:  `Score the event corpus against the given keywords and print the highest ranked upcoming events.`,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVarP(&searchKeywords, "keyword", "k", nil, "Search keyword (repeatable)")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Print full event details")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	client, err := newLLMClient(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	kws := keywords.Clean(searchKeywords)
	agent := newSearchAgent(client, cfg, log)

	events, err := agent.FindTopEvents(cmd.Context(), kws, "")
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(events) == 0 {
		fmt.Println("No upcoming events found.")
		return nil
	}

	if searchVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintKeywords(kws)
		for i, event := range events {
			printer.PrintEvent(i+1, event)
		}
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSCORE\tDATE\tEVENT\tLOCATION")
	for i, event := range events {
		fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%s\n",
			i+1, event.CombinedScore, event.FormattedDate,
			types.Render(event.Title), types.Render(event.Location))
	}
	return w.Flush()
}
