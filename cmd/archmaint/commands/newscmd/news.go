// Package newscmd implements the distribution news command.
package newscmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/archmaint/archmaint/pkg/config"
	"github.com/archmaint/archmaint/pkg/news"
	"github.com/archmaint/archmaint/pkg/system"
)

// NewCommand creates the news command.
func NewCommand() *cobra.Command {
	var (
		browser bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:     "news",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "maintenance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				cfg.News.Limit = limit
			}

			if browser {
				return news.OpenBrowser(cmd.Context(), system.NewRunner(), cfg.News.URL)
			}

			items, err := news.NewClient(cfg.News).Fetch(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No news items in the feed.")
				return nil
			}

			if err := news.Render(out, items); err != nil {
				fmt.Fprint(out, news.Markdown(items))
			}
			if err := news.MarkSeen(items); err != nil {
				log.Warn().Err(err).Msg("Could not record news state")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&browser, "browser", false, "Open the news page via xdg-open instead")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of items to fetch (overrides config)")
	return cmd
}
