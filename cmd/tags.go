package cmd

import (
	"context"
	"fmt"
	"time"

	"releasesite/config"
	"releasesite/internal/version"

	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List release tags of the repository, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rels, err := newSource(cfg).ListReleases(ctx, cfg.Owner, cfg.Repo)
			if err != nil {
				return err
			}

			raw := make([]string, 0, len(rels))
			for _, r := range rels {
				if r.TagName != "" {
					raw = append(raw, r.TagName)
				}
			}

			for _, t := range version.SortTags(raw) {
				if t.Latest {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (latest)\n", t.Display)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), t.Display)
			}
			return nil
		},
	}

	return cmd
}
