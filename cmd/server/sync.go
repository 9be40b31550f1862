package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dom/league-roulette/internal/service"
)

var (
	purgeCache   bool
	listVersions bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the latest Data Dragon catalog and store a snapshot",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&purgeCache, "purge-cache", false, "drop cached Data Dragon responses before fetching")
	syncCmd.Flags().BoolVar(&listVersions, "list", false, "list stored snapshot versions instead of fetching")
}

func runSync(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	if listVersions {
		versions, err := a.repos.Catalog.Versions(ctx)
		if err != nil {
			return err
		}
		for _, v := range versions {
			fmt.Fprintln(out, v)
		}
		return nil
	}

	if purgeCache {
		if a.cache == nil {
			return fmt.Errorf("--purge-cache needs REDIS_URL")
		}
		n, err := a.cache.Purge(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
		fmt.Fprintf(out, "Purged %d cached responses\n", n)
	}

	return syncCatalog(ctx, out, a.services.Catalog)
}

// syncCatalog fetches and stores one snapshot. Unlike the server it fails
// when the snapshot could not be written.
func syncCatalog(ctx context.Context, out io.Writer, catalog *service.CatalogService) error {
	if err := catalog.Sync(ctx); err != nil {
		return err
	}

	status := catalog.Status()
	fmt.Fprintf(out, "Stored catalog %s: %d champions, %d items, %d keystones\n",
		status.Version, status.Champions, status.Items, status.Keystones)
	return nil
}
