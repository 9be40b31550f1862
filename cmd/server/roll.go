package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dom/league-roulette/internal/domain"
	"github.com/dom/league-roulette/internal/roulette"
	"github.com/dom/league-roulette/internal/service"
)

var (
	rollVersion string
	rollJSON    bool
	rollFilters = domain.DefaultFilterConfig()
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Draw five assignments and print them",
	Long: `Draw five assignments in one step, without the spin. The catalog is fetched
from Data Dragon, falling back to the newest stored snapshot when offline.`,
	RunE: runRoll,
}

func init() {
	f := rollCmd.Flags()
	f.StringVar(&rollVersion, "version", "", "roll from a stored snapshot of this patch")
	f.BoolVar(&rollJSON, "json", false, "print JSON")
	f.BoolVar(&rollFilters.OnlySR, "only-sr", rollFilters.OnlySR, "only Summoner's Rift items")
	f.BoolVar(&rollFilters.ExcludeTrinket, "exclude-trinket", rollFilters.ExcludeTrinket, "exclude trinkets")
	f.BoolVar(&rollFilters.ExcludeConsumable, "exclude-consumable", rollFilters.ExcludeConsumable, "exclude consumables")
	f.BoolVar(&rollFilters.ExcludeBoots, "exclude-boots", rollFilters.ExcludeBoots, "exclude boots")
	f.BoolVar(&rollFilters.OnlyCompletedLegendary, "only-legendary", rollFilters.OnlyCompletedLegendary, "only completed legendary items")
	f.BoolVar(&rollFilters.ExcludeJungleStarter, "exclude-jungle", rollFilters.ExcludeJungleStarter, "exclude jungle starters")
	f.BoolVar(&rollFilters.SuffixEnabled, "suffix", rollFilters.SuffixEnabled, "add a flourish to each slot")
}

func runRoll(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	roll := a.services.Roll

	if rollVersion != "" {
		cat, err := a.repos.Catalog.GetByVersion(ctx, rollVersion)
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", rollVersion, err)
		}
		roll = service.NewRollService(roulette.StaticCatalog{C: cat}, a.rules, nil)
	} else if err := a.services.Catalog.Load(ctx); err != nil {
		// A stale stored snapshot is good enough for a roll.
		if a.services.Catalog.Catalog() == nil {
			return err
		}
		log.Printf("Using stored catalog %s", a.services.Catalog.Status().Version)
	}

	result, err := roll.Roll(patchFrom(rollFilters))
	if err != nil {
		return err
	}

	if rollJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printRoll(cmd.OutOrStdout(), result)
	return nil
}

func patchFrom(cfg domain.FilterConfig) domain.FilterPatch {
	return domain.FilterPatch{
		OnlySR:                 &cfg.OnlySR,
		ExcludeTrinket:         &cfg.ExcludeTrinket,
		ExcludeConsumable:      &cfg.ExcludeConsumable,
		ExcludeBoots:           &cfg.ExcludeBoots,
		OnlyCompletedLegendary: &cfg.OnlyCompletedLegendary,
		ExcludeJungleStarter:   &cfg.ExcludeJungleStarter,
		SuffixEnabled:          &cfg.SuffixEnabled,
	}
}

func printRoll(w io.Writer, result *service.RollResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Patch %s\n", result.Version)
	fmt.Fprintln(tw, "#\tROLE\tCHAMPION\tITEM\tFLOURISH")
	for i, a := range result.Slots {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, roleLabel(a), championName(a), itemName(a), suffix(a))
	}
	tw.Flush()
}

func roleLabel(a roulette.Assignment) string {
	if a.Role == nil {
		return "-"
	}
	return a.Role.Label
}

func championName(a roulette.Assignment) string {
	if a.Champion == nil {
		return "-"
	}
	return a.Champion.Name
}

func itemName(a roulette.Assignment) string {
	if a.Item == nil {
		return "-"
	}
	return a.Item.Name
}

func suffix(a roulette.Assignment) string {
	if a.Suffix == nil {
		return ""
	}
	return *a.Suffix
}
