package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/multisell/internal/market"
	"github.com/ppiankov/multisell/internal/model"
	"github.com/ppiankov/multisell/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	linkSteamID    string
	linkManual     bool
	linkQuantities []string
)

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link [names...]",
	Short: "Build a multi-sell link for a set of containers",
	Long: `Link prints a Steam Community Market multi-sell URL.

With --steamid the account's inventory is read and every container it owns is
selected at quantity 1, or only the names given as arguments. Quantities never
exceed what the account owns.

Without --steamid the names given are used as is; names missing from the known
list only print a warning. --manual selects the whole known catalog instead.

Example:
  multisell link --steamid casecollector
  multisell link --steamid casecollector "Fracture Case" --qty "Fracture Case=10"
  multisell link "Fracture Case" "Dreams & Nightmares Case" --qty "Fracture Case=3"
  multisell link --manual`,
	RunE: runLink,
}

func init() {
	rootCmd.AddCommand(linkCmd)

	linkCmd.Flags().StringVar(&linkSteamID, "steamid", "", "read owned containers from this account (id, profile URL or alias)")
	linkCmd.Flags().BoolVar(&linkManual, "manual", false, "select every known container instead of reading an inventory")
	linkCmd.Flags().StringArrayVar(&linkQuantities, "qty", nil, `quantity for a name, as "name=N" (repeatable)`)
}

func runLink(cmd *cobra.Command, args []string) error {
	if linkManual && linkSteamID != "" {
		return fmt.Errorf("--manual and --steamid cannot be combined")
	}

	quantities, err := parseQuantities(linkQuantities)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var sel *market.Selection
	switch {
	case linkSteamID != "":
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		result, err := pipeline.NewPipeline(cfg).Lookup(ctx, linkSteamID)
		if err != nil {
			return fmt.Errorf("inventory %q: %w", linkSteamID, err)
		}
		logf(cfg, "%s owns %d container names", result.AccountID, len(result.Cases))

		sel, err = selectOwned(result.Cases, args)
		if err != nil {
			return err
		}
	case linkManual:
		sel = market.NewSelectionFromCases(market.ManualCatalog())
	default:
		if len(args) == 0 {
			return fmt.Errorf("nothing to link: pass container names, --steamid or --manual")
		}
		sel = selectNamed(args, quantities, cmd.ErrOrStderr())
	}

	for name, qty := range quantities {
		if !sel.Has(name) {
			return fmt.Errorf("--qty %q: container is not selected", name)
		}
		sel.SetQuantity(name, qty)
	}

	if sel.Len() == 0 {
		return fmt.Errorf("no containers selected")
	}
	if count := sel.Count(); count > cfg.Server.MaxLinkUnits && cfg.Server.MaxLinkUnits > 0 {
		return fmt.Errorf("%d units selected, at most %d per link (server.max_link_units)", count, cfg.Server.MaxLinkUnits)
	}

	logf(cfg, "%d names, %d units", sel.Len(), sel.Count())
	fmt.Fprintln(cmd.OutOrStdout(), sel.URL())
	return nil
}

// selectOwned selects the named cases from an inventory, or all of them when
// no names are given
func selectOwned(cases []model.CaseItem, names []string) (*market.Selection, error) {
	if len(names) == 0 {
		return market.NewSelectionFromCases(cases), nil
	}

	owned := make(map[string]int, len(cases))
	for _, c := range cases {
		owned[c.Name] = c.Quantity
	}

	sel := market.NewSelection()
	for _, name := range names {
		qty, ok := owned[name]
		if !ok {
			return nil, fmt.Errorf("the account owns no %q", name)
		}
		sel.Add(name, qty)
	}
	return sel, nil
}

// selectNamed builds a manual selection. Each name's ceiling is its requested
// quantity since nothing is known about ownership. Names missing from the
// known list are kept; warn gets a hint for them.
func selectNamed(names []string, quantities map[string]int, warn io.Writer) *market.Selection {
	sel := market.NewSelection()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !market.IsKnownContainer(name) {
			if suggestion, ok := market.Suggest(name); ok {
				fmt.Fprintf(warn, "Warning: %q is not a known container (did you mean %q?)\n", name, suggestion)
			} else {
				fmt.Fprintf(warn, "Warning: %q is not a known container\n", name)
			}
		}
		sel.Add(name, quantities[name])
	}
	return sel
}

// parseQuantities parses repeated "name=N" flags
func parseQuantities(values []string) (map[string]int, error) {
	quantities := make(map[string]int, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid --qty %q: expected name=N", v)
		}
		name := strings.TrimSpace(v[:i])
		n, err := strconv.Atoi(strings.TrimSpace(v[i+1:]))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid --qty %q: quantity must be a positive integer", v)
		}
		quantities[name] = n
	}
	return quantities, nil
}
