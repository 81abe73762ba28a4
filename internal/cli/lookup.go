package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/multisell/internal/model"
	"github.com/ppiankov/multisell/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	lookupTimeout time.Duration
	inventoryJSON bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <steamid|profile-url|alias>",
	Short: "Resolve an account identifier to its 17-digit id",
	Long: `Resolve accepts a 17-digit id, a /profiles/<id> URL, an /id/<alias> URL or a
bare alias. Only aliases need a request: the public profile page is fetched
once and the account id is read from it.

Example:
  multisell resolve https://steamcommunity.com/id/casecollector
  multisell resolve casecollector`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

// inventoryCmd represents the inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory <steamid|profile-url|alias>",
	Short: "List the containers in a public CS2 inventory",
	Long: `Inventory fetches the public CS2 inventory of an account once and lists the
weapon cases and sticker capsules in it, summed by name.

Example:
  multisell inventory 76561198012345678
  multisell inventory casecollector --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(inventoryCmd)

	for _, c := range []*cobra.Command{resolveCmd, inventoryCmd, linkCmd} {
		c.Flags().DurationVar(&lookupTimeout, "timeout", time.Minute, "overall lookup timeout")
	}
	inventoryCmd.Flags().BoolVar(&inventoryJSON, "json", false, "print the result as JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	id, err := pipeline.NewPipeline(cfg).Resolve(ctx, args[0])
	if err != nil {
		return fmt.Errorf("resolve %q: %w", args[0], err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runInventory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	result, err := pipeline.NewPipeline(cfg).Lookup(ctx, args[0])
	if err != nil {
		return fmt.Errorf("inventory %q: %w", args[0], err)
	}

	if inventoryJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	printCases(cmd.OutOrStdout(), result)
	return nil
}

func printCases(w io.Writer, result *model.LookupResult) {
	if result.AccountID != "" {
		fmt.Fprintf(w, "Account: %s\n\n", result.AccountID)
	}
	if len(result.Cases) == 0 {
		fmt.Fprintln(w, "No containers found")
		return
	}

	total := 0
	for _, c := range result.Cases {
		flags := ""
		if !c.Marketable {
			flags = "  (not marketable)"
		} else if !c.Tradable {
			flags = "  (not tradable)"
		}
		fmt.Fprintf(w, "%5d  %s%s\n", c.Quantity, c.Name, flags)
		total += c.Quantity
	}
	fmt.Fprintf(w, "\n%d containers, %d names\n", total, len(result.Cases))
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
