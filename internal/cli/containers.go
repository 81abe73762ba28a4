package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/multisell/internal/market"
	"github.com/spf13/cobra"
)

// containersCmd represents the containers command
var containersCmd = &cobra.Command{
	Use:   "containers [filter]",
	Short: "List the known weapon cases and sticker capsules",
	Long: `Containers prints the fixed catalog used when no inventory is read. An
optional filter keeps names containing it (case-insensitive).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := ""
		if len(args) == 1 {
			filter = strings.ToLower(strings.TrimSpace(args[0]))
		}

		matched := 0
		for _, name := range market.KnownContainers() {
			if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			matched++
		}

		if matched == 0 && filter != "" {
			if suggestion, ok := market.Suggest(args[0]); ok {
				return fmt.Errorf("no container matches %q (did you mean %q?)", args[0], suggestion)
			}
			return fmt.Errorf("no container matches %q", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(containersCmd)
}
