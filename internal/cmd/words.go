package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ledgerdesk/internal/amount"
)

var wordsCmd = &cobra.Command{
	Use:   "words <amount>",
	Short: "Print an amount in words",
	Long: `Print an amount in words using lakh and crore.

Examples:
  ledgerdesk words 123456.78
  ledgerdesk words "1,00,00,000"
  ledgerdesk words -- -2500`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paise, err := amount.Parse(strings.Join(args, ""))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", amount.Format(paise), amount.Words(paise))
		return nil
	},
}
