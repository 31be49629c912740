package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/questpilot/hackquest-bot/questpilot"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "print per-user ledger totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := questpilot.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		summaries, err := app.Stats(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tWALLET\tCOINS\tQUESTS\tQUIZZES\tEARNED\tEXP")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
				s.User.Username,
				s.User.WalletAddress,
				s.User.CoinBalance,
				s.Quests.Completed,
				s.Quizzes.Completed,
				s.Quests.Reward+s.Quizzes.Reward,
				s.Quests.Exp+s.Quizzes.Exp)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
