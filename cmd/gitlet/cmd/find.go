package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var findCmd = &cobra.Command{
	Use:   "find <message>",
	Short: "Print the ids of commits whose message contains the text",
	Args:  exactArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		ids, err := repo.Find(args[0])
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	})
}
