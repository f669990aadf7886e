package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branches, staged changes and working directory state",
	Args:  exactArgs(0),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		st, err := repo.Status()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), st)
		return nil
	})
}
