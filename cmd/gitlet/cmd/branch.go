package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var branchCmd = &cobra.Command{
	Use:   "branch <name>",
	Short: "Create a branch at the current commit",
	Args:  exactArgs(1),
	RunE:  runBranch,
}

var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch <name>",
	Short: "Delete a branch pointer",
	Args:  exactArgs(1),
	RunE:  runRmBranch,
}

func init() {
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
}

func runBranch(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		return repo.Branch(args[0])
	})
}

func runRmBranch(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		return repo.RemoveBranch(args[0])
	})
}
