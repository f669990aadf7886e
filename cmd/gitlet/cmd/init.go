package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a repository in the current directory",
	Long:  "Create a repository with an initial commit on the default branch.",
	Args:  exactArgs(0),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := repoDir()
	if err != nil {
		return err
	}
	repo, err := gitlet.Init(dir, repoOptions(cmd)...)
	if err != nil {
		return err
	}
	return repo.Close()
}
