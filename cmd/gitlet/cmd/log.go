package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the history of the current branch",
	Args:  exactArgs(0),
	RunE:  runLog,
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit ever made",
	Args:  exactArgs(0),
	RunE:  runGlobalLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		entries, err := repo.Log()
		if err != nil {
			return err
		}
		printEntries(cmd, entries)
		return nil
	})
}

func runGlobalLog(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		entries, err := repo.GlobalLog()
		if err != nil {
			return err
		}
		printEntries(cmd, entries)
		return nil
	})
}

func printEntries(cmd *cobra.Command, entries []gitlet.LogEntry) {
	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprint(out, e)
	}
}
