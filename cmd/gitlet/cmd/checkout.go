package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aweris/gitlet"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <branch> | -- <file> | <commit> -- <file>",
	Short: "Switch branches or restore a file",
	Long: `Switch to a branch, restore a file from the current commit, or restore a
file from the given (possibly abbreviated) commit.`,
	Args: checkoutArgs,
	RunE: runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

// checkoutArgs accepts the three forms. pflag strips "--" from args, so the
// dash position tells the forms apart.
func checkoutArgs(cmd *cobra.Command, args []string) error {
	dash := cmd.ArgsLenAtDash()
	switch {
	case len(args) == 1 && dash == -1:
	case len(args) == 1 && dash == 0:
	case len(args) == 2 && dash == 1:
	default:
		return usageError("Incorrect operands.")
	}
	return nil
}

func runCheckout(cmd *cobra.Command, args []string) error {
	return withRepo(cmd, func(repo *gitlet.Repository) error {
		switch {
		case cmd.ArgsLenAtDash() == -1:
			return repo.CheckoutBranch(args[0])
		case len(args) == 1:
			return repo.CheckoutFile(args[0])
		default:
			return repo.CheckoutFileAt(args[0], args[1])
		}
	})
}
