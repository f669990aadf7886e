package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/gitlet"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var rootCmd = &cobra.Command{
	Use:           "gitlet",
	Short:         "A tiny local version-control system",
	Long:          "gitlet tracks files in a directory with commits, branches and merges.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usageError("Please enter a command.")
		}
		return usageError("No command with that name exists.")
	},
}

// Execute runs the CLI and exits the process.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// pflag keeps the "--" position from a previous parse.
	checkoutCmd.ResetFlags()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return exitCode(rootCmd.Execute(), stdout, stderr)
}

// exitCode reports err the way the user expects and maps it to an exit code.
// Domain errors are single-line messages on stdout, not failures.
func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		err = usageError("No command with that name exists.")
	}

	var gerr *gitlet.Error
	if !errors.As(err, &gerr) {
		fmt.Fprintf(stderr, "gitlet: %v\n", err)
		return exitError
	}
	fmt.Fprintln(stdout, gerr.Message)
	if errors.Is(gerr, gitlet.ErrUsage) {
		return exitUsage
	}
	return exitOK
}

func usageError(msg string) error {
	return &gitlet.Error{Kind: gitlet.ErrUsage, Message: msg}
}

// exactArgs is cobra.ExactArgs with the user-facing operand message.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("Incorrect operands.")
		}
		return nil
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/gitlet/config.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "repository root (default: current directory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// configDefaults lists every config key. Each can be set in config.yaml or
// as GITLET_<KEY> in the environment; dir and log_level also have flags.
var configDefaults = map[string]any{
	"log_level":      "warn",
	"default_branch": gitlet.DefaultBranch,
	"concurrency":    gitlet.DefaultConcurrency,
	"cache_size":     gitlet.DefaultCacheSize,
}

func initConfig() {
	for key, value := range configDefaults {
		viper.SetDefault(key, value)
	}
	viper.SetEnvPrefix("GITLET")
	viper.AutomaticEnv()

	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, "gitlet"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// A missing config file leaves the defaults and environment in effect.
	viper.ReadInConfig()
}

func repoDir() (string, error) {
	if dir := viper.GetString("dir"); dir != "" {
		return dir, nil
	}
	return os.Getwd()
}

func newLogger(stderr io.Writer) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(stderr)
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	l.SetLevel(level)
	return l
}

func repoOptions(cmd *cobra.Command) []gitlet.Option {
	return []gitlet.Option{
		gitlet.WithLogger(newLogger(cmd.ErrOrStderr())),
		gitlet.WithDefaultBranch(viper.GetString("default_branch")),
		gitlet.WithConcurrency(viper.GetInt("concurrency")),
		gitlet.WithCacheSize(viper.GetInt("cache_size")),
	}
}

// withRepo opens the repository, runs fn and closes it.
func withRepo(cmd *cobra.Command, fn func(*gitlet.Repository) error) (err error) {
	dir, err := repoDir()
	if err != nil {
		return err
	}
	repo, err := gitlet.Open(dir, repoOptions(cmd)...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(repo)
}
