package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/whodunit/cmd/cli/gamedata"
	"github.com/myrjola/whodunit/cmd/cli/ops"
	"github.com/myrjola/whodunit/internal/errors"
	"github.com/spf13/cobra"
	"io/fs"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(gamedata.Group)
	rootCmd.AddCommand(gamedata.Leaderboard, gamedata.Stats, gamedata.Transcript)
	rootCmd.AddGroup(ops.Group)
	rootCmd.AddCommand(ops.Cleanup)
}

var rootCmd = &cobra.Command{
	Use:  "whodunit-cli",
	Long: `Command line utilities for the whodunit deduction game server`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
