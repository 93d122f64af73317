package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/tui/theme"
)

const (
	logoText1 = "█▀▄ ▄▀█ █▀█ ▀█▀ █▀▀ █▀█ █▀▄▀█"
	logoText2 = "█▄▀ █▀█ █▄█  █  ██▄ █▀▄ █ ▀ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "daoterm",
	Short: "Terminal client for on-chain DAO governance",
	RunE:  runDash,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

daoterm is a terminal client for on-chain DAO governance. Browse and follow
DAOs, inspect and vote on intents, and create proposals (treasury transfers,
config changes, dependency updates, vesting streams) through stepped wizards.

Running daoterm with no subcommand opens the dashboard.`

	rootCmd.AddCommand(daosCmd)
	rootCmd.AddCommand(intentsCmd)
	rootCmd.AddCommand(proposeCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(setupCmd)
}
