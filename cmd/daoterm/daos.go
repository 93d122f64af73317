package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/coins"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/prices"
	"github.com/daoterm/daoterm/internal/state"
)

var daosFlags struct {
	followed bool
}

var daosCmd = &cobra.Command{
	Use:   "daos",
	Short: "List DAOs on the configured network",
	RunE:  runDAOs,
}

func init() {
	daosCmd.Flags().BoolVarP(&daosFlags.followed, "followed", "f", false, "Only show followed DAOs")
}

func runDAOs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := bootstrap()
	if err != nil {
		return err
	}
	prefs := state.Load(app.Config.DataDir)

	daos, err := app.Client("").ListDAOs(ctx)
	if err != nil {
		return fmt.Errorf("listing DAOs: %w", err)
	}

	// Price quotes are decorative; a dead feed just means no price column.
	coinTypes := make([]string, 0, len(daos))
	for _, d := range daos {
		coinTypes = append(coinTypes, d.CoinType)
	}
	quotes, err := prices.New(app.Config.PriceFeedURL).Fetch(ctx, coinTypes)
	if err != nil {
		logger.Debug("price feed unavailable: %v", err)
		quotes = nil
	}

	for _, d := range daos {
		if daosFlags.followed && !prefs.IsFollowed(d.ID) {
			continue
		}

		marker := " "
		if prefs.IsFollowed(d.ID) {
			marker = "★"
		}
		voting := "1 coin = 1 vote"
		if d.Quadratic {
			voting = "quadratic"
		}

		fmt.Printf("%s %-24s %s\n", marker, d.Name, shortID(d.ID))
		fmt.Printf("  %s · %s · %d followers", coins.Symbol(d.CoinType), voting, d.Followers)
		if q, ok := quotes[d.CoinType]; ok {
			fmt.Printf(" · $%.4f (%+.1f%%)", q.Price, q.Change24h)
		}
		fmt.Println()
		if d.Description != "" {
			fmt.Printf("  %s\n", d.Description)
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:8] + "…" + id[len(id)-4:]
}
