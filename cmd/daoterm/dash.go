package main

import (
	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/state"
	"github.com/daoterm/daoterm/internal/tui"
)

func runDash(cmd *cobra.Command, args []string) error {
	app, err := bootstrap()
	if err != nil {
		return err
	}

	prefs := state.Load(app.Config.DataDir)
	return tui.Run(cmd.Context(), app, prefs, app.Config.DataDir)
}
