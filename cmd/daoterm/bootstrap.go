package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/daoterm/daoterm/internal/appctx"
	"github.com/daoterm/daoterm/internal/config"
	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/state"
	"github.com/daoterm/daoterm/internal/wallet"
)

// bootstrap loads config, connects the wallet, and builds the application
// context every command works through.
func bootstrap() (*appctx.AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("no RPC endpoint configured, run 'daoterm setup' or set DAOTERM_RPC_URL")
	}

	logger.Configure(cfg.LogLevel, cfg.LogFile)

	w, err := wallet.Load(cfg.Keystore)
	if err != nil {
		return nil, fmt.Errorf("opening wallet: %w", err)
	}

	return appctx.New(cfg, w, ledger.New(cfg.RPCURL)), nil
}

// resolveDAO finds the DAO a command targets: the --dao flag value (address
// or name), then the configured default, then the last DAO selected in the
// dashboard.
func resolveDAO(ctx context.Context, app *appctx.AppContext, flag string) (*sdk.DAO, error) {
	target := flag
	if target == "" {
		target = app.Config.DefaultDAO
	}
	if target == "" {
		target = state.Load(app.Config.DataDir).LastDAO
	}
	if target == "" {
		return nil, fmt.Errorf("no DAO selected, pass --dao or set default_dao in the config")
	}

	daos, err := app.Client("").ListDAOs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing DAOs: %w", err)
	}
	for i := range daos {
		if daos[i].ID == target || strings.EqualFold(daos[i].Name, target) {
			return &daos[i], nil
		}
	}
	return nil, fmt.Errorf("DAO %q not found", target)
}
