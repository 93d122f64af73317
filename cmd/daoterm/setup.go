package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
	rpcURL  string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a starter config file",
	Long: `Write a starter config file.

By default the config is written to the XDG global location
(~/.config/daoterm/daoterm.yml). Use --project to write ./daoterm.yml
instead, which takes precedence over the global config.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupFlags.project, "project", false, "Write ./daoterm.yml instead of the global config")
	setupCmd.Flags().BoolVar(&setupFlags.force, "force", false, "Overwrite an existing config file")
	setupCmd.Flags().StringVar(&setupFlags.rpcURL, "rpc-url", "", "RPC endpoint to write into the config")
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := config.GlobalPath()
	if setupFlags.project {
		path = config.ProjectPath()
	}
	if config.Exists() && !setupFlags.force {
		return fmt.Errorf("config already exists, use --force to overwrite")
	}

	// Load() fills in every default; only rpc_url needs a value.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if setupFlags.rpcURL != "" {
		cfg.RPCURL = setupFlags.rpcURL
	}

	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Config written to %s\n", path)
	if cfg.RPCURL == "" {
		fmt.Println("Set rpc_url in the config (or DAOTERM_RPC_URL) before connecting.")
	}
	return nil
}
