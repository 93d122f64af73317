package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/config"
	"github.com/daoterm/daoterm/internal/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show the connected wallet",
	RunE:  runWalletShow,
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new signing key and write the keystore",
	RunE:  runWalletGenerate,
}

func init() {
	walletCmd.AddCommand(walletGenerateCmd)
}

func runWalletShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w, err := wallet.Load(cfg.Keystore)
	if err != nil {
		return fmt.Errorf("opening wallet: %w", err)
	}

	if !w.Connected() {
		fmt.Printf("Not connected. Keystore: %s (missing)\n", cfg.Keystore)
		fmt.Println("Run 'daoterm wallet generate' to create an account.")
		return nil
	}

	fmt.Printf("Address:  %s\n", w.Account().Address)
	fmt.Printf("Keystore: %s\n", cfg.Keystore)
	return nil
}

func runWalletGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(cfg.Keystore); statErr == nil {
		return fmt.Errorf("keystore already exists at %s, refusing to overwrite", cfg.Keystore)
	}

	w, err := wallet.Generate(cfg.Keystore)
	if err != nil {
		return fmt.Errorf("generating wallet: %w", err)
	}

	fmt.Printf("Generated account %s\n", w.Account().Address)
	fmt.Printf("Keystore written to %s\n", cfg.Keystore)
	return nil
}
