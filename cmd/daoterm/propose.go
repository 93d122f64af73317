package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/drafts"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/tui/flows"
)

var proposeFlags struct {
	dao    string
	resume bool
}

var proposeCmd = &cobra.Command{
	Use:   "propose <transfer|config|deps|vesting>",
	Short: "Create a proposal through a stepped wizard",
	Long: `Create a proposal through a stepped wizard.

Kinds:
  transfer  spend coins from a treasury vault
  config    change the DAO name or voting mode
  deps      update the DAO's unverified dependencies
  vesting   stream coins to a recipient over a time window

Wizard state is snapshotted on every step advance; --resume picks up the
latest draft for the chosen DAO and kind.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{flows.FlowTransfer, flows.FlowConfig, flows.FlowDeps, flows.FlowVesting},
	RunE:      runPropose,
}

func init() {
	proposeCmd.Flags().StringVarP(&proposeFlags.dao, "dao", "d", "", "DAO address or name (default: configured DAO)")
	proposeCmd.Flags().BoolVar(&proposeFlags.resume, "resume", false, "Resume the latest draft for this DAO and kind")
}

func runPropose(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := args[0]

	app, err := bootstrap()
	if err != nil {
		return err
	}
	dao, err := resolveDAO(ctx, app, proposeFlags.dao)
	if err != nil {
		return err
	}
	if !app.Wallet.Connected() {
		return fmt.Errorf("no wallet connected, run 'daoterm wallet generate' first")
	}

	// Drafts are a convenience; a broken store degrades to no autosave
	// rather than blocking proposal creation.
	store, shutdown := openDraftStore(cmd, app.Config.DataDir)
	defer shutdown()

	opts := flows.RunOptions{
		App:    app,
		DAO:    *dao,
		Drafts: store,
		Resume: proposeFlags.resume,
	}

	var result flows.Result
	switch kind {
	case flows.FlowTransfer:
		result, err = flows.RunTransfer(ctx, opts)
	case flows.FlowConfig:
		result, err = flows.RunConfig(ctx, opts)
	case flows.FlowDeps:
		result, err = flows.RunDeps(ctx, opts)
	case flows.FlowVesting:
		result, err = flows.RunVesting(ctx, opts)
	default:
		return fmt.Errorf("unknown proposal kind %q", kind)
	}
	if err != nil {
		return err
	}

	if result.Cancelled {
		fmt.Println("Proposal cancelled.")
		return nil
	}
	fmt.Printf("Proposal submitted: %s/tx/%s\n", app.Config.ExplorerURL, result.Digest)
	return nil
}

// openDraftStore starts the embedded JetStream draft store. Failures are
// logged and the wizard runs without autosave.
func openDraftStore(cmd *cobra.Command, dataDir string) (*drafts.Store, func()) {
	noop := func() {}

	ns, err := drafts.StartEmbeddedNATS(filepath.Join(dataDir, "drafts"))
	if err != nil {
		logger.Warn("draft store unavailable, autosave disabled: %v", err)
		return nil, noop
	}
	nc, err := drafts.ConnectInProcess(ns)
	if err != nil {
		logger.Warn("draft store unavailable, autosave disabled: %v", err)
		ns.Shutdown()
		return nil, noop
	}
	shutdown := func() {
		if err := drafts.Shutdown(nc, ns); err != nil {
			logger.Warn("draft store shutdown: %v", err)
		}
	}

	js, err := drafts.CreateJetStream(nc)
	if err != nil {
		logger.Warn("draft store unavailable, autosave disabled: %v", err)
		shutdown()
		return nil, noop
	}
	stream, err := drafts.SetupStream(cmd.Context(), js)
	if err != nil {
		logger.Warn("draft store unavailable, autosave disabled: %v", err)
		shutdown()
		return nil, noop
	}

	return drafts.NewStore(js, stream), shutdown
}
