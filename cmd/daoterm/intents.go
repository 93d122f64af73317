package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daoterm/daoterm/internal/appctx"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/submit"
)

var intentsFlags struct {
	dao string
}

var intentsCmd = &cobra.Command{
	Use:   "intents",
	Short: "List and act on a DAO's intents",
	RunE:  runIntentsList,
}

var voteCmd = &cobra.Command{
	Use:   "vote <intent-key>",
	Short: "Vote on an open intent",
	Args:  cobra.ExactArgs(1),
	RunE:  runVote,
}

var voteFlags struct {
	reject bool
}

var executeCmd = &cobra.Command{
	Use:   "execute <intent-key>",
	Short: "Execute an intent that reached its execution time",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecute,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <intent-key>",
	Short: "Delete an expired or rejected intent",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	intentsCmd.PersistentFlags().StringVarP(&intentsFlags.dao, "dao", "d", "", "DAO address or name (default: configured DAO)")
	voteCmd.Flags().BoolVar(&voteFlags.reject, "reject", false, "Vote against instead of for")

	intentsCmd.AddCommand(voteCmd)
	intentsCmd.AddCommand(executeCmd)
	intentsCmd.AddCommand(deleteCmd)
}

func runIntentsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := bootstrap()
	if err != nil {
		return err
	}
	dao, err := resolveDAO(ctx, app, intentsFlags.dao)
	if err != nil {
		return err
	}

	intents, err := app.Client(dao.ID).ListIntents(ctx)
	if err != nil {
		return fmt.Errorf("listing intents: %w", err)
	}

	fmt.Printf("%s — %d intents\n\n", dao.Name, len(intents))
	for _, it := range intents {
		fmt.Printf("[%s] %-32s %s\n", it.Stage, it.Key, it.Title)
		fmt.Printf("  yes %d / no %d · voting ends %s\n",
			it.YesVotes, it.NoVotes, sdk.MSToTime(it.VotingEndMS).Format("2006-01-02 15:04"))
	}
	return nil
}

// runIntentAction resolves the target intent and drives one mutation through
// the submission pipeline.
func runIntentAction(cmd *cobra.Command, key string, stageOK func(sdk.Stage) bool, stageErr string, build func(app *appctx.AppContext, daoID string, tx *sdk.Transaction) error) error {
	ctx := cmd.Context()

	app, err := bootstrap()
	if err != nil {
		return err
	}
	dao, err := resolveDAO(ctx, app, intentsFlags.dao)
	if err != nil {
		return err
	}

	client := app.Client(dao.ID)
	intent, err := client.GetIntent(ctx, key)
	if err != nil {
		return fmt.Errorf("loading intent %q: %w", key, err)
	}
	if stageOK != nil && !stageOK(intent.Stage) {
		return fmt.Errorf("%s (stage is %s)", stageErr, intent.Stage)
	}

	sender := ""
	if acct := app.Wallet.Account(); acct != nil {
		sender = acct.Address
	}
	tx := sdk.NewTransaction(sender)
	if err := build(app, dao.ID, tx); err != nil {
		return err
	}

	digest, err := submit.RunWith(ctx, app, tx)
	if err != nil {
		return err
	}
	fmt.Printf("Submitted: %s/tx/%s\n", app.Config.ExplorerURL, digest)
	return nil
}

func runVote(cmd *cobra.Command, args []string) error {
	approve := !voteFlags.reject
	return runIntentAction(cmd, args[0],
		func(s sdk.Stage) bool { return s == sdk.StageOpen },
		"voting is closed",
		func(app *appctx.AppContext, daoID string, tx *sdk.Transaction) error {
			return app.Client(daoID).Vote(tx, args[0], approve)
		})
}

func runExecute(cmd *cobra.Command, args []string) error {
	return runIntentAction(cmd, args[0],
		func(s sdk.Stage) bool { return s == sdk.StageExecutable },
		"intent is not executable",
		func(app *appctx.AppContext, daoID string, tx *sdk.Transaction) error {
			return app.Client(daoID).ExecuteIntent(tx, args[0])
		})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return runIntentAction(cmd, args[0], nil, "",
		func(app *appctx.AppContext, daoID string, tx *sdk.Transaction) error {
			return app.Client(daoID).DeleteIntent(tx, args[0])
		})
}
