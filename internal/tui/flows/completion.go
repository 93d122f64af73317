package flows

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daoterm/daoterm/internal/appctx"
	"github.com/daoterm/daoterm/internal/coins"
	"github.com/daoterm/daoterm/internal/drafts"
	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/logger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/submit"
	"github.com/daoterm/daoterm/internal/template"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

// RunOptions configures one wizard run.
type RunOptions struct {
	App *appctx.AppContext
	DAO sdk.DAO

	// Drafts, when set, autosaves the form on every step advance and is
	// the source for Resume.
	Drafts *drafts.Store
	// Resume restores the latest draft for this (DAO, flow) pair.
	Resume bool
}

// Result is the outcome of a wizard run.
type Result struct {
	Cancelled bool
	Digest    string
}

func (o RunOptions) sender() string {
	if acct := o.App.Wallet.Account(); acct != nil {
		return acct.Address
	}
	return ""
}

// decimalsResolver memoizes coin metadata lookups for the run. Metadata
// failures fall back to the chain-wide default.
func decimalsResolver(ctx context.Context, app *appctx.AppContext) func(coinType string) uint8 {
	var mu sync.Mutex
	cache := make(map[string]uint8)

	return func(coinType string) uint8 {
		mu.Lock()
		defer mu.Unlock()
		if d, ok := cache[coinType]; ok {
			return d
		}
		d := uint8(coins.DefaultDecimals)
		if meta, err := app.Ledger.CoinMetadata(ctx, coinType); err == nil {
			d = meta.Decimals
		} else {
			logger.Debug("coin metadata unavailable for %s, assuming %d decimals: %v", coinType, d, err)
		}
		cache[coinType] = d
		return d
	}
}

// restoreDraft loads the latest draft into form when resuming. A missing or
// unreadable draft is not fatal; the wizard just starts fresh.
func restoreDraft[F any](ctx context.Context, opts RunOptions, flow string, form *F) {
	if !opts.Resume || opts.Drafts == nil {
		return
	}
	draft, err := opts.Drafts.Latest(ctx, opts.DAO.ID, flow)
	if err != nil || draft == nil {
		if err != nil {
			logger.Warn("could not load draft for %s/%s: %v", opts.DAO.ID, flow, err)
		}
		return
	}
	if err := json.Unmarshal(draft.Form, form); err != nil {
		logger.Warn("corrupt draft for %s/%s: %v", opts.DAO.ID, flow, err)
	}
}

// autosaver returns the OnAdvance hook persisting drafts. Save failures are
// logged and swallowed: a broken draft store must not block a proposal.
func autosaver[F any](ctx context.Context, opts RunOptions, flow string, title func(F) string) func(F) {
	if opts.Drafts == nil {
		return nil
	}
	return func(form F) {
		data, err := json.Marshal(form)
		if err != nil {
			logger.Warn("could not encode draft: %v", err)
			return
		}
		err = opts.Drafts.Save(ctx, drafts.Draft{
			DAO:   opts.DAO.ID,
			Flow:  flow,
			Title: title(form),
			Form:  data,
		})
		if err != nil {
			logger.Warn("could not save draft: %v", err)
		}
	}
}

// submitProposal re-checks preconditions, builds the transaction, and runs
// the pipeline. The wallet check comes first: a disconnected wallet aborts
// before any transaction is even constructed.
func submitProposal[F any](ctx context.Context, opts RunOptions, form F, buildTx func(F) (*sdk.Transaction, error)) (string, error) {
	if !opts.App.Wallet.Connected() {
		return "", fmt.Errorf("wallet not connected")
	}
	tx, err := buildTx(form)
	if err != nil {
		return "", err
	}
	return submit.RunWith(ctx, opts.App, tx)
}

// runWizard wires the generic pieces and runs the program. The dry-run
// result reaches the wizard's status line through the app context hook.
func runWizard[F any](ctx context.Context, title string, opts RunOptions, container *wizard.Container[F], steps []wizard.Step, validate wizard.Validator[F], onAdvance func(F), buildTx func(F) (*sdk.Transaction, error)) (Result, error) {
	status := make(chan string, 1)
	opts.App.SetDryRunHook(func(res *ledger.DryRunResult) {
		select {
		case status <- fmt.Sprintf("dry run passed, gas used %d", res.GasUsed):
		default:
		}
	})
	defer func() {
		opts.App.SetDryRunHook(nil)
		close(status)
	}()

	model, err := wizard.Run(ctx, wizard.Options[F]{
		Title:     title,
		Steps:     steps,
		Container: container,
		Validate:  validate,
		OnAdvance: onAdvance,
		Submit: func(ctx context.Context) (string, error) {
			return submitProposal(ctx, opts, container.Get(), buildTx)
		},
		Status:      status,
		ExplorerURL: opts.App.Config.ExplorerURL,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Cancelled: model.Cancelled(), Digest: model.Digest()}, nil
}

// descriptionSeed returns the editor skeleton for empty descriptions, filled
// with whatever is known at the moment the editor opens.
func descriptionSeed(opts RunOptions, flow string, read func() wizard.Meta) func() string {
	return func() string {
		return template.Seed(opts.App.Config.DataDir, flow, template.Variables{
			Name: read().ProposalName,
			DAO:  opts.DAO.Name,
			Date: time.Now().Format("2006-01-02"),
		})
	}
}

// metaAccessors adapts a form container to the Meta read/write closures the
// shared name and dates steps work through.
func metaAccessors[F any](container *wizard.Container[F], meta func(*F) *wizard.Meta) (func() wizard.Meta, func(func(*wizard.Meta))) {
	read := func() wizard.Meta {
		f := container.Get()
		return *meta(&f)
	}
	write := func(patch func(*wizard.Meta)) {
		container.Update(func(f *F) { patch(meta(f)) })
	}
	return read, write
}

// RunTransfer runs the treasury transfer proposal wizard.
func RunTransfer(ctx context.Context, opts RunOptions) (Result, error) {
	client := opts.App.Client(opts.DAO.ID)

	vaults, err := client.ListVaults(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading vaults: %w", err)
	}
	locked := lockedByVault(ctx, client, vaults)

	var form TransferForm
	restoreDraft(ctx, opts, FlowTransfer, &form)
	container := wizard.NewContainer(form)

	metaRead, metaWrite := metaAccessors(container, func(f *TransferForm) *wizard.Meta { return &f.Base })
	current := container.Get()

	steps := []wizard.Step{
		{Title: "Name", Body: NewNameStep(metaRead, metaWrite).WithSeed(descriptionSeed(opts, FlowTransfer, metaRead))},
		{Title: "Dates", Body: NewDatesStep(metaRead, metaWrite)},
		{Title: "Coin", Body: NewCoinStep(vaults, locked, decimalsResolver(ctx, opts.App), current.Vault, current.Coin,
			func(vault string, coin sdk.CoinSelection) {
				container.Update(func(f *TransferForm) {
					f.Vault = vault
					f.Coin = coin
				})
			})},
		{Title: "Recipients", Body: NewRecipientsStep(
			func() sdk.CoinSelection { return container.Get().Coin },
			current.Recipients,
			func(recipients []sdk.Recipient) {
				container.Update(func(f *TransferForm) { f.Recipients = recipients })
			})},
		{Title: "Recap", Body: NewRecapStep(transferRecap(client, opts.sender(), container.Get))},
	}

	return runWizard(ctx, "New Transfer Proposal", opts, container, steps,
		func(step int, f TransferForm) bool { return TransferValidator(step, &f) },
		autosaver(ctx, opts, FlowTransfer, func(f TransferForm) string { return f.Base.ProposalName }),
		func(f TransferForm) (*sdk.Transaction, error) { return BuildTransferTx(client, opts.sender(), &f) })
}

// RunConfig runs the governance settings proposal wizard.
func RunConfig(ctx context.Context, opts RunOptions) (Result, error) {
	client := opts.App.Client(opts.DAO.ID)

	dao, err := client.GetDAO(ctx)
	if err != nil {
		logger.Warn("could not refresh DAO settings, using cached values: %v", err)
		dao = &opts.DAO
	}

	form := ConfigForm{
		Quadratic:        dao.Quadratic,
		CurrentName:      dao.Name,
		CurrentQuadratic: dao.Quadratic,
	}
	restoreDraft(ctx, opts, FlowConfig, &form)
	container := wizard.NewContainer(form)

	metaRead, metaWrite := metaAccessors(container, func(f *ConfigForm) *wizard.Meta { return &f.Base })

	steps := []wizard.Step{
		{Title: "Name", Body: NewNameStep(metaRead, metaWrite).WithSeed(descriptionSeed(opts, FlowConfig, metaRead))},
		{Title: "Dates", Body: NewDatesStep(metaRead, metaWrite)},
		{Title: "Settings", Body: NewSettingsStep(container.Get, container.Update)},
		{Title: "Recap", Body: NewRecapStep(configRecap(client, opts.sender(), container.Get))},
	}

	return runWizard(ctx, "New Config Proposal", opts, container, steps,
		func(step int, f ConfigForm) bool { return ConfigValidator(step, &f) },
		autosaver(ctx, opts, FlowConfig, func(f ConfigForm) string { return f.Base.ProposalName }),
		func(f ConfigForm) (*sdk.Transaction, error) { return BuildConfigTx(client, opts.sender(), &f) })
}

// RunDeps runs the dependency update proposal wizard.
func RunDeps(ctx context.Context, opts RunOptions) (Result, error) {
	client := opts.App.Client(opts.DAO.ID)

	deps, err := client.ListDeps(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading dependencies: %w", err)
	}

	form := DepsForm{
		Selected:               append([]sdk.Dep(nil), deps.Unverified...),
		Installed:              deps.Unverified,
		AllowUnverified:        deps.AllowUnverified,
		CurrentAllowUnverified: deps.AllowUnverified,
	}
	restoreDraft(ctx, opts, FlowDeps, &form)
	container := wizard.NewContainer(form)

	metaRead, metaWrite := metaAccessors(container, func(f *DepsForm) *wizard.Meta { return &f.Base })

	steps := []wizard.Step{
		{Title: "Name", Body: NewNameStep(metaRead, metaWrite).WithSeed(descriptionSeed(opts, FlowDeps, metaRead))},
		{Title: "Dates", Body: NewDatesStep(metaRead, metaWrite)},
		{Title: "Dependencies", Body: NewDepsStep(deps.Verified, container.Get, container.Update)},
		{Title: "Recap", Body: NewRecapStep(depsRecap(client, opts.sender(), container.Get))},
	}

	return runWizard(ctx, "New Dependency Proposal", opts, container, steps,
		func(step int, f DepsForm) bool { return DepsValidator(step, &f) },
		autosaver(ctx, opts, FlowDeps, func(f DepsForm) string { return f.Base.ProposalName }),
		func(f DepsForm) (*sdk.Transaction, error) { return BuildDepsTx(client, opts.sender(), &f) })
}

// RunVesting runs the vesting stream proposal wizard.
func RunVesting(ctx context.Context, opts RunOptions) (Result, error) {
	client := opts.App.Client(opts.DAO.ID)

	vaults, err := client.ListVaults(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("loading vaults: %w", err)
	}
	locked := lockedByVault(ctx, client, vaults)

	var form VestingForm
	restoreDraft(ctx, opts, FlowVesting, &form)
	container := wizard.NewContainer(form)

	metaRead, metaWrite := metaAccessors(container, func(f *VestingForm) *wizard.Meta { return &f.Base })
	current := container.Get()

	steps := []wizard.Step{
		{Title: "Name", Body: NewNameStep(metaRead, metaWrite).WithSeed(descriptionSeed(opts, FlowVesting, metaRead))},
		{Title: "Dates", Body: NewDatesStep(metaRead, metaWrite)},
		{Title: "Coin", Body: NewCoinStep(vaults, locked, decimalsResolver(ctx, opts.App), current.Vault, current.Coin,
			func(vault string, coin sdk.CoinSelection) {
				container.Update(func(f *VestingForm) {
					f.Vault = vault
					f.Coin = coin
					// Vesting pays the whole selection to one recipient.
					f.Recipient.Amount = coin.Amount
					f.Recipient.BaseAmount = coin.BaseAmount
				})
			})},
		{Title: "Schedule", Body: NewScheduleStep(container.Get, container.Update)},
		{Title: "Recap", Body: NewRecapStep(vestingRecap(client, opts.sender(), container.Get))},
	}

	return runWizard(ctx, "New Vesting Proposal", opts, container, steps,
		func(step int, f VestingForm) bool { return VestingValidator(step, &f) },
		autosaver(ctx, opts, FlowVesting, func(f VestingForm) string { return f.Base.ProposalName }),
		func(f VestingForm) (*sdk.Transaction, error) { return BuildVestingTx(client, opts.sender(), &f) })
}

// lockedByVault fetches the reserved amounts for each vault, fanned out
// since the per-vault queries are independent. Failures leave that vault's
// map empty; the authoritative check happens on-chain anyway.
func lockedByVault(ctx context.Context, client sdk.Client, vaults []sdk.Vault) map[string]map[string]uint64 {
	locked := make(map[string]map[string]uint64, len(vaults))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, v := range vaults {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			amounts, err := client.LockedAmounts(ctx, name)
			if err != nil {
				logger.Debug("locked amounts unavailable for vault %s: %v", name, err)
				return
			}
			mu.Lock()
			locked[name] = amounts
			mu.Unlock()
		}(v.Name)
	}
	wg.Wait()
	return locked
}
