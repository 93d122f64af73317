package flows

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/aymanbagabas/go-udiff"

	"github.com/daoterm/daoterm/internal/coins"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/tui"
	"github.com/daoterm/daoterm/internal/tui/theme"
	"github.com/daoterm/daoterm/internal/tui/wizard"
)

func recapSection(title string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Current().Secondary)).
		Bold(true).
		Render(title)
}

// recapHeader renders the fields every flow shares: name, timeline, and the
// markdown description.
func recapHeader(m wizard.Meta, width int) string {
	var b strings.Builder

	b.WriteString(recapSection(m.ProposalName))
	b.WriteString("\n\n")

	row := func(label string, value string) {
		b.WriteString(labelStyle().Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Voting Start", formatTimePtr(m.VotingStart))
	row("Voting End", formatTimePtr(m.VotingEnd))
	row("Execution", formatTimePtr(m.Execution))
	if exp, ok := m.EffectiveExpiration(); ok {
		suffix := ""
		if m.Expiration == nil {
			suffix = "  (default)"
		}
		row("Expiration", exp.Format(timeLayout)+dimStyle().Render(suffix))
	}
	b.WriteString("\n")

	if m.Description != "" {
		b.WriteString(tui.RenderMarkdown(m.Description, width))
		b.WriteString("\n")
	}
	return b.String()
}

// recapTx renders the transaction preview, or the build error when the form
// cannot produce one.
func recapTx(tx *sdk.Transaction, err error) string {
	var b strings.Builder
	b.WriteString(recapSection("Transaction"))
	b.WriteString("\n")
	if err != nil {
		b.WriteString(errorStyle().Render("✗ " + err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(tui.RenderCalls(tx))
	b.WriteString("\n")
	return b.String()
}

// transferRecap builds the recap renderer for the transfer flow.
func transferRecap(client sdk.Client, sender string, read func() TransferForm) func(int) string {
	return func(width int) string {
		th := theme.Current()
		f := read()

		var b strings.Builder
		b.WriteString(recapHeader(f.Base, width))

		b.WriteString(recapSection("Spend"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s from vault %q\n",
			coins.Format(f.Coin.BaseAmount, f.Coin.Decimals), coins.Symbol(f.Coin.CoinType), f.Vault))

		var sum uint64
		for _, r := range f.Recipients {
			b.WriteString(fmt.Sprintf("  → %s  %s\n", r.Address, coins.Format(r.BaseAmount, f.Coin.Decimals)))
			sum += r.BaseAmount
		}
		if sum != f.Coin.BaseAmount {
			warn := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Warning)).Bold(true)
			b.WriteString(warn.Render(fmt.Sprintf("⚠ Amount Mismatch: recipients total %s, selection is %s",
				coins.Format(sum, f.Coin.Decimals), coins.Format(f.Coin.BaseAmount, f.Coin.Decimals))))
			b.WriteString("\n")
		}
		b.WriteString("\n")

		tx, err := BuildTransferTx(client, sender, &f)
		b.WriteString(recapTx(tx, err))
		return b.String()
	}
}

// configRecap builds the recap renderer for the config flow.
func configRecap(client sdk.Client, sender string, read func() ConfigForm) func(int) string {
	return func(width int) string {
		f := read()

		var b strings.Builder
		b.WriteString(recapHeader(f.Base, width))

		b.WriteString(recapSection("Settings"))
		b.WriteString("\n")
		name := f.DAOName
		if name == "" {
			name = f.CurrentName
		}
		if name != f.CurrentName {
			b.WriteString(fmt.Sprintf("Name: %s → %s\n", f.CurrentName, name))
		} else {
			b.WriteString(fmt.Sprintf("Name: %s%s\n", name, dimStyle().Render("  (unchanged)")))
		}
		if f.Quadratic != f.CurrentQuadratic {
			b.WriteString(fmt.Sprintf("Quadratic voting: %v → %v\n", f.CurrentQuadratic, f.Quadratic))
		} else {
			b.WriteString(fmt.Sprintf("Quadratic voting: %v%s\n", f.Quadratic, dimStyle().Render("  (unchanged)")))
		}
		b.WriteString("\n")

		tx, err := BuildConfigTx(client, sender, &f)
		b.WriteString(recapTx(tx, err))
		return b.String()
	}
}

// depsRecap builds the recap renderer for the deps flow. The before/after
// dependency sets are shown as a unified diff.
func depsRecap(client sdk.Client, sender string, read func() DepsForm) func(int) string {
	return func(width int) string {
		f := read()

		var b strings.Builder
		b.WriteString(recapHeader(f.Base, width))

		b.WriteString(recapSection("Dependency Changes"))
		b.WriteString("\n")
		b.WriteString(colorizeDiff(depsDiff(f.Installed, f.Selected)))
		b.WriteString("\n")

		if f.ToggleChanged() {
			b.WriteString(fmt.Sprintf("Allow unverified: %v → %v\n\n", f.CurrentAllowUnverified, f.AllowUnverified))
		}

		tx, err := BuildDepsTx(client, sender, &f)
		b.WriteString(recapTx(tx, err))
		return b.String()
	}
}

// depsDiff renders the before/after unverified dep sets as a unified diff.
func depsDiff(installed, selected []sdk.Dep) string {
	format := func(deps []sdk.Dep) string {
		var b strings.Builder
		for _, d := range deps {
			fmt.Fprintf(&b, "%s %s v%d\n", d.Name, d.Address, d.Version)
		}
		return b.String()
	}

	diff := udiff.Unified("installed", "proposed", format(installed), format(selected))
	if diff == "" {
		return dimStyle().Render("(no changes)") + "\n"
	}
	return diff
}

// colorizeDiff applies the theme's diff colors to +/- lines.
func colorizeDiff(diff string) string {
	th := theme.Current()
	insStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.DiffInsertFg))
	delStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.DiffDeleteFg))

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			lines[i] = insStyle.Render(line)
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			lines[i] = delStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = dimStyle().Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// vestingRecap builds the recap renderer for the vesting flow.
func vestingRecap(client sdk.Client, sender string, read func() VestingForm) func(int) string {
	return func(width int) string {
		f := read()

		var b strings.Builder
		b.WriteString(recapHeader(f.Base, width))

		b.WriteString(recapSection("Vesting Stream"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s from vault %q\n",
			coins.Format(f.Coin.BaseAmount, f.Coin.Decimals), coins.Symbol(f.Coin.CoinType), f.Vault))
		b.WriteString(fmt.Sprintf("  → %s\n", f.Recipient.Address))
		if f.VestStart != nil && f.VestEnd != nil {
			b.WriteString(fmt.Sprintf("  vesting linearly %s → %s\n",
				f.VestStart.Format(timeLayout), f.VestEnd.Format(timeLayout)))
		}
		b.WriteString("\n")

		tx, err := BuildVestingTx(client, sender, &f)
		b.WriteString(recapTx(tx, err))
		return b.String()
	}
}
