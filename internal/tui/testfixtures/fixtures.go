package testfixtures

import (
	"strings"
	"time"

	"github.com/daoterm/daoterm/internal/sdk"
)

// FixedGovCoin is the governance coin type used across fixtures.
const FixedGovCoin = "0xda0::gov::GOV"

var FixedTime = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

// Addr builds a syntactically valid chain address from a short tag.
func Addr(tag string) string {
	return "0x" + tag + strings.Repeat("0", 64-len(tag))
}

// SampleDAOs returns two DAOs, the first using quadratic voting.
func SampleDAOs() []sdk.DAO {
	return []sdk.DAO{
		{
			ID:          Addr("da01"),
			Name:        "Meadow Collective",
			Description: "Funds public goods on the meadow network.",
			CoinType:    FixedGovCoin,
			Quadratic:   true,
			Followers:   128,
		},
		{
			ID:          Addr("da02"),
			Name:        "Harbor Treasury",
			Description: "Protocol treasury management.",
			CoinType:    FixedGovCoin,
			Quadratic:   false,
			Followers:   42,
		},
	}
}

// SampleIntents returns intents covering the stages the dashboard renders.
func SampleIntents() []sdk.Intent {
	start := FixedTime
	end := FixedTime.Add(72 * time.Hour)
	return []sdk.Intent{
		{
			Key:           "grants-q3",
			DAO:           SampleDAOs()[0].ID,
			Title:         "Q3 Grants Budget",
			Description:   "## Grants\nFund the Q3 grant cohort.",
			Creator:       Addr("aa01"),
			Stage:         sdk.StageOpen,
			YesVotes:      1200,
			NoVotes:       300,
			VotingStartMS: sdk.TimeToMS(start),
			VotingEndMS:   sdk.TimeToMS(end),
			ExpirationMS:  sdk.TimeToMS(end.Add(7 * 24 * time.Hour)),
		},
		{
			Key:           "raise-quorum",
			DAO:           SampleDAOs()[0].ID,
			Title:         "Raise Quorum to 60%",
			Creator:       Addr("aa02"),
			Stage:         sdk.StageExecutable,
			YesVotes:      5000,
			NoVotes:       100,
			VotingStartMS: sdk.TimeToMS(start.Add(-96 * time.Hour)),
			VotingEndMS:   sdk.TimeToMS(start.Add(-24 * time.Hour)),
			ExpirationMS:  sdk.TimeToMS(start.Add(6 * 24 * time.Hour)),
		},
		{
			Key:           "old-upgrade",
			DAO:           SampleDAOs()[0].ID,
			Title:         "Package Upgrade v2",
			Creator:       Addr("aa03"),
			Stage:         sdk.StageFailed,
			YesVotes:      10,
			NoVotes:       900,
			VotingStartMS: sdk.TimeToMS(start.Add(-30 * 24 * time.Hour)),
			VotingEndMS:   sdk.TimeToMS(start.Add(-27 * 24 * time.Hour)),
			ExpirationMS:  sdk.TimeToMS(start.Add(-20 * 24 * time.Hour)),
		},
	}
}

// SampleDeps returns a dependency surface with verified and unverified
// entries.
func SampleDeps() *sdk.DepList {
	return &sdk.DepList{
		Verified: []sdk.Dep{
			{Name: "framework", Address: Addr("f0a1"), Version: 3},
			{Name: "stdlib", Address: Addr("f0a2"), Version: 1},
		},
		Unverified: []sdk.Dep{
			{Name: "amm", Address: Addr("b0b1"), Version: 2},
		},
	}
}

// SampleVaults returns one funded treasury vault.
func SampleVaults() []sdk.Vault {
	return []sdk.Vault{
		{
			Name: "treasury",
			Balances: []sdk.Balance{
				{CoinType: FixedGovCoin, Amount: 500_000_000_000}, // 500 GOV at 9 decimals
				{CoinType: "0x2::stable::USD", Amount: 1_000_000_000},
			},
		},
	}
}

// SampleBalances returns wallet-owned balances.
func SampleBalances() []sdk.Balance {
	return []sdk.Balance{
		{CoinType: FixedGovCoin, Amount: 42_000_000_000},
	}
}

// SamplePower returns the caller's voting power in the first sample DAO.
func SamplePower() *sdk.VotingPower {
	return &sdk.VotingPower{
		Address:   Addr("aa01"),
		Staked:    9_000_000_000,
		Power:     94868, // sqrt of staked, quadratic
		Quadratic: true,
	}
}
