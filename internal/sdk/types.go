// Package sdk models the on-chain governance entities daoterm works with
// and exposes the client used to query them and to assemble transactions.
// All on-chain logic (vaults, voting power, intents, dependency verification)
// lives on the ledger; this package is the boundary to it.
package sdk

import (
	"fmt"
	"strings"
	"time"
)

// Stage is the lifecycle stage of an intent.
type Stage string

const (
	StagePending    Stage = "pending"
	StageOpen       Stage = "open"
	StageClosed     Stage = "closed"
	StageFailed     Stage = "failed"
	StageSuccess    Stage = "success"
	StageExecutable Stage = "executable"
)

// Resolved reports whether the intent can no longer collect votes.
func (s Stage) Resolved() bool {
	switch s {
	case StageClosed, StageFailed, StageSuccess, StageExecutable:
		return true
	}
	return false
}

// DAO is a governed organization, identified by its on-chain address.
type DAO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CoinType    string `json:"coin_type"` // governance coin staked for voting power
	Quadratic   bool   `json:"quadratic"` // voting power is sqrt(stake) when set
	Followers   int    `json:"followers"`
}

// Intent is a pending governance action awaiting votes.
type Intent struct {
	Key         string `json:"key"`
	DAO         string `json:"dao"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
	Stage       Stage  `json:"stage"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`

	// Chain timestamps in unix milliseconds.
	VotingStartMS int64 `json:"voting_start_ms"`
	VotingEndMS   int64 `json:"voting_end_ms"`
	ExecutionMS   int64 `json:"execution_ms"`
	ExpirationMS  int64 `json:"expiration_ms"`
}

// Dep is a versioned package reference the DAO's on-chain logic depends on.
// Verified deps are immutable core packages; only unverified deps can change
// through governance.
type Dep struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Version uint64 `json:"version"`
}

// Key returns the colon-joined composite key used for set-membership
// comparisons across dependency categories.
func (d Dep) Key() string {
	return fmt.Sprintf("%s:%s:%d", d.Name, d.Address, d.Version)
}

// ParseDepKey parses a composite dependency key back into a Dep.
func ParseDepKey(key string) (Dep, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return Dep{}, fmt.Errorf("invalid dep key %q", key)
	}
	var version uint64
	if _, err := fmt.Sscanf(parts[2], "%d", &version); err != nil {
		return Dep{}, fmt.Errorf("invalid dep version in key %q: %w", key, err)
	}
	return Dep{Name: parts[0], Address: parts[1], Version: version}, nil
}

// DepKeys returns the composite keys for a dependency list.
func DepKeys(deps []Dep) []string {
	keys := make([]string, len(deps))
	for i, d := range deps {
		keys[i] = d.Key()
	}
	return keys
}

// DepList is the dependency surface of a DAO, partitioned by verification
// status. Verified entries are rendered read-only and excluded from mutation.
type DepList struct {
	Verified   []Dep `json:"verified"`
	Unverified []Dep `json:"unverified"`

	// AllowUnverified is the DAO's current policy on unverified deps.
	AllowUnverified bool `json:"allow_unverified"`
}

// Vault is a named sub-account of DAO-controlled funds.
type Vault struct {
	Name     string    `json:"name"`
	Balances []Balance `json:"balances"`
}

// Balance is an amount of one coin type in base units.
type Balance struct {
	CoinType string `json:"coin_type"`
	Amount   uint64 `json:"amount"`
}

// VotingPower is a participant's derived voting weight in a DAO.
type VotingPower struct {
	Address   string `json:"address"`
	Staked    uint64 `json:"staked"`
	Power     uint64 `json:"power"`
	Quadratic bool   `json:"quadratic"`
}

// CoinSelection is a coin chosen in a wizard flow, with both the
// human-readable amount and its base-unit equivalent.
type CoinSelection struct {
	CoinType   string  `json:"coin_type"`
	Amount     float64 `json:"amount"`      // human units
	BaseAmount uint64  `json:"base_amount"` // round(amount * 10^decimals)
	Balance    float64 `json:"balance"`     // available, human units
	Decimals   uint8   `json:"decimals"`
}

// Recipient is one transfer destination in a spend or vesting flow.
type Recipient struct {
	Address    string  `json:"address"`
	Amount     float64 `json:"amount"`
	BaseAmount uint64  `json:"base_amount"`
}

// ValidAddress reports whether s looks like a chain address:
// 0x followed by 64 hex characters.
func ValidAddress(s string) bool {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return false
	}
	for _, r := range s[2:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// MSToTime converts a chain timestamp to local time. Zero maps to the zero time.
func MSToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// TimeToMS converts a local time to the chain's millisecond representation.
func TimeToMS(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
