package sdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDepKeyRoundTrip(t *testing.T) {
	d := Dep{Name: "pkgA", Address: "0x1", Version: 3}
	require.Equal(t, "pkgA:0x1:3", d.Key())

	parsed, err := ParseDepKey(d.Key())
	require.NoError(t, err)
	require.Equal(t, d, parsed)
}

func TestParseDepKey_Invalid(t *testing.T) {
	for _, key := range []string{"", "pkgA", "pkgA:0x1", "pkgA:0x1:notanumber", "a:b:c:d"} {
		_, err := ParseDepKey(key)
		require.Error(t, err, "key %q should not parse", key)
	}
}

func TestValidAddress(t *testing.T) {
	valid := "0x" + strings.Repeat("a", 64)
	require.True(t, ValidAddress(valid))

	tests := []string{
		"",
		"0x",
		"0x" + strings.Repeat("a", 63),
		"0x" + strings.Repeat("a", 65),
		"1x" + strings.Repeat("a", 64),
		"0x" + strings.Repeat("g", 64),
	}
	for _, addr := range tests {
		require.False(t, ValidAddress(addr), "address %q should be invalid", addr)
	}
}

func TestStageResolved(t *testing.T) {
	require.False(t, StagePending.Resolved())
	require.False(t, StageOpen.Resolved())
	for _, s := range []Stage{StageClosed, StageFailed, StageSuccess, StageExecutable} {
		require.True(t, s.Resolved())
	}
}

func TestTransactionBytes_Deterministic(t *testing.T) {
	build := func() *Transaction {
		tx := NewTransaction("0x1")
		tx.Append(Call{Target: "0xda0::vault::request_spend", Args: []any{"dao", uint64(50)}})
		return tx
	}

	a, err := build().Bytes()
	require.NoError(t, err)
	b, err := build().Bytes()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestTransactionAppend(t *testing.T) {
	tx := NewTransaction("0x1")
	require.True(t, tx.Empty())

	tx.Append(Call{Target: "0xda0::membership::follow", Args: []any{"0xd40"}})
	require.False(t, tx.Empty())
	require.Len(t, tx.Calls, 1)
	require.Equal(t, uint64(DefaultGasBudget), tx.GasBudget)
}

func TestClientMutations_AppendOneCallEach(t *testing.T) {
	c := NewClient(nil, "0x1", "0xd40")
	tx := NewTransaction("0x1")
	p := IntentParams{Key: "k", Title: "t", VotingStart: 1, VotingEnd: 2, Execution: 3, Expiration: 4}

	require.NoError(t, c.RequestConfig(tx, p, ConfigParams{Name: "New Name"}))
	require.NoError(t, c.RequestToggleUnverified(tx, p, true))
	require.NoError(t, c.Vote(tx, "k", true))
	require.NoError(t, c.ExecuteIntent(tx, "k"))
	require.NoError(t, c.DeleteIntent(tx, "k"))
	require.NoError(t, c.Follow(tx))
	require.NoError(t, c.Unfollow(tx))

	require.Len(t, tx.Calls, 7)
	require.Equal(t, "0xda0::config::request_config", tx.Calls[0].Target)
	require.Equal(t, "0xda0::membership::follow", tx.Calls[5].Target)
}

func TestClientMutations_RejectEmptySelections(t *testing.T) {
	c := NewClient(nil, "0x1", "0xd40")
	tx := NewTransaction("0x1")
	p := IntentParams{Key: "k"}

	require.Error(t, c.RequestDeps(tx, p, nil))
	require.Error(t, c.RequestSpend(tx, p, "treasury", CoinSelection{}, nil))
	require.True(t, tx.Empty())
}
