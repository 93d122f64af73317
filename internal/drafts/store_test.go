package drafts

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	ns, err := StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(ns.Shutdown)

	nc, err := ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := CreateJetStream(nc)
	require.NoError(t, err)

	stream, err := SetupStream(ctx, js)
	require.NoError(t, err)

	return NewStore(js, stream)
}

func TestSaveAndLatest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Draft{
		DAO: "0xd40", Flow: "transfer", Title: "Q3 Grants",
		Form: json.RawMessage(`{"proposalName":"Q3 Grants"}`),
	}))
	require.NoError(t, store.Save(ctx, Draft{
		DAO: "0xd40", Flow: "transfer", Title: "Q3 Grants v2",
		Form: json.RawMessage(`{"proposalName":"Q3 Grants v2"}`),
	}))

	latest, err := store.Latest(ctx, "0xd40", "transfer")
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "Q3 Grants v2", latest.Title)
	require.False(t, latest.SavedAt.IsZero())
}

func TestLatest_NoDraft(t *testing.T) {
	store := newTestStore(t)

	latest, err := store.Latest(context.Background(), "0xd40", "deps")
	require.NoError(t, err)
	require.Nil(t, latest)
}

func TestLatest_ScopedPerFlow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Draft{DAO: "0xd40", Flow: "transfer", Title: "a", Form: json.RawMessage(`{}`)}))
	require.NoError(t, store.Save(ctx, Draft{DAO: "0xd40", Flow: "config", Title: "b", Form: json.RawMessage(`{}`)}))

	latest, err := store.Latest(ctx, "0xd40", "config")
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "b", latest.Title)
}

func TestDraftSlug(t *testing.T) {
	require.Equal(t, "raise-quorum-to-60", Draft{Title: "Raise Quorum to 60%"}.Slug())
	require.Equal(t, "untitled", Draft{}.Slug())
}
