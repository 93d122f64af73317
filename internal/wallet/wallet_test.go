package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingKeystoreIsDisconnected(t *testing.T) {
	w, err := Load(filepath.Join(t.TempDir(), "keystore.json"))
	require.NoError(t, err)
	require.False(t, w.Connected())
	require.Nil(t, w.Account())

	_, err = w.Sign([]byte("payload"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not connected")
}

func TestGenerateAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")

	w, err := Generate(path)
	require.NoError(t, err)
	require.True(t, w.Connected())
	require.True(t, sdk.ValidAddress(w.Account().Address))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, reloaded.Connected())
	require.Equal(t, w.Account().Address, reloaded.Account().Address)
}

func TestSignAndVerify(t *testing.T) {
	w, err := Generate(filepath.Join(t.TempDir(), "keystore.json"))
	require.NoError(t, err)

	payload := []byte(`{"sender":"0x1","calls":[]}`)
	sig, err := w.Sign(payload)
	require.NoError(t, err)
	require.NotEmpty(t, sig.Bytes)
	require.Len(t, sig.PubKey, 33)

	require.True(t, Verify(sig, payload))
	require.False(t, Verify(sig, []byte("tampered")))
}

func TestDisconnect(t *testing.T) {
	w, err := Generate(filepath.Join(t.TempDir(), "keystore.json"))
	require.NoError(t, err)

	w.Disconnect()
	require.False(t, w.Connected())

	_, err = w.Sign([]byte("payload"))
	require.Error(t, err)
}

func TestLoad_CorruptKeystore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}
