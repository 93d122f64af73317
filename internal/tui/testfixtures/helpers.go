// Package testfixtures provides mock implementations and test utilities for
// TUI testing: a mock governance client with call counters, canned chain
// fixtures, a fake fullnode RPC server, and golden-file helpers.
package testfixtures

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/stretchr/testify/require"

	"github.com/daoterm/daoterm/internal/appctx"
	"github.com/daoterm/daoterm/internal/config"
	"github.com/daoterm/daoterm/internal/ledger"
	"github.com/daoterm/daoterm/internal/sdk"
	"github.com/daoterm/daoterm/internal/wallet"
)

// Initialize test environment
func init() {
	// Ascii profile disables color output for consistent golden files across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// Conservative timeout for polling assertions (CI compatibility)
const (
	DefaultWaitDuration  = 5 * time.Second
	DefaultCheckInterval = 100 * time.Millisecond
)

// Flag for updating golden files (shared across all tests)
var UpdateGolden = flag.Bool("update", false, "update golden files")

// CompareGolden compares actual output with a golden file.
// Use -update to regenerate golden files.
func CompareGolden(t *testing.T, goldenPath, actual string) {
	t.Helper()

	if *UpdateGolden {
		dir := filepath.Dir(goldenPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create testdata directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(actual), 0644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", goldenPath, err)
		}
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file %s does not exist. Run with -update to create it.", goldenPath)
		}
		t.Fatalf("failed to read golden file %s: %v", goldenPath, err)
	}

	if actual != string(expected) {
		t.Errorf("output does not match golden file %s\n\nExpected:\n%s\n\nActual:\n%s",
			goldenPath, string(expected), actual)
	}
}

// GoldenPath builds a path to a golden file in the testdata directory.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", filename)
}

// Contains checks if a string contains a substring.
func Contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// NewTestWallet generates a connected wallet in a temp keystore.
func NewTestWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.Generate(filepath.Join(t.TempDir(), "keystore.json"))
	require.NoError(t, err)
	return w
}

// NewRPCServer starts a fake fullnode that answers every dry run and
// execution with success. Shut down via t.Cleanup.
func NewRPCServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int64  `json:"id"`
			Method string `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		writeRPCResult := func(result string) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
		}

		switch req.Method {
		case "ledger_dryRunTransaction":
			writeRPCResult(`{"status":"success","gas_used":1000}`)
		case "ledger_executeTransaction":
			writeRPCResult(`{"digest":"0xfixturedigest","status":"success"}`)
		case "ledger_getCoinMetadata":
			writeRPCResult(`{"decimals":9,"symbol":"GOV","name":"Governance Coin"}`)
		default:
			writeRPCResult(`null`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewTestAppContext builds an application context wired to a MockSDK and
// the fake fullnode.
func NewTestAppContext(t *testing.T, mock *MockSDK) *appctx.AppContext {
	t.Helper()
	srv := NewRPCServer(t)
	cfg := &config.Config{
		RPCURL:      srv.URL,
		ExplorerURL: "https://explorer.test",
		DataDir:     t.TempDir(),
	}
	w := NewTestWallet(t)
	return appctx.NewWithClientFactory(cfg, w, ledger.New(srv.URL), func(sender, daoID string) sdk.Client {
		return mock
	})
}
