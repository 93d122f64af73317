// Package ledger is the JSON-RPC client for the chain fullnode. It covers the
// generic operations daoterm needs outside the governance SDK surface:
// dry-running and executing signed transactions, and object/balance/metadata
// queries used for coin decimal resolution.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/daoterm/daoterm/internal/logger"
)

// Client talks JSON-RPC 2.0 to a fullnode.
type Client struct {
	url    string
	http   *http.Client
	nextID atomic.Int64
}

// New creates a ledger client for the given RPC endpoint.
func New(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Call performs a single JSON-RPC call and decodes the result into out.
func (c *Client) Call(ctx context.Context, method string, params []any, out any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding rpc request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building rpc request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("rpc %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s: unexpected status %d", method, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("decoding rpc response for %s: %w", method, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc %s: %w", method, rpcResp.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("decoding rpc result for %s: %w", method, err)
	}
	return nil
}

// DryRunResult is the outcome of simulating a transaction without effects.
type DryRunResult struct {
	Status  string `json:"status"` // "success" or "failure"
	Error   string `json:"error,omitempty"`
	GasUsed uint64 `json:"gas_used"`
}

// OK reports whether the dry run succeeded.
func (r *DryRunResult) OK() bool { return r.Status == "success" }

// DryRun simulates the transaction against current ledger state.
func (c *Client) DryRun(ctx context.Context, txBytes []byte) (*DryRunResult, error) {
	var res DryRunResult
	if err := c.Call(ctx, "ledger_dryRunTransaction", []any{txBytes}, &res); err != nil {
		return nil, err
	}
	logger.Debug("dry run: status=%s gas=%d", res.Status, res.GasUsed)
	return &res, nil
}

// ExecuteResult is the outcome of submitting a signed transaction.
type ExecuteResult struct {
	Digest string `json:"digest"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether on-chain execution succeeded.
func (r *ExecuteResult) OK() bool { return r.Status == "success" }

// Execute submits a signed transaction and waits for its effects.
func (c *Client) Execute(ctx context.Context, txBytes, signature []byte) (*ExecuteResult, error) {
	var res ExecuteResult
	if err := c.Call(ctx, "ledger_executeTransaction", []any{txBytes, signature}, &res); err != nil {
		return nil, err
	}
	logger.Info("executed transaction: digest=%s status=%s", res.Digest, res.Status)
	return &res, nil
}

// CoinMetadata describes a coin type as registered on chain.
type CoinMetadata struct {
	Decimals uint8  `json:"decimals"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
}

// CoinMetadata fetches metadata for a coin type. Callers fall back to a
// default decimal count when this fails; absence of metadata is not fatal.
func (c *Client) CoinMetadata(ctx context.Context, coinType string) (*CoinMetadata, error) {
	var meta CoinMetadata
	if err := c.Call(ctx, "ledger_getCoinMetadata", []any{coinType}, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// CoinBalance is the total balance of one coin type for an owner.
type CoinBalance struct {
	CoinType string `json:"coin_type"`
	Total    uint64 `json:"total"`
}

// Balances fetches all coin balances owned by an address.
func (c *Client) Balances(ctx context.Context, owner string) ([]CoinBalance, error) {
	var balances []CoinBalance
	if err := c.Call(ctx, "ledger_getBalances", []any{owner}, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// Object is a generic on-chain object.
type Object struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Fields json.RawMessage `json:"fields"`
}

// OwnedObjects lists objects of a given type owned by an address. An empty
// objType matches all types.
func (c *Client) OwnedObjects(ctx context.Context, owner, objType string) ([]Object, error) {
	var objects []Object
	if err := c.Call(ctx, "ledger_getOwnedObjects", []any{owner, objType}, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}
