package sdk

import (
	"encoding/json"
	"fmt"
)

// Call is one logical intent appended to a pending transaction, addressed as
// package::module::function with positional arguments.
type Call struct {
	Target string `json:"target"`
	Args   []any  `json:"args"`
}

// Transaction is a pending transaction under assembly. Mutation operations on
// the client append calls to it; it is signed and submitted as one unit.
type Transaction struct {
	Sender    string `json:"sender"`
	GasBudget uint64 `json:"gas_budget"`
	Calls     []Call `json:"calls"`
}

// DefaultGasBudget is used when the caller does not set one explicitly.
const DefaultGasBudget = 50_000_000

// NewTransaction creates an empty pending transaction for the given sender.
func NewTransaction(sender string) *Transaction {
	return &Transaction{
		Sender:    sender,
		GasBudget: DefaultGasBudget,
	}
}

// Append adds a call to the transaction.
func (t *Transaction) Append(call Call) {
	t.Calls = append(t.Calls, call)
}

// Empty reports whether the transaction carries no calls yet.
func (t *Transaction) Empty() bool {
	return len(t.Calls) == 0
}

// Bytes returns the canonical encoding of the transaction, used both as the
// signing payload and as the submission body. Encoding is deterministic for a
// given transaction value.
func (t *Transaction) Bytes() ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding transaction: %w", err)
	}
	return data, nil
}
