// Package wallet manages the local signing account. Keys live in a JSON
// keystore on disk; a wallet with no keystore behaves as disconnected and
// every signing attempt fails until an account is created or imported.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/daoterm/daoterm/internal/logger"
)

// Account is the connected signing identity.
type Account struct {
	Address string
	pub     *secp256k1.PublicKey
	priv    *secp256k1.PrivateKey
}

// Signature is the result of signing a transaction payload.
type Signature struct {
	Bytes  []byte // DER-encoded ECDSA signature over sha256(payload)
	PubKey []byte // compressed public key of the signer
}

// Wallet is the connector between the UI and the local keystore.
type Wallet struct {
	mu      sync.Mutex
	path    string
	account *Account
}

type keystoreFile struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"` // hex
}

// Load opens the keystore at path. A missing keystore is not an error: the
// wallet starts disconnected.
func Load(path string) (*Wallet, error) {
	w := &Wallet{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("no keystore at %s, wallet starts disconnected", path)
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading keystore: %w", err)
	}

	var ks keystoreFile
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, fmt.Errorf("parsing keystore: %w", err)
	}

	privBytes, err := hex.DecodeString(ks.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("decoding keystore private key: %w", err)
	}
	priv := secp256k1.PrivKeyFromBytes(privBytes)
	pub := priv.PubKey()

	addr := DeriveAddress(pub)
	if ks.Address != "" && ks.Address != addr {
		return nil, fmt.Errorf("keystore address %s does not match key-derived address %s", ks.Address, addr)
	}

	w.account = &Account{Address: addr, pub: pub, priv: priv}
	return w, nil
}

// Generate creates a fresh account, writes the keystore, and connects it.
func Generate(path string) (*Wallet, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	pub := priv.PubKey()
	addr := DeriveAddress(pub)

	ks := keystoreFile{
		Address:    addr,
		PrivateKey: hex.EncodeToString(priv.Serialize()),
	}
	data, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding keystore: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating keystore directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("writing keystore: %w", err)
	}

	logger.Info("generated new account %s", addr)
	return &Wallet{
		path:    path,
		account: &Account{Address: addr, pub: pub, priv: priv},
	}, nil
}

// Account returns the connected account, or nil when disconnected.
func (w *Wallet) Account() *Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account
}

// Connected reports whether an account is available for signing.
func (w *Wallet) Connected() bool {
	return w.Account() != nil
}

// Sign signs a transaction payload with the connected account.
func (w *Wallet) Sign(payload []byte) (*Signature, error) {
	w.mu.Lock()
	account := w.account
	w.mu.Unlock()

	if account == nil {
		return nil, fmt.Errorf("wallet not connected")
	}

	digest := sha256.Sum256(payload)
	sig := ecdsa.Sign(account.priv, digest[:])

	return &Signature{
		Bytes:  sig.Serialize(),
		PubKey: account.pub.SerializeCompressed(),
	}, nil
}

// Verify checks a signature produced by Sign against a payload.
func Verify(sig *Signature, payload []byte) bool {
	pub, err := secp256k1.ParsePubKey(sig.PubKey)
	if err != nil {
		return false
	}
	parsed, err := ecdsa.ParseDERSignature(sig.Bytes)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(payload)
	return parsed.Verify(digest[:], pub)
}

// Disconnect drops the in-memory key. The keystore on disk is untouched.
func (w *Wallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.account = nil
}

// DeriveAddress derives the chain address from a public key:
// 0x + hex(sha256(compressed pubkey)).
func DeriveAddress(pub *secp256k1.PublicKey) string {
	sum := sha256.Sum256(pub.SerializeCompressed())
	return "0x" + hex.EncodeToString(sum[:])
}
