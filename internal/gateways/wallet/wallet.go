package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/internal/gateways/hackquest"
	"github.com/questpilot/hackquest-bot/questpilot/config"
)

var (
	ErrInvalidKey = errors.New("invalid private key")
	ErrNoRPC      = errors.New("sepolia rpc is not configured")
)

type Config struct {
	PrivateKey string
	RPCURL     string
	// Proxy routes RPC traffic through the account proxy.
	Proxy   *url.URL
	Timeout time.Duration
	Log     *slog.Logger
}

// Wallet signs for one account and sends its Sepolia transactions.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
	client  *ethclient.Client
	log     *slog.Logger
}

var _ platform.Wallet = &Wallet{}

func New(ctx context.Context, cfg Config) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultRequestTimeout
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	w := &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: big.NewInt(config.SepoliaChainID),
		log:     cfg.Log.With(slog.String("type", "chain")),
	}

	if cfg.RPCURL != "" {
		httpClient, err := hackquest.HTTPClient(cfg.Proxy, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		rpcClient, err := rpc.DialOptions(ctx, cfg.RPCURL, rpc.WithHTTPClient(httpClient))
		if err != nil {
			return nil, fmt.Errorf("failed to dial rpc: %w", err)
		}
		w.client = ethclient.NewClient(rpcClient)
	}
	return w, nil
}

// Address returns the checksummed account address.
func (w *Wallet) Address() string {
	return w.address.Hex()
}

func (w *Wallet) ChainID() int64 {
	return w.chainID.Int64()
}

// SignMessage returns an EIP-191 personal_sign signature with V in {27, 28}.
func (w *Wallet) SignMessage(message string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

func (w *Wallet) Balance(ctx context.Context) (*big.Int, error) {
	if w.client == nil {
		return nil, ErrNoRPC
	}
	balance, err := w.client.BalanceAt(ctx, w.address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (w *Wallet) Close() {
	if w.client != nil {
		w.client.Close()
	}
}
