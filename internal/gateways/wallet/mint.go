package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/questpilot/hackquest-bot/internal/domain/platform"
	"github.com/questpilot/hackquest-bot/questpilot/config"
)

var ErrTxFailed = errors.New("transaction reverted")

// mintSelector is the certificate contract's mint entry point.
var mintSelector = []byte{0x18, 0xe7, 0x70, 0xcc}

var mintArguments = func() abi.Arguments {
	mustType := func(name string) abi.Type {
		t, err := abi.NewType(name, "", nil)
		if err != nil {
			panic(err)
		}
		return t
	}
	str := mustType("string")
	return abi.Arguments{
		{Name: "to", Type: mustType("address")},
		{Name: "username", Type: str},
		{Name: "chainId", Type: str},
		{Name: "tokenURI", Type: str},
		{Name: "certificateNo", Type: str},
		{Name: "extra", Type: str},
		{Name: "memo", Type: str},
		{Name: "signature", Type: mustType("bytes")},
	}
}()

func (w *Wallet) mintCalldata(req platform.MintRequest) ([]byte, error) {
	sig, err := hexutil.Decode(req.Signature)
	if err != nil {
		return nil, fmt.Errorf("invalid certificate signature: %w", err)
	}
	packed, err := mintArguments.Pack(
		w.address,
		req.Username,
		strconv.FormatInt(w.chainID.Int64(), 10),
		"",
		strconv.FormatInt(req.CertificateNo, 10),
		"",
		"",
		sig,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack mint arguments: %w", err)
	}
	return append(append([]byte{}, mintSelector...), packed...), nil
}

// MintCertificate sends an EIP-1559 mint transaction and waits for its
// receipt.
func (w *Wallet) MintCertificate(ctx context.Context, req platform.MintRequest) (platform.MintReceipt, error) {
	if w.client == nil {
		return platform.MintReceipt{}, ErrNoRPC
	}
	if !common.IsHexAddress(req.ContractAddress) {
		return platform.MintReceipt{}, fmt.Errorf("invalid contract address %q", req.ContractAddress)
	}
	contract := common.HexToAddress(req.ContractAddress)

	data, err := w.mintCalldata(req)
	if err != nil {
		return platform.MintReceipt{}, err
	}

	tx, err := w.buildTx(ctx, contract, data)
	if err != nil {
		return platform.MintReceipt{}, err
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.chainID), w.key)
	if err != nil {
		return platform.MintReceipt{}, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := w.client.SendTransaction(ctx, signed); err != nil {
		return platform.MintReceipt{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt := platform.MintReceipt{
		TxHash:      signed.Hash().Hex(),
		ExplorerURL: explorerURL(signed.Hash()),
	}
	w.log.Debug("Transaction sent", slog.String("tx", receipt.TxHash))

	waitCtx, cancel := context.WithTimeout(ctx, config.ReceiptTimeout)
	defer cancel()
	mined, err := bind.WaitMined(waitCtx, w.client, signed)
	if err != nil {
		return receipt, fmt.Errorf("failed to wait for receipt: %w", err)
	}
	if mined.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s", ErrTxFailed, receipt.ExplorerURL)
	}
	return receipt, nil
}

func (w *Wallet) buildTx(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	nonce, err := w.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	head, err := w.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}
	if head.BaseFee == nil {
		return nil, errors.New("chain does not support EIP-1559")
	}
	tip, err := w.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	feeCap := new(big.Int).Add(scale(head.BaseFee, config.GasMultiplier), tip)

	gas, err := w.client.EstimateGas(ctx, ethereum.CallMsg{
		From:      w.address,
		To:        &to,
		GasFeeCap: feeCap,
		GasTipCap: tip,
		Data:      data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   w.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       uint64(float64(gas) * config.GasMultiplier),
		To:        &to,
		Data:      data,
	}), nil
}

func scale(v *big.Int, factor float64) *big.Int {
	out, _ := new(big.Float).Mul(new(big.Float).SetInt(v), big.NewFloat(factor)).Int(nil)
	return out
}

func explorerURL(hash common.Hash) string {
	return config.SepoliaExplorerURL + "/tx/" + hash.Hex()
}
