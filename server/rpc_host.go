package server

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
	"github.com/umbracle/ethgo/jsonrpc"

	"github.com/0xPolygon/edge-modules/helper/common"
	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/types"
)

const (
	receiptSuccess = uint64(1)

	defaultReceiptPollInterval = 50 * time.Millisecond
	defaultReceiptPolls        = 100
)

var (
	errNoAccounts     = errors.New("no accounts registered")
	errReceiptTimeout = errors.New("timeout waiting for the transaction receipt")
)

var _ runtime.Host = (*rpcHost)(nil)

// rpcHost runs the module calls against a node. Precompiles stay local, any
// other call is simulated with eth_call for its return data and then sent as
// a transaction from an account unlocked on the node.
type rpcHost struct {
	logger hclog.Logger
	local  *localHost
	client *jsonrpc.Client
	from   ethgo.Address

	pollInterval time.Duration
	polls        int
}

func newRPCHost(logger hclog.Logger, local *localHost, addr string, sender types.Address) (*rpcHost, error) {
	client, err := jsonrpc.NewClient(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	h := &rpcHost{
		logger:       logger.Named("rpc_host"),
		local:        local,
		client:       client,
		from:         ethgo.Address(sender),
		pollInterval: defaultReceiptPollInterval,
		polls:        defaultReceiptPolls,
	}

	chainID, err := client.Eth().ChainID()
	if err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to read chain id: %w", err)
	}

	if chainID.Int64() != local.chainID {
		h.logger.Warn("chain id of the node differs from the chain config",
			"node", chainID, "config", local.chainID)
	}

	// the node chain id wins, user operations are hashed against it
	local.chainID = chainID.Int64()

	if sender == types.ZeroAddress {
		accounts, err := client.Eth().Accounts()
		if err != nil {
			client.Close()

			return nil, fmt.Errorf("failed to read node accounts: %w", err)
		}

		if len(accounts) == 0 {
			client.Close()

			return nil, errNoAccounts
		}

		h.from = accounts[0]
	}

	h.logger.Info("connected", "addr", addr, "chainID", chainID, "sender", h.from)

	return h, nil
}

func (h *rpcHost) Callx(c *runtime.Contract, host runtime.Host) *runtime.ExecutionResult {
	if h.local.precompiled.CanRun(c, host, &h.local.forks) {
		return h.local.Callx(c, host)
	}

	to := ethgo.Address(c.Address)
	value := c.Value

	if value == nil {
		value = big.NewInt(0)
	}

	out, err := h.client.Eth().Call(&ethgo.CallMsg{
		From:  h.from,
		To:    &to,
		Data:  c.Input,
		Value: value,
		Gas:   new(big.Int).SetUint64(c.Gas),
	}, ethgo.Latest)
	if err != nil {
		return &runtime.ExecutionResult{
			Err: fmt.Errorf("%w: %v", runtime.ErrExecutionReverted, err),
		}
	}

	returnValue, err := hex.DecodeHex(out)
	if err != nil {
		return &runtime.ExecutionResult{Err: fmt.Errorf("invalid call output: %w", err)}
	}

	if c.Static {
		return &runtime.ExecutionResult{ReturnValue: returnValue, GasLeft: c.Gas}
	}

	receipt, err := h.sendTxn(&ethgo.Transaction{
		From:  h.from,
		To:    &to,
		Input: c.Input,
		Value: value,
		Gas:   c.Gas,
	})
	if err != nil {
		return &runtime.ExecutionResult{Err: err}
	}

	result := &runtime.ExecutionResult{
		ReturnValue: returnValue,
		GasUsed:     receipt.GasUsed,
	}

	if receipt.GasUsed < c.Gas {
		result.GasLeft = c.Gas - receipt.GasUsed
	}

	if receipt.Status != receiptSuccess {
		// the call went through as a simulation, state changed in between
		result.ReturnValue = nil
		result.Err = fmt.Errorf("%w: transaction %s", runtime.ErrExecutionReverted, receipt.TransactionHash)
	}

	return result
}

func (h *rpcHost) sendTxn(txn *ethgo.Transaction) (*ethgo.Receipt, error) {
	hash, err := h.client.Eth().SendTransaction(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	h.logger.Debug("transaction sent", "hash", hash, "to", txn.To)

	return h.waitForReceipt(hash)
}

func (h *rpcHost) waitForReceipt(hash ethgo.Hash) (*ethgo.Receipt, error) {
	for i := 0; i < h.polls; i++ {
		receipt, err := h.client.Eth().GetTransactionReceipt(hash)
		if err != nil && err.Error() != "not found" {
			return nil, err
		}

		if receipt != nil {
			return receipt, nil
		}

		time.Sleep(h.pollInterval)
	}

	return nil, fmt.Errorf("%w: %s", errReceiptTimeout, hash)
}

// GetTxContext reads the time of the latest block, the wall clock is used
// when the node cannot be reached
func (h *rpcHost) GetTxContext() runtime.TxContext {
	ctx := h.local.GetTxContext()

	var header struct {
		Number    string `json:"number"`
		Timestamp string `json:"timestamp"`
	}

	if err := h.client.Call("eth_getBlockByNumber", &header, ethgo.Latest.String(), false); err != nil {
		h.logger.Warn("failed to read the latest block, using the local clock", "err", err)

		return ctx
	}

	timestamp, err := common.ParseUint64orHex(&header.Timestamp)
	if err != nil {
		h.logger.Warn("invalid block timestamp, using the local clock", "timestamp", header.Timestamp)

		return ctx
	}

	number, _ := common.ParseUint64orHex(&header.Number)

	ctx.Timestamp = int64(timestamp)
	ctx.Number = int64(number)

	return ctx
}

func (h *rpcHost) Close() error {
	return h.client.Close()
}
