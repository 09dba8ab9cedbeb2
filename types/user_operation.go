package types

import (
	"math/big"

	"github.com/umbracle/ethgo/abi"

	"github.com/0xPolygon/edge-modules/helper/keccak"
)

var (
	packedUserOpABIType = abi.MustNewType("tuple(address sender, uint256 nonce, bytes32 initCode, " +
		"bytes32 callData, bytes32 accountGasLimits, uint256 preVerificationGas, bytes32 gasFees, " +
		"bytes32 paymasterAndData)")

	userOpHashABIType = abi.MustNewType("tuple(bytes32 opHash, address entryPoint, uint256 chainId)")
)

// UserOperation is a batched account operation (ERC-4337 packed form).
// Signature carries the credential signature checked by a validator module.
type UserOperation struct {
	Sender             Address  `json:"sender"`
	Nonce              *big.Int `json:"nonce"`
	InitCode           []byte   `json:"initCode"`
	CallData           []byte   `json:"callData"`
	AccountGasLimits   Hash     `json:"accountGasLimits"`
	PreVerificationGas *big.Int `json:"preVerificationGas"`
	GasFees            Hash     `json:"gasFees"`
	PaymasterAndData   []byte   `json:"paymasterAndData"`
	Signature          []byte   `json:"signature"`
}

// Hash returns the operation hash bound to the entry point and chain id.
// The signature is not part of the hash.
func (op *UserOperation) Hash(entryPoint Address, chainID *big.Int) (Hash, error) {
	nonce := op.Nonce
	if nonce == nil {
		nonce = big.NewInt(0)
	}

	preVerificationGas := op.PreVerificationGas
	if preVerificationGas == nil {
		preVerificationGas = big.NewInt(0)
	}

	packed, err := packedUserOpABIType.Encode(map[string]interface{}{
		"sender":             op.Sender,
		"nonce":              nonce,
		"initCode":           keccakHash(op.InitCode),
		"callData":           keccakHash(op.CallData),
		"accountGasLimits":   op.AccountGasLimits,
		"preVerificationGas": preVerificationGas,
		"gasFees":            op.GasFees,
		"paymasterAndData":   keccakHash(op.PaymasterAndData),
	})
	if err != nil {
		return ZeroHash, err
	}

	encoded, err := userOpHashABIType.Encode(map[string]interface{}{
		"opHash":     keccakHash(packed),
		"entryPoint": entryPoint,
		"chainId":    chainID,
	})
	if err != nil {
		return ZeroHash, err
	}

	return keccakHash(encoded), nil
}

func keccakHash(b []byte) Hash {
	return BytesToHash(keccak.Keccak256(nil, b))
}
