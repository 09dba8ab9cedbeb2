package hex

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	ErrEmptyNumber  = errors.New("empty hex number")
	ErrUint256Range = errors.New("hex number exceeds 256 bits")
)

// EncodeToHex generates a hex string based on the byte representation, with the '0x' prefix
func EncodeToHex(str []byte) string {
	return "0x" + hex.EncodeToString(str)
}

// EncodeToString is a wrapper method for hex.EncodeToString
func EncodeToString(str []byte) string {
	return hex.EncodeToString(str)
}

// DecodeString returns the byte representation of the hexadecimal string
func DecodeString(str string) ([]byte, error) {
	return hex.DecodeString(str)
}

// DecodeHex converts a hex string to a byte array
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(str, "0x")

	// odd length input is left padded
	if len(str)%2 == 1 {
		str = "0" + str
	}

	return hex.DecodeString(str)
}

// EncodeUint64 encodes a number as a hex string with 0x prefix.
func EncodeUint64(i uint64) string {
	enc := make([]byte, 2, 10)
	copy(enc, "0x")

	return string(strconv.AppendUint(enc, i, 16))
}

// DecodeUint64 decodes a hex string with 0x prefix to uint64
func DecodeUint64(hexStr string) (uint64, error) {
	cleaned := strings.TrimPrefix(hexStr, "0x")

	return strconv.ParseUint(cleaned, 16, 64)
}

// EncodeBig encodes bigint as a hex string with 0x prefix.
// The sign of the integer is ignored.
func EncodeBig(bigint *big.Int) string {
	if bigint == nil || bigint.BitLen() == 0 {
		return "0x0"
	}

	return fmt.Sprintf("%#x", bigint)
}

// DecodeUint256 parses an unsigned 256-bit number given either in hex
// (0x prefixed) or in decimal
func DecodeUint256(str string) (*big.Int, error) {
	str = strings.TrimSpace(str)
	if str == "" || str == "0x" {
		return nil, ErrEmptyNumber
	}

	base := 10
	if strings.HasPrefix(str, "0x") {
		str = str[2:]
		base = 16
	}

	n, ok := new(big.Int).SetString(str, base)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", str)
	}

	if n.Sign() < 0 || n.BitLen() > 256 {
		return nil, ErrUint256Range
	}

	return n, nil
}

// PadLeft returns a 32 byte big endian representation of n.
// Numbers wider than 256 bits are truncated to their low 32 bytes.
func PadLeft(n *big.Int) []byte {
	out := make([]byte, 32)
	if n == nil {
		return out
	}

	b := n.Bytes()
	if len(b) > 32 {
		b = b[len(b)-32:]
	}

	copy(out[32-len(b):], b)

	return out
}
