package automation

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/umbracle/ethgo/abi"

	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidInterval   = errors.New("invalid interval")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanInactive      = errors.New("plan inactive")
	ErrTooEarly          = errors.New("too early")
	ErrDexNotWhitelisted = errors.New("dex not whitelisted")
	ErrReentrantCall     = errors.New("reentrant call")
)

var (
	// Error(string) revert selector
	revertSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

	revertReasonABIType = abi.MustNewType("string")
)

// EndpointError is returned when an external call made during plan
// execution fails. ReturnData is the endpoint's answer, untouched.
type EndpointError struct {
	Endpoint   types.Address
	ReturnData []byte
	Reason     string
	Err        error
}

func newEndpointError(endpoint types.Address, returnData []byte, err error) *EndpointError {
	return &EndpointError{
		Endpoint:   endpoint,
		ReturnData: returnData,
		Reason:     decodeRevertReason(returnData),
		Err:        err,
	}
}

func (e *EndpointError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("call to %s failed: %v: %s", e.Endpoint, e.Err, e.Reason)
	case len(e.ReturnData) > 0:
		return fmt.Sprintf("call to %s failed: %v: %s", e.Endpoint, e.Err, hex.EncodeToHex(e.ReturnData))
	default:
		return fmt.Sprintf("call to %s failed: %v", e.Endpoint, e.Err)
	}
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// decodeRevertReason extracts the message of an Error(string) revert
func decodeRevertReason(data []byte) string {
	if len(data) < len(revertSelector) || !bytes.Equal(data[:len(revertSelector)], revertSelector) {
		return ""
	}

	raw, err := revertReasonABIType.Decode(data[len(revertSelector):])
	if err != nil {
		return ""
	}

	reason, _ := raw.(string)

	return reason
}

// EncodeRevertReason builds Error(string) return data
func EncodeRevertReason(reason string) []byte {
	data, err := revertReasonABIType.Encode(reason)
	if err != nil {
		return nil
	}

	return append(append([]byte{}, revertSelector...), data...)
}
