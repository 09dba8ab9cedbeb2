package passkey

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/umbracle/ethgo/abi"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	installDataABIType   = abi.MustNewType("tuple(uint32 namespaceId, uint256 x, uint256 y)")
	uninstallDataABIType = abi.MustNewType("tuple(uint32 namespaceId)")

	registeredDataABIType = abi.MustNewType("tuple(uint256 oldX, uint256 oldY, uint256 newX, uint256 newY)")

	CredentialRegisteredEvent = abi.MustNewEvent("event CredentialRegistered(uint32 indexed namespaceId, " +
		"address indexed account, uint256 oldX, uint256 oldY, uint256 newX, uint256 newY)")

	CredentialRemovedEvent = abi.MustNewEvent("event CredentialRemoved(uint32 indexed namespaceId, address indexed account)")
)

// EncodeInstallData encodes the payload consumed by OnInstall
func EncodeInstallData(namespaceID uint32, key p256.PublicKey) ([]byte, error) {
	key = p256.NewPublicKey(key.X, key.Y)

	return installDataABIType.Encode(map[string]interface{}{
		"namespaceId": namespaceID,
		"x":           key.X,
		"y":           key.Y,
	})
}

// DecodeInstallData decodes the (namespaceId, x, y) install payload
func DecodeInstallData(data []byte) (uint32, p256.PublicKey, error) {
	raw, err := installDataABIType.Decode(data)
	if err != nil {
		return 0, p256.PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidInstallData, err)
	}

	values, ok := raw.(map[string]interface{})
	if !ok {
		return 0, p256.PublicKey{}, ErrInvalidInstallData
	}

	ns, ok := values["namespaceId"].(uint32)
	if !ok {
		return 0, p256.PublicKey{}, fmt.Errorf("%w: namespace id", ErrInvalidInstallData)
	}

	x, ok := values["x"].(*big.Int)
	if !ok {
		return 0, p256.PublicKey{}, fmt.Errorf("%w: x coordinate", ErrInvalidInstallData)
	}

	y, ok := values["y"].(*big.Int)
	if !ok {
		return 0, p256.PublicKey{}, fmt.Errorf("%w: y coordinate", ErrInvalidInstallData)
	}

	return ns, p256.NewPublicKey(x, y), nil
}

// EncodeUninstallData encodes the payload consumed by OnUninstall
func EncodeUninstallData(namespaceID uint32) ([]byte, error) {
	return uninstallDataABIType.Encode(map[string]interface{}{
		"namespaceId": namespaceID,
	})
}

// DecodeUninstallData decodes the (namespaceId) uninstall payload
func DecodeUninstallData(data []byte) (uint32, error) {
	raw, err := uninstallDataABIType.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInstallData, err)
	}

	values, ok := raw.(map[string]interface{})
	if !ok {
		return 0, ErrInvalidInstallData
	}

	ns, ok := values["namespaceId"].(uint32)
	if !ok {
		return 0, fmt.Errorf("%w: namespace id", ErrInvalidInstallData)
	}

	return ns, nil
}

func namespaceTopic(namespaceID uint32) types.Hash {
	var h types.Hash

	binary.BigEndian.PutUint32(h[types.HashLength-4:], namespaceID)

	return h
}

func (v *Validator) emitRegistered(namespaceID uint32, account types.Address, old, key p256.PublicKey) {
	if v.events == nil {
		return
	}

	old = p256.NewPublicKey(old.X, old.Y)

	data, err := registeredDataABIType.Encode(map[string]interface{}{
		"oldX": old.X,
		"oldY": old.Y,
		"newX": key.X,
		"newY": key.Y,
	})
	if err != nil {
		v.logger.Error("failed to encode event", "event", "CredentialRegistered", "err", err)

		return
	}

	v.events.EmitLog(&types.Log{
		Address: v.addr,
		Topics: []types.Hash{
			types.Hash(CredentialRegisteredEvent.ID()),
			namespaceTopic(namespaceID),
			types.BytesToHash(account.Bytes()),
		},
		Data: data,
	})
}

func (v *Validator) emitRemoved(namespaceID uint32, account types.Address) {
	if v.events == nil {
		return
	}

	v.events.EmitLog(&types.Log{
		Address: v.addr,
		Topics: []types.Hash{
			types.Hash(CredentialRemovedEvent.ID()),
			namespaceTopic(namespaceID),
			types.BytesToHash(account.Bytes()),
		},
	})
}
