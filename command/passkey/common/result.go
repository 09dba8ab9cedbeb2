package common

import (
	"bytes"
	"fmt"

	"github.com/0xPolygon/edge-modules/command/helper"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/types"
)

// CredentialResult describes the binding of one (namespace, account) pair
type CredentialResult struct {
	Action      string        `json:"action,omitempty"`
	Account     types.Address `json:"account"`
	NamespaceID uint32        `json:"namespaceId"`
	Bound       bool          `json:"bound"`
	X           string        `json:"x,omitempty"`
	Y           string        `json:"y,omitempty"`
	ValidPoint  bool          `json:"validPoint"`
}

func NewCredentialResult(action string, account types.Address, namespaceID uint32,
	key p256.PublicKey, bound bool) *CredentialResult {
	res := &CredentialResult{
		Action:      action,
		Account:     account,
		NamespaceID: namespaceID,
		Bound:       bound,
	}

	if bound {
		res.X = hex.EncodeBig(key.X)
		res.Y = hex.EncodeBig(key.Y)
		res.ValidPoint = key.IsValid()
	}

	return res
}

func (r *CredentialResult) GetOutput() string {
	var buffer bytes.Buffer

	if r.Action != "" {
		buffer.WriteString(fmt.Sprintf("\n[PASSKEY %s]\n", r.Action))
	} else {
		buffer.WriteString("\n[PASSKEY]\n")
	}

	buffer.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Account|%s", r.Account),
		fmt.Sprintf("Namespace|%d", r.NamespaceID),
		fmt.Sprintf("Bound|%t", r.Bound),
		fmt.Sprintf("X|%s", r.X),
		fmt.Sprintf("Y|%s", r.Y),
		fmt.Sprintf("On curve|%t", r.ValidPoint),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}
