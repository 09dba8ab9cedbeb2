package passkey

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umbracle/ethgo"
	"pgregory.net/rapid"

	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/modules"
	"github.com/0xPolygon/edge-modules/storage/memory"
	"github.com/0xPolygon/edge-modules/types"
	"github.com/0xPolygon/edge-modules/verifier"
)

var (
	moduleAddr = types.StringToAddress("0x7e57")
	accountA   = types.StringToAddress("0xa")
	accountB   = types.StringToAddress("0xb")
)

func newTestValidator(t require.TestingT) (*Validator, *types.LogCollector) {
	store, err := memory.NewMemoryStorage(hclog.NewNullLogger())
	require.NoError(t, err)

	events := &types.LogCollector{}
	v := NewValidator(
		hclog.NewNullLogger(),
		moduleAddr,
		store,
		verifier.NewVerifier(hclog.NewNullLogger(), verifier.SoftwareBackend{}),
		events,
	)

	return v, events
}

func generateKey(t require.TestingT) (*ecdsa.PrivateKey, p256.PublicKey) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	return priv, p256.PublicKeyFromECDSA(&priv.PublicKey)
}

func sign(t require.TestingT, priv *ecdsa.PrivateKey, digest types.Hash) []byte {
	hash := verifier.MessageHash(digest)

	r, s, err := ecdsa.Sign(rand.Reader, priv, hash.Bytes())
	require.NoError(t, err)

	return verifier.EncodeSignature(r, p256.NormalizeS(s))
}

func TestValidator_Identity(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)

	assert.Equal(t, ModuleName, v.Name())
	assert.Equal(t, ModuleVersion, v.Version())
	assert.Equal(t, moduleAddr, v.Addr())

	assert.True(t, v.IsModuleType(big.NewInt(int64(modules.TypeValidator))))
	assert.False(t, v.IsModuleType(big.NewInt(int64(modules.TypeExecutor))))

	assert.True(t, v.SupportsInterface(modules.ERC165InterfaceID))
	assert.True(t, v.SupportsInterface(modules.ModuleInterfaceID))
	assert.True(t, v.SupportsInterface(ValidatorInterfaceID))
	assert.True(t, v.SupportsInterface(PasskeyInterfaceID))
	assert.False(t, v.SupportsInterface(modules.InvalidInterfaceID))
	assert.False(t, v.SupportsInterface(modules.Selector("createPlan(address,address,uint256,uint256)")))
}

func TestValidator_Lifecycle(t *testing.T) {
	t.Parallel()

	v, events := newTestValidator(t)
	_, key := generateKey(t)
	_, newKey := generateKey(t)

	_, ok := v.Credential(1, accountA)
	require.False(t, ok)
	require.False(t, v.IsInitialized(accountA))

	require.NoError(t, v.Install(accountA, 1, key))

	found, ok := v.Credential(1, accountA)
	require.True(t, ok)
	require.True(t, key.Equal(found))
	require.True(t, v.IsInitialized(accountA))

	// registered event carries the zero key as old value
	vals, err := CredentialRegisteredEvent.ParseLog(events.Last().ToEthgo())
	require.NoError(t, err)
	assert.Equal(t, ethgo.Address(accountA), vals["account"])
	assert.Equal(t, 0, big.NewInt(0).Cmp(vals["oldX"].(*big.Int)))
	assert.Equal(t, 0, key.X.Cmp(vals["newX"].(*big.Int)))
	assert.Equal(t, 0, key.Y.Cmp(vals["newY"].(*big.Int)))

	// rebind
	require.NoError(t, v.Transfer(accountA, 1, newKey))

	found, ok = v.Credential(1, accountA)
	require.True(t, ok)
	require.True(t, newKey.Equal(found))

	vals, err = CredentialRegisteredEvent.ParseLog(events.Last().ToEthgo())
	require.NoError(t, err)
	assert.Equal(t, 0, key.X.Cmp(vals["oldX"].(*big.Int)))
	assert.Equal(t, 0, newKey.X.Cmp(vals["newX"].(*big.Int)))

	// uninstall reads as the zero key
	require.NoError(t, v.Uninstall(accountA, 1))

	found, ok = v.Credential(1, accountA)
	require.False(t, ok)
	require.True(t, found.IsZero())
	require.False(t, v.IsInitialized(accountA))

	assert.Equal(t, []types.Hash{
		types.Hash(CredentialRemovedEvent.ID()),
		namespaceTopic(1),
		types.BytesToHash(accountA.Bytes()),
	}, events.Last().Topics)

	require.Len(t, events.Logs, 3)
}

func TestValidator_IsInitialized_CountsNamespaces(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	_, key := generateKey(t)

	require.NoError(t, v.Install(accountA, 1, key))
	require.NoError(t, v.Install(accountA, 2, key))
	// overwriting does not count twice
	require.NoError(t, v.Install(accountA, 2, key))

	require.NoError(t, v.Uninstall(accountA, 1))
	require.True(t, v.IsInitialized(accountA))

	// uninstalling an unbound namespace is harmless
	require.NoError(t, v.Uninstall(accountA, 9))
	require.True(t, v.IsInitialized(accountA))

	require.NoError(t, v.Uninstall(accountA, 2))
	require.False(t, v.IsInitialized(accountA))
}

func TestValidator_InstallPayload(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	_, key := generateKey(t)

	data, err := EncodeInstallData(7, key)
	require.NoError(t, err)

	require.NoError(t, v.OnInstall(accountA, data))

	found, ok := v.Credential(7, accountA)
	require.True(t, ok)
	require.True(t, key.Equal(found))

	data, err = EncodeUninstallData(7)
	require.NoError(t, err)

	require.NoError(t, v.OnUninstall(accountA, data))

	_, ok = v.Credential(7, accountA)
	require.False(t, ok)

	// truncated payloads
	require.ErrorIs(t, v.OnInstall(accountA, []byte{0x1}), ErrInvalidInstallData)
	require.ErrorIs(t, v.OnUninstall(accountA, nil), ErrInvalidInstallData)
}

func TestValidator_InstallAcceptsInvalidPoint(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	priv, _ := generateKey(t)

	bogus := p256.NewPublicKey(big.NewInt(1), big.NewInt(1))
	require.NoError(t, v.Install(accountA, 0, bogus))

	// the key is rejected at verification time
	digest := types.StringToHash("0x01")
	require.Equal(t, InvalidSignature, v.ValidateSignature(accountA, 0, digest, sign(t, priv, digest)))
}

func TestValidator_InstallRejectsWideCoordinates(t *testing.T) {
	t.Parallel()

	v, events := newTestValidator(t)

	wide := new(big.Int).Lsh(big.NewInt(1), 256)

	cases := []p256.PublicKey{
		{X: wide, Y: big.NewInt(1)},
		{X: big.NewInt(1), Y: wide},
		{X: big.NewInt(-1), Y: big.NewInt(1)},
	}

	for _, key := range cases {
		require.ErrorIs(t, v.Install(accountA, 0, key), ErrInvalidKey)
		require.ErrorIs(t, v.Transfer(accountA, 0, key), ErrInvalidKey)
	}

	_, bound := v.Credential(0, accountA)
	require.False(t, bound)
	require.Empty(t, events.Logs)
}

func TestValidator_ValidateSignature(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	priv, key := generateKey(t)
	otherPriv, _ := generateKey(t)

	digest := types.StringToHash("0xdeadbeef")
	sig := sign(t, priv, digest)

	// unbound
	require.Equal(t, InvalidSignature, v.ValidateSignature(accountA, 0, digest, sig))

	require.NoError(t, v.Install(accountA, 0, key))

	cases := []struct {
		name      string
		account   types.Address
		namespace uint32
		digest    types.Hash
		signature []byte
		expected  [4]byte
	}{
		{"valid", accountA, 0, digest, sig, MagicValue},
		{"other namespace", accountA, 1, digest, sig, InvalidSignature},
		{"other account", accountB, 0, digest, sig, InvalidSignature},
		{"other digest", accountA, 0, types.StringToHash("0xbeef"), sig, InvalidSignature},
		{"other signer", accountA, 0, digest, sign(t, otherPriv, digest), InvalidSignature},
		{"truncated", accountA, 0, digest, sig[:32], InvalidSignature},
		{"empty", accountA, 0, digest, nil, InvalidSignature},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, c.expected, v.ValidateSignature(c.account, c.namespace, c.digest, c.signature))
		})
	}
}

func TestValidator_ValidateUserOp(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)
	priv, key := generateKey(t)

	require.NoError(t, v.Install(accountA, 3, key))

	op := &types.UserOperation{
		Sender:   accountA,
		Nonce:    big.NewInt(1),
		CallData: []byte{0x1, 0x2},
	}

	opHash, err := op.Hash(types.StringToAddress("0xe4"), big.NewInt(100))
	require.NoError(t, err)

	op.Signature = sign(t, priv, opHash)

	require.Equal(t, ValidationSuccess, v.ValidateUserOp(3, op, opHash))
	require.Equal(t, ValidationFailed, v.ValidateUserOp(4, op, opHash))
	require.Equal(t, ValidationFailed, v.ValidateUserOp(3, op, types.StringToHash("0x1")))
	require.Equal(t, ValidationFailed, v.ValidateUserOp(3, nil, opHash))

	// the sender decides which credential is used
	op.Sender = accountB
	require.Equal(t, ValidationFailed, v.ValidateUserOp(3, op, opHash))
}

func TestValidator_ValidateDirectCall(t *testing.T) {
	t.Parallel()

	v, _ := newTestValidator(t)

	require.NoError(t, v.ValidateDirectCall(accountA, 0, accountA, big.NewInt(0), nil))
	require.NoError(t, v.ValidateDirectCall(accountA, 0, moduleAddr, big.NewInt(1), []byte{0x1}))

	err := v.ValidateDirectCall(accountA, 0, accountB, big.NewInt(0), nil)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

// TestValidator_AccountIsolation runs random install, transfer and uninstall
// sequences as account A and checks that B's bindings never change
func TestValidator_AccountIsolation(t *testing.T) {
	t.Parallel()

	_, keyB := generateKey(t)
	_, keyA := generateKey(t)

	rapid.Check(t, func(tt *rapid.T) {
		v, _ := newTestValidator(tt)

		namespaces := []uint32{0, 1, 2}
		for _, ns := range namespaces {
			require.NoError(tt, v.Install(accountB, ns, keyB))
		}

		ops := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 20).Draw(tt, "ops")
		for i, op := range ops {
			ns := namespaces[rapid.IntRange(0, 2).Draw(tt, "ns")]

			switch op {
			case 0:
				require.NoError(tt, v.Install(accountA, ns, keyA))
			case 1:
				require.NoError(tt, v.Transfer(accountA, ns, p256.NewPublicKey(big.NewInt(int64(i)), keyA.Y)))
			case 2:
				require.NoError(tt, v.Uninstall(accountA, ns))
			}
		}

		for _, ns := range namespaces {
			found, ok := v.Credential(ns, accountB)
			if !ok || !keyB.Equal(found) {
				tt.Fatalf("binding of B in namespace %d changed", ns)
			}
		}

		require.True(tt, v.IsInitialized(accountB))
	})
}

func TestValidator_StoreIsShared(t *testing.T) {
	t.Parallel()

	store, err := memory.NewMemoryStorage(hclog.NewNullLogger())
	require.NoError(t, err)

	_, key := generateKey(t)

	v := NewValidator(hclog.NewNullLogger(), moduleAddr, store, nil, nil)
	require.NoError(t, v.Install(accountA, 0, key))

	found, ok, err := store.ReadCredential(0, accountA)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, key.Equal(found))
}
