package root

import (
	"bytes"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/helper/tests"
	"github.com/0xPolygon/edge-modules/types"
	"github.com/0xPolygon/edge-modules/verifier"
)

// the commands keep their params in package variables, these tests run sequentially

type cli struct {
	t       *testing.T
	dataDir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	return &cli{t: t, dataDir: t.TempDir()}
}

func (c *cli) run(args ...string) (string, string) {
	c.t.Helper()

	rc := NewRootCommand()

	var stdout, stderr bytes.Buffer

	rc.baseCmd.SetOut(&stdout)
	rc.baseCmd.SetErr(&stderr)
	rc.baseCmd.SetArgs(append(args, "--data-dir", c.dataDir, "--log-level", "off", "--json"))

	require.NoError(c.t, rc.baseCmd.Execute())

	return stdout.String(), stderr.String()
}

func (c *cli) runJSON(out interface{}, args ...string) {
	c.t.Helper()

	stdout, stderr := c.run(args...)
	require.Empty(c.t, stderr)
	require.NoError(c.t, jsoniter.Unmarshal([]byte(stdout), out))
}

func TestRoot_Version(t *testing.T) {
	c := newCLI(t)

	var res struct {
		Version string `json:"version"`
		Modules []struct {
			Name string `json:"name"`
		} `json:"modules"`
	}

	c.runJSON(&res, "version")

	assert.NotEmpty(t, res.Version)
	require.Len(t, res.Modules, 2)
	assert.Equal(t, "PasskeyValidator", res.Modules[0].Name)
	assert.Equal(t, "AutomationExecutor", res.Modules[1].Name)
}

func TestRoot_Passkey(t *testing.T) {
	c := newCLI(t)

	priv, _ := tests.GenerateP256Key(t)

	account := "0x00000000000000000000000000000000000000a1"
	x := hex.EncodeBig(priv.PublicKey.X)
	y := hex.EncodeBig(priv.PublicKey.Y)

	type credential struct {
		Bound      bool   `json:"bound"`
		X          string `json:"x"`
		ValidPoint bool   `json:"validPoint"`
	}

	var res credential

	c.runJSON(&res, "passkey", "install", "--account", account, "--namespace", "2", "--x", x, "--y", y)
	assert.True(t, res.Bound)
	assert.True(t, res.ValidPoint)

	res = credential{}
	c.runJSON(&res, "passkey", "show", "--account", account, "--namespace", "2")
	assert.True(t, res.Bound)
	assert.Equal(t, x, res.X)

	// verify against the bound credential
	digest := types.StringToHash("0xbeef")
	sig := hex.EncodeToHex(tests.SignDigest(t, priv, digest))

	var verified struct {
		Valid   bool   `json:"valid"`
		Backend string `json:"backend"`
	}

	c.runJSON(&verified, "verify", "--digest", digest.String(), "--signature", sig,
		"--account", account, "--namespace", "2")
	assert.True(t, verified.Valid)
	assert.Equal(t, verifier.PrecompileBackendName, verified.Backend)

	c.runJSON(&verified, "verify", "--digest", digest.String(), "--signature", sig, "--x", "1", "--y", "2")
	assert.False(t, verified.Valid)

	res = credential{}
	c.runJSON(&res, "passkey", "uninstall", "--account", account, "--namespace", "2")
	assert.False(t, res.Bound)

	res = credential{Bound: true}
	c.runJSON(&res, "passkey", "show", "--account", account, "--namespace", "2")
	assert.False(t, res.Bound)

	// nothing bound any more
	_, stderr := c.run("verify", "--digest", digest.String(), "--signature", sig, "--account", account)
	assert.Contains(t, stderr, "no credential bound")
}

func TestRoot_Plans(t *testing.T) {
	c := newCLI(t)

	type plan struct {
		ID       uint64 `json:"id"`
		Amount   string `json:"amount"`
		Interval uint64 `json:"interval"`
		Active   bool   `json:"active"`
	}

	create := []string{
		"plan", "create",
		"--token-in", "0x000000000000000000000000000000000000000a",
		"--token-out", "0x000000000000000000000000000000000000000b",
		"--amount", "100",
		"--interval", "86400",
	}

	var p plan

	c.runJSON(&p, create...)
	assert.Equal(t, uint64(1), p.ID)
	assert.Equal(t, "100", p.Amount)
	assert.True(t, p.Active)

	c.runJSON(&p, "plan", "cancel", "--id", "1")
	assert.False(t, p.Active)

	// ids are never reused
	c.runJSON(&p, create...)
	assert.Equal(t, uint64(2), p.ID)

	var all struct {
		Plans []plan `json:"plans"`
	}

	c.runJSON(&all, "plan", "show")
	require.Len(t, all.Plans, 2)
	assert.False(t, all.Plans[0].Active)
	assert.True(t, all.Plans[1].Active)

	_, stderr := c.run("plan", "cancel", "--id", "1")
	assert.Contains(t, stderr, "plan inactive")

	_, stderr = c.run("plan", "cancel", "--id", "9")
	assert.Contains(t, stderr, "plan not found")

	dex := "0x00000000000000000000000000000000000000de"

	_, stderr = c.run("plan", "execute", "--id", "1", "--dex", dex)
	assert.Contains(t, stderr, "plan inactive")

	_, stderr = c.run("plan", "execute", "--id", "2", "--dex", dex)
	assert.Contains(t, stderr, "dex not whitelisted")

	zero := append([]string{}, create...)
	zero[7] = "0"

	_, stderr = c.run(zero...)
	assert.Contains(t, stderr, "invalid amount")
}

func TestRoot_Whitelist(t *testing.T) {
	c := newCLI(t)

	dex := "0x00000000000000000000000000000000000000de"

	type whitelist struct {
		AdminGated bool `json:"adminGated"`
		Entries    []struct {
			Role        string `json:"role"`
			Whitelisted bool   `json:"whitelisted"`
		} `json:"entries"`
	}

	var res whitelist

	c.runJSON(&res, "whitelist", "add", "--dex", dex)
	assert.False(t, res.AdminGated)
	require.Len(t, res.Entries, 1)
	assert.True(t, res.Entries[0].Whitelisted)

	res = whitelist{}
	c.runJSON(&res, "whitelist", "show", "--address", dex)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "enabled", res.Entries[0].Role)

	res = whitelist{}
	c.runJSON(&res, "whitelist", "remove", "--dex", dex)
	require.Len(t, res.Entries, 1)
	assert.False(t, res.Entries[0].Whitelisted)
}

func TestRoot_TextOutput(t *testing.T) {
	rc := NewRootCommand()

	var stdout bytes.Buffer

	rc.baseCmd.SetOut(&stdout)
	rc.baseCmd.SetArgs([]string{"version"})

	require.NoError(t, rc.baseCmd.Execute())
	assert.True(t, strings.Contains(stdout.String(), "[VERSION INFO]"))
}
