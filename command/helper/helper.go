package helper

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/0xPolygon/edge-modules/command"
	"github.com/0xPolygon/edge-modules/command/config"
	"github.com/0xPolygon/edge-modules/crypto/p256"
	"github.com/0xPolygon/edge-modules/helper/common"
	"github.com/0xPolygon/edge-modules/helper/hex"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	ErrMissingKey    = errors.New("either the key coordinates or the COSE key must be set")
	ErrAmbiguousKey  = errors.New("the key coordinates and the COSE key are mutually exclusive")
	ErrInvalidNumber = errors.New("invalid number")
)

// FormatList formats a list, using a specific blank value replacement
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

// RegisterJSONOutputFlag registers the --json output setting for all child commands
func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

// RegisterRuntimeFlags registers the flags every module command uses to
// open the module runtime
func RegisterRuntimeFlags(cmd *cobra.Command) {
	defaultConfig := config.DefaultConfig()

	cmd.PersistentFlags().String(
		command.ConfigFlag,
		"",
		"the path to the CLI config. Supported: .json, .hcl, .yaml, .yml",
	)

	cmd.PersistentFlags().String(
		command.DataDirFlag,
		defaultConfig.DataDir,
		"the data directory used for storing module state",
	)

	cmd.PersistentFlags().String(
		command.StorageFlag,
		defaultConfig.Storage,
		"the storage backend: memory, leveldb or boltdb",
	)

	cmd.PersistentFlags().String(
		command.ChainFlag,
		defaultConfig.ChainConfigPath,
		"the chain config file, the development chain is used when empty",
	)

	cmd.PersistentFlags().String(
		command.JSONRPCFlag,
		defaultConfig.JSONRPCAddr,
		"the JSON-RPC address of the node the module calls go to, the local host is used when empty",
	)

	cmd.PersistentFlags().String(
		command.SenderFlag,
		defaultConfig.Sender,
		"the node account sending the module transactions, the first node account when empty",
	)

	cmd.PersistentFlags().String(
		command.LogLevelFlag,
		defaultConfig.LogLevel,
		"the log level for console output",
	)
}

// ReadRuntimeConfig builds the runtime config from the config file, if any,
// overridden by the flags set on the command line
func ReadRuntimeConfig(cmd *cobra.Command) (*server.Config, error) {
	rawConfig := config.DefaultConfig()

	if flag := cmd.Flag(command.ConfigFlag); flag != nil && flag.Value.String() != "" {
		fileConfig, err := config.ReadConfigFile(flag.Value.String())
		if err != nil {
			return nil, err
		}

		rawConfig = fileConfig
	}

	overrides := map[string]*string{
		command.DataDirFlag:  &rawConfig.DataDir,
		command.StorageFlag:  &rawConfig.Storage,
		command.ChainFlag:    &rawConfig.ChainConfigPath,
		command.LogLevelFlag: &rawConfig.LogLevel,
		command.JSONRPCFlag:  &rawConfig.JSONRPCAddr,
		command.SenderFlag:   &rawConfig.Sender,
	}

	for name, field := range overrides {
		if flag := cmd.Flag(name); flag != nil && flag.Changed {
			*field = flag.Value.String()
		}
	}

	return rawConfig.BuildConfig()
}

// NewServer opens the module runtime for a command
func NewServer(cmd *cobra.Command) (*server.Server, error) {
	serverConfig, err := ReadRuntimeConfig(cmd)
	if err != nil {
		return nil, err
	}

	return server.NewServer(serverConfig)
}

// ParseAddress parses a hex encoded address
func ParseAddress(raw string) (types.Address, error) {
	if err := types.IsValidAddress(raw); err != nil {
		return types.ZeroAddress, err
	}

	return types.StringToAddress(raw), nil
}

// ParseUint256 parses a decimal or 0x prefixed hex number
func ParseUint256(raw string) (*big.Int, error) {
	v, err := common.ParseUint256orHex(&raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}

	return v, nil
}

// ParseUint64 parses a decimal or 0x prefixed hex number
func ParseUint64(raw string) (uint64, error) {
	v, err := common.ParseUint64orHex(&raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, err)
	}

	return v, nil
}

// ParsePublicKey reads a passkey either from its affine coordinates or
// from its hex encoded COSE_Key, exactly one of the two must be given
func ParsePublicKey(rawX, rawY, rawCOSE string) (p256.PublicKey, error) {
	hasCoords := rawX != "" || rawY != ""

	switch {
	case hasCoords && rawCOSE != "":
		return p256.PublicKey{}, ErrAmbiguousKey
	case rawCOSE != "":
		coseKey, err := hex.DecodeHex(rawCOSE)
		if err != nil {
			return p256.PublicKey{}, fmt.Errorf("invalid COSE key encoding: %w", err)
		}

		return p256.PublicKeyFromCOSE(coseKey)
	case rawX == "" || rawY == "":
		return p256.PublicKey{}, ErrMissingKey
	}

	x, err := ParseUint256(rawX)
	if err != nil {
		return p256.PublicKey{}, err
	}

	y, err := ParseUint256(rawY)
	if err != nil {
		return p256.PublicKey{}, err
	}

	return p256.NewPublicKey(x, y), nil
}
