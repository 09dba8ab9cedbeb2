package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/server"
	"github.com/0xPolygon/edge-modules/storage"
	"github.com/0xPolygon/edge-modules/types"
)

var (
	errInvalidCacheSize  = errors.New("credential cache size cannot be negative")
	errMissingDataDir    = errors.New("data dir is required by persistent storage")
	errSenderWithoutNode = errors.New("a sender needs a json-rpc node")
)

// Config defines the module runtime configuration params
type Config struct {
	ChainConfigPath     string     `json:"chain_config" yaml:"chain_config" hcl:"chain_config"`
	DataDir             string     `json:"data_dir" yaml:"data_dir" hcl:"data_dir"`
	Storage             string     `json:"storage" yaml:"storage" hcl:"storage"`
	CredentialCacheSize int        `json:"credential_cache_size" yaml:"credential_cache_size" hcl:"credential_cache_size"`
	Telemetry           *Telemetry `json:"telemetry" yaml:"telemetry" hcl:"telemetry"`
	JSONRPCAddr         string     `json:"json_rpc_addr" yaml:"json_rpc_addr" hcl:"json_rpc_addr"`
	Sender              string     `json:"sender" yaml:"sender" hcl:"sender"`
	LogLevel            string     `json:"log_level" yaml:"log_level" hcl:"log_level"`
	JSONLogFormat       bool       `json:"json_log_format" yaml:"json_log_format" hcl:"json_log_format"`
}

// Telemetry holds the config details for metric services.
type Telemetry struct {
	Prometheus bool `json:"prometheus" yaml:"prometheus" hcl:"prometheus"`
}

const (
	DefaultDataDir   = "./edge-modules-data"
	DefaultStorage   = string(server.LevelDBStorage)
	DefaultLogLevel  = "INFO"
	defaultCacheSize = storage.DefaultCredentialCacheSize
)

// DefaultConfig returns the default runtime configuration
func DefaultConfig() *Config {
	return &Config{
		ChainConfigPath:     "",
		DataDir:             DefaultDataDir,
		Storage:             DefaultStorage,
		CredentialCacheSize: defaultCacheSize,
		Telemetry:           &Telemetry{},
		LogLevel:            DefaultLogLevel,
		JSONLogFormat:       false,
	}
}

// ReadConfigFile reads the config file from the specified path, builds a Config object
// and returns it.
//
// Supported file types: .json, .hcl, .yaml, .yml
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var unmarshalFunc func([]byte, interface{}) error

	switch {
	case strings.HasSuffix(path, ".hcl"):
		unmarshalFunc = hcl.Unmarshal
	case strings.HasSuffix(path, ".json"):
		unmarshalFunc = jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		unmarshalFunc = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("suffix of %s is neither hcl, json, yaml nor yml", path)
	}

	config := DefaultConfig()

	if err := unmarshalFunc(data, config); err != nil {
		return nil, err
	}

	if config.Telemetry == nil {
		config.Telemetry = &Telemetry{}
	}

	return config, nil
}

// Validate checks the configuration and reports every problem found
func (c *Config) Validate() error {
	var result *multierror.Error

	if !server.StorageSupported(c.Storage) {
		result = multierror.Append(result, fmt.Errorf("%w: %s", storage.ErrUnknownBackend, c.Storage))
	} else if c.Storage != string(server.MemoryStorage) && c.DataDir == "" {
		result = multierror.Append(result, errMissingDataDir)
	}

	if c.CredentialCacheSize < 0 {
		result = multierror.Append(result, errInvalidCacheSize)
	}

	if c.Sender != "" {
		if err := types.IsValidAddress(c.Sender); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid sender: %w", err))
		} else if c.JSONRPCAddr == "" {
			result = multierror.Append(result, errSenderWithoutNode)
		}
	}

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	return result.ErrorOrNil()
}

// BuildConfig turns the file configuration into the runtime configuration.
// Without a chain config file the development chain is used.
func (c *Config) BuildConfig() (*server.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	chainConfig := chain.DefaultChain()

	if c.ChainConfigPath != "" {
		cc, err := chain.Import(c.ChainConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load chain config from %s: %w", c.ChainConfigPath, err)
		}

		chainConfig = cc
	}

	sender := types.ZeroAddress
	if c.Sender != "" {
		sender = types.StringToAddress(c.Sender)
	}

	return &server.Config{
		Chain:               chainConfig,
		DataDir:             c.DataDir,
		Storage:             server.StorageType(c.Storage),
		CredentialCacheSize: c.CredentialCacheSize,
		Telemetry: &server.Telemetry{
			Prometheus: c.Telemetry != nil && c.Telemetry.Prometheus,
		},
		JSONRPCAddr:   c.JSONRPCAddr,
		Sender:        sender,
		LogLevel:      hclog.LevelFromString(c.LogLevel),
		JSONLogFormat: c.JSONLogFormat,
	}, nil
}
