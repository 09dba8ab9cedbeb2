package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/contracts"
	"github.com/0xPolygon/edge-modules/helper/common"
	"github.com/0xPolygon/edge-modules/helper/keccak"
	"github.com/0xPolygon/edge-modules/modules/automation"
	"github.com/0xPolygon/edge-modules/modules/passkey"
	"github.com/0xPolygon/edge-modules/state/runtime"
	"github.com/0xPolygon/edge-modules/state/runtime/addresslist"
	"github.com/0xPolygon/edge-modules/state/runtime/precompiled"
	"github.com/0xPolygon/edge-modules/storage"
	"github.com/0xPolygon/edge-modules/types"
	"github.com/0xPolygon/edge-modules/verifier"
)

const storageDir = "storage"

// genesisKey marks, in the automation module storage, that the chain
// allocations have been applied
var genesisKey = types.BytesToHash(keccak.Keccak256(nil, []byte("edge-modules.genesis")))

// Server wires the modules with their storage, host and verification backend
type Server struct {
	logger hclog.Logger
	config *Config

	storage     storage.Storage
	precompiled *precompiled.Precompiled
	local       *localHost
	host        runtime.Host
	rpc         *rpcHost
	events      *eventLog

	verifier  *verifier.Verifier
	validator *passkey.Validator
	executor  *automation.Executor
}

// NewServer creates the module runtime described by config
func NewServer(config *Config) (*Server, error) {
	logger, err := newLoggerFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("could not setup new logger instance, %w", err)
	}

	if config.Chain == nil {
		config.Chain = chain.DefaultChain()
	}

	m := &Server{
		logger:      logger.Named("server"),
		config:      config,
		precompiled: precompiled.NewPrecompiled(),
	}

	if err := m.setupTelemetry(); err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	if m.storage, err = m.openStorage(logger); err != nil {
		return nil, err
	}

	params := config.Chain.Params
	forks := params.Forks.At(0)
	addrs := moduleAddresses(params)

	m.local = newLocalHost(m.precompiled, forks, params.ChainID)
	m.host = m.local

	if config.JSONRPCAddr != "" {
		if m.rpc, err = newRPCHost(logger, m.local, config.JSONRPCAddr, config.Sender); err != nil {
			m.storage.Close()

			return nil, err
		}

		m.host = m.rpc
	}

	m.events = newEventLog(logger)

	backend := verifier.Detect(logger, verifier.NewPrecompileHost(m.precompiled, forks))
	m.verifier = verifier.NewVerifier(logger, backend)

	m.validator = passkey.NewValidator(logger, addrs.PasskeyValidator, m.storage, m.verifier, m.events)

	m.applyGenesis(addrs.Automation, params.DexAllowList)
	m.executor = automation.NewExecutor(logger, addrs.Automation, m.storage, m.host, m.events)

	m.logger.Info("modules ready",
		"chain", config.Chain.Name,
		"storage", config.Storage,
		"node", config.JSONRPCAddr,
		"verifier", backend.Name(),
		"passkey", addrs.PasskeyValidator,
		"automation", addrs.Automation,
	)

	return m, nil
}

func (s *Server) openStorage(logger hclog.Logger) (storage.Storage, error) {
	factory, ok := storageBackends[s.config.Storage]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrUnknownBackend, s.config.Storage)
	}

	storageConfig := &storage.Config{
		CredentialCacheSize: s.config.CredentialCacheSize,
	}

	switch s.config.Storage {
	case LevelDBStorage:
		storageConfig.Path = filepath.Join(s.config.DataDir, storageDir)
	case BoltDBStorage:
		storageConfig.Path = filepath.Join(s.config.DataDir, storageDir, "modules.db")
	}

	if s.config.Storage != MemoryStorage {
		logger.Info("opening storage", "backend", s.config.Storage,
			"path", storageConfig.Path,
			"existing", common.DirectoryExists(filepath.Join(s.config.DataDir, storageDir)),
		)

		if err := common.SetupDataDir(s.config.DataDir, []string{storageDir}); err != nil {
			return nil, err
		}
	}

	st, err := factory(storageConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", s.config.Storage, err)
	}

	return st, nil
}

// applyGenesis seeds the dex whitelist once per storage
func (s *Server) applyGenesis(addr types.Address, config *chain.AddressListConfig) {
	if s.storage.GetStorage(addr, genesisKey) != types.ZeroHash {
		return
	}

	addresslist.ApplyAllocs(s.storage, addr, config)
	s.storage.SetState(addr, genesisKey, types.BytesToHash([]byte{1}))

	if config != nil {
		s.logger.Debug("dex allow list applied",
			"admins", len(config.AdminAddresses),
			"enabled", len(config.EnabledAddresses),
		)
	}
}

func moduleAddresses(params *chain.Params) chain.ModuleAddresses {
	if params.Modules != nil {
		return *params.Modules
	}

	return chain.ModuleAddresses{
		PasskeyValidator: contracts.PasskeyValidatorContract,
		Automation:       contracts.AutomationContract,
	}
}

// EntryPoint returns the relay user operations are hashed against
func (s *Server) EntryPoint() types.Address {
	if ep := s.config.Chain.Params.EntryPoint; ep != types.ZeroAddress {
		return ep
	}

	return contracts.EntryPointContract
}

// ChainID is the id of the node when one is configured, the chain config id otherwise
func (s *Server) ChainID() int64 {
	return s.local.chainID
}

func (s *Server) Logger() hclog.Logger {
	return s.logger
}

func (s *Server) Verifier() *verifier.Verifier {
	return s.verifier
}

func (s *Server) Validator() *passkey.Validator {
	return s.validator
}

func (s *Server) Executor() *automation.Executor {
	return s.executor
}

// Events returns the module events emitted since the server started
func (s *Server) Events() []*types.Log {
	return s.events.Logs()
}

// Close closes the server
func (s *Server) Close() error {
	var result *multierror.Error

	if err := s.storage.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to close storage: %w", err))
	}

	if s.rpc != nil {
		if err := s.rpc.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close json-rpc client: %w", err))
		}
	}

	return result.ErrorOrNil()
}

// newLoggerFromConfig creates a new logger which logs to the standard error stream
func newLoggerFromConfig(config *Config) (hclog.Logger, error) {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "edge-modules",
		Level:      config.LogLevel,
		JSONFormat: config.JSONLogFormat,
		Output:     os.Stderr,
	}), nil
}
