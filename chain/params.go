package chain

import (
	"errors"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/0xPolygon/edge-modules/types"
)

var (
	errMissingForks     = errors.New("forks are not defined")
	errMissingChainID   = errors.New("chain id must be greater than zero")
	errZeroModuleAddr   = errors.New("module address cannot be the zero address")
	errDuplicateModules = errors.New("validator and automation modules share the same address")
)

// Params are all the set of params for the chain
type Params struct {
	Forks   *Forks `json:"forks"`
	ChainID int64  `json:"chainID"`

	// EntryPoint is the contract that relays batched user operations
	EntryPoint types.Address `json:"entryPoint"`

	// Modules holds the identities of the installed modules
	Modules *ModuleAddresses `json:"modules"`

	// DexAllowList seeds the swap endpoint whitelist of the automation module
	DexAllowList *AddressListConfig `json:"dexAllowList,omitempty"`
}

// ModuleAddresses are the identities under which the modules run
type ModuleAddresses struct {
	PasskeyValidator types.Address `json:"passkeyValidator"`
	Automation       types.Address `json:"automation"`
}

type AddressListConfig struct {
	// AdminAddresses is the list of the initial admin addresses.
	// A non empty admin list turns on admin gating of the whitelist mutators
	AdminAddresses []types.Address `json:"adminAddresses,omitempty"`

	// EnabledAddresses is the list of the initially whitelisted endpoints
	EnabledAddresses []types.Address `json:"enabledAddresses,omitempty"`
}

// Validate checks the params for consistency and returns every problem found
func (p *Params) Validate() error {
	var result *multierror.Error

	if p.Forks == nil {
		result = multierror.Append(result, errMissingForks)
	}

	if p.ChainID <= 0 {
		result = multierror.Append(result, errMissingChainID)
	}

	if p.Modules != nil {
		if p.Modules.PasskeyValidator == types.ZeroAddress || p.Modules.Automation == types.ZeroAddress {
			result = multierror.Append(result, errZeroModuleAddr)
		} else if p.Modules.PasskeyValidator == p.Modules.Automation {
			result = multierror.Append(result, errDuplicateModules)
		}
	}

	return result.ErrorOrNil()
}

// predefined forks
const (
	// P256Verify activates the secp256r1 verification endpoint (RIP-7212)
	P256Verify = "p256verify"
)

// Forks specifies when each fork is activated
type Forks map[string]*Fork

func (f *Forks) IsP256Verify(block uint64) bool {
	return f.Is(P256Verify, block)
}

func (f *Forks) Is(name string, block uint64) bool {
	return active((*f)[name], block)
}

func (f *Forks) IsSupported(name string) bool {
	_, exists := (*f)[name]

	return exists
}

// Names returns the configured fork names in a stable order
func (f *Forks) Names() []string {
	names := make([]string, 0, len(*f))
	for name := range *f {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (f *Forks) At(block uint64) ForksInTime {
	return ForksInTime{
		P256Verify: active((*f)[P256Verify], block),
	}
}

type Fork uint64

func NewFork(n uint64) *Fork {
	f := Fork(n)

	return &f
}

func (f Fork) Active(block uint64) bool {
	return block >= uint64(f)
}

type ForksInTime struct {
	P256Verify bool
}

// AllForksEnabled should contain all supported forks by current edge version
var AllForksEnabled = &Forks{
	P256Verify: NewFork(0),
}

func active(ff *Fork, block uint64) bool {
	if ff == nil {
		return false
	}

	return ff.Active(block)
}
