package addresslist

import (
	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/types"
)

// ApplyAllocs seeds the roles of a list from the chain config.
// Configured admins turn the list on.
func ApplyAllocs(state stateRef, addressListAddr types.Address, config *chain.AddressListConfig) {
	if config == nil {
		return
	}

	allocList := NewAddressList(state, addressListAddr)

	// enabled addr
	for _, addr := range config.EnabledAddresses {
		allocList.SetRole(addr, EnabledRole)
	}

	// admin addr
	for _, addr := range config.AdminAddresses {
		allocList.SetRole(addr, AdminRole)
	}

	if len(config.AdminAddresses) > 0 {
		allocList.SetEnabled(true)
	}
}
