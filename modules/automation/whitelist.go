package automation

import (
	"github.com/armon/go-metrics"

	"github.com/0xPolygon/edge-modules/state/runtime/addresslist"
	"github.com/0xPolygon/edge-modules/types"
)

// WhitelistDex makes dex eligible for plan executions.
// When the list has admins, only they can change it.
func (e *Executor) WhitelistDex(caller, dex types.Address) error {
	if err := e.whitelist.UpdateRole(caller, dex, addresslist.EnabledRole); err != nil {
		return err
	}

	e.emitWhitelist(DexWhitelistedEvent, dex)
	e.logger.Info("dex whitelisted", "dex", dex, "caller", caller)
	metrics.IncrCounter([]string{automationMetrics, "whitelist", "add"}, 1)

	return nil
}

// UnwhitelistDex removes dex from the whitelist
func (e *Executor) UnwhitelistDex(caller, dex types.Address) error {
	if err := e.whitelist.UpdateRole(caller, dex, addresslist.NoRole); err != nil {
		return err
	}

	e.emitWhitelist(DexUnwhitelistedEvent, dex)
	e.logger.Info("dex unwhitelisted", "dex", dex, "caller", caller)
	metrics.IncrCounter([]string{automationMetrics, "whitelist", "remove"}, 1)

	return nil
}

// IsWhitelisted reports whether dex can receive plan executions.
// Admins of the list are not swap endpoints.
func (e *Executor) IsWhitelisted(dex types.Address) bool {
	return e.whitelist.GetRole(dex) == addresslist.EnabledRole
}

// Role returns the whitelist role of addr
func (e *Executor) Role(addr types.Address) addresslist.Role {
	return e.whitelist.GetRole(addr)
}

// AdminGated reports whether whitelist changes require an admin
func (e *Executor) AdminGated() bool {
	return e.whitelist.IsEnabled()
}
