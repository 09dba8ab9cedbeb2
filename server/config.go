package server

import (
	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/chain"
	"github.com/0xPolygon/edge-modules/types"
)

// Config is used to parametrize the module runtime
type Config struct {
	Chain *chain.Chain

	// DataDir is where the persistent storage backends keep their files
	DataDir string

	Storage             StorageType
	CredentialCacheSize int

	Telemetry *Telemetry

	// JSONRPCAddr, when set, runs the module calls against that node instead
	// of the local host
	JSONRPCAddr string

	// Sender is the node account that sends the module transactions.
	// The first account of the node is used when it is the zero address
	Sender types.Address

	LogLevel      hclog.Level
	JSONLogFormat bool
}

// Telemetry holds the config details for metric services
type Telemetry struct {
	// Prometheus exports the module metrics through the prometheus registry
	Prometheus bool
}
