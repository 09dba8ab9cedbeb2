package server

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/edge-modules/types"
)

// eventLog keeps the module events and echoes them to the log
type eventLog struct {
	logger hclog.Logger

	lock sync.Mutex
	logs []*types.Log
}

func newEventLog(logger hclog.Logger) *eventLog {
	return &eventLog{
		logger: logger.Named("events"),
	}
}

func (e *eventLog) EmitLog(log *types.Log) {
	e.lock.Lock()
	e.logs = append(e.logs, log)
	e.lock.Unlock()

	if len(log.Topics) > 0 {
		e.logger.Debug("event", "address", log.Address, "id", log.Topics[0], "topics", len(log.Topics)-1)
	}
}

func (e *eventLog) Logs() []*types.Log {
	e.lock.Lock()
	defer e.lock.Unlock()

	return append([]*types.Log{}, e.logs...)
}
