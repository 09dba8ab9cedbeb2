package types

import "github.com/umbracle/ethgo"

// Log is an event emitted by a module. Topics[0] is the event id,
// the remaining topics carry the indexed arguments and Data the
// ABI encoding of the non indexed ones.
type Log struct {
	Address Address
	Topics  []Hash
	Data    []byte
}

// ToEthgo converts the log into its ethgo representation so it can be
// parsed with an abi.Event
func (l *Log) ToEthgo() *ethgo.Log {
	topics := make([]ethgo.Hash, len(l.Topics))
	for i, t := range l.Topics {
		topics[i] = ethgo.Hash(t)
	}

	return &ethgo.Log{
		Address: ethgo.Address(l.Address),
		Topics:  topics,
		Data:    l.Data,
	}
}

// LogCollector is an in-memory event sink
type LogCollector struct {
	Logs []*Log
}

// EmitLog appends the log to the collector
func (c *LogCollector) EmitLog(log *Log) {
	c.Logs = append(c.Logs, log)
}

// Last returns the most recently emitted log, or nil
func (c *LogCollector) Last() *Log {
	if len(c.Logs) == 0 {
		return nil
	}

	return c.Logs[len(c.Logs)-1]
}
