package command

const (
	JSONOutputFlag = "json"
	ConfigFlag     = "config"
	DataDirFlag    = "data-dir"
	StorageFlag    = "storage"
	ChainFlag      = "chain"
	LogLevelFlag   = "log-level"
	JSONRPCFlag    = "json-rpc"
	SenderFlag     = "sender"
)
