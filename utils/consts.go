package utils

const (
	DefaultConfigPath = "config.json"
	DefaultEnvPath    = ".env"

	ScrollSepoliaChainID = 534351
	EtherDecimals        = 18

	DefaultFirstRoundID    = 1
	DefaultRefreshInterval = 30
	DefaultEntryAmount     = "0.01"
)

var (
	EntryPresets = []string{"0.001", "0.01", "0.1"}
)
