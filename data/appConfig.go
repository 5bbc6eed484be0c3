package data

// AppConfig holds the application configuration read from config.json
type AppConfig struct {
	Bot struct {
		Token   string `json:"token" validate:"required"`
		Owner   int64  `json:"owner"`
		Group   string `json:"group"`
		GroupID int64  `json:"groupID"`
	} `json:"bot"`
	Seedphrase      string `json:"seed"`
	ContractAddress string `json:"contractAddress" validate:"required,eth_addr"`
	Network         struct {
		RPC                 string `json:"rpc" validate:"omitempty,url"`
		ChainID             int64  `json:"chainID" validate:"gt=0"`
		Decimals            int32  `json:"decimals" validate:"gt=0,lte=36"`
		FirstRoundID        uint64 `json:"firstRoundID" validate:"gt=0"`
		RefreshInterval     int    `json:"refreshInterval" validate:"gte=-1"`
		RequestTimeout      int    `json:"requestTimeout" validate:"gte=0"`
		ExplorerTransaction string `json:"explorerTransaction"`
		ExplorerAccount     string `json:"explorerAccount"`
	} `json:"network"`
}
