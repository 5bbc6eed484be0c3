package config

import (
	"encoding/json"
	"os"

	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	envBotToken = "LOTTO_BOT_TOKEN"
	envSeed     = "LOTTO_SEED"
	envRPC      = "LOTTO_RPC"
)

var (
	cfgPath string
	// values found in the file for the fields the environment may override,
	// so that Save never writes secrets taken from the environment
	fileValues struct {
		token string
		seed  string
		rpc   string
	}
)

// NewConfig - reads the application configuration from the provided path
// and returns an AppConfig struct or an error if something goes wrong.
// Secrets found in the environment (or in a .env file) take precedence.
func NewConfig(configPath string) (*data.AppConfig, error) {
	bytes, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &data.AppConfig{}
	err = json.Unmarshal(bytes, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", configPath)
	}

	if err = LoadEnv(utils.DefaultEnvPath); err != nil {
		return nil, err
	}
	fileValues.token, fileValues.seed, fileValues.rpc = cfg.Bot.Token, cfg.Seedphrase, cfg.Network.RPC
	applyEnv(cfg)
	applyDefaults(cfg)

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	cfgPath = configPath

	return cfg, nil
}

// LoadEnv - loads variables from an env file, a missing file is not an error
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "load %s", path)
	}

	return nil
}

func applyEnv(cfg *data.AppConfig) {
	if token := os.Getenv(envBotToken); token != "" {
		cfg.Bot.Token = token
	}
	if seed := os.Getenv(envSeed); seed != "" {
		cfg.Seedphrase = seed
	}
	if rpc := os.Getenv(envRPC); rpc != "" {
		cfg.Network.RPC = rpc
	}
}

func applyDefaults(cfg *data.AppConfig) {
	if cfg.Network.ChainID == 0 {
		cfg.Network.ChainID = utils.ScrollSepoliaChainID
	}
	if cfg.Network.Decimals == 0 {
		cfg.Network.Decimals = utils.EtherDecimals
	}
	if cfg.Network.FirstRoundID == 0 {
		cfg.Network.FirstRoundID = utils.DefaultFirstRoundID
	}
	if cfg.Network.RefreshInterval == 0 {
		cfg.Network.RefreshInterval = utils.DefaultRefreshInterval
	}
}

// Validate - checks the configuration values
func Validate(cfg *data.AppConfig) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	return nil
}

func Save(cfg *data.AppConfig) error {
	if cfgPath == "" {
		return errors.New("configuration was not loaded from a file")
	}

	out := *cfg
	out.Bot.Token = fileValues.token
	out.Seedphrase = fileValues.seed
	out.Network.RPC = fileValues.rpc

	bytes, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cfgPath, bytes, 0644)
}
