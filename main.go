package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/DrDelphi/LottoBot/bot"
	"github.com/DrDelphi/LottoBot/config"
	"github.com/DrDelphi/LottoBot/network"
	"github.com/DrDelphi/LottoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/urfave/cli"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logger.GetOrCreate("main")

var (
	configFile = cli.StringFlag{
		Name:  "config",
		Usage: "The application configuration file",
		Value: utils.DefaultConfigPath,
	}
	logLevel = cli.StringFlag{
		Name:  "log-level",
		Usage: "The logger level(s), e.g. *:INFO or network:DEBUG,*:INFO",
		Value: "*:INFO",
	}
	logFile = cli.StringFlag{
		Name:  "log-file",
		Usage: "Also write the logs to this file (rotated)",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "LottoBot"
	app.Usage = "Telegram front-end for a lotto smart contract"
	app.Flags = []cli.Flag{configFile, logLevel, logFile}
	app.Action = startBot

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startBot(ctx *cli.Context) error {
	if err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name)); err != nil {
		return err
	}

	if path := ctx.GlobalString(logFile.Name); path != "" {
		fileLogger := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
		}
		defer fileLogger.Close()
		if err := logger.AddLogObserver(fileLogger, &logger.PlainFormatter{}); err != nil {
			return err
		}
	}

	cfg, err := config.NewConfig(ctx.GlobalString(configFile.Name))
	if err != nil {
		log.Error("can not load configuration", "error", err)
		return err
	}

	networkManager, err := network.NewNetworkManager(cfg)
	if err != nil {
		log.Error("can not create network manager", "error", err)
		return err
	}
	defer networkManager.Close()

	lottoBot, err := bot.NewBot(cfg, networkManager)
	if err != nil {
		return err
	}

	if err = lottoBot.StartTasks(); err != nil {
		return err
	}
	log.Info("bot started", "contract", cfg.ContractAddress, "chainID", cfg.Network.ChainID)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info("shutting down")
	lottoBot.Stop()

	return nil
}
