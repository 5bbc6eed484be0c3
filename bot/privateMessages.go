package bot

import (
	"strings"

	"github.com/DrDelphi/LottoBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateMessageReceived(message *tgbotapi.Message) {
	user := b.getOrCreateUser(message.From)
	name := utils.FormatTgUser(message.From)
	log.Info("private message received", "message", message.Text, "user", name)

	switch message.Text {
	case menuAbout:
		msg := tgbotapi.NewMessage(user.ID, aboutMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		return
	case menuMainHelp:
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		_, err := b.tgBot.Send(msg)
		if err != nil {
			log.Error("unable to send message", "message", helpMessage, "error", err)
		}
		return
	case menuConnect:
		go b.connectWallet(user)
		return
	case menuLottoInfo:
		go b.sendLottoInfo(user, true)
		return
	case menuWallet:
		b.sendWalletInfo(user)
		return
	case menuEnter:
		b.setAwaitingAmount(user, true)
		b.enterMenu(user)
		return
	case menuPickWinner:
		go b.pickWinner(user)
		return
	case menuDisconnect:
		b.setAwaitingAmount(user, false)
		b.disconnectWallet(user)
		return
	}

	if b.takeAwaitingAmount(user) {
		amount := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(message.Text), nativeTokenLabel))
		go b.enterLotto(user, amount)
	}
}
