package bot

import (
	"github.com/DrDelphi/LottoBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) privateCommandReceived(message *tgbotapi.Message) {
	cmd := message.Command()
	args := message.CommandArguments()
	name := utils.FormatTgUser(message.From)

	user := b.getOrCreateUser(message.From)
	log.Info("private command received", "command", cmd, "args", args, "user", name)

	switch cmd {
	case "start":
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		b.mainMenu(user)
	case "stats":
		b.sendStatistics(user)
	case "enter":
		if args == "" {
			b.setAwaitingAmount(user, true)
			b.enterMenu(user)
			return
		}
		go b.enterLotto(user, args)
	}
}
