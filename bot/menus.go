package bot

import (
	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func mainMenuMarkup(connected, owner bool) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0)
	if !connected {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuConnect),
		))
	} else {
		rows = append(rows,
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(menuLottoInfo),
				tgbotapi.NewKeyboardButton(menuWallet),
			),
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(menuEnter),
			),
		)
		if owner {
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton(menuPickWinner),
			))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuDisconnect),
		))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(menuMainHelp),
		tgbotapi.NewKeyboardButton(menuAbout),
	))

	return tgbotapi.NewReplyKeyboard(rows...)
}

func (b *Bot) mainMenu(user *data.User) {
	sess := b.getSession(user.ID)
	_, connected := sess.Wallet()

	msg := tgbotapi.NewMessage(user.ID, "`🏘 Main menu`")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = mainMenuMarkup(connected, sess.IsOwner())
	b.tgBot.Send(msg)
}

func enterMenuMarkup() tgbotapi.InlineKeyboardMarkup {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(utils.EntryPresets))
	for _, amount := range utils.EntryPresets {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(amount+" "+nativeTokenLabel, callbackEnter+amount))
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons)
}

func (b *Bot) enterMenu(user *data.User) {
	msg := tgbotapi.NewMessage(user.ID, "🎟 Choose an amount or type the "+nativeTokenLabel+" amount you want to enter with")
	msg.ReplyMarkup = enterMenuMarkup()
	b.tgBot.Send(msg)
}
