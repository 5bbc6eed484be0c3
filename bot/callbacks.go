package bot

import (
	"github.com/DrDelphi/LottoBot/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

func (b *Bot) callbackQueryReceived(callback *tgbotapi.CallbackQuery) {
	cb := callback.Data
	b.tgBot.AnswerCallbackQuery(tgbotapi.NewCallback(callback.ID, ""))
	user := b.getOrCreateUser(callback.From)
	name := utils.FormatTgUser(callback.From)
	log.Info("callback received", "callback", cb, "user", name)

	if cb == callbackRefresh {
		go b.sendLottoInfo(user, true)
		return
	}

	if amount, ok := parseEnterCallback(cb); ok {
		b.setAwaitingAmount(user, false)
		go b.enterLotto(user, amount)
		return
	}
}
