package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DrDelphi/LottoBot/config"
	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/network"
	"github.com/DrDelphi/LottoBot/session"
	"github.com/DrDelphi/LottoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

var log = logger.GetOrCreate("bot")

// Bot - holds the required fields of the bot application
type Bot struct {
	tgBot          *tgbotapi.BotAPI
	cfg            *data.AppConfig
	networkManager *network.NetworkManager

	mut      sync.Mutex
	users    map[int64]*data.User
	tgUsers  map[int64]*data.Telegram
	sessions map[int64]*session.Session
	stop     chan struct{}
}

// NewBot - creates a new Bot object
func NewBot(cfg *data.AppConfig, networkManager *network.NetworkManager) (*Bot, error) {
	tgBot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Error("can not create telegram bot", "error", err)
		return nil, err
	}

	telegramBot := &Bot{
		tgBot:          tgBot,
		cfg:            cfg,
		networkManager: networkManager,
		users:          make(map[int64]*data.User),
		tgUsers:        make(map[int64]*data.Telegram),
		sessions:       make(map[int64]*session.Session),
		stop:           make(chan struct{}),
	}

	if cfg.Bot.Group != "" {
		helpMessage = strings.ReplaceAll(helpMessage, "LottoGroup", cfg.Bot.Group)
	}

	return telegramBot, nil
}

// StartTasks - starts bot's tasks
func (b *Bot) StartTasks() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.tgBot.GetUpdatesChan(u)
	if err != nil {
		log.Error("can not get Telegram bot updates", "error", err)
		return err
	}

	go func() {
		updates.Clear()
		for update := range updates {
			b.updateReceived(update)
		}
	}()

	if b.cfg.Network.RefreshInterval > 0 {
		go b.refreshTask(time.Duration(b.cfg.Network.RefreshInterval) * time.Second)
	}

	return nil
}

// Stop - stops receiving updates and the background tasks
func (b *Bot) Stop() {
	b.tgBot.StopReceivingUpdates()
	close(b.stop)
}

func (b *Bot) updateReceived(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.Chat.IsPrivate() {
			if update.Message.IsCommand() {
				b.privateCommandReceived(update.Message)
				return
			}
			b.privateMessageReceived(update.Message)
			return
		}

		b.learnGroup(update.Message.Chat)
		if update.Message.IsCommand() {
			b.tgBot.Send(tgbotapi.DeleteMessageConfig{ChatID: update.Message.Chat.ID, MessageID: update.Message.MessageID})
		}
		return
	}

	if update.CallbackQuery != nil {
		b.callbackQueryReceived(update.CallbackQuery)
	}
}

func (b *Bot) learnGroup(chat *tgbotapi.Chat) {
	b.mut.Lock()
	defer b.mut.Unlock()

	if b.cfg.Bot.GroupID != 0 || b.cfg.Bot.Group == "" || chat.UserName != b.cfg.Bot.Group {
		return
	}

	b.cfg.Bot.GroupID = chat.ID
	log.Info("group found", "group", chat.UserName, "id", chat.ID)
	if err := config.Save(b.cfg); err != nil {
		log.Warn("can not save group id", "error", err)
	}
}

// refreshTask keeps the snapshots of connected sessions up to date
func (b *Bot) refreshTask(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
		}

		for _, sess := range b.connectedSessions() {
			ctx, cancel := b.requestContext()
			if err := sess.Refresh(ctx); err != nil {
				log.Debug("periodic refresh", "error", err)
			}
			cancel()
		}
	}
}

func (b *Bot) connectedSessions() []*session.Session {
	b.mut.Lock()
	defer b.mut.Unlock()

	sessions := make([]*session.Session, 0, len(b.sessions))
	for _, sess := range b.sessions {
		if sess.State() == session.Connected {
			sessions = append(sessions, sess)
		}
	}

	return sessions
}

func (b *Bot) requestContext() (context.Context, context.CancelFunc) {
	if b.cfg.Network.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), time.Duration(b.cfg.Network.RequestTimeout)*time.Second)
	}

	return context.WithCancel(context.Background())
}

func (b *Bot) getSession(userID int64) *session.Session {
	b.mut.Lock()
	defer b.mut.Unlock()

	sess, ok := b.sessions[userID]
	if !ok {
		sess = session.NewSession(b.networkManager.SessionConfig(), b.networkManager.Provider(userID))
		b.sessions[userID] = sess
	}

	return sess
}

func (b *Bot) reportError(text string) {
	if b.cfg.Bot.Owner == 0 {
		return
	}

	msg := tgbotapi.NewMessage(b.cfg.Bot.Owner, "⛔️ "+text)
	b.tgBot.Send(msg)
}

func (b *Bot) sendToGroup(text string) (tgbotapi.Message, error) {
	b.mut.Lock()
	groupID := b.cfg.Bot.GroupID
	b.mut.Unlock()
	if groupID == 0 {
		return tgbotapi.Message{}, nil
	}

	msg := tgbotapi.NewMessage(groupID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message to group", "message", text, "error", err)
	}

	return res, err
}

func (b *Bot) sendMessage(userID int64, text string) (tgbotapi.Message, error) {
	b.mut.Lock()
	tgUser, ok := b.tgUsers[userID]
	b.mut.Unlock()

	name := fmt.Sprintf("%v", userID)
	if ok && tgUser != nil {
		name = fmt.Sprintf("@%s (%s %s)", tgUser.UserName, tgUser.FirstName, tgUser.LastName)
	}
	log.Info("sent message", "user", name, "message", text)

	msg := tgbotapi.NewMessage(userID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	res, err := b.tgBot.Send(msg)
	if err != nil {
		log.Warn("error sending message", "user", name, "message", text, "error", err.Error())
	}

	return res, err
}

func (b *Bot) connectWallet(user *data.User) {
	sess := b.getSession(user.ID)
	ctx, cancel := b.requestContext()
	defer cancel()

	b.sendMessage(user.ID, "⌛️ Connecting your wallet...")
	wallet, err := sess.Connect(ctx)
	if err != nil {
		b.sendMessage(user.ID, actionErrorText("Connection", err))
		if session.IsEnvironment(err) {
			b.reportError(fmt.Sprintf("wallet connection of user %v failed: %s", user.ID, err))
		}
		b.mainMenu(user)
		return
	}

	b.sendMessage(user.ID, walletInfo(wallet, b.cfg.Network.ExplorerAccount))
	b.sendLottoInfo(user, false)
	b.mainMenu(user)
}

func (b *Bot) sendWalletInfo(user *data.User) {
	wallet, ok := b.getSession(user.ID).Wallet()
	if !ok {
		if hint := b.walletHint(user); hint != "" {
			b.sendMessage(user.ID, hint)
			return
		}
		b.sendMessage(user.ID, actionErrorText("Wallet", session.ErrNotConnected))
		return
	}

	b.sendMessage(user.ID, walletInfo(wallet, b.cfg.Network.ExplorerAccount))
}

func (b *Bot) sendLottoInfo(user *data.User, refresh bool) {
	sess := b.getSession(user.ID)
	if refresh {
		ctx, cancel := b.requestContext()
		err := sess.Refresh(ctx)
		cancel()
		if err != nil {
			log.Debug("lotto info refresh", "user", user.ID, "error", err)
		}
	}

	snapshot, ok := sess.Snapshot()
	if !ok {
		b.sendMessage(user.ID, actionErrorText("Lotto info", session.ErrNotConnected))
		return
	}

	msg := tgbotapi.NewMessage(user.ID, lottoInfo(snapshot))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", callbackRefresh),
	))
	b.tgBot.Send(msg)
}

func (b *Bot) enterLotto(user *data.User, amount string) {
	sess := b.getSession(user.ID)
	if _, ok := sess.Wallet(); !ok {
		b.sendMessage(user.ID, actionErrorText("Entry", session.ErrNotConnected))
		return
	}

	ctx, cancel := b.requestContext()
	defer cancel()

	format := fmt.Sprintf("`Enter lotto with %s %s` - Status: ", strings.TrimSpace(amount), nativeTokenLabel)
	b.sendMessage(user.ID, format+"pending ⌛️")
	receipt, err := sess.Enter(ctx, amount)
	if err != nil {
		b.sendMessage(user.ID, actionErrorText("Entry", err))
		return
	}

	b.sendMessage(user.ID, txStatus(format+"success ✅ ", receipt.TxHash.Hex(), b.cfg.Network.ExplorerTransaction))
	b.sendMessage(user.ID, "🍀 Successfully entered the lotto!")
	b.sendLottoInfo(user, false)
}

func (b *Bot) pickWinner(user *data.User) {
	sess := b.getSession(user.ID)
	ctx, cancel := b.requestContext()
	defer cancel()

	format := "`Pick winner` - Status: "
	b.sendMessage(user.ID, format+"pending ⌛️")
	receipt, err := sess.PickWinner(ctx)
	if err != nil {
		b.sendMessage(user.ID, actionErrorText("Pick winner", err))
		return
	}

	b.sendMessage(user.ID, txStatus(format+"success ✅ ", receipt.TxHash.Hex(), b.cfg.Network.ExplorerTransaction))
	b.sendMessage(user.ID, "🎉 Winner picked successfully!")
	b.sendLottoInfo(user, false)

	snapshot, ok := sess.Snapshot()
	if !ok {
		return
	}
	if text, ok := winnerAnnouncement(snapshot); ok {
		b.sendToGroup(text)
	} else {
		log.Warn("winner not announced", "round", snapshot.CurrentRoundID, "partial", snapshot.Partial, "failedRead", snapshot.FailedRead)
	}
}

func (b *Bot) disconnectWallet(user *data.User) {
	b.getSession(user.ID).Disconnect()
	b.sendMessage(user.ID, "⏏️ Wallet disconnected")
	b.mainMenu(user)
}

func (b *Bot) sendStatistics(user *data.User) {
	if user.ID != b.cfg.Bot.Owner {
		return
	}

	b.sendMessage(user.ID, formatStats(session.Stats()))
}

func (b *Bot) getOrCreateUser(tgUser *tgbotapi.User) *data.User {
	id := int64(tgUser.ID)

	b.mut.Lock()
	defer b.mut.Unlock()

	user, ok := b.users[id]
	if !ok {
		wallet, err := b.networkManager.WalletAddress(id)
		if err != nil {
			log.Debug("no wallet for user", "user", id, "error", err)
		}
		user = &data.User{
			ID:     id,
			Wallet: wallet,
		}
		b.users[id] = user
	}

	tg, ok := b.tgUsers[id]
	if !ok || tg.UserName != tgUser.UserName || tg.FirstName != tgUser.FirstName || tg.LastName != tgUser.LastName {
		b.tgUsers[id] = &data.Telegram{
			ID:        id,
			UserName:  tgUser.UserName,
			FirstName: tgUser.FirstName,
			LastName:  tgUser.LastName,
		}
	}

	return user
}

// takeAwaitingAmount - returns true once if the user was asked for an entry amount
func (b *Bot) takeAwaitingAmount(user *data.User) bool {
	b.mut.Lock()
	defer b.mut.Unlock()

	awaiting := user.AwaitingAmount
	user.AwaitingAmount = false

	return awaiting
}

func (b *Bot) setAwaitingAmount(user *data.User, awaiting bool) {
	b.mut.Lock()
	defer b.mut.Unlock()

	user.AwaitingAmount = awaiting
}

// walletHint - the derived wallet of a user that is not connected yet
func (b *Bot) walletHint(user *data.User) string {
	if user.Wallet == "" {
		return ""
	}

	text := fmt.Sprintf("`Your wallet:` `%s`\n", user.Wallet)
	if b.cfg.Network.ExplorerAccount != "" {
		text = fmt.Sprintf("`Your wallet:` [%s](%s%s)\n", utils.ShortenAddress(user.Wallet), b.cfg.Network.ExplorerAccount, user.Wallet)
	}

	return text + "Fund it with " + networkName + " " + nativeTokenLabel + " and connect it to play."
}
