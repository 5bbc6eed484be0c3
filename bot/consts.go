package bot

const (
	menuConnect      = "🔌 Connect Wallet"
	menuLottoInfo    = "ℹ️ Lotto Info"
	menuWallet       = "💰 Wallet"
	menuEnter        = "🎟 Enter Lotto"
	menuPickWinner   = "🎲 Pick Winner"
	menuDisconnect   = "⏏️ Disconnect"
	menuMainHelp     = "📖 Help"
	menuAbout        = "©️ About"
	callbackEnter    = "ENTER:"
	callbackRefresh  = "REFRESH"
	networkName      = "Scroll Sepolia"
	nativeTokenLabel = "ETH"

	aboutMessage = "*Made with ❤️ by* [@DrDelphi](https://t.me/DrDelphi)"
)

var (
	helpMessage = "`DISCLAIMER !`\n" +
		"\n" +
		"🔴 All prizes are considered friend gifts.\n" +
		"🟠 This bot is in no way sponsored, endorsed, administered by, or associated with Scroll.\n" +
		"🟣 Must be 18 years old or older to play!\n" +
		"\n" +
		"`Instructions`\n" +
		"\n" +
		"This is a Lotto Telegram Bot that interacts with a smart contract on the " + networkName + " network.\n\n" +
		"The bot generates a wallet for you. Fund it, connect it and enter the lotto with any amount you like.\n\n" +
		"When the owner picks a winner the whole prize pool goes to one of the players.\n\n" +
		"You can watch the game's progress on @LottoGroup\n\n" +
		"\n" +
		"🍀 Good luck!"
)
