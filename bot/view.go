package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/session"
	"github.com/DrDelphi/LottoBot/utils"
	"github.com/pkg/errors"
)

func walletInfo(wallet data.WalletSession, explorerAccount string) string {
	text := "`Wallet`\n\n"
	if explorerAccount != "" {
		text += fmt.Sprintf("`Connected:` [%s](%s%s)\n", utils.ShortenAddress(wallet.Address), explorerAccount, wallet.Address)
	} else {
		text += fmt.Sprintf("`Connected:` `%s`\n", wallet.Address)
	}
	text += fmt.Sprintf("`Balance:` %s %s\n", utils.NicePrice(wallet.Balance, 6), nativeTokenLabel)
	text += fmt.Sprintf("`Network:` %s (ChainID: %v)\n", networkName, wallet.ChainID)

	return text
}

func lottoInfo(snapshot *data.LottoSnapshot) string {
	if snapshot == nil {
		return "❕ No lotto data yet"
	}

	text := fmt.Sprintf("`Lotto #%v`\n\n", snapshot.CurrentRoundID)
	text += fmt.Sprintf("`Prize Pool:` %s %s\n", utils.NicePrice(snapshot.Balance, -1), nativeTokenLabel)
	text += fmt.Sprintf("`Players:` %v\n", len(snapshot.Players))
	if snapshot.HasWinner() {
		text += fmt.Sprintf("`Last Winner:` `%s`\n", snapshot.LastWinner)
	}
	if snapshot.Partial {
		text += fmt.Sprintf("\n⚠️ Some values may be outdated (`%s` could not be read)\n", snapshot.FailedRead)
	}

	return text
}

// winnerAnnouncement - the group message for the round that was just drawn.
// Partial snapshots may carry the winner of an older round.
func winnerAnnouncement(snapshot *data.LottoSnapshot) (string, bool) {
	if snapshot == nil || snapshot.Partial || !snapshot.HasWinner() {
		return "", false
	}

	return fmt.Sprintf("🎉 `Lotto #%v` was won by `%s`\n`Lotto #%v` is open, good luck!",
		snapshot.CurrentRoundID-1, snapshot.LastWinner, snapshot.CurrentRoundID), true
}

func txStatus(format, hash, explorerTransaction string) string {
	if explorerTransaction == "" {
		return fmt.Sprintf("%s`%s`", format, hash)
	}

	return fmt.Sprintf("%s[%s](%s%s)", format, utils.ShortenAddress(hash), explorerTransaction, hash)
}

// actionErrorText - the message shown to the user when an action fails
func actionErrorText(action string, err error) string {
	switch {
	case errors.Is(err, session.ErrNoWallet):
		return "⛔️ No wallet is available. Please contact an administrator"
	case errors.Is(err, session.ErrWrongNetwork):
		return "⛔️ Please switch to " + networkName
	case errors.Is(err, session.ErrNotConnected):
		return "🔌 Please connect your wallet first"
	case errors.Is(err, session.ErrInFlight):
		return "⌛️ Please wait, your previous request is still pending"
	case errors.Is(err, session.ErrInvalidAmount):
		return "⛔️ Please enter a positive " + nativeTokenLabel + " amount, e.g. " + utils.DefaultEntryAmount
	case errors.Is(err, session.ErrNotOwner):
		return "⛔️ Only the lotto owner can pick a winner"
	}

	return fmt.Sprintf("❌ %s failed: %s", action, err.Error())
}

func formatStats(stats map[string]int64) string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	text := "`Statistics`\n\n"
	for _, name := range names {
		text += fmt.Sprintf("`%s:` %v\n", name, stats[name])
	}

	return text
}

func parseEnterCallback(callbackData string) (string, bool) {
	if !strings.HasPrefix(callbackData, callbackEnter) {
		return "", false
	}

	amount := strings.TrimPrefix(callbackData, callbackEnter)

	return amount, amount != ""
}
