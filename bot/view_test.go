package bot

import (
	"testing"

	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const testAddress = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"

func TestLottoInfo(t *testing.T) {
	snapshot := &data.LottoSnapshot{
		Balance:        "0.03",
		Players:        []string{testAddress, testAddress},
		CurrentRoundID: 1,
	}

	text := lottoInfo(snapshot)
	assert.Contains(t, text, "Lotto #1")
	assert.Contains(t, text, "0.03 ETH")
	assert.Contains(t, text, "`Players:` 2")
	assert.NotContains(t, text, "Last Winner")
	assert.NotContains(t, text, "outdated")

	snapshot.CurrentRoundID = 3
	snapshot.LastWinner = testAddress
	snapshot.Partial = true
	snapshot.FailedRead = "getPlayers"
	text = lottoInfo(snapshot)
	assert.Contains(t, text, "Lotto #3")
	assert.Contains(t, text, "`Last Winner:` `"+testAddress+"`")
	assert.Contains(t, text, "`getPlayers` could not be read")

	assert.Equal(t, "❕ No lotto data yet", lottoInfo(nil))
}

func TestWalletInfo(t *testing.T) {
	wallet := data.WalletSession{Address: testAddress, Balance: "1234.5", ChainID: 534351}

	text := walletInfo(wallet, "")
	assert.Contains(t, text, "`"+testAddress+"`")
	assert.Contains(t, text, "1,234.5 ETH")
	assert.Contains(t, text, "ChainID: 534351")

	text = walletInfo(wallet, "https://sepolia.scrollscan.com/address/")
	assert.Contains(t, text, "[0x9858...da94](https://sepolia.scrollscan.com/address/"+testAddress+")")
}

func TestTxStatus(t *testing.T) {
	hash := "0x1111111111111111111111111111111111111111111111111111111111112222"

	assert.Equal(t, "status `"+hash+"`", txStatus("status ", hash, ""))
	assert.Equal(t, "status [0x1111...2222](https://x/tx/"+hash+")", txStatus("status ", hash, "https://x/tx/"))
}

func TestActionErrorText(t *testing.T) {
	cases := map[error]string{
		session.ErrNoWallet:                             "No wallet is available",
		errors.Wrap(session.ErrWrongNetwork, "chain 1"): "Please switch to Scroll Sepolia",
		session.ErrNotConnected:                         "connect your wallet first",
		session.ErrInFlight:                             "still pending",
		session.ErrInvalidAmount:                        "positive ETH amount",
		session.ErrNotOwner:                             "Only the lotto owner",
	}
	for err, expected := range cases {
		assert.Contains(t, actionErrorText("Entry", err), expected, err.Error())
	}

	assert.Equal(t, "❌ Entry failed: insufficient funds for gas * price + value",
		actionErrorText("Entry", errors.New("insufficient funds for gas * price + value")))
}

func TestParseEnterCallback(t *testing.T) {
	amount, ok := parseEnterCallback("ENTER:0.01")
	assert.True(t, ok)
	assert.Equal(t, "0.01", amount)

	_, ok = parseEnterCallback("ENTER:")
	assert.False(t, ok)

	_, ok = parseEnterCallback(callbackRefresh)
	assert.False(t, ok)
}

func TestFormatStats(t *testing.T) {
	text := formatStats(map[string]int64{
		"lotto/enter/success":   2,
		"lotto/connect/success": 5,
	})

	assert.Equal(t, "`Statistics`\n\n`lotto/connect/success:` 5\n`lotto/enter/success:` 2\n", text)
}

func TestWinnerAnnouncement(t *testing.T) {
	snapshot := &data.LottoSnapshot{CurrentRoundID: 4, LastWinner: testAddress}

	text, ok := winnerAnnouncement(snapshot)
	assert.True(t, ok)
	assert.Equal(t, "🎉 `Lotto #3` was won by `"+testAddress+"`\n`Lotto #4` is open, good luck!", text)

	snapshot.Partial = true
	snapshot.FailedRead = "getWinnerByLotto"
	_, ok = winnerAnnouncement(snapshot)
	assert.False(t, ok)

	_, ok = winnerAnnouncement(&data.LottoSnapshot{CurrentRoundID: 2})
	assert.False(t, ok)

	_, ok = winnerAnnouncement(nil)
	assert.False(t, ok)
}
