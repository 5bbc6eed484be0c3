package utils

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"github.com/ethereum/go-ethereum/crypto"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tyler-smith/go-bip39"
)

const hardened = hdkeychain.HardenedKeyStart

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidSeed     = errors.New("invalid seed phrase")
	amountPattern      = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)
	nonHardenedIdxMask = int64(hardened - 1)
)

type bip44Path []uint32

// m/44'/60'/account'/0/index where account and index are split out of the
// user id so that ids above 2^31 still get distinct keys
func walletPath(index int64) bip44Path {
	return bip44Path{
		44 + hardened,
		60 + hardened,
		hardened + uint32(index>>31),
		0,
		uint32(index & nonHardenedIdxMask),
	}
}

// GetPrivateKeyFromSeed - derives the secp256k1 key of the wallet with the given
// index from a bip39 seed phrase
func GetPrivateKeyFromSeed(seedphrase string, index int64) (*ecdsa.PrivateKey, error) {
	if index < 0 {
		return nil, errors.Errorf("negative wallet index %d", index)
	}

	seed, err := bip39.NewSeedWithErrorChecking(strings.TrimSpace(seedphrase), "")
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSeed, err.Error())
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.Wrap(err, "master key")
	}

	for _, childIdx := range walletPath(index) {
		key, err = key.Derive(childIdx)
		if err != nil {
			return nil, errors.Wrapf(err, "derive child %d", childIdx)
		}
	}

	ecKey, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}

	return crypto.ToECDSA(ecKey.Serialize())
}

// GetAddressFromPrivateKey - returns the checksummed address of a private key
func GetAddressFromPrivateKey(privateKey *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
}

// MoveDecimalLeft - converts an amount expressed in the smallest unit into
// its display decimal representation
func MoveDecimalLeft(value *big.Int, decimals int32) string {
	if value == nil {
		return "0"
	}

	return decimal.NewFromBigInt(value, -decimals).String()
}

// ParseAmount - converts a user entered decimal amount into the smallest unit.
// Only plain positive decimals with at most `decimals` fractional digits are accepted.
func ParseAmount(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is not a decimal number", amount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidAmount, err.Error())
	}

	if d.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%s must be greater than zero", amount)
	}

	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, errors.Wrapf(ErrInvalidAmount, "%s has more than %d decimals", amount, decimals)
	}

	return shifted.BigInt(), nil
}

// NicePrice - formats a display decimal with thousands separators, keeping at
// most `decimals` fractional digits. -1 keeps all of them.
func NicePrice(amount string, decimals int) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	if decimals >= 0 {
		d = d.Truncate(int32(decimals))
	}

	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart := s, ""
	if idx := strings.Index(s, "."); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx:]
	}

	for idx := len(intPart) - 3; idx > 0; idx -= 3 {
		intPart = intPart[:idx] + "," + intPart[idx:]
	}

	return sign + intPart + fracPart
}

func ShortenAddress(address string) string {
	l := len(address)
	if l < 14 {
		return ""
	}

	return address[:6] + "..." + address[l-4:]
}

func FormatTgUser(user *tgbotapi.User) string {
	name := fmt.Sprintf("%s %s [%v]", user.FirstName, user.LastName, user.ID)
	name = strings.TrimSpace(name)
	name = strings.Replace(name, "  ", " ", 1)
	if user.UserName != "" {
		name = fmt.Sprintf("@%s (%s)", user.UserName, name)
	}

	return name
}
