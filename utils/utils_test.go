package utils

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGetPrivateKeyFromSeed(t *testing.T) {
	pk, err := GetPrivateKeyFromSeed(testMnemonic, 0)
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", GetAddressFromPrivateKey(pk))

	other, err := GetPrivateKeyFromSeed(testMnemonic, 1)
	require.NoError(t, err)
	assert.NotEqual(t, GetAddressFromPrivateKey(pk), GetAddressFromPrivateKey(other))

	again, err := GetPrivateKeyFromSeed(" "+testMnemonic+" ", 0)
	require.NoError(t, err)
	assert.Equal(t, pk.D, again.D)
}

func TestGetPrivateKeyFromSeedLargeIndex(t *testing.T) {
	low, err := GetPrivateKeyFromSeed(testMnemonic, 5)
	require.NoError(t, err)
	high, err := GetPrivateKeyFromSeed(testMnemonic, 5+(1<<31))
	require.NoError(t, err)

	assert.NotEqual(t, GetAddressFromPrivateKey(low), GetAddressFromPrivateKey(high))
}

func TestGetPrivateKeyFromSeedInvalid(t *testing.T) {
	_, err := GetPrivateKeyFromSeed("not a valid mnemonic", 0)
	assert.True(t, errors.Is(err, ErrInvalidSeed))

	_, err = GetPrivateKeyFromSeed(testMnemonic, -1)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.01", "10000000000000000"},
		{"1", "1000000000000000000"},
		{"1.", "1000000000000000000"},
		{".5", "500000000000000000"},
		{" 2.25 ", "2250000000000000000"},
		{"0.000000000000000001", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in, EtherDecimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "0", "0.000", "-1", "abc", "1e3", "1,5", "0.0000000000000000001", "1..2", "."} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAmount(in, EtherDecimals)
			assert.True(t, errors.Is(err, ErrInvalidAmount), "amount %q", in)
		})
	}
}

func TestMoveDecimalLeft(t *testing.T) {
	assert.Equal(t, "0.01", MoveDecimalLeft(big.NewInt(10000000000000000), EtherDecimals))
	assert.Equal(t, "0", MoveDecimalLeft(big.NewInt(0), EtherDecimals))
	assert.Equal(t, "0", MoveDecimalLeft(nil, EtherDecimals))
	assert.Equal(t, "1.5", MoveDecimalLeft(big.NewInt(15), 1))
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, wei := range []string{"1", "10000000000000000", "123456789012345678901", "1000000000000000000"} {
		value, ok := new(big.Int).SetString(wei, 10)
		require.True(t, ok)

		back, err := ParseAmount(MoveDecimalLeft(value, EtherDecimals), EtherDecimals)
		require.NoError(t, err)
		assert.Equal(t, 0, value.Cmp(back), "wei %s", wei)
	}
}

func TestNicePrice(t *testing.T) {
	assert.Equal(t, "1,234,567.891", NicePrice("1234567.891", -1))
	assert.Equal(t, "1,234,567.89", NicePrice("1234567.891", 2))
	assert.Equal(t, "999", NicePrice("999", 4))
	assert.Equal(t, "0.0001", NicePrice("0.000123", 4))
	assert.Equal(t, "garbage", NicePrice("garbage", 2))
}

func TestShortenAddress(t *testing.T) {
	assert.Equal(t, "0x9858...da94", ShortenAddress("0x9858EfFD232B4033E47d90003D41EC34EcaEda94"))
	assert.Equal(t, "", ShortenAddress("0x12"))
}
