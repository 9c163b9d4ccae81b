package utils

import (
	"github.com/cometbft/cometbft/crypto/secp256k1"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Address is a freshly generated account address in raw and bech32 form.
type Address struct {
	Bytes  []byte
	Bech32 string
}

// AccAddress returns the address as an sdk.AccAddress.
func (a Address) AccAddress() sdk.AccAddress {
	return sdk.AccAddress(a.Bytes)
}

// TestAddress returns a random secp256k1 address with the cosmos prefix.
func TestAddress() Address {
	key := secp256k1.GenPrivKey()
	bytes := key.PubKey().Address().Bytes()

	return Address{
		Bytes:  bytes,
		Bech32: generateAddress("cosmos", bytes),
	}
}

// TestAddresses returns n distinct test addresses.
func TestAddresses(n int) []Address {
	addrs := make([]Address, n)
	for i := range addrs {
		addrs[i] = TestAddress()
	}
	return addrs
}

func generateAddress(prefix string, bytes []byte) string {
	address, err := sdk.Bech32ifyAddressBytes(prefix, bytes)
	if err != nil {
		panic("error during test address creation")
	}
	return address
}
