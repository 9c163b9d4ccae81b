package types

import (
	fmt "fmt"

	collcodec "cosmossdk.io/collections/codec"

	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc is the amino codec for the module's genesis document and stored
// ledger values. Amino defers to the json.Marshaler implementations on
// math.Int and math.LegacyDec and encodes time.Time as RFC 3339.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	ModuleCdc.Seal()
}

// AminoValue returns a collections value codec that stores T as amino JSON.
func AminoValue[T any](name string) collcodec.ValueCodec[T] {
	return aminoValueCodec[T]{name: name}
}

type aminoValueCodec[T any] struct {
	name string
}

func (c aminoValueCodec[T]) Encode(value T) ([]byte, error) {
	bz, err := ModuleCdc.MarshalJSON(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	return bz, nil
}

func (c aminoValueCodec[T]) Decode(b []byte) (T, error) {
	var v T
	if err := ModuleCdc.UnmarshalJSON(b, &v); err != nil {
		return v, fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	return v, nil
}

func (c aminoValueCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c aminoValueCodec[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c aminoValueCodec[T]) Stringify(value T) string {
	bz, err := ModuleCdc.MarshalJSON(value)
	if err != nil {
		return fmt.Sprintf("%s(%v)", c.name, err)
	}
	return string(bz)
}

func (c aminoValueCodec[T]) ValueType() string {
	return "amino-json/" + ModuleName + "." + c.name
}
