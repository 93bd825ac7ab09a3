package wiretype

import (
	"encoding/binary"
	"math/big"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// The numeric wire format is a sequence of int16 digits in base 10,000,
// preceded by a digit count, a weight (the base-10,000 exponent of the first
// digit), a sign word, and a display scale. See PostgreSQL's numeric.c
// (numeric_send).

const nbase = 10000

const (
	numericPositiveSign = 0x0000
	numericNegativeSign = 0x4000
	numericNaNSign      = 0xC000
	numericPosInfSign   = 0xD000
	numericNegInfSign   = 0xF000
)

var (
	big0     = big.NewInt(0)
	big1     = big.NewInt(1)
	big10    = big.NewInt(10)
	big100   = big.NewInt(100)
	big1000  = big.NewInt(1000)
	bigNBase = big.NewInt(nbase)
)

// NumericCodec transcodes decimal.Decimal as an arbitrary-precision numeric.
// NaN and infinity are representable on the wire but not by decimal.Decimal,
// so they fail to decode rather than collapse to a default.
type NumericCodec struct{}

func (NumericCodec) OID() uint32 { return NumericOID }

func (NumericCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(decimal.Decimal)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as numeric", value)
	}

	coeff := v.Coefficient()
	srcExp := v.Exponent()

	var sign int16
	if coeff.Sign() < 0 {
		sign = numericNegativeSign
	}

	absInt := &big.Int{}
	wholePart := &big.Int{}
	fracPart := &big.Int{}
	remainder := &big.Int{}
	absInt.Abs(coeff)

	// Normalize absInt and exp to where exp is always a multiple of 4. This
	// makes converting to 16-bit base 10,000 digits easier.
	var exp int32
	switch srcExp % 4 {
	case 1, -3:
		exp = srcExp - 1
		absInt.Mul(absInt, big10)
	case 2, -2:
		exp = srcExp - 2
		absInt.Mul(absInt, big100)
	case 3, -1:
		exp = srcExp - 3
		absInt.Mul(absInt, big1000)
	default:
		exp = srcExp
	}

	if exp < 0 {
		divisor := &big.Int{}
		divisor.Exp(big10, big.NewInt(int64(-exp)), nil)
		wholePart.DivMod(absInt, divisor, fracPart)
		fracPart.Add(fracPart, divisor)
	} else {
		wholePart = absInt
	}

	var wholeDigits, fracDigits []int16

	for wholePart.Cmp(big0) != 0 {
		wholePart.DivMod(wholePart, bigNBase, remainder)
		wholeDigits = append(wholeDigits, int16(remainder.Int64()))
	}

	if fracPart.Cmp(big0) != 0 {
		for fracPart.Cmp(big1) != 0 {
			fracPart.DivMod(fracPart, bigNBase, remainder)
			fracDigits = append(fracDigits, int16(remainder.Int64()))
		}
	}

	buf = pgio.AppendInt16(buf, int16(len(wholeDigits)+len(fracDigits)))

	var weight int16
	if len(wholeDigits) > 0 {
		weight = int16(len(wholeDigits) - 1)
		if exp > 0 {
			weight += int16(exp / 4)
		}
	} else {
		weight = int16(exp/4) - 1 + int16(len(fracDigits))
	}
	buf = pgio.AppendInt16(buf, weight)

	buf = pgio.AppendInt16(buf, sign)

	var dscale int16
	if srcExp < 0 {
		dscale = int16(-srcExp)
	}
	buf = pgio.AppendInt16(buf, dscale)

	for i := len(wholeDigits) - 1; i >= 0; i-- {
		buf = pgio.AppendInt16(buf, wholeDigits[i])
	}

	for i := len(fracDigits) - 1; i >= 0; i-- {
		buf = pgio.AppendInt16(buf, fracDigits[i])
	}

	return buf, nil
}

func (NumericCodec) Decode(src []byte) (any, error) {
	if len(src) < 8 {
		return nil, &MalformedScalarError{TypeName: "numeric", Expected: -1, Got: len(src)}
	}

	rp := 0
	ndigits := binary.BigEndian.Uint16(src[rp:])
	rp += 2
	weight := int16(binary.BigEndian.Uint16(src[rp:]))
	rp += 2
	sign := binary.BigEndian.Uint16(src[rp:])
	rp += 2
	dscale := int16(binary.BigEndian.Uint16(src[rp:]))
	rp += 2

	switch sign {
	case numericNaNSign:
		return nil, errors.New("cannot decode numeric NaN into decimal")
	case numericPosInfSign, numericNegInfSign:
		return nil, errors.New("cannot decode numeric infinity into decimal")
	}

	if ndigits == 0 {
		return decimal.Zero, nil
	}

	if len(src[rp:]) != int(ndigits)*2 {
		return nil, &MalformedScalarError{TypeName: "numeric", Expected: -1, Got: len(src)}
	}

	accum := &big.Int{}
	digit := &big.Int{}
	for i := 0; i < int(ndigits); i++ {
		accum.Mul(accum, bigNBase)
		digit.SetInt64(int64(binary.BigEndian.Uint16(src[rp:])))
		rp += 2
		accum.Add(accum, digit)
	}

	exp := (int32(weight) - int32(ndigits) + 1) * 4

	// Scale the accumulated digits so the exponent agrees with the display
	// scale, then drop trailing zeros from whole numbers.
	if dscale > 0 {
		fracNBaseDigits := int16(int32(ndigits) - int32(weight) - 1)
		fracDecimalDigits := fracNBaseDigits * 4

		if dscale > fracDecimalDigits {
			multCount := int(dscale - fracDecimalDigits)
			for i := 0; i < multCount; i++ {
				accum.Mul(accum, big10)
				exp--
			}
		} else if dscale < fracDecimalDigits {
			divCount := int(fracDecimalDigits - dscale)
			for i := 0; i < divCount; i++ {
				accum.Div(accum, big10)
				exp++
			}
		}
	}

	reduced := &big.Int{}
	remainder := &big.Int{}
	if exp >= 0 {
		for accum.Cmp(big0) != 0 {
			reduced.DivMod(accum, big10, remainder)
			if remainder.Cmp(big0) != 0 {
				break
			}
			accum.Set(reduced)
			exp++
		}
	}

	if sign == numericNegativeSign {
		accum.Neg(accum)
	}

	return decimal.NewFromBigInt(accum, exp), nil
}
