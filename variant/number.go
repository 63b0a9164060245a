// Copyright 2024 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package variant

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// number is the classified form of a JSON number token, per §4.3's
// classification order: integer-in-i64, then fixed-point decimal with
// scale <= 28, then finite double.
type number struct {
	kind primitiveType

	i64 int64

	f64 float64

	unscaled *big.Int
	scale    int32
}

// classifyNumber implements the §4.3 number-classification order. tok is
// the raw JSON number token (the text json.Number preserved, arbitrary
// precision, decimal point and/or exponent as written).
func classifyNumber(tok string) (number, error) {
	if strings.ContainsAny(tok, "eE") {
		// Exponent notation always goes straight to double (spec
		// §8 scenario 4: "15e-1" -> double 1.5), skipping the
		// decimal attempt entirely.
		return classifyDouble(tok)
	}

	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return number{kind: intWidth(i), i64: i}, nil
	}

	if n, ok := classifyDecimal(tok); ok {
		return n, nil
	}

	return classifyDouble(tok)
}

// intWidth picks the smallest of int8/int16/int32/int64 whose
// sign-extended value round-trips back to i, per §4.3 step 1.
func intWidth(i int64) primitiveType {
	switch {
	case int64(int8(i)) == i:
		return primitiveInt8
	case int64(int16(i)) == i:
		return primitiveInt16
	case int64(int32(i)) == i:
		return primitiveInt32
	default:
		return primitiveInt64
	}
}

// classifyDecimal attempts §4.3 step 2: parse tok as a fixed-point decimal
// with an i128-representable unscaled value and scale in [0, 28], then
// pick the narrowest of decimal4/decimal8/decimal16. ok is false if tok
// doesn't fit that shape at all, in which case the caller falls through
// to double.
func classifyDecimal(tok string) (number, bool) {
	d, err := decimal.NewFromString(tok)
	if err != nil {
		return number{}, false
	}

	coeff := d.Coefficient() // signed unscaled value, exact
	exp := d.Exponent()      // value == coeff * 10^exp

	unscaled := new(big.Int).Set(coeff)
	scale := int32(0)
	switch {
	case exp < 0:
		scale = -exp
	case exp > 0:
		// No fractional digits were written but the literal had
		// trailing zeros absorbed into a positive exponent;
		// normalize back to scale 0 so unscaled matches the
		// written digits.
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
		unscaled.Mul(unscaled, pow)
	}

	if scale > maxPrecisionDecimal16 {
		return number{}, false
	}
	if !fitsSignedBits(unscaled, 127) {
		return number{}, false
	}

	n := number{unscaled: unscaled, scale: scale}
	switch {
	case fitsAbs(unscaled, maxUnscaledDecimal4) && scale <= maxPrecisionDecimal4:
		n.kind = primitiveDecimal4
	case fitsAbs(unscaled, maxUnscaledDecimal8) && scale <= maxPrecisionDecimal8:
		n.kind = primitiveDecimal8
	default:
		n.kind = primitiveDecimal16
	}
	return n, true
}

func classifyDouble(tok string) (number, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return number{}, wrapError(NumberUnparseable, "not an integer, decimal, or double: "+tok, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return number{}, newError(NumberUnparseable, "number is not finite: "+tok)
	}
	return number{kind: primitiveDouble, f64: f}, nil
}

// fitsAbs reports whether |v| <= bound.
func fitsAbs(v *big.Int, bound int64) bool {
	abs := new(big.Int).Abs(v)
	return abs.Cmp(big.NewInt(bound)) <= 0
}

// fitsSignedBits reports whether v fits in a two's-complement signed
// integer with the given number of magnitude bits, i.e. |v| <= 2^bits - 1.
func fitsSignedBits(v *big.Int, bits uint) bool {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
	abs := new(big.Int).Abs(v)
	return abs.Cmp(max) <= 0
}

// bigIntToLE renders v (signed) as width little-endian bytes, two's
// complement, matching the "N-byte signed LE unscaled" payloads in §3.
func bigIntToLE(v *big.Int, width int) []byte {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width*8))
	u := new(big.Int).Mod(v, mod) // Go's big.Int.Mod is always >= 0.
	be := u.Bytes()

	out := make([]byte, width)
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}
