// Package values provides universal Value implementations (§4.8): wrapper
// types for every primitive plus optionals, sequences, tuples, maps,
// records, enums, and errors, so a caller who merely has an in-memory Go
// value can stream it without writing a bespoke Value implementation. It
// also carries the Number display-validating wrapper and a JSON-Schema
// pre-check helper.
package values

import (
	"math/big"

	vs "github.com/kodraus/valuestream"
)

// Bool streams a bare boolean atom.
type Bool bool

func (b Bool) Stream(s vs.Stream) error { return s.Bool(bool(b)) }
func (b Bool) IsDynamic() bool          { return false }
func (b Bool) ToBool() (bool, bool)     { return bool(b), true }

// Null streams the null atom.
type Null struct{}

func (Null) Stream(s vs.Stream) error { return s.Null() }
func (Null) IsDynamic() bool          { return false }

// Unit streams the unit atom: the zero-information "present but empty"
// primitive, distinct from Null.
type Unit struct{}

func (Unit) Stream(s vs.Stream) error { return s.Unit() }
func (Unit) IsDynamic() bool          { return false }

// Text streams a string as a single borrowed fragment. The wrapped string
// is the Value's own backing data for the duration of the call, so it is
// passed through TextFragment (the borrowed event) rather than
// TextFragmentComputed.
type Text string

func (t Text) Stream(s vs.Stream) error {
	if err := s.TextBegin(vs.NoHint); err != nil {
		return err
	}
	if err := s.TextFragment(string(t)); err != nil {
		return err
	}
	return s.TextEnd()
}

func (t Text) IsDynamic() bool          { return false }
func (t Text) ToText() (string, bool)   { return string(t), true }

// Binary streams a byte slice as a single borrowed fragment.
type Binary []byte

func (b Binary) Stream(s vs.Stream) error {
	if err := s.BinaryBegin(vs.NoHint); err != nil {
		return err
	}
	if err := s.BinaryFragment([]byte(b)); err != nil {
		return err
	}
	return s.BinaryEnd()
}

func (b Binary) IsDynamic() bool          { return false }
func (b Binary) ToBinary() ([]byte, bool) { return []byte(b), true }

// Int64 streams a signed 64-bit integer.
type Int64 int64

func (n Int64) Stream(s vs.Stream) error { return s.I64(int64(n)) }
func (n Int64) IsDynamic() bool          { return false }
func (n Int64) ToInt64() (int64, bool)   { return int64(n), true }

// Uint64 streams an unsigned 64-bit integer.
type Uint64 uint64

func (n Uint64) Stream(s vs.Stream) error { return s.U64(uint64(n)) }
func (n Uint64) IsDynamic() bool          { return false }
func (n Uint64) ToUint64() (uint64, bool) { return uint64(n), true }

// Int128 streams an arbitrary-precision integer. Nil is treated as zero.
type Int128 struct{ V *big.Int }

func NewInt128(v *big.Int) Int128 { return Int128{V: v} }

func (n Int128) Stream(s vs.Stream) error {
	v := n.V
	if v == nil {
		v = new(big.Int)
	}
	return s.I128(v)
}

func (n Int128) IsDynamic() bool { return false }

func (n Int128) ToBigInt() (*big.Int, bool) {
	if n.V == nil {
		return new(big.Int), true
	}
	return n.V, true
}

// Float64 streams a double-precision float.
type Float64 float64

func (f Float64) Stream(s vs.Stream) error { return s.F64(float64(f)) }
func (f Float64) IsDynamic() bool          { return false }
func (f Float64) ToFloat64() (float64, bool) { return float64(f), true }
