package values

import vs "github.com/kodraus/valuestream"

// NumericFormatter is implemented by anything that can render itself as a
// number's text form (the Go analog of the Rust fmt::Display bound
// original_source/src/num.rs wraps). Callers typically pass a
// strconv.FormatFloat/FormatInt closure wrapped in NumericFormatterFunc.
type NumericFormatter interface {
	FormatNumber() string
}

// NumericFormatterFunc adapts a plain func into a NumericFormatter.
type NumericFormatterFunc func() string

func (f NumericFormatterFunc) FormatNumber() string { return f() }

// Number streams Formatter's text form wrapped in IntBegin/End or
// DecfloatBegin/End (whichever the text shape calls for), after validating
// that the text actually looks like a number: an optional leading '-', at
// least one digit, and an optional '.' followed by at least one more digit
// (ported from original_source/src/num.rs's Check state machine). A
// formatter that produces anything else — empty text, a letter, a
// trailing '.', NaN/Infinity spellings — yields a malformed error instead
// of silently streaming non-numeric text through the wrapper events.
type Number struct {
	Formatter NumericFormatter
}

// NewNumber wraps f as a validating Number Value.
func NewNumber(f NumericFormatter) Number { return Number{Formatter: f} }

func (n Number) IsDynamic() bool { return false }

func (n Number) Stream(s vs.Stream) error {
	text := n.Formatter.FormatNumber()
	isFloat, err := checkNumericText(text)
	if err != nil {
		return err
	}
	if isFloat {
		if err := s.DecfloatBegin(); err != nil {
			return err
		}
	} else {
		if err := s.IntBegin(); err != nil {
			return err
		}
	}
	if err := s.TextBegin(vs.NoHint); err != nil {
		return err
	}
	if err := s.TextFragment(text); err != nil {
		return err
	}
	if err := s.TextEnd(); err != nil {
		return err
	}
	if isFloat {
		return s.DecfloatEnd()
	}
	return s.IntEnd()
}

type numCheckState int

const (
	numCheckSign numCheckState = iota
	numCheckDigits
	numCheckFractional
)

// checkNumericText runs the Sign -> Digits -> ['.' -> Fractional] state
// machine from original_source/src/num.rs's Check writer and reports
// whether the text is a valid integer (false) or decimal (true) literal.
func checkNumericText(text string) (isFloat bool, err error) {
	state := numCheckSign
	digits := 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		switch {
		case state == numCheckSign && b == '-':
			state = numCheckDigits
		case state == numCheckSign && b >= '0' && b <= '9':
			state = numCheckDigits
			digits = 1
		case state == numCheckDigits && b >= '0' && b <= '9':
			digits++
		case state == numCheckDigits && b == '.' && digits > 0:
			state = numCheckFractional
			isFloat = true
			digits = 0
		case state == numCheckFractional && b >= '0' && b <= '9':
			digits++
		default:
			return false, vs.NewMalformedError("num",
				"formatted text does not look like a number: "+text)
		}
	}
	if digits == 0 {
		return false, vs.NewMalformedError("num",
			"formatted text does not look like a number: "+text)
	}
	return isFloat, nil
}
