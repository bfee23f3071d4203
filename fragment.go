package valuestream

import "strings"

// TextBuf accumulates text fragments across calls so a consumer that
// needs a contiguous view (e.g. to parse an integer literal) can obtain
// one (§4.5). The zero value is an empty, zero-copy buffer.
//
// Contract: an empty buffer holding a single borrowed (non-computed)
// fragment yields that fragment's slice unchanged — the zero-copy fast
// path. Any subsequent push, or any computed fragment, forces the buffer
// into an owned, concatenated representation (Go has no borrow checker,
// so this mirrors the Rust source's Cow-based fallback: see
// buffer/src/fragments.rs in original_source).
type TextBuf struct {
	single    string
	hasSingle bool
	borrowed  bool
	owned     strings.Builder
	multiple  bool
}

// PushBorrowed appends a fragment known to alias the original source data
// (the non-"computed" event). It may still be retained as borrowed if it
// is the first and only fragment pushed.
func (b *TextBuf) PushBorrowed(fragment string) error {
	return b.push(fragment, true)
}

// PushComputed appends a fragment known not to alias the original source
// data (a "computed" fragment). It forces the buffer out of the zero-copy
// fast path on this call, since a computed fragment cannot itself be
// retained as a borrow.
func (b *TextBuf) PushComputed(fragment string) error {
	return b.push(fragment, false)
}

func (b *TextBuf) push(fragment string, borrowed bool) error {
	if b.multiple {
		b.owned.WriteString(fragment)
		return nil
	}
	if !b.hasSingle {
		b.single = fragment
		b.hasSingle = true
		b.borrowed = borrowed
		return nil
	}
	// second push: fall back to the owned, concatenated representation.
	b.multiple = true
	b.owned.Reset()
	b.owned.WriteString(b.single)
	b.owned.WriteString(fragment)
	b.single = ""
	b.borrowed = false
	return nil
}

// TryGet returns the borrowed slice if the buffer is still in the
// zero-copy fast path (a single, non-computed fragment was pushed and
// nothing since), and false otherwise.
func (b *TextBuf) TryGet() (string, bool) {
	if b.hasSingle && !b.multiple && b.borrowed {
		return b.single, true
	}
	return "", false
}

// Get returns the current contents regardless of representation.
func (b *TextBuf) Get() string {
	if b.multiple {
		return b.owned.String()
	}
	if b.hasSingle {
		return b.single
	}
	return ""
}

// BinaryBuf is the binary-content analog of TextBuf.
type BinaryBuf struct {
	single    []byte
	hasSingle bool
	borrowed  bool
	owned     []byte
	multiple  bool
}

// PushBorrowed appends a fragment known to alias the original source data.
func (b *BinaryBuf) PushBorrowed(fragment []byte) error {
	return b.push(fragment, true)
}

// PushComputed appends a fragment known not to alias the original source
// data.
func (b *BinaryBuf) PushComputed(fragment []byte) error {
	return b.push(fragment, false)
}

func (b *BinaryBuf) push(fragment []byte, borrowed bool) error {
	if b.multiple {
		b.owned = append(b.owned, fragment...)
		return nil
	}
	if !b.hasSingle {
		b.single = fragment
		b.hasSingle = true
		b.borrowed = borrowed
		return nil
	}
	b.multiple = true
	b.owned = append(append([]byte(nil), b.single...), fragment...)
	b.single = nil
	b.borrowed = false
	return nil
}

// TryGet returns the borrowed slice if the buffer is still in the
// zero-copy fast path, and false otherwise.
func (b *BinaryBuf) TryGet() ([]byte, bool) {
	if b.hasSingle && !b.multiple && b.borrowed {
		return b.single, true
	}
	return nil, false
}

// Get returns the current contents regardless of representation.
func (b *BinaryBuf) Get() []byte {
	if b.multiple {
		return b.owned
	}
	if b.hasSingle {
		return b.single
	}
	return nil
}
