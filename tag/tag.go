// Package tag defines the small record types carried as event payloads by
// the streaming protocol: the application identifier / label / ordinal
// triple attached to composite values, and the possibly-static label used
// to name record fields and enum variants.
package tag

// Tag bundles the three optional fields a producer may attach to a
// composite Begin event so a consumer can disambiguate variants and field
// names: a stable application identifier, a human label, and an ordinal
// index. Every field is optional; the zero value is the empty tag.
type Tag struct {
	// Ident is a stable, application-defined symbol identifying the type
	// or variant. Formats that identify variants by numeric index (CBOR)
	// generally prefer Index over Ident; formats that identify variants
	// by name (JSON) prefer Label.
	Ident string
	// HasIdent reports whether Ident was set by the producer.
	HasIdent bool

	// Label is the human-readable name of the tag, when present.
	Label Label
	// HasLabel reports whether Label was set by the producer.
	HasLabel bool

	// Index is the ordinal position of the tag among its siblings.
	Index int64
	// HasIndex reports whether Index was set by the producer.
	HasIndex bool
}

// New constructs an empty Tag. Use the With* methods to populate fields.
func New() Tag {
	return Tag{}
}

// WithIdent returns a copy of t with Ident set.
func (t Tag) WithIdent(ident string) Tag {
	t.Ident = ident
	t.HasIdent = true
	return t
}

// WithLabel returns a copy of t with Label set.
func (t Tag) WithLabel(label Label) Tag {
	t.Label = label
	t.HasLabel = true
	return t
}

// WithIndex returns a copy of t with Index set.
func (t Tag) WithIndex(index int64) Tag {
	t.Index = index
	t.HasIndex = true
	return t
}

// IsEmpty reports whether none of the tag's fields were set.
func (t Tag) IsEmpty() bool {
	return !t.HasIdent && !t.HasLabel && !t.HasIndex
}

// EqualStructural reports whether t and other identify the same tag using
// only the stable identifier field. This is the equality relation formats
// that dispatch on numeric index (CBOR-style) should use: it ignores Label
// and Index entirely.
func (t Tag) EqualStructural(other Tag) bool {
	return t.HasIdent == other.HasIdent && t.Ident == other.Ident
}

// Equal reports whether t and other are identical across every field
// (identifier, label, and index). Every *Begin event that carries a tag
// must be paired with an *End carrying a Tag for which Equal holds,
// though implementations may elide the End's tag payload entirely when
// context makes it unambiguous.
func (t Tag) Equal(other Tag) bool {
	return t.EqualStructural(other) &&
		t.HasLabel == other.HasLabel && t.Label.Equal(other.Label) &&
		t.HasIndex == other.HasIndex && t.Index == other.Index
}

// Label names a record field or enum variant. A Label may be statically
// interned (known at compile time, safe to use as a long-lived map key or
// format field name) or runtime-computed. Formats that use labels as
// field names, such as JSON object keys, require the static form and must
// reject records whose labels are only computed.
type Label struct {
	// Value is the label text.
	Value string
	// Static reports whether Value is known to live for the lifetime of
	// the program (e.g. a Go string literal) as opposed to having been
	// computed at runtime (e.g. built with fmt.Sprintf). Go's garbage
	// collector makes this distinction observational rather than a
	// borrow-checker requirement, but conforming producers must still
	// report it accurately: consumers that require stable field names
	// (§6.1) use it to reject computed labels.
	Static bool
}

// NewLabel constructs a statically-known Label.
func NewLabel(value string) Label {
	return Label{Value: value, Static: true}
}

// NewComputedLabel constructs a Label whose text was computed at runtime
// and is not safe to treat as a stable, long-lived field name.
func NewComputedLabel(value string) Label {
	return Label{Value: value, Static: false}
}

// Equal reports whether two labels carry the same text and staticness.
func (l Label) Equal(other Label) bool {
	return l.Value == other.Value && l.Static == other.Static
}

// String returns the label text.
func (l Label) String() string {
	return l.Value
}

// Index identifies a tuple field's ordinal position.
type Index struct {
	Value int64
}

// NewIndex constructs an Index.
func NewIndex(value int64) Index {
	return Index{Value: value}
}
