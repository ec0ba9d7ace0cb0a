// Package model implements the collection data model: typed fields,
// entries, and collections with a dynamic per-collection schema.
package model

import (
	"fmt"
	"strings"
)

// FieldType identifies how a field's value is edited and interpreted.
// Line is plain single-line text, Para is multi-line text, Choice is
// limited to a fixed value list, Table holds one or two columns of
// repeated values (column count lives in the "columns" property).
//
// ReadOnly and Dependent are accepted for compatibility with older
// documents and normalize to Line plus the NoEdit or Derived flag.
type FieldType int

const (
	TypeUndef  FieldType = 0
	TypeLine   FieldType = 1
	TypePara   FieldType = 2
	TypeChoice FieldType = 3
	TypeBool   FieldType = 4
	// TypeReadOnly is deprecated in favor of the NoEdit flag.
	TypeReadOnly FieldType = 5
	TypeNumber   FieldType = 6
	TypeURL      FieldType = 7
	TypeTable    FieldType = 8
	// TypeTable2 is deprecated in favor of the "columns" property.
	TypeTable2 FieldType = 9
	TypeImage  FieldType = 10
	// TypeDependent is deprecated in favor of the Derived flag.
	TypeDependent FieldType = 11
	TypeDate      FieldType = 12
	TypeRating    FieldType = 14
)

// FieldFlag values are OR'd together on a field.
type FieldFlag int

const (
	// AllowMultiple permits multiple delimiter-separated values.
	AllowMultiple FieldFlag = 1 << iota
	// AllowGrouped permits grouping entries by this field.
	AllowGrouped
	// AllowCompletion enables value auto-completion in editors.
	AllowCompletion
	// NoDelete protects the field from removal.
	NoDelete
	// NoEdit marks the field read-only for users.
	NoEdit
	// Derived marks the value as computed from the description template.
	Derived
)

// FormatFlag governs how a stored value is rendered for display.
// It never affects storage.
type FormatFlag int

const (
	// FormatPlain capitalizes words, nothing more.
	FormatPlain FormatFlag = 0
	// FormatTitle formats as a title, shifting leading articles to the end.
	FormatTitle FormatFlag = 1
	// FormatName formats as a personal name.
	FormatName FormatFlag = 2
	// FormatDate formats as a date.
	FormatDate FormatFlag = 3
	// FormatNone leaves the value untouched.
	FormatNone FormatFlag = 4
)

// Field describes a single schema attribute of a collection.
//
// The name is the stable machine identifier and must stay unique within a
// collection. The title is the display label. Format-specific metadata
// such as the bibtex tag lives in the open property bag.
type Field struct {
	name     string
	title    string
	category string
	desc     string
	ftype    FieldType
	allowed  []string
	flags    FieldFlag
	format   FormatFlag
	props    map[string]string
}

// NewField creates a field of any type except Choice.
// The field name must be a valid identifier: non-empty and free of the
// multi-value delimiter.
func NewField(name, title string, ftype FieldType) (*Field, error) {
	if err := checkFieldName(name); err != nil {
		return nil, err
	}
	if ftype == TypeChoice {
		return nil, &SchemaError{Name: name, Reason: "choice fields require an allowed value list"}
	}
	f := &Field{
		name:     name,
		title:    title,
		category: CategoryGeneral,
		desc:     title,
		ftype:    ftype,
		format:   FormatNone,
	}
	f.normalizeType()
	if f.isSingleCategory() {
		f.category = f.title
	}
	return f, nil
}

// NewChoiceField creates a Choice field limited to the allowed values.
func NewChoiceField(name, title string, allowed []string) (*Field, error) {
	if err := checkFieldName(name); err != nil {
		return nil, err
	}
	f := &Field{
		name:     name,
		title:    title,
		category: CategoryGeneral,
		desc:     title,
		ftype:    TypeChoice,
		allowed:  append([]string(nil), allowed...),
		format:   FormatNone,
	}
	return f, nil
}

// mustField is for statically-known default fields only.
func mustField(name, title string, ftype FieldType) *Field {
	f, err := NewField(name, title, ftype)
	if err != nil {
		panic(err)
	}
	return f
}

func mustChoiceField(name, title string, allowed []string) *Field {
	f, err := NewChoiceField(name, title, allowed)
	if err != nil {
		panic(err)
	}
	return f
}

func checkFieldName(name string) error {
	if name == "" {
		return &SchemaError{Name: name, Reason: "field name is empty"}
	}
	if strings.Contains(name, strings.TrimSpace(ValueDelimiter)) {
		return &SchemaError{Name: name, Reason: "field name contains the value delimiter"}
	}
	if strings.ContainsAny(name, " \t\n") {
		return &SchemaError{Name: name, Reason: "field name contains whitespace"}
	}
	return nil
}

// normalizeType applies the per-type conventions: tables always allow
// multiple values and carry a column count, dates format as dates, ratings
// seed their bounds, and the deprecated types collapse to Line plus a flag.
func (f *Field) normalizeType() {
	switch f.ftype {
	case TypeTable, TypeTable2:
		f.flags |= AllowMultiple
		if f.ftype == TypeTable2 {
			f.ftype = TypeTable
			f.SetProperty("columns", "2")
		} else if f.Property("columns") == "" {
			f.SetProperty("columns", "1")
		}
	case TypeDate:
		f.format = FormatDate
	case TypeRating:
		if f.Property("minimum") == "" {
			f.SetProperty("minimum", "1")
		}
		if f.Property("maximum") == "" {
			f.SetProperty("maximum", "5")
		}
	case TypeReadOnly:
		f.ftype = TypeLine
		f.flags |= NoEdit
	case TypeDependent:
		f.ftype = TypeLine
		f.flags |= Derived
	}
}

// Name returns the stable machine identifier.
func (f *Field) Name() string { return f.name }

// Title returns the display label.
func (f *Field) Title() string { return f.title }

// SetTitle sets the display label. Single-category fields (paragraphs,
// tables, images) keep their category equal to the title.
func (f *Field) SetTitle(title string) {
	f.title = title
	if f.isSingleCategory() {
		f.category = title
	}
}

// Type returns the field type.
func (f *Field) Type() FieldType { return f.ftype }

// SetType changes the field type, re-applying the type conventions.
// Changing away from Choice discards the allowed value list.
func (f *Field) SetType(ftype FieldType) {
	f.ftype = ftype
	if f.ftype != TypeChoice {
		f.allowed = nil
	}
	f.normalizeType()
	if f.isSingleCategory() {
		f.category = f.title
	}
}

// Category returns the grouping label used by views.
func (f *Field) Category() string { return f.category }

// SetCategory is a no-op for single-category fields.
func (f *Field) SetCategory(category string) {
	if !f.isSingleCategory() {
		f.category = category
	}
}

// Description returns the description, which doubles as the value
// template for Derived fields ("%{field}" placeholders).
func (f *Field) Description() string { return f.desc }

// SetDescription sets the description.
func (f *Field) SetDescription(desc string) { f.desc = desc }

// Allowed returns the allowed values of a Choice field.
func (f *Field) Allowed() []string { return f.allowed }

// AddAllowed appends a value to a Choice field's allowed list.
func (f *Field) AddAllowed(value string) {
	if f.ftype != TypeChoice {
		return
	}
	for _, v := range f.allowed {
		if v == value {
			return
		}
	}
	f.allowed = append(f.allowed, value)
}

// Flags returns the flag bitset.
func (f *Field) Flags() FieldFlag { return f.flags }

// SetFlags replaces the flag bitset. Tables always keep AllowMultiple.
func (f *Field) SetFlags(flags FieldFlag) {
	if f.ftype == TypeTable {
		flags |= AllowMultiple
	}
	f.flags = flags
}

// HasFlag reports whether the flag is set.
func (f *Field) HasFlag(flag FieldFlag) bool { return f.flags&flag != 0 }

// Format returns the format flag.
func (f *Field) Format() FormatFlag { return f.format }

// SetFormat sets the format flag. Choice and Date fields keep theirs.
func (f *Field) SetFormat(format FormatFlag) {
	if f.ftype != TypeChoice && f.ftype != TypeDate {
		f.format = format
	}
}

// Property returns a property bag value, or "" when unset.
func (f *Field) Property(key string) string { return f.props[key] }

// SetProperty sets a property bag value. An empty value deletes the key.
func (f *Field) SetProperty(key, value string) {
	if value == "" {
		delete(f.props, key)
		return
	}
	if f.props == nil {
		f.props = make(map[string]string)
	}
	f.props[key] = value
}

// Properties returns a copy of the property bag.
func (f *Field) Properties() map[string]string {
	if len(f.props) == 0 {
		return nil
	}
	props := make(map[string]string, len(f.props))
	for k, v := range f.props {
		props[k] = v
	}
	return props
}

// SetProperties replaces the property bag.
func (f *Field) SetProperties(props map[string]string) {
	f.props = nil
	for k, v := range props {
		f.SetProperty(k, v)
	}
}

// DefaultValue returns the default value from the property bag.
func (f *Field) DefaultValue() string { return f.Property("default") }

// SetDefaultValue records a default value. Choice fields only accept
// values from their allowed list.
func (f *Field) SetDefaultValue(value string) {
	if value == "" || f.ftype != TypeChoice {
		f.SetProperty("default", value)
		return
	}
	for _, v := range f.allowed {
		if v == value {
			f.SetProperty("default", value)
			return
		}
	}
}

// Columns returns the column count of a Table field (1 when unset).
func (f *Field) Columns() int {
	if f.Property("columns") == "2" {
		return 2
	}
	return 1
}

// isSingleCategory reports whether the field occupies a category of its
// own named after its title.
func (f *Field) isSingleCategory() bool {
	return f.ftype == TypePara || f.ftype == TypeTable || f.ftype == TypeImage
}

// Clone returns a deep copy, property bag included. Required when one
// logical field definition is attached to multiple collections.
func (f *Field) Clone() *Field {
	c := *f
	c.allowed = append([]string(nil), f.allowed...)
	c.props = nil
	for k, v := range f.props {
		if c.props == nil {
			c.props = make(map[string]string, len(f.props))
		}
		c.props[k] = v
	}
	return &c
}

// CategoryGeneral is the default field category.
const CategoryGeneral = "General"

// typeNames maps field types to readable names for messages.
var typeNames = map[FieldType]string{
	TypeLine:   "Simple Text",
	TypePara:   "Paragraph",
	TypeChoice: "Choice",
	TypeBool:   "Checkbox",
	TypeNumber: "Number",
	TypeURL:    "URL",
	TypeTable:  "Table",
	TypeImage:  "Image",
	TypeDate:   "Date",
	TypeRating: "Rating",
}

// String returns a readable name for the type.
func (t FieldType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}
