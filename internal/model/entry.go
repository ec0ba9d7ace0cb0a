package model

import (
	"strconv"
	"strings"
)

// Entry is one record in a collection: a mapping from field name to raw
// value string. Entries belong to exactly one collection, which assigns
// their ID and validates field names against its schema.
type Entry struct {
	id     int64
	coll   *Collection
	values map[string]string
}

// NewEntry creates an entry bound to coll. The entry has no ID until it
// is added to the collection.
func NewEntry(coll *Collection) *Entry {
	return &Entry{coll: coll, values: make(map[string]string)}
}

// ID returns the collection-local identifier, stable for the entry's
// life and usable for cross-references such as loans. Zero until the
// entry is added to its collection.
func (e *Entry) ID() int64 { return e.id }

// Collection returns the owning collection.
func (e *Entry) Collection() *Collection { return e.coll }

// Field returns the raw stored value for the named field, or "" when
// unset. Derived fields are computed from their template on every read
// and never stored.
func (e *Entry) Field(name string) string {
	if f := e.coll.FieldByName(name); f != nil && f.HasFlag(Derived) {
		return e.expandTemplate(f.Description())
	}
	return e.values[name]
}

// SetField stores a raw value. It fails when the name is not part of the
// owning collection's schema; callers must add the field first. Storing
// an empty value clears the field. Multi-value delimiter spacing is
// normalized on the way in.
func (e *Entry) SetField(name, value string) bool {
	f := e.coll.FieldByName(name)
	if f == nil {
		return false
	}
	if value == "" {
		delete(e.values, name)
		return true
	}
	if f.HasFlag(AllowMultiple) {
		value = FixupValue(value)
	}
	e.values[name] = value
	return true
}

// FormattedField applies the field's format flag to the stored value for
// display. Multi-value fields format each value independently. Storage
// is never mutated; exports that need raw values use Field.
func (e *Entry) FormattedField(name string) string {
	f := e.coll.FieldByName(name)
	if f == nil {
		return ""
	}
	value := e.Field(name)
	if value == "" {
		return ""
	}
	if f.HasFlag(AllowMultiple) && f.Type() != TypeTable {
		values := SplitValues(value)
		for i, v := range values {
			values[i] = FormatValue(v, f.Format())
		}
		return JoinValues(values)
	}
	return FormatValue(value, f.Format())
}

// Title returns the formatted value of the collection's title field.
func (e *Entry) Title() string {
	return e.FormattedField(e.coll.TitleFieldName())
}

// IsEmpty reports whether no field has a stored value.
func (e *Entry) IsEmpty() bool { return len(e.values) == 0 }

// FieldNames returns the names of fields with stored values, in the
// collection's field order.
func (e *Entry) FieldNames() []string {
	var names []string
	for _, f := range e.coll.Fields() {
		if _, ok := e.values[f.Name()]; ok {
			names = append(names, f.Name())
		}
	}
	return names
}

// Clone copies the entry's values into a new entry bound to coll.
func (e *Entry) Clone(coll *Collection) *Entry {
	c := NewEntry(coll)
	for name, value := range e.values {
		c.values[name] = value
	}
	return c
}

// expandTemplate substitutes %{field} placeholders with raw field
// values. %{@id} expands to the entry ID.
func (e *Entry) expandTemplate(template string) string {
	var b strings.Builder
	rest := template
	for {
		start := strings.Index(rest, "%{")
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[start:], "}")
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:start])
		name := rest[start+2 : start+end]
		if name == "@id" {
			b.WriteString(strconv.FormatInt(e.id, 10))
		} else if f := e.coll.FieldByName(name); f != nil && !f.HasFlag(Derived) {
			b.WriteString(e.values[name])
		}
		rest = rest[start+end+1:]
	}
}
