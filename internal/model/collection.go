package model

import "fmt"

// SchemaError reports an invalid or conflicting field definition.
type SchemaError struct {
	Name   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Name, e.Reason)
}

// ProtectedFieldError reports an attempt to remove a NoDelete field
// without force.
type ProtectedFieldError struct {
	Name string
}

func (e *ProtectedFieldError) Error() string {
	return fmt.Sprintf("field %q is protected and cannot be removed", e.Name)
}

// fieldHooks lets a specialization keep derived indexes consistent with
// schema mutations. Hooks run after the base mutation succeeds.
type fieldHooks interface {
	fieldAdded(f *Field)
	fieldModified(old, updated *Field)
	fieldRemoved(f *Field)
}

// Collection owns an ordered, uniquely-named field schema and a set of
// entries. All schema and entry consistency is enforced here: after any
// exported mutating call returns, every stored entry value belongs to a
// field of the schema.
//
// Collections are single-threaded; callers must not share one across
// goroutines.
type Collection struct {
	ctype      CollectionType
	title      string
	fields     []*Field
	fieldsByNm map[string]*Field
	entries    []*Entry
	entriesByI map[int64]*Entry
	nextID     int64
	groupField string
	titleField string
	hooks      fieldHooks
	bibtex     *BibtexCollection
}

// NewCollection creates an empty collection of the given type. Default
// fields come from the registry; this constructor installs none.
func NewCollection(ctype CollectionType, title string) *Collection {
	return &Collection{
		ctype:      ctype,
		title:      title,
		fieldsByNm: make(map[string]*Field),
		entriesByI: make(map[int64]*Entry),
	}
}

// Type returns the collection type discriminator.
func (c *Collection) Type() CollectionType { return c.ctype }

// Title returns the collection title.
func (c *Collection) Title() string { return c.title }

// SetTitle sets the collection title.
func (c *Collection) SetTitle(title string) { c.title = title }

// GroupField returns the default group-by field name.
func (c *Collection) GroupField() string { return c.groupField }

// SetGroupField sets the default group-by field name.
func (c *Collection) SetGroupField(name string) { c.groupField = name }

// TitleFieldName returns the name of the field playing the "title" role:
// an explicitly marked one, else the first field.
func (c *Collection) TitleFieldName() string {
	if c.titleField != "" {
		return c.titleField
	}
	if len(c.fields) > 0 {
		return c.fields[0].Name()
	}
	return ""
}

// Fields returns the schema in order. The slice is shared; callers must
// not modify it.
func (c *Collection) Fields() []*Field { return c.fields }

// FieldByName returns the named field, or nil.
func (c *Collection) FieldByName(name string) *Field { return c.fieldsByNm[name] }

// HasField reports whether the schema contains the named field.
func (c *Collection) HasField(name string) bool {
	_, ok := c.fieldsByNm[name]
	return ok
}

// FieldNames returns the field names in schema order.
func (c *Collection) FieldNames() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name()
	}
	return names
}

// AddField appends a field to the schema. It fails when the name
// collides with an existing field.
func (c *Collection) AddField(f *Field) error {
	if f == nil {
		return &SchemaError{Reason: "nil field"}
	}
	if err := checkFieldName(f.Name()); err != nil {
		return err
	}
	if c.HasField(f.Name()) {
		return &SchemaError{Name: f.Name(), Reason: "duplicate field name"}
	}
	c.fields = append(c.fields, f)
	c.fieldsByNm[f.Name()] = f
	if c.titleField == "" && f.Name() == "title" {
		c.titleField = "title"
	}
	if c.hooks != nil {
		c.hooks.fieldAdded(f)
	}
	return nil
}

// AddFields adds each field in order, stopping at the first failure.
func (c *Collection) AddFields(fields []*Field) error {
	for _, f := range fields {
		if err := c.AddField(f); err != nil {
			return err
		}
	}
	return nil
}

// ModifyField replaces the definition of the field named like updated,
// migrating stored entry values when the change requires it. The whole
// operation applies or nothing does.
func (c *Collection) ModifyField(updated *Field) error {
	if updated == nil {
		return &SchemaError{Reason: "nil field"}
	}
	old := c.fieldsByNm[updated.Name()]
	if old == nil {
		return &SchemaError{Name: updated.Name(), Reason: "no such field"}
	}

	// Compute the migrated values first so a bad migration leaves the
	// collection untouched.
	migrated := make(map[int64]string)
	for _, e := range c.entries {
		value, ok := e.values[old.Name()]
		if !ok {
			continue
		}
		migrated[e.id] = migrateValue(value, old, updated)
	}

	for i, f := range c.fields {
		if f == old {
			c.fields[i] = updated
			break
		}
	}
	c.fieldsByNm[updated.Name()] = updated
	for _, e := range c.entries {
		if value, ok := migrated[e.id]; ok {
			if value == "" {
				delete(e.values, updated.Name())
			} else {
				e.values[updated.Name()] = value
			}
		}
	}
	if c.hooks != nil {
		c.hooks.fieldModified(old, updated)
	}
	return nil
}

// migrateValue reshapes a stored value for a changed field definition.
func migrateValue(value string, old, updated *Field) string {
	// single -> multiple: the scalar becomes a singleton list, which in
	// the delimiter convention is the value itself, but any embedded
	// delimiter-ish text is normalized.
	if !old.HasFlag(AllowMultiple) && updated.HasFlag(AllowMultiple) {
		return FixupValue(value)
	}
	// multiple -> single: keep the first value.
	if old.HasFlag(AllowMultiple) && !updated.HasFlag(AllowMultiple) {
		if values := SplitValues(value); len(values) > 0 {
			return values[0]
		}
		return ""
	}
	// choice narrowing drops values no longer allowed.
	if updated.Type() == TypeChoice {
		for _, v := range updated.Allowed() {
			if v == value {
				return value
			}
		}
		return ""
	}
	return value
}

// RemoveField removes a field from the schema. NoDelete fields are
// refused unless force is set. Stored entry values for the field are
// purged eagerly so a later re-add with the same name starts clean.
func (c *Collection) RemoveField(name string, force bool) error {
	f := c.fieldsByNm[name]
	if f == nil {
		return &SchemaError{Name: name, Reason: "no such field"}
	}
	if f.HasFlag(NoDelete) && !force {
		return &ProtectedFieldError{Name: name}
	}
	for i, existing := range c.fields {
		if existing == f {
			c.fields = append(c.fields[:i], c.fields[i+1:]...)
			break
		}
	}
	delete(c.fieldsByNm, name)
	for _, e := range c.entries {
		delete(e.values, name)
	}
	if c.titleField == name {
		c.titleField = ""
	}
	if c.hooks != nil {
		c.hooks.fieldRemoved(f)
	}
	return nil
}

// Entries returns the entries in insertion order. The slice is shared;
// callers must not modify it.
func (c *Collection) Entries() []*Entry { return c.entries }

// EntryCount returns the number of entries.
func (c *Collection) EntryCount() int { return len(c.entries) }

// EntryByID returns the entry with the given ID, or nil.
func (c *Collection) EntryByID(id int64) *Entry { return c.entriesByI[id] }

// AddEntry assigns the entry the next ID and appends it. IDs are never
// reused within a collection's lifetime, even after removal. Entries
// created against another collection are rebound, keeping only values
// whose fields exist here.
func (c *Collection) AddEntry(e *Entry) {
	if e.coll != c {
		e.coll = c
		for name := range e.values {
			if !c.HasField(name) {
				delete(e.values, name)
			}
		}
	}
	c.nextID++
	e.id = c.nextID
	c.entries = append(c.entries, e)
	c.entriesByI[e.id] = e
}

// AddEntries adds each entry in order.
func (c *Collection) AddEntries(entries []*Entry) {
	for _, e := range entries {
		c.AddEntry(e)
	}
}

// RemoveEntry removes the entry from the collection. The entry object
// stays valid for callers still holding it (loan records and the like);
// only the collection's bookkeeping is dropped.
func (c *Collection) RemoveEntry(e *Entry) bool {
	if c.entriesByI[e.id] != e {
		return false
	}
	for i, existing := range c.entries {
		if existing == e {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	delete(c.entriesByI, e.id)
	return true
}

// RemoveEntries removes each entry in order, reporting how many were
// actually members.
func (c *Collection) RemoveEntries(entries []*Entry) int {
	removed := 0
	for _, e := range entries {
		if c.RemoveEntry(e) {
			removed++
		}
	}
	return removed
}

// ValueGroups returns the distinct logical values of a groupable field
// mapped to the entries holding them. Multi-value fields contribute one
// group per value.
func (c *Collection) ValueGroups(fieldName string) map[string][]*Entry {
	f := c.fieldsByNm[fieldName]
	if f == nil {
		return nil
	}
	groups := make(map[string][]*Entry)
	for _, e := range c.entries {
		value := e.Field(fieldName)
		if value == "" {
			continue
		}
		if f.HasFlag(AllowMultiple) {
			for _, v := range SplitValues(value) {
				groups[v] = append(groups[v], e)
			}
		} else {
			groups[value] = append(groups[value], e)
		}
	}
	return groups
}
