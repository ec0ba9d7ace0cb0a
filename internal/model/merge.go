package model

import "fmt"

// MergeMode selects how a foreign collection folds into an existing one.
type MergeMode int

const (
	// MergeAppend unions the schemas and appends every foreign entry.
	MergeAppend MergeMode = iota
	// MergeDedup is like append but skips entries scoring as duplicates,
	// using them to fill gaps in the entry they matched.
	MergeDedup
	// MergeReplace discards the target's schema and entries and installs
	// the foreign collection's.
	MergeReplace
)

// String returns the CLI name of the mode.
func (m MergeMode) String() string {
	switch m {
	case MergeAppend:
		return "append"
	case MergeDedup:
		return "merge"
	case MergeReplace:
		return "replace"
	}
	return "unknown"
}

// ParseMergeMode resolves a CLI mode name.
func ParseMergeMode(name string) (MergeMode, error) {
	switch name {
	case "append":
		return MergeAppend, nil
	case "merge":
		return MergeDedup, nil
	case "replace":
		return MergeReplace, nil
	}
	return 0, fmt.Errorf("unknown merge mode %q", name)
}

// fill records one gap-fill applied to an existing entry during
// deduplicating merge so it can be reverted.
type fill struct {
	entry *Entry
	name  string
}

// MergeResult captures everything a merge changed, enough to invert it
// exactly. A command layer gets undo by calling Revert; redo is simply
// running the merge again.
type MergeResult struct {
	target *Collection
	mode   MergeMode

	addedFields  []*Field
	addedEntries []*Entry
	skipped      int
	fills        []fill

	// bibtex bookkeeping
	addedMacros   []string
	changedMacros map[string]string
	oldMacroOrder []string
	oldPreamble   string
	preambleMoved bool

	// replace bookkeeping
	oldFields     []*Field
	oldFieldIndex map[string]*Field
	oldEntries    []*Entry
	oldEntryIndex map[int64]*Entry
	oldTitle      string
	oldNextID     int64
}

// AddedEntryCount returns how many entries the merge appended.
func (r *MergeResult) AddedEntryCount() int { return len(r.addedEntries) }

// AddedFieldCount returns how many fields the merge added.
func (r *MergeResult) AddedFieldCount() int { return len(r.addedFields) }

// SkippedCount returns how many foreign entries were dropped as
// duplicates.
func (r *MergeResult) SkippedCount() int { return r.skipped }

// MergeCollections folds other into target according to mode and returns
// the invertible result. Append and merge require the same collection
// type; replace accepts any source. The foreign collection is never
// modified; its fields and entries are cloned in.
func MergeCollections(target, other *Collection, mode MergeMode) (*MergeResult, error) {
	if target == nil || other == nil {
		return nil, fmt.Errorf("merge requires two collections")
	}
	if mode == MergeReplace {
		return replaceCollection(target, other), nil
	}
	if target.Type() != other.Type() {
		return nil, fmt.Errorf("cannot %s a %s collection into a %s collection",
			mode, other.Type(), target.Type())
	}

	r := &MergeResult{target: target, mode: mode}

	for _, f := range other.Fields() {
		if target.HasField(f.Name()) {
			continue
		}
		clone := f.Clone()
		if err := target.AddField(clone); err != nil {
			return nil, err
		}
		r.addedFields = append(r.addedFields, clone)
	}

	for _, e := range other.Entries() {
		if mode == MergeDedup {
			if existing := bestMatch(target, e); existing != nil {
				r.skipped++
				r.fills = append(r.fills, fillGaps(existing, e)...)
				continue
			}
		}
		clone := e.Clone(target)
		target.AddEntry(clone)
		r.addedEntries = append(r.addedEntries, clone)
	}

	mergeBibtex(r, target, other)
	return r, nil
}

// bestMatch returns the first target entry scoring at or above the
// acceptance threshold, or nil.
func bestMatch(target *Collection, e *Entry) *Entry {
	for _, existing := range target.Entries() {
		if target.SameEntry(existing, e) >= MatchPerfect {
			return existing
		}
	}
	return nil
}

// fillGaps copies the incoming duplicate's non-empty values into fields
// the existing entry left empty. The incoming duplicate itself is
// discarded.
func fillGaps(existing, incoming *Entry) []fill {
	var fills []fill
	for _, f := range existing.Collection().Fields() {
		if f.HasFlag(Derived) {
			continue
		}
		value := incoming.Field(f.Name())
		if value == "" || existing.Field(f.Name()) != "" {
			continue
		}
		if existing.SetField(f.Name(), value) {
			fills = append(fills, fill{entry: existing, name: f.Name()})
		}
	}
	return fills
}

// mergeBibtex unions macros (other's value wins on collision) and takes
// other's preamble when non-empty.
func mergeBibtex(r *MergeResult, target, other *Collection) {
	tb, ob := BibtexOf(target), BibtexOf(other)
	if tb == nil || ob == nil {
		return
	}
	r.changedMacros = make(map[string]string)
	for _, name := range ob.MacroNames() {
		value := ob.Macro(name)
		old, known := tb.macros[name]
		switch {
		case !known:
			tb.AddMacro(name, value)
			r.addedMacros = append(r.addedMacros, name)
		case value != "" && value != old:
			r.changedMacros[name] = old
			tb.AddMacro(name, value)
		}
	}
	if pre := ob.Preamble(); pre != "" && pre != tb.Preamble() {
		r.oldPreamble = tb.Preamble()
		r.preambleMoved = true
		tb.SetPreamble(pre)
	}
}

// replaceCollection swaps target's schema and entries for clones of
// other's, remembering the old state for revert.
func replaceCollection(target, other *Collection) *MergeResult {
	r := &MergeResult{
		target:        target,
		mode:          MergeReplace,
		oldFields:     target.fields,
		oldFieldIndex: target.fieldsByNm,
		oldEntries:    target.entries,
		oldEntryIndex: target.entriesByI,
		oldTitle:      target.title,
		oldNextID:     target.nextID,
	}
	target.fields = nil
	target.fieldsByNm = make(map[string]*Field)
	target.entries = nil
	target.entriesByI = make(map[int64]*Entry)
	target.titleField = ""
	target.title = other.title
	if tb := BibtexOf(target); tb != nil {
		r.oldPreamble = tb.Preamble()
		r.preambleMoved = true
		r.changedMacros = make(map[string]string)
		r.oldMacroOrder = tb.MacroNames()
		for _, name := range r.oldMacroOrder {
			r.changedMacros[name] = tb.Macro(name)
		}
		tb.byTag = make(map[string]*Field)
		tb.macroNames = nil
		tb.macros = make(map[string]string)
	}
	for _, f := range other.Fields() {
		// names were unique in the source, AddField cannot fail
		if err := target.AddField(f.Clone()); err != nil {
			panic(err)
		}
	}
	for _, e := range other.Entries() {
		target.AddEntry(e.Clone(target))
	}
	mergeBibtexReplace(target, other)
	return r
}

// mergeBibtexReplace carries macros and preamble over wholesale. The
// caller already captured and cleared the target's bibtex state.
func mergeBibtexReplace(target, other *Collection) {
	tb, ob := BibtexOf(target), BibtexOf(other)
	if tb == nil || ob == nil {
		return
	}
	for _, name := range ob.MacroNames() {
		tb.AddMacro(name, ob.Macro(name))
	}
	tb.SetPreamble(ob.Preamble())
}

// Revert exactly restores the state from before the merge.
func (r *MergeResult) Revert() {
	target := r.target
	if r.mode == MergeReplace {
		target.fields = r.oldFields
		target.fieldsByNm = r.oldFieldIndex
		target.entries = r.oldEntries
		target.entriesByI = r.oldEntryIndex
		target.title = r.oldTitle
		target.nextID = r.oldNextID
		target.titleField = ""
		if target.HasField("title") {
			target.titleField = "title"
		}
		if tb := BibtexOf(target); tb != nil {
			tb.byTag = make(map[string]*Field)
			for _, f := range target.fields {
				tb.fieldAdded(f)
			}
			tb.macroNames = nil
			tb.macros = make(map[string]string)
			for _, name := range r.oldMacroOrder {
				tb.AddMacro(name, r.changedMacros[name])
			}
			tb.SetPreamble(r.oldPreamble)
		}
		return
	}

	for _, e := range r.addedEntries {
		target.RemoveEntry(e)
	}
	for _, fl := range r.fills {
		fl.entry.SetField(fl.name, "")
	}
	for i := len(r.addedFields) - 1; i >= 0; i-- {
		// force removal, the field may be protected
		_ = target.RemoveField(r.addedFields[i].Name(), true)
	}
	if tb := BibtexOf(target); tb != nil {
		for _, name := range r.addedMacros {
			tb.removeMacro(name)
		}
		for name, old := range r.changedMacros {
			tb.AddMacro(name, old)
		}
		if r.preambleMoved {
			tb.SetPreamble(r.oldPreamble)
		}
	}
}
