package model

// PropBibtex is the property-bag key mapping a field to its BibTeX tag.
const PropBibtex = "bibtex"

// BibtexCollection specializes a bibliography collection with a
// secondary index from bibtex tag to field, string macros, and a
// preamble. The index is kept consistent with every schema mutation
// through the collection's field hooks.
type BibtexCollection struct {
	*Collection
	byTag      map[string]*Field
	macroNames []string
	macros     map[string]string
	preamble   string
}

// NewBibtexCollection creates a bibliography collection. When
// addDefaults is set, the default bibliography fields are installed.
// The twelve month macros are always seeded with empty expansions,
// meaning "known but unexpanded".
func NewBibtexCollection(title string, addDefaults bool) *BibtexCollection {
	if title == "" {
		title = "Bibliography"
	}
	bc := &BibtexCollection{
		Collection: NewCollection(TypeBibtex, title),
		byTag:      make(map[string]*Field),
		macros:     make(map[string]string),
	}
	bc.Collection.hooks = bc
	bc.Collection.bibtex = bc
	bc.SetGroupField("author")
	for _, month := range []string{
		"jan", "feb", "mar", "apr", "may", "jun",
		"jul", "aug", "sep", "oct", "nov", "dec",
	} {
		bc.AddMacro(month, "")
	}
	if addDefaults {
		if err := bc.AddFields(bibtexFields()); err != nil {
			panic(err)
		}
	}
	return bc
}

// BibtexOf returns the bibtex specialization of a collection, or nil
// when the collection is not a bibliography.
func BibtexOf(c *Collection) *BibtexCollection { return c.bibtex }

// FieldByBibtexName returns the field mapped to the bibtex tag, or nil.
func (bc *BibtexCollection) FieldByBibtexName(tag string) *Field {
	return bc.byTag[tag]
}

// Preamble returns the free-text preamble.
func (bc *BibtexCollection) Preamble() string { return bc.preamble }

// SetPreamble sets the free-text preamble.
func (bc *BibtexCollection) SetPreamble(preamble string) { bc.preamble = preamble }

// AddMacro records a string macro. An existing macro keeps its position
// in the ordered listing.
func (bc *BibtexCollection) AddMacro(name, expansion string) {
	if _, ok := bc.macros[name]; !ok {
		bc.macroNames = append(bc.macroNames, name)
	}
	bc.macros[name] = expansion
}

// Macro returns a macro expansion ("" for unexpanded macros).
func (bc *BibtexCollection) Macro(name string) string { return bc.macros[name] }

// MacroNames returns the macro names in insertion order.
func (bc *BibtexCollection) MacroNames() []string {
	return append([]string(nil), bc.macroNames...)
}

// MacroCount returns the number of known macros.
func (bc *BibtexCollection) MacroCount() int { return len(bc.macroNames) }

// removeMacro drops a macro entirely. Used when reverting a merge.
func (bc *BibtexCollection) removeMacro(name string) {
	if _, ok := bc.macros[name]; !ok {
		return
	}
	delete(bc.macros, name)
	for i, n := range bc.macroNames {
		if n == name {
			bc.macroNames = append(bc.macroNames[:i], bc.macroNames[i+1:]...)
			return
		}
	}
}

// DuplicateBibtexKeys returns every entry whose bibtex-key value is
// shared with at least one other entry. Grouping is a single hash pass,
// case-sensitive, in entry order.
func (bc *BibtexCollection) DuplicateBibtexKeys() []*Entry {
	keyField := bc.FieldByBibtexName("key")
	if keyField == nil {
		return nil
	}
	groups := make(map[string][]*Entry)
	for _, e := range bc.Entries() {
		key := e.Field(keyField.Name())
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], e)
	}
	var dupes []*Entry
	for _, e := range bc.Entries() {
		key := e.Field(keyField.Name())
		if key != "" && len(groups[key]) > 1 {
			dupes = append(dupes, e)
		}
	}
	return dupes
}

// Field hooks keeping the tag index synchronized with the base schema.

func (bc *BibtexCollection) fieldAdded(f *Field) {
	if tag := f.Property(PropBibtex); tag != "" {
		bc.byTag[tag] = f
	}
}

func (bc *BibtexCollection) fieldModified(old, updated *Field) {
	if tag := old.Property(PropBibtex); tag != "" && bc.byTag[tag] == old {
		delete(bc.byTag, tag)
	}
	bc.fieldAdded(updated)
}

func (bc *BibtexCollection) fieldRemoved(f *Field) {
	if tag := f.Property(PropBibtex); tag != "" && bc.byTag[tag] == f {
		delete(bc.byTag, tag)
	}
}

// bookToBibtexTags maps generic book field names to bibtex tags during
// conversion. Passthrough names map to themselves.
var bookToBibtexTags = map[string]string{
	"title": "title", "author": "author", "editor": "editor",
	"edition": "edition", "publisher": "publisher", "isbn": "isbn",
	"lccn": "lccn", "url": "url", "language": "language",
	"pages": "pages", "series": "series",
	"series_num": "number",
	"pur_price":  "price",
	"cr_year":    "year",
	"bibtex-id":  "key",
	"keyword":    "keywords",
	"comments":   "note",
}

// ConvertBookCollection builds a bibliography from a book collection.
// Every source field is cloned and recognized names gain a bibtex tag;
// the protected default bibliography fields still missing afterwards are
// added (except a second key field when the source brought bibtex-id).
// Every entry is copied and its entry-type set to "book".
func ConvertBookCollection(src *Collection) (*BibtexCollection, error) {
	if src.Type() != TypeBook {
		return nil, &SchemaError{Reason: "only book collections convert to bibliographies"}
	}

	bc := NewBibtexCollection(src.Title(), false)
	for _, f := range src.Fields() {
		clone := f.Clone()
		if tag, ok := bookToBibtexTags[clone.Name()]; ok {
			clone.SetProperty(PropBibtex, tag)
		}
		if err := bc.AddField(clone); err != nil {
			return nil, err
		}
	}

	hadBibtexID := src.HasField("bibtex-id")
	for _, f := range bibtexFields() {
		if bc.HasField(f.Name()) || !f.HasFlag(NoDelete) {
			continue
		}
		if f.Property(PropBibtex) == "key" && hadBibtexID {
			continue
		}
		if err := bc.AddField(f); err != nil {
			return nil, err
		}
	}

	var entryTypeName string
	if f := bc.FieldByBibtexName("entry-type"); f != nil {
		entryTypeName = f.Name()
	}
	for _, e := range src.Entries() {
		clone := e.Clone(bc.Collection)
		bc.AddEntry(clone)
		if entryTypeName != "" {
			clone.SetField(entryTypeName, "book")
		}
	}
	return bc, nil
}

// bibtexFields is the default bibliography schema.
func bibtexFields() []*Field {
	var fields []*Field
	add := func(f *Field) { fields = append(fields, f) }
	tagged := func(f *Field, tag string) *Field {
		f.SetProperty(PropBibtex, tag)
		return f
	}

	title := mustField("title", "Title", TypeLine)
	title.SetFlags(NoDelete)
	title.SetFormat(FormatTitle)
	add(tagged(title, "title"))

	entryType := mustChoiceField("entry-type", "Entry Type", []string{
		"article", "book", "booklet", "inbook", "incollection",
		"inproceedings", "manual", "mastersthesis", "misc", "phdthesis",
		"proceedings", "techreport", "unpublished", "periodical", "conference",
	})
	entryType.SetFlags(AllowGrouped | NoDelete)
	add(tagged(entryType, "entry-type"))

	author := mustField("author", "Author", TypeLine)
	author.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	author.SetFormat(FormatName)
	add(tagged(author, "author"))

	key := mustField("bibtex-key", "Bibtex Key", TypeLine)
	key.SetFlags(NoDelete)
	add(tagged(key, "key"))

	booktitle := mustField("booktitle", "Book Title", TypeLine)
	booktitle.SetFormat(FormatTitle)
	add(tagged(booktitle, "booktitle"))

	editor := mustField("editor", "Editor", TypeLine)
	editor.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	editor.SetFormat(FormatName)
	add(tagged(editor, "editor"))

	organization := mustField("organization", "Organization", TypeLine)
	organization.SetFlags(AllowCompletion | AllowGrouped)
	organization.SetFormat(FormatPlain)
	add(tagged(organization, "organization"))

	publisher := mustField("publisher", "Publisher", TypeLine)
	publisher.SetCategory(categoryPublishing)
	publisher.SetFlags(AllowCompletion | AllowGrouped)
	publisher.SetFormat(FormatPlain)
	add(tagged(publisher, "publisher"))

	edition := mustField("edition", "Edition", TypeLine)
	edition.SetCategory(categoryPublishing)
	edition.SetFlags(AllowCompletion)
	add(tagged(edition, "edition"))

	// not a number, pages can carry latex commands like "1--20"
	pages := mustField("pages", "Pages", TypeLine)
	pages.SetCategory(categoryPublishing)
	add(tagged(pages, "pages"))

	year := mustField("year", "Year", TypeNumber)
	year.SetCategory(categoryPublishing)
	year.SetFlags(AllowGrouped)
	add(tagged(year, "year"))

	journal := mustField("journal", "Journal", TypeLine)
	journal.SetCategory(categoryPublishing)
	journal.SetFlags(AllowCompletion | AllowGrouped)
	journal.SetFormat(FormatPlain)
	add(tagged(journal, "journal"))

	month := mustField("month", "Month", TypeLine)
	month.SetCategory(categoryPublishing)
	month.SetFlags(AllowCompletion)
	add(tagged(month, "month"))

	number := mustField("number", "Number", TypeLine)
	number.SetCategory(categoryPublishing)
	add(tagged(number, "number"))

	howPublished := mustField("howpublished", "How Published", TypeLine)
	howPublished.SetCategory(categoryPublishing)
	add(tagged(howPublished, "howpublished"))

	chapter := mustField("chapter", "Chapter", TypeNumber)
	chapter.SetCategory(categoryClass)
	add(tagged(chapter, "chapter"))

	series := mustField("series", "Series", TypeLine)
	series.SetCategory(categoryClass)
	series.SetFlags(AllowCompletion | AllowGrouped)
	series.SetFormat(FormatTitle)
	add(tagged(series, "series"))

	volume := mustField("volume", "Volume", TypeNumber)
	volume.SetCategory(categoryClass)
	add(tagged(volume, "volume"))

	crossref := mustField("crossref", "Cross-Reference", TypeLine)
	crossref.SetCategory(categoryClass)
	add(tagged(crossref, "crossref"))

	keyword := mustField("keyword", "Keywords", TypeLine)
	keyword.SetCategory(categoryClass)
	keyword.SetFlags(AllowCompletion | AllowMultiple | AllowGrouped)
	add(tagged(keyword, "keywords"))

	url := mustField("url", "URL", TypeURL)
	url.SetCategory(categoryClass)
	add(tagged(url, "url"))

	abstract := mustField("abstract", "Abstract", TypePara)
	add(tagged(abstract, "abstract"))

	note := mustField("note", "Notes", TypePara)
	add(tagged(note, "note"))

	return fields
}
