package translate

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/curiocat/curio/internal/model"
)

// xmlNode is a generic element tree. Entry field names are dynamic, so
// the document cannot be decoded into fixed structs.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []xmlNode  `xml:",any"`
	Text     string     `xml:",chardata"`
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *xmlNode) attrOr(name, fallback string) string {
	if v, ok := n.attr(name); ok {
		return v
	}
	return fallback
}

func (n *xmlNode) intAttr(name string, fallback int) int {
	v, ok := n.attr(name)
	if !ok {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func (n *xmlNode) text() string { return strings.TrimSpace(n.Text) }

func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// descendants collects every element with the given name, depth first.
func (n *xmlNode) descendants(name string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == name {
			out = append(out, c)
		}
		out = append(out, c.descendants(name)...)
	}
	return out
}

// XMLImporter reads a native XML document, migrating older syntax
// versions up to the current one on the fly.
type XMLImporter struct {
	Progress Progress
	Cancel   Cancel

	r        io.Reader
	registry *model.Registry
	messages []string
	images   map[string][]byte
	coll     *model.Collection
	loaded   bool
}

// NewXMLImporter reads from r using the default collection registry.
func NewXMLImporter(r io.Reader) *XMLImporter {
	return &XMLImporter{r: r, registry: model.NewRegistry()}
}

// Messages returns the non-fatal issues found while loading.
func (im *XMLImporter) Messages() []string { return im.messages }

// Images returns embedded image data keyed by id.
func (im *XMLImporter) Images() map[string][]byte { return im.images }

func (im *XMLImporter) message(format string, args ...any) {
	im.messages = append(im.messages, fmt.Sprintf(format, args...))
}

// Collection parses the document. On any error no collection is
// returned; the document is loaded completely or not at all.
func (im *XMLImporter) Collection() (*model.Collection, error) {
	if im.loaded {
		return im.coll, nil
	}

	var root xmlNode
	if err := xml.NewDecoder(im.r).Decode(&root); err != nil {
		return nil, &ParseError{Format: "xml", Reason: err.Error()}
	}
	if root.XMLName.Local != rootElement {
		return nil, &ParseError{Format: "xml",
			Reason: fmt.Sprintf("unexpected root element %q", root.XMLName.Local)}
	}

	// the version attribute was renamed to syntaxVersion in version 3
	verStr, ok := root.attr("syntaxVersion")
	if !ok {
		verStr, ok = root.attr("version")
	}
	if !ok {
		return nil, &ParseError{Format: "xml", Reason: "missing syntax version attribute"}
	}
	version, err := strconv.Atoi(verStr)
	if err != nil {
		return nil, &ParseError{Format: "xml",
			Reason: fmt.Sprintf("bad syntax version %q", verStr)}
	}
	if version > syntaxVersion {
		return nil, &FormatVersionError{Version: version, Supported: syntaxVersion}
	}

	collElem := root.child("collection")
	if collElem == nil {
		return nil, &ParseError{Format: "xml", Reason: "no collection element"}
	}

	coll, err := im.load(version, collElem)
	if err != nil {
		return nil, err
	}
	im.coll = coll
	im.loaded = true
	return coll, nil
}

func (im *XMLImporter) load(version int, collElem *xmlNode) (*model.Collection, error) {
	fieldElemName := "field"
	entryElemName := "entry"
	if version < 4 {
		// older documents named fields "attribute" and entries after the
		// collection's unit name
		fieldElemName = "attribute"
		entryElemName = collElem.attrOr("unit", "entry")
	}
	fieldElems := collElem.descendants(fieldElemName)

	// when the document carries no schema, or a schema that does not
	// start with the title field, start from the type defaults
	addDefaults := len(fieldElems) == 0
	if !addDefaults {
		name, _ := fieldElems[0].attr("name")
		addDefaults = name != "title"
	}

	var ctype model.CollectionType
	if version < 4 {
		var ok bool
		ctype, ok = model.ParseCollectionType(collElem.attrOr("unit", "base"))
		if !ok {
			ctype = model.TypeBase
		}
	} else {
		ctype = model.CollectionType(collElem.intAttr("type", int(model.TypeBase)))
	}

	coll, err := im.registry.New(ctype, collElem.attrOr("title", ""), addDefaults)
	if err != nil {
		return nil, &ParseError{Format: "xml", Reason: err.Error()}
	}

	for _, elem := range fieldElems {
		if err := im.readField(version, coll, elem); err != nil {
			return nil, err
		}
	}

	if bc := model.BibtexOf(coll); bc != nil {
		for _, elem := range collElem.descendants("macro") {
			bc.AddMacro(elem.attrOr("name", ""), elem.text())
		}
		if pre := collElem.child("bibtex-preamble"); pre != nil {
			bc.SetPreamble(pre.text())
		}
	}

	im.readImages(collElem)

	// old book collections carrying a citation key field are really
	// bibliographies
	if version < 4 && coll.Type() == model.TypeBook && coll.HasField("bibtex-id") {
		bc, err := model.ConvertBookCollection(coll)
		if err != nil {
			return nil, &ParseError{Format: "xml", Reason: err.Error()}
		}
		coll = bc.Collection
	}

	entryElems := collElem.descendants(entryElemName)
	total := len(entryElems)
	for i, elem := range entryElems {
		if im.Cancel != nil && im.Cancel() {
			im.message("import cancelled after %d of %d entries", i, total)
			break
		}
		im.readEntry(version, coll, elem)
		if im.Progress != nil {
			im.Progress(i+1, total)
		}
	}

	return coll, nil
}

func (im *XMLImporter) readField(version int, coll *model.Collection, elem *xmlNode) error {
	name := elem.attrOr("name", "unknown")
	title := elem.attrOr("title", "Unknown")
	ftype := model.FieldType(elem.intAttr("type", int(model.TypeLine)))

	var f *model.Field
	var err error
	if ftype == model.TypeChoice {
		allowed := strings.Split(elem.attrOr("allowed", ""), ";")
		f, err = model.NewChoiceField(name, title, allowed)
	} else {
		f, err = model.NewField(name, title, ftype)
	}
	if err != nil {
		return &ParseError{Format: "xml", Reason: err.Error()}
	}

	if cat, ok := elem.attr("category"); ok {
		// old categories carried keyboard accelerator markers
		f.SetCategory(strings.ReplaceAll(cat, "&", ""))
	}

	flags := model.FieldFlag(elem.intAttr("flags", int(f.Flags())))
	// flag values were renumbered in version 3; the only affected custom
	// field is the citation key
	if version < 3 && name == "bibtex-id" {
		flags = 0
	}
	// version 4 introduced delete protection; older title fields get it
	if version < 4 && name == "title" {
		flags |= model.NoDelete
	}
	f.SetFlags(flags)

	format := model.FormatFlag(elem.intAttr("format", int(model.FormatPlain)))
	// before the format flag existed, the title field implied title
	// formatting
	if version < 3 && name == "title" {
		format = model.FormatTitle
	}
	f.SetFormat(format)

	if desc, ok := elem.attr("description"); ok {
		f.SetDescription(desc)
	}
	if tag, ok := elem.attr("bibtex-field"); ok {
		f.SetProperty(model.PropBibtex, tag)
	}
	for _, prop := range elem.descendants("prop") {
		if propName, ok := prop.attr("name"); ok {
			f.SetProperty(propName, prop.text())
		}
	}

	if err := coll.AddField(f); err != nil {
		// duplicates of default fields are fine, the default wins
		im.message("skipping duplicate field %q", name)
	}
	return nil
}

func (im *XMLImporter) readEntry(version int, coll *model.Collection, elem *xmlNode) {
	e := model.NewEntry(coll)
	for i := range elem.Children {
		child := &elem.Children[i]
		name := child.XMLName.Local

		if len(child.Children) == 0 {
			text := child.text()
			// old boolean values were presence-only
			if version < 4 && text == "" {
				text = "true"
			}
			// "keywords" became "keyword" in version 2
			if version < 2 && name == "keywords" {
				name = "keyword"
			}
			e.SetField(name, text)
			continue
		}

		// pluralized wrapper around one element per value
		name = strings.TrimSuffix(name, "s")
		f := coll.FieldByName(name)
		if f == nil {
			continue
		}
		if f.Type() == model.TypeTable {
			e.SetField(name, model.JoinTable(readTableRows(f, child)))
		} else {
			var values []string
			for j := range child.Children {
				values = append(values, child.Children[j].text())
			}
			e.SetField(name, model.JoinValues(values))
		}
	}
	coll.AddEntry(e)
}

func readTableRows(f *model.Field, wrapper *xmlNode) []string {
	twoColumn := f.Columns() == 2
	var rows []string
	for i := range wrapper.Children {
		row := &wrapper.Children[i]
		if !twoColumn {
			rows = append(rows, row.text())
			continue
		}
		var columns []string
		for j := range row.Children {
			columns = append(columns, row.Children[j].text())
		}
		rows = append(rows, model.JoinRow(columns))
	}
	return rows
}

func (im *XMLImporter) readImages(collElem *xmlNode) {
	for _, elem := range collElem.descendants("image") {
		id, ok := elem.attr("id")
		if !ok {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(elem.text())
		if err != nil {
			im.message("discarding undecodable image %q", id)
			continue
		}
		if im.images == nil {
			im.images = make(map[string][]byte)
		}
		im.images[id] = data
	}
}
