package translate

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/curiocat/curio/internal/model"
)

// The native document format.
//
// Version history:
//
//	2 changed "keywords" to "keyword" and moved multi-values to
//	  repeated child elements
//	3 broke the format flag out of the field flags and renamed the
//	  version attribute to syntaxVersion
//	4 renamed "attribute" elements to "field", "unit" entries to
//	  "entry", added the bibtex-field attribute, and made boolean
//	  values explicit "true" text
const (
	rootElement   = "curio"
	syntaxVersion = 4
)

// XMLExporter writes a collection as a version-4 native XML document.
type XMLExporter struct {
	// FormatValues exports display-formatted values instead of the raw
	// stored values.
	FormatValues bool
	// EncodeUTF8 adds an explicit UTF-8 encoding declaration.
	EncodeUTF8 bool
	// Images maps image ids to raw image data, embedded base64.
	Images map[string][]byte

	Progress Progress
	Cancel   Cancel
}

// Export writes the document. A cancelled export stops at an entry
// boundary and returns without error; the output is then truncated but
// well formed up to the last entry written.
func (x *XMLExporter) Export(c *model.Collection, w io.Writer) error {
	if x.EncodeUTF8 {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return fmt.Errorf("write xml header: %w", err)
		}
	} else {
		if _, err := io.WriteString(w, "<?xml version=\"1.0\"?>\n"); err != nil {
			return fmt.Errorf("write xml header: %w", err)
		}
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", " ")

	root := xml.StartElement{
		Name: xml.Name{Local: rootElement},
		Attr: []xml.Attr{attr("syntaxVersion", strconv.Itoa(syntaxVersion))},
	}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("write root element: %w", err)
	}

	if err := x.writeCollection(enc, c); err != nil {
		return err
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("close root element: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (x *XMLExporter) writeCollection(enc *xml.Encoder, c *model.Collection) error {
	coll := xml.StartElement{
		Name: xml.Name{Local: "collection"},
		Attr: []xml.Attr{
			attr("type", strconv.Itoa(int(c.Type()))),
			attr("title", c.Title()),
		},
	}
	if err := enc.EncodeToken(coll); err != nil {
		return err
	}

	fields := xml.StartElement{Name: xml.Name{Local: "fields"}}
	if err := enc.EncodeToken(fields); err != nil {
		return err
	}
	for _, f := range c.Fields() {
		if err := writeField(enc, f); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(fields.End()); err != nil {
		return err
	}

	if bc := model.BibtexOf(c); bc != nil {
		if err := writeBibtexExtras(enc, bc); err != nil {
			return err
		}
	}

	if err := x.writeImages(enc); err != nil {
		return err
	}

	total := c.EntryCount()
	for i, e := range c.Entries() {
		if x.Cancel != nil && x.Cancel() {
			break
		}
		if err := x.writeEntry(enc, c, e); err != nil {
			return err
		}
		if x.Progress != nil {
			x.Progress(i+1, total)
		}
	}

	return enc.EncodeToken(coll.End())
}

func writeField(enc *xml.Encoder, f *model.Field) error {
	attrs := []xml.Attr{
		attr("name", f.Name()),
		attr("title", f.Title()),
		attr("category", f.Category()),
		attr("type", strconv.Itoa(int(f.Type()))),
		attr("flags", strconv.Itoa(int(f.Flags()))),
		attr("format", strconv.Itoa(int(f.Format()))),
	}
	if f.Type() == model.TypeChoice {
		attrs = append(attrs, attr("allowed", strings.Join(f.Allowed(), ";")))
	}
	if tag := f.Property(model.PropBibtex); tag != "" {
		attrs = append(attrs, attr("bibtex-field", tag))
	}
	if desc := f.Description(); desc != "" && desc != f.Title() {
		attrs = append(attrs, attr("description", desc))
	}

	elem := xml.StartElement{Name: xml.Name{Local: "field"}, Attr: attrs}
	if err := enc.EncodeToken(elem); err != nil {
		return err
	}
	// The property bag rides along as prop children. The bibtex tag
	// already went out as an attribute.
	props := f.Properties()
	names := make([]string, 0, len(props))
	for name := range props {
		if name != model.PropBibtex {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writeTextElement(enc, "prop", props[name], attr("name", name)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(elem.End())
}

func writeBibtexExtras(enc *xml.Encoder, bc *model.BibtexCollection) error {
	if pre := bc.Preamble(); pre != "" {
		if err := writeTextElement(enc, "bibtex-preamble", pre); err != nil {
			return err
		}
	}

	var names []string
	for _, name := range bc.MacroNames() {
		if bc.Macro(name) != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	macros := xml.StartElement{Name: xml.Name{Local: "macros"}}
	if err := enc.EncodeToken(macros); err != nil {
		return err
	}
	for _, name := range names {
		if err := writeTextElement(enc, "macro", bc.Macro(name), attr("name", name)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(macros.End())
}

func (x *XMLExporter) writeImages(enc *xml.Encoder) error {
	if len(x.Images) == 0 {
		return nil
	}
	ids := make([]string, 0, len(x.Images))
	for id := range x.Images {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	images := xml.StartElement{Name: xml.Name{Local: "images"}}
	if err := enc.EncodeToken(images); err != nil {
		return err
	}
	for _, id := range ids {
		data := base64.StdEncoding.EncodeToString(x.Images[id])
		if err := writeTextElement(enc, "image", data, attr("id", id)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(images.End())
}

func (x *XMLExporter) writeEntry(enc *xml.Encoder, c *model.Collection, e *model.Entry) error {
	elem := xml.StartElement{Name: xml.Name{Local: "entry"}}
	if err := enc.EncodeToken(elem); err != nil {
		return err
	}

	for _, f := range c.Fields() {
		var value string
		if x.FormatValues {
			value = e.FormattedField(f.Name())
		} else {
			value = e.Field(f.Name())
		}
		if value == "" {
			continue
		}

		if !f.HasFlag(model.AllowMultiple) {
			if err := writeTextElement(enc, f.Name(), value); err != nil {
				return err
			}
			continue
		}

		// Multi-value fields nest singular children inside a
		// pluralized wrapper.
		wrapper := xml.StartElement{Name: xml.Name{Local: f.Name() + "s"}}
		if err := enc.EncodeToken(wrapper); err != nil {
			return err
		}
		if f.Type() == model.TypeTable {
			twoColumn := f.Columns() == 2
			for _, row := range model.SplitTable(value) {
				if twoColumn {
					if err := writeTableRow(enc, f.Name(), row); err != nil {
						return err
					}
					continue
				}
				if err := writeTextElement(enc, f.Name(), row); err != nil {
					return err
				}
			}
		} else {
			for _, v := range model.SplitValues(value) {
				if err := writeTextElement(enc, f.Name(), v); err != nil {
					return err
				}
			}
		}
		if err := enc.EncodeToken(wrapper.End()); err != nil {
			return err
		}
	}

	return enc.EncodeToken(elem.End())
}

func writeTableRow(enc *xml.Encoder, name, value string) error {
	row := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeToken(row); err != nil {
		return err
	}
	first, rest, _ := strings.Cut(value, model.ColumnDelimiter)
	if err := writeTextElement(enc, "column", first); err != nil {
		return err
	}
	if err := writeTextElement(enc, "column", rest); err != nil {
		return err
	}
	return enc.EncodeToken(row.End())
}

func writeTextElement(enc *xml.Encoder, name, text string, attrs ...xml.Attr) error {
	elem := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := enc.EncodeToken(elem); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(text)); err != nil {
		return err
	}
	return enc.EncodeToken(elem.End())
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
