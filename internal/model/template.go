package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field templates let a custom collection define its schema in a YAML
// file instead of code:
//
//	fields:
//	  - name: title
//	    title: Title
//	    type: line
//	    format: title
//	    flags: [nodelete]
//	  - name: platform
//	    title: Platform
//	    type: choice
//	    allowed: [PC, Mac, Linux]
//	    properties:
//	      bibtex: note

// fieldTemplateFile is the on-disk shape of a template document.
type fieldTemplateFile struct {
	Fields []fieldTemplate `yaml:"fields"`
}

type fieldTemplate struct {
	Name        string            `yaml:"name"`
	Title       string            `yaml:"title"`
	Type        string            `yaml:"type,omitempty"`
	Category    string            `yaml:"category,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Format      string            `yaml:"format,omitempty"`
	Flags       []string          `yaml:"flags,omitempty"`
	Allowed     []string          `yaml:"allowed,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
}

var templateTypes = map[string]FieldType{
	"":       TypeLine,
	"line":   TypeLine,
	"para":   TypePara,
	"choice": TypeChoice,
	"bool":   TypeBool,
	"number": TypeNumber,
	"url":    TypeURL,
	"table":  TypeTable,
	"image":  TypeImage,
	"date":   TypeDate,
	"rating": TypeRating,
}

var templateFlags = map[string]FieldFlag{
	"multiple":   AllowMultiple,
	"grouped":    AllowGrouped,
	"completion": AllowCompletion,
	"nodelete":   NoDelete,
	"noedit":     NoEdit,
	"derived":    Derived,
}

var templateFormats = map[string]FormatFlag{
	"":      FormatNone,
	"none":  FormatNone,
	"plain": FormatPlain,
	"title": FormatTitle,
	"name":  FormatName,
	"date":  FormatDate,
}

// LoadFieldTemplate reads a YAML field template file and returns the
// field list it describes.
func LoadFieldTemplate(path string) ([]*Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field template %s: %w", path, err)
	}
	return ParseFieldTemplate(data)
}

// ParseFieldTemplate parses a YAML field template document.
func ParseFieldTemplate(data []byte) ([]*Field, error) {
	var file fieldTemplateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse field template: %w", err)
	}
	if len(file.Fields) == 0 {
		return nil, fmt.Errorf("field template defines no fields")
	}

	var fields []*Field
	for _, t := range file.Fields {
		f, err := t.build()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (t fieldTemplate) build() (*Field, error) {
	ftype, ok := templateTypes[t.Type]
	if !ok {
		return nil, fmt.Errorf("field %q: unknown type %q", t.Name, t.Type)
	}
	title := t.Title
	if title == "" {
		title = t.Name
	}

	var f *Field
	var err error
	if ftype == TypeChoice {
		f, err = NewChoiceField(t.Name, title, t.Allowed)
	} else {
		f, err = NewField(t.Name, title, ftype)
	}
	if err != nil {
		return nil, err
	}

	if t.Category != "" {
		f.SetCategory(t.Category)
	}
	if t.Description != "" {
		f.SetDescription(t.Description)
	}
	format, ok := templateFormats[t.Format]
	if !ok {
		return nil, fmt.Errorf("field %q: unknown format %q", t.Name, t.Format)
	}
	f.SetFormat(format)

	var flags FieldFlag
	for _, name := range t.Flags {
		flag, ok := templateFlags[name]
		if !ok {
			return nil, fmt.Errorf("field %q: unknown flag %q", t.Name, name)
		}
		flags |= flag
	}
	f.SetFlags(f.Flags() | flags)

	for k, v := range t.Properties {
		f.SetProperty(k, v)
	}
	return f, nil
}
