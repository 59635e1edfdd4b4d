package schema

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/snmp-orm/snmp-orm-go/pkg/codec"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Document is a YAML schema document holding one or more classes.
type Document struct {
	Classes []ClassDef `yaml:"classes"`
}

// ClassDef is the YAML form of a Class.
type ClassDef struct {
	Name        string         `yaml:"name"`
	Parents     []string       `yaml:"parents"`
	ClassID     string         `yaml:"classId"`
	Description string         `yaml:"description"`
	Params      map[string]any `yaml:"params"`
	Fields      []FieldDef     `yaml:"fields"`
	Groups      []GroupDef     `yaml:"groups"`
}

// FieldDef is the YAML form of a Field.
type FieldDef struct {
	Name        string           `yaml:"name"`
	OID         string           `yaml:"oid"`
	Codec       string           `yaml:"codec"` // registered codec name, "raw" when empty
	Table       bool             `yaml:"table"`
	Enum        map[int64]string `yaml:"enum"` // implies the enum codec
	Description string           `yaml:"description"`
}

// GroupDef is the YAML form of a walked Group.
type GroupDef struct {
	Name        string     `yaml:"name"`
	Prefix      string     `yaml:"prefix"`
	Description string     `yaml:"description"`
	Fields      []FieldDef `yaml:"fields"`
}

// ParseDocument parses a schema document from YAML bytes.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema document: %w", err)
	}
	if len(doc.Classes) == 0 {
		return nil, errors.New("schema document declares no classes")
	}
	for i, c := range doc.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("schema document: class %d missing name", i)
		}
	}
	return &doc, nil
}

// LoadFile loads and parses a schema document from a file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseDocument(data)
}

// Declarations converts every class definition of the document.
func (d *Document) Declarations() ([]*Class, error) {
	out := make([]*Class, 0, len(d.Classes))
	var errs *multierror.Error
	for i := range d.Classes {
		c, err := d.Classes[i].Class()
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		out = append(out, c)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// Class converts the definition into a Class.
func (d *ClassDef) Class() (*Class, error) {
	c := &Class{
		Name:        d.Name,
		Parents:     append([]string(nil), d.Parents...),
		Description: d.Description,
		Params:      d.Params,
	}

	var errs *multierror.Error
	if d.ClassID != "" {
		id, err := oid.Parse(d.ClassID)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: class %s: classId: %w", ErrMalformedDeclaration, d.Name, err))
		}
		c.ClassID = id
	}

	for _, fd := range d.Fields {
		f, err := fd.field(d.Name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		c.Fields = append(c.Fields, f)
	}

	for _, gd := range d.Groups {
		g, err := gd.group(d.Name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		c.Groups = append(c.Groups, g)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *GroupDef) group(class string) (*Group, error) {
	if d.Prefix == "" {
		return nil, fmt.Errorf("%w: class %s: group %s has no prefix", ErrMalformedDeclaration, class, d.Name)
	}
	prefix, err := oid.Parse(d.Prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: class %s: group %s: %w", ErrMalformedDeclaration, class, d.Name, err)
	}

	var errs *multierror.Error
	fields := make([]*Field, 0, len(d.Fields))
	for _, fd := range d.Fields {
		f, err := fd.field(class + "." + d.Name)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		fields = append(fields, f)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return NewGroup(d.Name, prefix, fields...).WithDescription(d.Description), nil
}

func (d *FieldDef) field(scope string) (*Field, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("%w: %s: field without name", ErrMalformedDeclaration, scope)
	}
	o, err := oid.Parse(d.OID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: field %s: %w", ErrMalformedDeclaration, scope, d.Name, err)
	}

	var c codec.Codec
	switch {
	case len(d.Enum) > 0 && (d.Codec == "" || d.Codec == "enum"):
		c = codec.NewEnum(d.Enum)
	case d.Codec == "":
		c = codec.Raw
	default:
		c, err = codec.Lookup(d.Codec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: field %s: %w", ErrMalformedDeclaration, scope, d.Name, err)
		}
	}

	var f *Field
	if d.Table {
		f = NewTableField(d.Name, o, c)
	} else {
		f = NewField(d.Name, o, c)
	}
	if d.Description != "" {
		f = f.WithDescription(d.Description)
	}
	return f, nil
}

// LoadDocument registers every class of doc in document order.
func (r *Registry) LoadDocument(doc *Document) ([]*Schema, error) {
	classes, err := doc.Declarations()
	if err != nil {
		return nil, err
	}
	out := make([]*Schema, 0, len(classes))
	for _, c := range classes {
		s, err := r.Register(c)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}
