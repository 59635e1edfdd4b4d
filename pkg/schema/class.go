package schema

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Schema errors.
var (
	ErrMalformedDeclaration  = errors.New("malformed declaration")
	ErrUnknownClass          = errors.New("unknown class")
	ErrUnknownParent         = errors.New("unknown parent class")
	ErrDuplicateClass        = errors.New("duplicate class")
	ErrInconsistentHierarchy = errors.New("inconsistent class hierarchy")
)

// Class is the declaration set of one device class.
type Class struct {
	// Name identifies the class within a Registry.
	Name string

	// Parents lists the direct parent classes, most significant first.
	Parents []string

	// ClassID is the sysObjectID prefix of devices of this class (optional).
	ClassID oid.OID

	// Description is a human-readable description.
	Description string

	// Fields are scalar and table fields addressed directly on the device.
	Fields []*Field

	// Groups are the walkable (or computed) attribute groups.
	Groups []*Group

	// Params are adapter connection parameters (community, version, ...).
	// Keys must be identifiers; keys starting with '_' are private and ignored.
	Params map[string]any
}

var paramKey = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Schema is the resolved, immutable schema of one class.
type Schema struct {
	name        string
	classID     oid.OID
	description string
	lineage     []string

	fields      map[string]*Field
	fieldOrder  []string
	fieldOrigin map[string]string

	groups      map[string]*Group
	groupOrder  []string
	groupOrigin map[string]string
	declared    []string

	params map[string]any
}

// Build resolves a chain of classes ordered root first; the last class is
// the one being built. Later classes override earlier ones on name
// collisions for fields, groups and params alike.
//
// All declaration problems of the chain are reported together; each one
// wraps ErrMalformedDeclaration.
func Build(chain ...*Class) (*Schema, error) {
	if len(chain) == 0 || chain[len(chain)-1] == nil {
		return nil, fmt.Errorf("%w: empty class chain", ErrMalformedDeclaration)
	}
	self := chain[len(chain)-1]

	s := &Schema{
		name:        self.Name,
		classID:     self.ClassID.Clone(),
		description: self.Description,
		fields:      make(map[string]*Field),
		fieldOrigin: make(map[string]string),
		groups:      make(map[string]*Group),
		groupOrigin: make(map[string]string),
		params:      make(map[string]any),
	}

	var errs *multierror.Error
	for _, c := range chain {
		if c == nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: nil class in chain of %s", ErrMalformedDeclaration, self.Name))
			continue
		}
		s.lineage = append(s.lineage, c.Name)

		seen := make(map[string]bool, len(c.Fields))
		for _, f := range c.Fields {
			if err := checkField(c.Name, f, seen); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			s.putField(f, c.Name)
		}

		for _, g := range c.Groups {
			if err := checkGroup(c.Name, g); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			s.putGroup(g, c.Name)
		}

		params, err := checkParams(c)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		maps.Copy(s.params, params)
	}

	for _, g := range self.Groups {
		if g != nil && s.groupOrigin[g.name] == self.Name {
			s.declared = append(s.declared, g.name)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) putField(f *Field, origin string) {
	if _, exists := s.fields[f.name]; !exists {
		s.fieldOrder = append(s.fieldOrder, f.name)
	}
	s.fields[f.name] = f
	s.fieldOrigin[f.name] = origin
}

func (s *Schema) putGroup(g *Group, origin string) {
	if _, exists := s.groups[g.name]; !exists {
		s.groupOrder = append(s.groupOrder, g.name)
	}
	s.groups[g.name] = g
	s.groupOrigin[g.name] = origin
}

func checkField(class string, f *Field, seen map[string]bool) error {
	switch {
	case f == nil:
		return fmt.Errorf("%w: class %s: nil field", ErrMalformedDeclaration, class)
	case f.name == "":
		return fmt.Errorf("%w: class %s: field without name", ErrMalformedDeclaration, class)
	case len(f.oid) == 0:
		return fmt.Errorf("%w: class %s: field %s has no oid", ErrMalformedDeclaration, class, f.name)
	case seen[f.name]:
		return fmt.Errorf("%w: class %s: field %s declared twice", ErrMalformedDeclaration, class, f.name)
	}
	seen[f.name] = true
	return nil
}

func checkGroup(class string, g *Group) error {
	if g == nil {
		return fmt.Errorf("%w: class %s: nil group", ErrMalformedDeclaration, class)
	}
	if g.name == "" {
		return fmt.Errorf("%w: class %s: group without name", ErrMalformedDeclaration, class)
	}
	if g.kind == GroupComputed {
		return nil
	}
	if len(g.prefix) == 0 {
		return fmt.Errorf("%w: class %s: group %s has no prefix", ErrMalformedDeclaration, class, g.name)
	}

	var errs *multierror.Error
	if g.nils > 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: class %s: group %s: nil field", ErrMalformedDeclaration, class, g.name))
	}
	for _, f := range g.fields {
		if len(f.oid) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("%w: class %s: group %s: field without oid", ErrMalformedDeclaration, class, g.name))
			continue
		}
		// The walk only ever sees OIDs under the prefix.
		if !f.oid.HasPrefix(g.prefix) {
			slog.Warn("field lies outside its group prefix and will never be walked",
				"class", class, "group", g.name, "field", f.name,
				"oid", f.oid.String(), "prefix", g.prefix.String())
		}
	}
	return errs.ErrorOrNil()
}

func checkParams(c *Class) (map[string]any, error) {
	out := make(map[string]any, len(c.Params))
	var bad []string
	for k, v := range c.Params {
		if strings.HasPrefix(k, "_") {
			continue
		}
		if !paramKey.MatchString(k) {
			bad = append(bad, k)
			continue
		}
		out[k] = v
	}
	if len(bad) == 0 {
		return out, nil
	}

	sort.Strings(bad)
	var errs *multierror.Error
	for _, k := range bad {
		errs = multierror.Append(errs, fmt.Errorf("%w: class %s: parameter key %q is not an identifier", ErrMalformedDeclaration, c.Name, k))
	}
	return out, errs.ErrorOrNil()
}

// Name returns the class name.
func (s *Schema) Name() string { return s.name }

// ClassID returns the sysObjectID prefix declared by the class itself.
func (s *Schema) ClassID() oid.OID { return s.classID.Clone() }

// Description returns the class description.
func (s *Schema) Description() string { return s.description }

// Lineage returns the class chain the schema was built from, root first.
func (s *Schema) Lineage() []string { return append([]string(nil), s.lineage...) }

// Field returns the resolved device-level field called name.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns the resolved device-level fields in first-declaration order.
func (s *Schema) Fields() []*Field {
	out := make([]*Field, len(s.fieldOrder))
	for i, name := range s.fieldOrder {
		out[i] = s.fields[name]
	}
	return out
}

// FieldOrigin returns the class whose declaration of field name won.
func (s *Schema) FieldOrigin(name string) (string, bool) {
	c, ok := s.fieldOrigin[name]
	return c, ok
}

// Group returns the resolved group called name.
func (s *Schema) Group(name string) (*Group, bool) {
	g, ok := s.groups[name]
	return g, ok
}

// Groups returns the resolved groups in first-declaration order.
func (s *Schema) Groups() []*Group {
	out := make([]*Group, len(s.groupOrder))
	for i, name := range s.groupOrder {
		out[i] = s.groups[name]
	}
	return out
}

// GroupNames returns the resolved group names in first-declaration order.
func (s *Schema) GroupNames() []string {
	return append([]string(nil), s.groupOrder...)
}

// GroupOrigin returns the class whose declaration of group name won.
func (s *Schema) GroupOrigin(name string) (string, bool) {
	c, ok := s.groupOrigin[name]
	return c, ok
}

// DeclaredGroups returns the groups declared directly on the class.
func (s *Schema) DeclaredGroups() []string {
	return append([]string(nil), s.declared...)
}

// Params returns a copy of the merged adapter parameters.
func (s *Schema) Params() map[string]any {
	return maps.Clone(s.params)
}
