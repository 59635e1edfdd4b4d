package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/snmp-orm/snmp-orm-go/pkg/codec"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// goTypes maps codec names to the Go type their Decode returns.
var goTypes = map[string]string{
	"string":     "string",
	"integer":    "int64",
	"unsigned":   "uint64",
	"truthvalue": "bool",
	"timeticks":  "time.Duration",
	"oid":        "oid.OID",
	"ipaddress":  "netip.Addr",
	"macaddress": "net.HardwareAddr",
}

// initialisms are kept upper case in Go names.
var initialisms = map[string]bool{
	"id": true, "ip": true, "mac": true, "oid": true, "cpu": true, "mtu": true,
}

// Generate renders typed wrappers for schemas into one Go file of package pkg.
// source names the input in the generated header.
func Generate(schemas []*schema.Schema, pkg, source string) (string, error) {
	data := fileData{Package: pkg, Source: source}
	names := make(map[string]string)
	claim := func(ident, owner string) error {
		if prev, ok := names[ident]; ok {
			return fmt.Errorf("%s: generated name %s already used by %s", owner, ident, prev)
		}
		names[ident] = owner
		return nil
	}

	for _, s := range schemas {
		c, err := buildClass(s)
		if err != nil {
			return "", err
		}
		for _, ident := range []string{c.Type, "As" + c.Type, "Class" + c.Type} {
			if err := claim(ident, "class "+s.Name()); err != nil {
				return "", err
			}
		}
		for _, g := range c.Groups {
			if err := claim(g.Type, "group "+s.Name()+"."+g.Name); err != nil {
				return "", err
			}
		}
		data.Classes = append(data.Classes, c)
	}

	var b strings.Builder
	renderTemplate(&b, "file", data)
	return b.String(), nil
}

func buildClass(s *schema.Schema) (classData, error) {
	c := classData{
		Type:        goName(s.Name()),
		Class:       s.Name(),
		Description: s.Description(),
	}
	methods := methodSet{owner: s.Name(), used: map[string]bool{"Device": true}}

	for _, f := range s.Fields() {
		a := accessor(f)
		if err := methods.add(a); err != nil {
			return c, err
		}
		c.Accessors = append(c.Accessors, a)
	}

	for _, g := range s.Groups() {
		gd := groupData{
			Type:        c.Type + goName(g.Name()),
			Name:        g.Name(),
			Method:      goName(g.Name()),
			Description: g.Description(),
		}
		if err := methods.claim(gd.Method); err != nil {
			return c, err
		}

		gm := methodSet{owner: s.Name() + "." + g.Name(), used: map[string]bool{"Container": true}}
		for _, f := range g.Fields() {
			a := accessor(f)
			if err := gm.add(a); err != nil {
				return c, err
			}
			gd.Accessors = append(gd.Accessors, a)
		}
		for _, p := range g.Properties() {
			a := accessorData{Method: goName(p.Name), Name: p.Name, GoType: "any"}
			if err := gm.add(a); err != nil {
				return c, err
			}
			gd.Accessors = append(gd.Accessors, a)
		}
		c.Groups = append(c.Groups, gd)
	}
	return c, nil
}

func accessor(f *schema.Field) accessorData {
	return accessorData{
		Method:      goName(f.Name()),
		Name:        f.Name(),
		GoType:      goType(f),
		Setter:      !f.IsTable(),
		Table:       f.IsTable(),
		OID:         f.OID().String(),
		Description: f.Description(),
	}
}

// goType returns the Go type of f's decoded values. Enumerations decode
// unknown numbers to int64, so they stay untyped like custom codecs.
func goType(f *schema.Field) string {
	if f.IsTable() {
		return "*device.TableProxy"
	}
	if t, ok := goTypes[codec.NameOf(f.Codec())]; ok {
		return t
	}
	return "any"
}

// methodSet detects generated methods that would clash on one type.
type methodSet struct {
	owner string
	used  map[string]bool
}

func (m *methodSet) claim(name string) error {
	if m.used[name] {
		return fmt.Errorf("%s: generated method %s clashes", m.owner, name)
	}
	m.used[name] = true
	return nil
}

func (m *methodSet) add(a accessorData) error {
	if err := m.claim(a.Method); err != nil {
		return err
	}
	if a.Setter {
		return m.claim("Set" + a.Method)
	}
	return nil
}

// goName converts a schema name to an exported Go identifier:
// "sysDescr" -> "SysDescr", "cpu_load" -> "CPULoad", "if-index" -> "IfIndex".
func goName(name string) string {
	var b strings.Builder
	for _, word := range splitWords(name) {
		if initialisms[strings.ToLower(word)] {
			b.WriteString(strings.ToUpper(word))
			continue
		}
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// splitWords splits on '_' and '-' only; camel case is preserved.
func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
}

// firstLower lowercases the first letter of a description.
func firstLower(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
