package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"firstLower": firstLower,
	"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
	"recv":       func(name string) string { return strings.ToLower(name[:1]) },
	"accessorScope": func(typ, embedded string, accessors []accessorData) map[string]any {
		return map[string]any{"Type": typ, "Embedded": embedded, "Accessors": accessors}
	},
	"groupScope": func(owner, recv string, g groupData) map[string]any {
		return map[string]any{"Owner": owner, "Recv": recv, "Group": g}
	},
}

// templates holds all parsed code generation templates.
var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	fileTmpl +
		classTmpl +
		groupTmpl +
		accessorsTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

// --- Template data types ---

// fileData holds everything generated into one file.
type fileData struct {
	Package string
	Source  string
	Classes []classData
}

type classData struct {
	Type        string
	Class       string
	Description string
	Accessors   []accessorData
	Groups      []groupData
}

type groupData struct {
	Type        string
	Name        string
	Method      string
	Description string
	Accessors   []accessorData
}

type accessorData struct {
	Method      string
	Name        string
	GoType      string
	Setter      bool
	Table       bool
	OID         string
	Description string
}

// --- Template definitions ---

const fileTmpl = `{{define "file"}}
// Code generated by snmp-orm-gen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
"context"
"fmt"
"net"
"net/netip"
"slices"
"time"

"github.com/snmp-orm/snmp-orm-go/pkg/device"
"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)
{{range .Classes}}{{template "class" .}}{{end}}
{{end}}`

const classTmpl = `{{define "class"}}
{{- $recv := recv .Type}}
// Class{{.Type}} is the class name of {{.Type}}.
const Class{{.Type}} = {{quote .Class}}

{{- if .Description}}

// {{.Type}} is a typed view of a device of class {{.Class}}: {{firstLower .Description}}.
{{- else}}

// {{.Type}} is a typed view of a device of class {{.Class}}.
{{- end}}
type {{.Type}} struct {
*device.Device
}

// As{{.Type}} wraps d, which must be of class {{.Class}} or derived from it.
func As{{.Type}}(d *device.Device) (*{{.Type}}, error) {
if !slices.Contains(d.Schema().Lineage(), Class{{.Type}}) {
return nil, fmt.Errorf("%s is not a %s", d, Class{{.Type}})
}
return &{{.Type}}{Device: d}, nil
}
{{template "accessors" (accessorScope .Type "Device" .Accessors)}}
{{- range .Groups}}{{template "group" (groupScope $.Type $recv .)}}{{end}}
{{end}}`

const groupTmpl = `{{define "group"}}
{{- $g := .Group}}
// {{$g.Method}} returns the {{$g.Name}} group.
func ({{.Recv}} *{{.Owner}}) {{$g.Method}}() *{{$g.Type}} {
// Derived classes keep every group of their parents.
grp, err := {{.Recv}}.Device.Container({{quote $g.Name}})
if err != nil {
panic(err)
}
return &{{$g.Type}}{Container: grp}
}

{{- if $g.Description}}

// {{$g.Type}} is the {{$g.Name}} group: {{firstLower $g.Description}}.
{{- else}}

// {{$g.Type}} is the {{$g.Name}} group.
{{- end}}
type {{$g.Type}} struct {
*device.Container
}
{{template "accessors" (accessorScope $g.Type "Container" $g.Accessors)}}
{{- end}}`

const accessorsTmpl = `{{define "accessors"}}
{{- $recv := recv .Type}}
{{- range .Accessors}}
{{if .Table}}
// {{.Method}} returns the {{.Name}} table ({{.OID}}).
{{- else if .OID}}
// {{.Method}} reads {{.Name}} ({{.OID}}).
{{- else}}
// {{.Method}} computes {{.Name}}.
{{- end}}
{{- if .Description}}
// {{.Description}}
{{- end}}
func ({{$recv}} *{{$.Type}}) {{.Method}}(ctx context.Context) ({{.GoType}}, error) {
return device.Value[{{.GoType}}](ctx, {{$recv}}.{{$.Embedded}}, {{quote .Name}})
}
{{- if .Setter}}

// Set{{.Method}} writes {{.Name}}.
func ({{$recv}} *{{$.Type}}) Set{{.Method}}(ctx context.Context, value {{.GoType}}) error {
return {{$recv}}.{{$.Embedded}}.SetAttribute(ctx, {{quote .Name}}, value)
}
{{- end}}
{{- end}}
{{end}}`
