// Package inspect formats device attributes, walk results and schemas for
// display.
package inspect

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowOIDs includes field OIDs alongside names.
	ShowOIDs bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{IndentWidth: 2}
}

// Indent returns content indented to depth.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats one decoded value.
func (f *Formatter) FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		if printable(v) {
			return fmt.Sprintf("%q", v)
		}
		return fmt.Sprintf("0x%x", v)
	case time.Duration:
		return FormatTimeTicks(v)
	case oid.OID:
		return v.String()
	case net.HardwareAddr:
		return v.String()
	case netip.Addr:
		return v.String()
	case *device.Rows:
		return f.formatRowsInline(v)
	case *device.TableProxy:
		if !v.Loaded() {
			return "<table " + v.Field().Name() + ">"
		}
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (f *Formatter) formatRowsInline(r *device.Rows) string {
	parts := make([]string, 0, r.Len())
	for _, row := range r.Slice() {
		parts = append(parts, row.Index.String()+"="+f.FormatValue(row.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FormatTimeTicks formats an uptime like "3d 04:05:06.78".
func FormatTimeTicks(d time.Duration) string {
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	cs := d / (10 * time.Millisecond)

	clock := fmt.Sprintf("%02d:%02d:%02d.%02d", h, m, s, cs)
	if days > 0 {
		return fmt.Sprintf("%dd %s", days, clock)
	}
	return clock
}

// FormatEntries formats the result of a group walk, one attribute per line
// and one indented line per table row.
func (f *Formatter) FormatEntries(group *schema.Group, entries []device.Entry) string {
	if len(entries) == 0 {
		return f.Indent(1, "(no values)") + "\n"
	}

	var sb strings.Builder
	for _, e := range entries {
		name := e.Name
		if f.ShowOIDs && group != nil {
			if fd, ok := group.Field(e.Name); ok {
				name = fmt.Sprintf("%s [%s]", name, fd.OID())
			}
		}

		rows, isTable := e.Value.(*device.Rows)
		if !isTable {
			sb.WriteString(f.Indent(1, fmt.Sprintf("%s: %s\n", name, f.FormatValue(e.Value))))
			continue
		}
		sb.WriteString(f.Indent(1, fmt.Sprintf("%s: (%d rows)\n", name, rows.Len())))
		sb.WriteString(f.FormatRows(2, rows))
	}
	return sb.String()
}

// FormatRows formats table rows at depth, one per line.
func (f *Formatter) FormatRows(depth int, rows *device.Rows) string {
	var sb strings.Builder
	for _, row := range rows.Slice() {
		sb.WriteString(f.Indent(depth, fmt.Sprintf("[%s] %s\n", row.Index, f.FormatValue(row.Value))))
	}
	return sb.String()
}

// FormatSchema describes a resolved class: lineage, params, fields and groups.
func (f *Formatter) FormatSchema(s *schema.Schema) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", s.Name())
	if id := s.ClassID(); len(id) > 0 {
		fmt.Fprintf(&sb, " (classId %s)", id)
	}
	sb.WriteString("\n")
	if d := s.Description(); d != "" {
		sb.WriteString(f.Indent(1, d+"\n"))
	}
	sb.WriteString(f.Indent(1, "lineage: "+strings.Join(s.Lineage(), " > ")+"\n"))

	for _, field := range s.Fields() {
		sb.WriteString(f.formatField(1, field))
	}
	for _, g := range s.Groups() {
		switch g.Kind() {
		case schema.GroupComputed:
			sb.WriteString(f.Indent(1, fmt.Sprintf("group %s (computed)\n", g.Name())))
			for _, p := range g.Properties() {
				sb.WriteString(f.Indent(2, p.Name+"\n"))
			}
		default:
			sb.WriteString(f.Indent(1, fmt.Sprintf("group %s [%s]\n", g.Name(), g.Prefix())))
			for _, field := range g.Fields() {
				sb.WriteString(f.formatField(2, field))
			}
		}
	}
	return sb.String()
}

func (f *Formatter) formatField(depth int, field *schema.Field) string {
	line := fmt.Sprintf("%s %s", field.Kind(), field.Name())
	if f.ShowOIDs {
		line += " [" + field.OID().String() + "]"
	}
	return f.Indent(depth, line+"\n")
}
