package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snmp-orm/snmp-orm-go/pkg/codec"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

const testDocument = `
classes:
  - name: Generic
    classId: 1.3.6.1.4.1
    params: {community: public, version: 2c, _note: ignored}
    fields:
      - {name: sysName, oid: 1.3.6.1.2.1.1.5.0, codec: string}
    groups:
      - name: system
        prefix: 1.3.6.1.2.1.1
        description: MIB-II system group
        fields:
          - {name: sysContact, oid: 1.3.6.1.2.1.1.4.0, codec: string}
          - {name: sysORDescr, oid: 1.3.6.1.2.1.1.9.1.3, codec: string, table: true}
  - name: Switch
    classId: 1.3.6.1.4.1.9
    parents: [Generic]
    fields:
      - name: ifAdminStatus
        oid: 1.3.6.1.2.1.2.2.1.7
        table: true
        enum: {1: up, 2: down, 3: testing}
`

func TestParseAndLoadDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(testDocument))
	require.NoError(t, err)
	require.Len(t, doc.Classes, 2)

	r := NewRegistry()
	schemas, err := r.LoadDocument(doc)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	sw := schemas[1]
	assert.Equal(t, "Switch", sw.Name())
	assert.Equal(t, oid.MustParse("1.3.6.1.4.1.9"), sw.ClassID())
	assert.Equal(t, map[string]any{"community": "public", "version": "2c"}, sw.Params())

	g, ok := sw.Group("system")
	require.True(t, ok)
	assert.Equal(t, "MIB-II system group", g.Description())
	assert.Equal(t, []string{"sysContact", "sysORDescr"}, g.FieldNames())
	descr, _ := g.Field("sysORDescr")
	assert.True(t, descr.IsTable())
	assert.Equal(t, codec.String, descr.Codec())

	status, ok := sw.Field("ifAdminStatus")
	require.True(t, ok)
	v, err := status.Decode(2)
	require.NoError(t, err)
	assert.Equal(t, "down", v)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "classes: [\n"},
		{"no classes", "classes: []\n"},
		{"class without name", "classes:\n  - parents: [A]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDocument([]byte(tt.data)); err == nil {
				t.Fatal("ParseDocument() expected error")
			}
		})
	}
}

func TestDeclarationErrors(t *testing.T) {
	doc, err := ParseDocument([]byte(`
classes:
  - name: Bad
    classId: 1.x
    fields:
      - {name: a, oid: 1.2.3, codec: nosuchcodec}
      - {name: b, oid: ""}
    groups:
      - {name: g}
`))
	require.NoError(t, err)

	_, err = doc.Declarations()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDeclaration))
	assert.True(t, errors.Is(err, codec.ErrUnknownCodec))
	assert.True(t, errors.Is(err, oid.ErrInvalid))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testDocument), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Generic", doc.Classes[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
