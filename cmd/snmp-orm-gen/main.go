// Command snmp-orm-gen generates typed Go wrappers for device classes
// declared in a YAML schema document.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/snmp-orm/snmp-orm-go/pkg/devices"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

func main() {
	schemaPath := flag.String("schema", "", "Path to the class schema YAML")
	pkg := flag.String("package", "snmpdevices", "Package name of the generated file")
	output := flag.String("output", "", "Output path of the generated Go file")
	all := flag.Bool("all", false, "Also generate the built-in classes")
	flag.Parse()

	if *schemaPath == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: snmp-orm-gen -schema <path> -output <file.go> [-package <name>] [-all]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*schemaPath, *pkg, *output, *all); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaPath, pkg, output string, all bool) error {
	schemas, err := loadSchemas(schemaPath, all)
	if err != nil {
		return err
	}

	code, err := Generate(schemas, pkg, filepath.Base(schemaPath))
	if err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s (%d classes)\n", output, len(schemas))
	return nil
}

// loadSchemas registers the document on top of the built-in catalog, so
// classes may derive from built-in ones, and returns the classes to emit.
func loadSchemas(path string, all bool) ([]*schema.Schema, error) {
	doc, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	catalog, err := devices.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading built-in classes: %w", err)
	}
	if err := catalog.Load(doc); err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}

	if all {
		return catalog.Registry().Schemas(), nil
	}
	out := make([]*schema.Schema, 0, len(doc.Classes))
	for _, c := range doc.Classes {
		s, err := catalog.Schema(c.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
