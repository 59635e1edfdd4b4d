package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/inspect"
)

// RunGet prints the attribute at path. Groups are walked and tables loaded.
func (a *App) RunGet(ctx context.Context, host, path string) error {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return err
	}
	return a.withDevice(ctx, host, func(d *device.Device) error {
		return a.PrintAttribute(ctx, a.out, d, p)
	})
}

// PrintAttribute writes the attribute at p to w. Groups are walked and
// tables loaded.
func (a *App) PrintAttribute(ctx context.Context, w io.Writer, d *device.Device, p inspect.Path) error {
	v, err := d.Get(ctx, p.String())
	if err != nil {
		return err
	}

	switch x := v.(type) {
	case *device.Container:
		return a.PrintWalk(ctx, w, x)
	case *device.TableProxy:
		return a.PrintTable(ctx, w, p, x, "")
	default:
		fmt.Fprintf(w, "%s = %s\n", p, a.formatter.FormatValue(x))
	}
	return nil
}

// RunSet writes value to the attribute at path and prints the value read back.
func (a *App) RunSet(ctx context.Context, host, path, value string) error {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return err
	}
	return a.withDevice(ctx, host, func(d *device.Device) error {
		if err := d.Set(ctx, p.String(), value); err != nil {
			return err
		}
		return a.PrintAttribute(ctx, a.out, d, p)
	})
}

// RunWalk prints every value of group.
func (a *App) RunWalk(ctx context.Context, host, group string) error {
	return a.withDevice(ctx, host, func(d *device.Device) error {
		c, err := d.Container(group)
		if err != nil {
			return err
		}
		return a.PrintWalk(ctx, a.out, c)
	})
}

// PrintWalk walks c and writes its values to w.
func (a *App) PrintWalk(ctx context.Context, w io.Writer, c *device.Container) error {
	entries, err := c.Walk(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s:\n", c.Name())
	fmt.Fprint(w, a.formatter.FormatEntries(c.Group(), entries))
	return nil
}

// RunTable prints the table at path, or a single row when index is set.
func (a *App) RunTable(ctx context.Context, host, path, index string) error {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return err
	}
	return a.withDevice(ctx, host, func(d *device.Device) error {
		v, err := d.Get(ctx, p.String())
		if err != nil {
			return err
		}
		table, ok := v.(*device.TableProxy)
		if !ok {
			return fmt.Errorf("%s is not a table", p)
		}
		return a.PrintTable(ctx, a.out, p, table, index)
	})
}

// PrintTable writes every row of table to w, or the single row at index
// when index is set.
func (a *App) PrintTable(ctx context.Context, w io.Writer, p inspect.Path, table *device.TableProxy, index string) error {
	if index == "" {
		rows, err := table.Rows(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: (%d rows)\n", p, rows.Len())
		fmt.Fprint(w, a.formatter.FormatRows(1, rows))
		return nil
	}

	row, found, err := table.Get(ctx, index)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%s has no row %s", p, index)
	}
	fmt.Fprintf(w, "%s[%s] = %s\n", p, index, a.formatter.FormatValue(row))
	return nil
}

// RunPlayground reads system.sysContact and sets it to "Admin of <host>".
func (a *App) RunPlayground(ctx context.Context, host string) error {
	const path = "system.sysContact"
	return a.withDevice(ctx, host, func(d *device.Device) error {
		fmt.Fprintln(a.out, d)

		v, err := d.Get(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s = %s\n", path, a.formatter.FormatValue(v))

		if err := d.Set(ctx, path, "Admin of "+host); err != nil {
			return err
		}

		v, err = d.Get(ctx, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s = %s\n", path, a.formatter.FormatValue(v))
		return nil
	})
}

// RunClasses describes every registered class.
func (a *App) RunClasses() error {
	for i, s := range a.catalog.Registry().Schemas() {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprint(a.out, a.formatter.FormatSchema(s))
	}
	return nil
}
