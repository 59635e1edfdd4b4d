// Package device binds a resolved schema to one agent and exposes its
// management tree as named attributes.
//
// A Device owns one adapter, created from the class params merged with
// call-site overrides, and one Container per group. Device and Container
// both resolve attribute names against the schema:
//
//	d, err := device.New("10.0.0.1", s, device.WithParams(adapter.Params{"community": "private"}))
//	if err != nil {
//	    return err
//	}
//	defer d.Close()
//
//	system, _ := d.Container("system")
//	contact, err := system.GetAttribute(ctx, "sysContact")
//
// Scalar fields cost one get per read or write. Table fields return a
// TableProxy that fetches single rows on demand and walks the whole column
// once, on first use as a sequence.
//
// A Device is not safe for concurrent use; callers serialize access.
package device
