// Package schema declares the attributes of SNMP device classes and merges
// them into one resolved schema per class.
//
// # Declarations
//
// A Class is one declaration set: its own scalar and table fields, its
// groups and its adapter connection parameters, plus the names of its
// parent classes.
//
//	generic := &schema.Class{
//	    Name: "Generic",
//	    Groups: []*schema.Group{
//	        schema.NewGroup("system", oid.MustParse("1.3.6.1.2.1.1"),
//	            schema.NewField("sysContact", oid.MustParse("1.3.6.1.2.1.1.4.0"), codec.String),
//	        ),
//	    },
//	}
//
// # Resolution
//
// Build overlays an ordered chain of classes, root first. On a name
// collision the most-derived declaration wins. A Registry computes that
// chain from Parents (C3 method-resolution order) so callers only register
// classes in dependency order:
//
//	reg := schema.NewRegistry()
//	reg.MustRegister(generic)
//	s, err := reg.Register(&schema.Class{Name: "Switch", Parents: []string{"Generic"}})
//
// A resolved Schema never changes after Build and is safe for concurrent
// reads.
//
// # YAML
//
// Classes can be loaded from YAML documents with ParseDocument and
// Registry.LoadDocument. Codecs are referenced by their registered name.
package schema
