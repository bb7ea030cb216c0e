package catalog

import (
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

//go:embed options.hcl
var schemaSource []byte

// schemaOption mirrors an `option` block in the schema file.
type schemaOption struct {
	Dest    string     `hcl:"dest,label"`
	Names   []string   `hcl:"names"`
	Type    string     `hcl:"type,optional"`
	Help    string     `hcl:"help,optional"`
	Basic   bool       `hcl:"basic,optional"`
	Hidden  bool       `hcl:"hidden,optional"`
	Default *cty.Value `hcl:"default,optional"`
}

// schemaGroup mirrors a `group` block in the schema file.
type schemaGroup struct {
	Name        string          `hcl:"name,label"`
	Description string          `hcl:"description,optional"`
	Options     []*schemaOption `hcl:"option,block"`
}

// schemaCompat mirrors the `compat` block holding legacy spelling tables.
type schemaCompat struct {
	Ignored    []string          `hcl:"ignored,optional"`
	Deprecated []string          `hcl:"deprecated,optional"`
	Renamed    map[string]string `hcl:"renamed,optional"`
	Aliases    map[string]string `hcl:"aliases,optional"`
}

// schemaRoot is the top-level structure of the schema file.
type schemaRoot struct {
	Options []*schemaOption `hcl:"option,block"`
	Groups  []*schemaGroup  `hcl:"group,block"`
	Compat  *schemaCompat   `hcl:"compat,block"`
}

// Load decodes the embedded option schema into an immutable Catalog.
func Load() (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(schemaSource, "options.hcl")
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse option schema: %w", diags)
	}

	var root schemaRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode option schema: %w", diags)
	}

	cat := &Catalog{}
	for _, so := range root.Options {
		opt, err := buildOption(so)
		if err != nil {
			return nil, err
		}
		cat.TopLevel = append(cat.TopLevel, opt)
	}
	for _, sg := range root.Groups {
		group := &Group{Name: sg.Name, Description: sg.Description}
		for _, so := range sg.Options {
			opt, err := buildOption(so)
			if err != nil {
				return nil, err
			}
			group.Options = append(group.Options, opt)
		}
		cat.Groups = append(cat.Groups, group)
	}
	if root.Compat != nil {
		cat.Compat = Compat{
			Ignored:    root.Compat.Ignored,
			Deprecated: root.Compat.Deprecated,
			Renamed:    root.Compat.Renamed,
			Aliases:    root.Compat.Aliases,
		}
	}

	cat.index()
	return cat, nil
}

func buildOption(so *schemaOption) (*Option, error) {
	if len(so.Names) == 0 {
		return nil, fmt.Errorf("option %q declares no invocation strings", so.Dest)
	}

	var kind Kind
	switch so.Type {
	case "", "switch":
		kind = KindSwitch
	case "string":
		kind = KindString
	case "int":
		kind = KindInt
	case "float":
		kind = KindFloat
	default:
		return nil, fmt.Errorf("option %q has unknown type %q", so.Dest, so.Type)
	}

	return &Option{
		Dest:    so.Dest,
		Names:   so.Names,
		Kind:    kind,
		Help:    so.Help,
		Basic:   so.Basic,
		Hidden:  so.Hidden,
		Default: so.Default,
	}, nil
}
