package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var rootSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "workers"},
		{Name: "log_level"},
		{Name: "log_format"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "patterns"},
		{Type: "s3"},
	},
}

var patternsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "instance"},
		{Name: "scenario"},
	},
}

var s3Schema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "endpoint", Required: true},
		{Name: "bucket", Required: true},
		{Name: "region"},
		{Name: "prefix"},
		{Name: "use_ssl"},
	},
}

// Load reads and parses an HCL config file, returning defaults overlaid with
// whatever the file sets.
func Load(path string) (*Model, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source into a Model. filename is used in diagnostics
// only.
func Parse(src []byte, filename string) (*Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %w", filename, diags)
	}

	content, diags := file.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: %s: %w", filename, diags)
	}

	m := Default()
	if err := attrInt(content.Attributes, "workers", &m.Workers); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := attrString(content.Attributes, "log_level", &m.LogLevel); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := attrString(content.Attributes, "log_format", &m.LogFormat); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}

	patternsBlock, err := uniqueBlock(content.Blocks, "patterns")
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if patternsBlock != nil {
		pc, diags := patternsBlock.Body.Content(patternsSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("config: %s: %w", filename, diags)
		}
		if err := attrString(pc.Attributes, "instance", &m.InstancePattern); err != nil {
			return nil, fmt.Errorf("config: %s: %w", filename, err)
		}
		if err := attrString(pc.Attributes, "scenario", &m.ScenarioPattern); err != nil {
			return nil, fmt.Errorf("config: %s: %w", filename, err)
		}
	}

	s3Block, err := uniqueBlock(content.Blocks, "s3")
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if s3Block != nil {
		sc, diags := s3Block.Body.Content(s3Schema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("config: %s: %w", filename, diags)
		}
		s3 := &S3Settings{}
		for name, dst := range map[string]*string{
			"endpoint": &s3.Endpoint,
			"bucket":   &s3.Bucket,
			"region":   &s3.Region,
			"prefix":   &s3.Prefix,
		} {
			if err := attrString(sc.Attributes, name, dst); err != nil {
				return nil, fmt.Errorf("config: %s: %w", filename, err)
			}
		}
		if err := attrBool(sc.Attributes, "use_ssl", &s3.UseSSL); err != nil {
			return nil, fmt.Errorf("config: %s: %w", filename, err)
		}
		m.S3 = s3
	}

	return m, nil
}

// uniqueBlock returns the single block of the given type, nil when absent,
// and an error when it appears more than once.
func uniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, error) {
	var found *hcl.Block
	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("duplicate %q block at %s", name, block.DefRange)
		}
		found = block
	}
	return found, nil
}

// The attribute helpers evaluate an expression with no variables in scope
// and convert the resulting cty value to the target Go type. Absent
// attributes leave the destination untouched.

func attrValue(attrs hcl.Attributes, name string, want cty.Type) (cty.Value, bool, error) {
	attr, ok := attrs[name]
	if !ok {
		return cty.NilVal, false, nil
	}
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, false, fmt.Errorf("attribute %q: %w", name, diags)
	}
	v, err := convert.Convert(v, want)
	if err != nil {
		return cty.NilVal, false, fmt.Errorf("attribute %q: %w", name, err)
	}
	return v, true, nil
}

func attrString(attrs hcl.Attributes, name string, dst *string) error {
	v, ok, err := attrValue(attrs, name, cty.String)
	if err != nil || !ok {
		return err
	}
	*dst = v.AsString()
	return nil
}

func attrInt(attrs hcl.Attributes, name string, dst *int) error {
	v, ok, err := attrValue(attrs, name, cty.Number)
	if err != nil || !ok {
		return err
	}
	if err := gocty.FromCtyValue(v, dst); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	return nil
}

func attrBool(attrs hcl.Attributes, name string, dst *bool) error {
	v, ok, err := attrValue(attrs, name, cty.Bool)
	if err != nil || !ok {
		return err
	}
	*dst = v.True()
	return nil
}
