package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"sigs.k8s.io/yaml"

	"lexgen/internal/lexer"
)

// Document is a set of token definitions and the subject to tokenize.
type Document struct {
	Definitions []lexer.Definition `json:"tokens" toml:"tokens"`
	Subject     string             `json:"subject" toml:"subject"`
}

// Syntax names a definition document format.
type Syntax string

const (
	SyntaxAuto    Syntax = "auto"
	SyntaxClassic Syntax = "classic"
	SyntaxYAML    Syntax = "yaml"
	SyntaxTOML    Syntax = "toml"
)

// DetectSyntax picks the syntax from a file name extension. Anything that is
// not YAML or TOML is read as the classic stream.
func DetectSyntax(name string) Syntax {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return SyntaxYAML
	case ".toml":
		return SyntaxTOML
	default:
		return SyntaxClassic
	}
}

// Load reads and parses a definition file.
func Load(path string, syntax Syntax) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return Parse(path, data, syntax)
}

// Parse decodes data in the given syntax; SyntaxAuto looks at name.
func Parse(name string, data []byte, syntax Syntax) (*Document, error) {
	if syntax == SyntaxAuto || syntax == "" {
		syntax = DetectSyntax(name)
	}
	var (
		doc *Document
		err error
	)
	switch syntax {
	case SyntaxClassic:
		doc, err = ParseClassic(name, string(data))
	case SyntaxYAML:
		doc, err = ParseYAML(data)
	case SyntaxTOML:
		doc, err = ParseTOML(data)
	default:
		return nil, errors.Errorf("unknown definition syntax %q", syntax)
	}
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, errors.Annotatef(err, "%s", name)
	}
	return doc, nil
}

// ParseYAML decodes
//
//	tokens:
//	  - name: IF
//	    regex: i.f
//	subject: "if iff"
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, errors.Annotate(err, "decode yaml")
	}
	return &doc, nil
}

// ParseTOML decodes
//
//	subject = "if iff"
//
//	[[tokens]]
//	name = "IF"
//	regex = "i.f"
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	if err != nil {
		return nil, errors.Annotate(err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("decode toml: unknown keys %v", undecoded)
	}
	return &doc, nil
}

// Validate checks that every definition has a name.
func (d *Document) Validate() error {
	for i, def := range d.Definitions {
		if strings.TrimSpace(def.Name) == "" {
			return errors.Errorf("definition %d has no name", i+1)
		}
	}
	return nil
}
