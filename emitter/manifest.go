package emitter

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/model"
	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Manifest is the serialized form of a declaration set.
type Manifest struct {
	Package      string          `json:"package" yaml:"package"`
	Declarations []ManifestEntry `json:"declarations" yaml:"declarations"`
}

// ManifestEntry wraps one declaration. Exactly one of Class, Enum and
// Interface is set, matching Kind.
type ManifestEntry struct {
	Kind      model.DeclKind       `json:"kind" yaml:"kind"`
	Class     *model.ClassDecl     `json:"class,omitempty" yaml:"class,omitempty"`
	Enum      *model.EnumDecl      `json:"enum,omitempty" yaml:"enum,omitempty"`
	Interface *model.InterfaceDecl `json:"interface,omitempty" yaml:"interface,omitempty"`
}

// NewManifest wraps decls for serialization.
func NewManifest(decls model.Set, pkg string) *Manifest {
	m := &Manifest{Package: pkg, Declarations: make([]ManifestEntry, 0, len(decls))}
	for _, d := range decls {
		entry := ManifestEntry{Kind: d.DeclKind()}
		switch d := d.(type) {
		case *model.ClassDecl:
			entry.Class = d
		case *model.EnumDecl:
			entry.Enum = d
		case *model.InterfaceDecl:
			entry.Interface = d
		default:
			continue
		}
		m.Declarations = append(m.Declarations, entry)
	}
	return m
}

// JSONManifest prints decls as indented JSON.
func JSONManifest(decls model.Set, pkg string) ([]byte, error) {
	data, err := json.MarshalIndent(NewManifest(decls, pkg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("emitter: encoding JSON manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// YAMLManifest prints decls as YAML.
func YAMLManifest(decls model.Set, pkg string) ([]byte, error) {
	data, err := yaml.Marshal(NewManifest(decls, pkg))
	if err != nil {
		return nil, fmt.Errorf("emitter: encoding YAML manifest: %w", err)
	}
	return data, nil
}

// Summary is a one-line description of a declaration.
type Summary struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Members int    `json:"members"`
	Detail  string `json:"detail,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Summarize describes every declaration in order. Members counts fields,
// constants or implementers depending on the kind.
func Summarize(decls model.Set) []Summary {
	out := make([]Summary, 0, len(decls))
	for _, d := range decls {
		s := Summary{Kind: d.DeclKind().String(), Name: d.DeclName()}
		switch d := d.(type) {
		case *model.ClassDecl:
			s.Members = len(d.Fields)
			s.Source = d.Source
			if len(d.Implements) > 0 {
				s.Detail = "implements " + strings.Join(d.Implements, ", ")
			}
		case *model.EnumDecl:
			s.Members = len(d.Constants)
			s.Source = d.Source
			s.Detail = d.ValueKind.String()
			if d.Default != "" {
				s.Detail += ", default " + d.Default
			}
		case *model.InterfaceDecl:
			s.Members = len(d.Implementers)
			s.Source = d.Source
			s.Detail = d.Strategy.Kind.String()
			if d.Strategy.PropertyName != "" {
				s.Detail += " on " + d.Strategy.PropertyName
			}
		}
		out = append(out, s)
	}
	return out
}
