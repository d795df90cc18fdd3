// Package manifest reads pre-extracted declarations from a YAML or JSON
// file. It lets any external tool feed the evaluator without a built-in
// front-end for its language.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pthm/docgrade/internal/adapter"
)

// ErrInvalidManifest is returned when a manifest cannot be decoded or its
// language section is unusable.
var ErrInvalidManifest = errors.New("invalid manifest")

// DefaultCommentPattern is used when a manifest names no comment pattern.
const DefaultCommentPattern = `^\s*(#|//)`

func init() {
	adapter.Register(&Adapter{})
}

// LanguageSpec is the language section of a manifest.
type LanguageSpec struct {
	Name           string `yaml:"name" json:"name"`
	Initializer    string `yaml:"initializer,omitempty" json:"initializer,omitempty"`
	CommentPattern string `yaml:"comment_pattern,omitempty" json:"comment_pattern,omitempty"`
}

// Manifest is a decoded manifest file. JSON manifests decode through the
// YAML decoder.
type Manifest struct {
	Language     LanguageSpec          `yaml:"language" json:"language"`
	Declarations []adapter.Declaration `yaml:"declarations" json:"declarations"`
}

// Decode parses manifest content.
func Decode(content []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if _, err := m.compile(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Conventions returns the language conventions declared by the manifest.
func (m *Manifest) Conventions() adapter.Language {
	lang, _ := m.compile()
	return lang
}

func (m *Manifest) compile() (adapter.Language, error) {
	pattern := m.Language.CommentPattern
	if pattern == "" {
		pattern = DefaultCommentPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return adapter.Language{}, fmt.Errorf("%w: comment_pattern: %v", ErrInvalidManifest, err)
	}

	name := m.Language.Name
	if name == "" {
		name = "manifest"
	}
	return adapter.Language{
		Name:           name,
		Initializer:    m.Language.Initializer,
		CommentPattern: re,
	}, nil
}

// Adapter decodes manifest files handed to Parse. It claims no extensions;
// it is selected by name.
type Adapter struct{}

func (a *Adapter) Name() string         { return "manifest" }
func (a *Adapter) Extensions() []string { return nil }

// Language returns generic conventions. Use Manifest.Conventions for the
// conventions a particular manifest declares.
func (a *Adapter) Language() adapter.Language {
	return (&Manifest{}).Conventions()
}

// Parse concatenates the declarations of every manifest in files, in order.
// Unlike source front-ends, an undecodable manifest fails the whole parse.
func (a *Adapter) Parse(ctx context.Context, files []adapter.SourceFile) ([]adapter.Declaration, error) {
	var decls []adapter.Declaration
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse canceled: %w", err)
		}
		m, err := Decode(f.Content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		decls = append(decls, m.Declarations...)
	}
	return decls, nil
}
