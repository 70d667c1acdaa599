package config

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed defaults/config.json defaults/tlds.json defaults/tlds.txt
var defaultsFS embed.FS

// Source provides named configuration documents. Implementations must
// be safe for concurrent use.
type Source interface {
	// Load returns the named document, or ok=false when this source
	// does not provide it.
	Load(name string) (data []byte, ok bool)
	// String names the source for logs and error messages.
	String() string
}

// Builtin returns the source backed by documents embedded in the
// binary. It always provides all three documents.
func Builtin() Source {
	return builtinSource{}
}

type builtinSource struct{}

func (builtinSource) Load(name string) ([]byte, bool) {
	data, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (builtinSource) String() string { return "builtin" }

// Dir returns a source reading documents from a directory. Missing
// directories simply provide nothing.
func Dir(path string) Source {
	return dirSource{path: path}
}

type dirSource struct {
	path string
}

func (s dirSource) Load(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.path, name))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s dirSource) String() string { return s.path }

// Static returns an in-memory source, used by tests and by callers that
// assemble configuration programmatically.
func Static(name string, docs map[string][]byte) Source {
	return staticSource{name: name, docs: docs}
}

type staticSource struct {
	name string
	docs map[string][]byte
}

func (s staticSource) Load(name string) ([]byte, bool) {
	data, ok := s.docs[name]
	return data, ok
}

func (s staticSource) String() string { return s.name }
