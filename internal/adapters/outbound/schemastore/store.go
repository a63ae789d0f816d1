// Package schemastore resolves tool schemas from a directory of JSON or YAML
// files, falling back to schemas declared inline in the config.
package schemastore

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/openkraft/typeguard/internal/domain"
	"github.com/openkraft/typeguard/internal/logger"
)

// extensions are tried in order when a tool has more than one file.
var extensions = []string{".json", ".yaml", ".yml", ".toml"}

// Store is a file-based implementation of domain.SchemaStore. Parsed files
// are cached until their modification time changes.
type Store struct {
	cfg domain.Config

	mu    sync.Mutex
	cache map[string]entry
}

type entry struct {
	path    string
	modTime time.Time
	schemas domain.ToolSchemas
}

// New creates a store reading cfg.SchemasDir and falling back to cfg.Tools.
func New(cfg domain.Config) *Store {
	return &Store{
		cfg:   cfg,
		cache: make(map[string]entry),
	}
}

// Lookup returns the schemas for tool. Files win over inline config.
func (s *Store) Lookup(tool string) (domain.ToolSchemas, error) {
	if tool == "" || strings.ContainsAny(tool, `/\`) || strings.HasPrefix(tool, ".") {
		return domain.ToolSchemas{}, errors.Newf("invalid tool name %q", tool)
	}

	path, info, err := s.find(tool)
	if err != nil {
		return domain.ToolSchemas{}, err
	}
	if path == "" {
		return s.cfg.InlineSchemas(tool), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.cache[tool]; ok && e.path == path && e.modTime.Equal(info.ModTime()) {
		return e.schemas, nil
	}

	schemas, err := ReadFile(path)
	if err != nil {
		return domain.ToolSchemas{}, err
	}
	s.cache[tool] = entry{path: path, modTime: info.ModTime(), schemas: schemas}
	logger.Named("schemastore").Debugw("schema loaded", logger.FieldTool, tool, logger.FieldPath, path)
	return schemas, nil
}

// Invalidate drops the cached schemas of tool.
func (s *Store) Invalidate(tool string) {
	s.mu.Lock()
	delete(s.cache, tool)
	s.mu.Unlock()
}

// Tools lists every tool with a schema file or an inline schema, sorted.
func (s *Store) Tools() ([]string, error) {
	seen := make(map[string]bool)
	for name := range s.cfg.Tools {
		seen[name] = true
	}

	entries, err := os.ReadDir(s.cfg.SchemasDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "listing %s", s.cfg.SchemasDir)
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || !slices.Contains(extensions, ext) {
			continue
		}
		seen[strings.TrimSuffix(e.Name(), ext)] = true
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	slices.Sort(out)
	return out, nil
}

func (s *Store) find(tool string) (string, os.FileInfo, error) {
	for _, ext := range extensions {
		path := filepath.Join(s.cfg.SchemasDir, tool+ext)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, errors.Wrapf(err, "reading %s", path)
		}
		return path, info, nil
	}
	return "", nil, nil
}

// ReadFile parses a single schema file. The format follows the extension:
// .json, .toml, and YAML for anything else.
func ReadFile(path string) (domain.ToolSchemas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ToolSchemas{}, errors.Wrapf(err, "reading %s", path)
	}

	var doc domain.Value
	switch filepath.Ext(path) {
	case ".json":
		doc, err = domain.ParseJSON(data)
	case ".toml":
		doc, err = decodeTOML(data)
	default:
		doc, err = decodeYAML(data)
	}
	if err != nil {
		return domain.ToolSchemas{}, errors.Wrapf(err, "parsing %s", path)
	}

	return split(doc), nil
}

// split reads a document holding either {"input": ..., "output": ...} or a
// bare input schema.
func split(doc domain.Value) domain.ToolSchemas {
	obj, ok := doc.(*domain.Object)
	if !ok {
		return domain.ToolSchemas{}
	}
	if !obj.Has("input") && !obj.Has("output") {
		return domain.ToolSchemas{Input: domain.ParseSchema(obj)}
	}
	in, _ := obj.Get("input")
	out, _ := obj.Get("output")
	return domain.ToolSchemas{
		Input:  domain.ParseSchema(in),
		Output: domain.ParseSchema(out),
	}
}
