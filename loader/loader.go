// Package loader reads game definitions from JSON, YAML, or a directory of
// Lua source files and produces validated GameDefinition values. Whatever
// the input format, content flows through the same JSON decoding path so
// every format gets identical condition and effect parsing.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hollis/fabula/engine"
	"github.com/hollis/fabula/engine/state"
	"github.com/hollis/fabula/types"
)

// Load reads a game definition from path and validates it. A .json or
// .yaml/.yml file is decoded directly; a directory is treated as a Lua
// content package.
func Load(path string) (*types.GameDefinition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading game definition %s: %w", path, err)
	}

	var def *types.GameDefinition
	if info.IsDir() {
		def, err = LoadLuaDir(path)
	} else {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			def, err = loadFile(path, FromJSON)
		case ".yaml", ".yml":
			def, err = loadFile(path, FromYAML)
		case ".lua":
			def, err = LoadLuaDir(filepath.Dir(path))
		default:
			return nil, fmt.Errorf("unsupported game definition format %q", filepath.Ext(path))
		}
	}
	if err != nil {
		return nil, err
	}

	if err := engine.Validate(state.NewDefs(def)); err != nil {
		return nil, err
	}
	return def, nil
}

func loadFile(path string, decode func([]byte) (*types.GameDefinition, error)) (*types.GameDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	def, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return def, nil
}

// FromJSON decodes a game definition from JSON bytes. No validation is
// performed; callers that skip Load run engine.Validate themselves or
// construct the engine with validation on.
func FromJSON(data []byte) (*types.GameDefinition, error) {
	var def types.GameDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// FromYAML decodes a game definition from YAML bytes. The document is
// decoded generically and re-encoded as JSON so conditions, effects, and
// text values parse through the same union codecs as JSON content.
func FromYAML(data []byte) (*types.GameDefinition, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting YAML document: %w", err)
	}
	return FromJSON(raw)
}
