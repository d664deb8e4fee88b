package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/hollis/fabula/types"
)

// luaCollector accumulates the tables declared by content files while the
// VM runs. The VM itself is closed before Load returns; Lua is a build
// step for content, never a runtime.
type luaCollector struct {
	game  *lua.LTable
	rooms []luaRoom
}

type luaRoom struct {
	id    string
	table *lua.LTable
}

// LoadLuaDir executes every .lua file in dir inside a sandboxed VM and
// compiles the declared tables into a game definition. game.lua runs
// first, the rest in name order, so room files can assume the game block
// exists.
func LoadLuaDir(dir string) (*types.GameDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i] == "game.lua" {
			return true
		}
		if files[j] == "game.lua" {
			return false
		}
		return files[i] < files[j]
	})

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &luaCollector{}
	registerAPI(L, coll)

	for _, f := range files {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	return compile(coll)
}

// compile flattens the collected tables into a generic document and runs
// it through the JSON decoding path shared with the other formats.
func compile(coll *luaCollector) (*types.GameDefinition, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game {} block declared")
	}

	doc, ok := luaToGo(coll.game).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("Game {} block must be a table of fields")
	}

	rooms := make([]any, 0, len(coll.rooms))
	for _, r := range coll.rooms {
		room, ok := luaToGo(r.table).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("Room %q block must be a table of fields", r.id)
		}
		room["id"] = r.id
		rooms = append(rooms, room)
	}
	doc["rooms"] = rooms

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}
	def, err := FromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}
	return def, nil
}

// openSafeLibs opens only the side-effect-free Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes the globals that reach outside the VM.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
}

// luaToGo converts a Lua value to the generic Go shape encoding/json
// produces: map[string]any, []any, float64, string, bool, nil. Tables
// with consecutive integer keys from 1 become slices; everything else
// becomes a string-keyed map with non-string keys dropped.
func luaToGo(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LString:
		return string(val)
	case lua.LNumber:
		return float64(val)
	case lua.LBool:
		return bool(val)
	case *lua.LTable:
		if n := val.MaxN(); n > 0 {
			arr := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				arr = append(arr, luaToGo(val.RawGetInt(i)))
			}
			return arr
		}
		m := make(map[string]any)
		val.ForEach(func(key, value lua.LValue) {
			if k, ok := key.(lua.LString); ok {
				m[string(k)] = luaToGo(value)
			}
		})
		return m
	default:
		return nil
	}
}
