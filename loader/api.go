package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI installs the content-authoring globals. Constructors collect
// top-level blocks; the helper functions build condition and effect tables
// in the same single-key shape the JSON format uses, so authors never
// write the wire encoding by hand.
func registerAPI(L *lua.LState, coll *luaCollector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

func registerConstructors(L *lua.LState, coll *luaCollector) {
	// Game { name = "...", startingRoom = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Room "id" { ... } is curried: Room("id") returns a function taking
	// the body table.
	L.SetGlobal("Room", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, luaRoom{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Item "id" { ... } and NPC "id" { ... } are curried like Room but
	// return the body table (with the id injected) so they nest inside a
	// room's items and npcs lists.
	inline := func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("id", lua.LString(id))
			L.Push(tbl)
			return 1
		}))
		return 1
	}
	L.SetGlobal("Item", L.NewFunction(inline))
	L.SetGlobal("NPC", L.NewFunction(inline))

	// Exit "target_room" { ... } follows the same shape with targetRoomId.
	L.SetGlobal("Exit", L.NewFunction(func(L *lua.LState) int {
		target := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			tbl.RawSetString("targetRoomId", lua.LString(target))
			L.Push(tbl)
			return 1
		}))
		return 1
	}))
}

// single builds a one-field table: {key = value}.
func single(L *lua.LState, key string, value lua.LValue) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString(key, value)
	return tbl
}

// pair builds a one-field table whose value is a two-element array:
// {key = {a, b}}.
func pair(L *lua.LState, key string, a, b lua.LValue) *lua.LTable {
	inner := L.NewTable()
	inner.Append(a)
	inner.Append(b)
	return single(L, key, inner)
}

func registerConditionHelpers(L *lua.LState) {
	// Eq("path", value) and Ne("path", value) compare a slot to a literal.
	pathValue := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			path := L.CheckString(1)
			value := L.CheckAny(2)
			L.Push(pair(L, kind, lua.LString(path), value))
			return 1
		})
	}
	L.SetGlobal("Eq", pathValue("eq"))
	L.SetGlobal("Ne", pathValue("ne"))

	// Gt/Gte/Lt/Lte("path", n) compare numerically.
	pathNumber := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			path := L.CheckString(1)
			n := L.CheckNumber(2)
			L.Push(pair(L, kind, lua.LString(path), n))
			return 1
		})
	}
	L.SetGlobal("Gt", pathNumber("gt"))
	L.SetGlobal("Gte", pathNumber("gte"))
	L.SetGlobal("Lt", pathNumber("lt"))
	L.SetGlobal("Lte", pathNumber("lte"))

	// Truthy/Falsy/Once/Present/Absent take a path; Has/Lacks an item id.
	pathOnly := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			L.Push(single(L, kind, lua.LString(L.CheckString(1))))
			return 1
		})
	}
	L.SetGlobal("Truthy", pathOnly("truthy"))
	L.SetGlobal("Falsy", pathOnly("falsy"))
	L.SetGlobal("Once", pathOnly("once"))
	L.SetGlobal("Present", pathOnly("present"))
	L.SetGlobal("Absent", pathOnly("absent"))
	L.SetGlobal("Has", pathOnly("has"))
	L.SetGlobal("Lacks", pathOnly("lacks"))

	// IsAt("item", "location")
	L.SetGlobal("IsAt", L.NewFunction(func(L *lua.LState) int {
		item := L.CheckString(1)
		location := L.CheckString(2)
		L.Push(pair(L, "is_at", lua.LString(item), lua.LString(location)))
		return 1
	}))

	// All { ... } and Any { ... } combine; Not(c) negates. The Lua
	// keywords and/or/not force different helper names than the wire
	// keys they emit.
	L.SetGlobal("All", L.NewFunction(func(L *lua.LState) int {
		L.Push(single(L, "and", L.CheckTable(1)))
		return 1
	}))
	L.SetGlobal("Any", L.NewFunction(func(L *lua.LState) int {
		L.Push(single(L, "or", L.CheckTable(1)))
		return 1
	}))
	L.SetGlobal("Not", L.NewFunction(func(L *lua.LState) int {
		L.Push(single(L, "not", L.CheckTable(1)))
		return 1
	}))
}

func registerEffectHelpers(L *lua.LState) {
	// Set("path", value)
	L.SetGlobal("Set", L.NewFunction(func(L *lua.LState) int {
		path := L.CheckString(1)
		value := L.CheckAny(2)
		L.Push(pair(L, "set", lua.LString(path), value))
		return 1
	}))

	// AddN/SubtractN("path", n). Named to leave Add free for content
	// that wants its own arithmetic helpers.
	amount := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			path := L.CheckString(1)
			n := L.CheckNumber(2)
			L.Push(pair(L, kind, lua.LString(path), n))
			return 1
		})
	}
	L.SetGlobal("AddN", amount("add"))
	L.SetGlobal("SubtractN", amount("subtract"))

	// Consume("path"), MarkOnce("path"), AddItem("id"), RemoveItem("id")
	oneString := func(kind string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			L.Push(single(L, kind, lua.LString(L.CheckString(1))))
			return 1
		})
	}
	L.SetGlobal("Consume", oneString("consume"))
	L.SetGlobal("MarkOnce", oneString("markOnce"))
	L.SetGlobal("AddItem", oneString("addItem"))
	L.SetGlobal("RemoveItem", oneString("removeItem"))
}
