package internal

import (
	"math"

	lua "github.com/yuin/gopher-lua"
)

// Extract builds a ServerConfig from the value a configuration module
// evaluated to. Both accepted shapes are normalized up front: when a
// default_config sub-table is present it is the source of truth for
// every field, and a docs.description string wins over any comment
// fallback. Returns nil when the module produced nothing usable.
func Extract(name string, raw lua.LValue) *ServerConfig {
	if raw == nil || raw == lua.LNil {
		return nil
	}
	outer, ok := raw.(*lua.LTable)
	if !ok {
		return nil
	}

	src := outer
	if nested, ok := outer.RawGetString("default_config").(*lua.LTable); ok {
		src = nested
	}

	cfg := &ServerConfig{Name: name}

	if docs, ok := outer.RawGetString("docs").(*lua.LTable); ok {
		if desc, ok := docs.RawGetString("description").(lua.LString); ok {
			cfg.Documentation = string(desc)
		}
	}

	cfg.Cmd = sanitize(src.RawGetString("cmd"))
	cfg.Filetypes = stringList(src.RawGetString("filetypes"))
	cfg.RootMarkers = stringList(src.RawGetString("root_markers"))
	cfg.Settings = sanitize(src.RawGetString("settings"))
	cfg.InitOptions = sanitize(src.RawGetString("init_options"))
	cfg.Capabilities = sanitize(src.RawGetString("capabilities"))

	if b, ok := src.RawGetString("single_file_support").(lua.LBool); ok {
		v := bool(b)
		cfg.SingleFileSupport = &v
	}

	// Presence, not value: a hook field of any type counts.
	cfg.HasCustomHandlers = src.RawGetString("handlers") != lua.LNil
	cfg.HasOnAttach = src.RawGetString("on_attach") != lua.LNil
	cfg.HasBeforeInit = src.RawGetString("before_init") != lua.LNil
	cfg.HasOnInit = src.RawGetString("on_init") != lua.LNil
	cfg.HasCustomRootDir = src.RawGetString("root_dir") != lua.LNil

	return cfg
}

// sanitize rebuilds a Lua value as plain serializable data. Functions at
// any depth become the placeholder marker; list order is preserved and
// map entries are rebuilt key by key.
func sanitize(v lua.LValue) any {
	switch x := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(x)
	case lua.LNumber:
		f := float64(x)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(x)
	case *lua.LTable:
		if n := x.MaxN(); n > 0 {
			list := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				list = append(list, sanitize(x.RawGetInt(i)))
			}
			return list
		}
		m := make(map[string]any)
		x.ForEach(func(k, item lua.LValue) {
			m[k.String()] = sanitize(item)
		})
		return m
	default:
		// Functions, userdata, and anything else live.
		return FunctionPlaceholder
	}
}

func stringList(v lua.LValue) []string {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil
	}
	n := tbl.MaxN()
	if n == 0 {
		return nil
	}
	list := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			list = append(list, string(s))
		}
	}
	return list
}
