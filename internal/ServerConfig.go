package internal

// FunctionPlaceholder replaces any Lua function found while sanitizing
// extracted values, so the snapshot never carries a live callable.
const FunctionPlaceholder = "<function>"

// ServerConfig is the serialization-safe snapshot of one language server
// configuration module.
type ServerConfig struct {
	Name        string   `json:"name"`
	Cmd         any      `json:"cmd,omitempty"`
	Filetypes   []string `json:"filetypes,omitempty"`
	RootMarkers []string `json:"root_markers,omitempty"`

	Settings     any `json:"settings"`
	InitOptions  any `json:"init_options"`
	Capabilities any `json:"capabilities"`

	SingleFileSupport *bool `json:"single_file_support,omitempty"`

	// Hook flags record presence only. The hooks themselves are live
	// functions and never appear in the snapshot.
	HasCustomHandlers bool `json:"has_custom_handlers,omitempty"`
	HasOnAttach       bool `json:"has_on_attach,omitempty"`
	HasBeforeInit     bool `json:"has_before_init,omitempty"`
	HasOnInit         bool `json:"has_on_init,omitempty"`
	HasCustomRootDir  bool `json:"has_custom_root_dir,omitempty"`

	Documentation string `json:"documentation,omitempty"`
}
