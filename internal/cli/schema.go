package cli

import "github.com/daryltucker/fubard/internal/config"

// Defaults is the lowest-priority options layer.
var Defaults = map[string]any{
	"verbose":    false,
	"log_level":  "warn",
	"log_format": "text",
}

// Schema declares the options fubard itself understands. Adopters add their
// own keys here; unknown keys pass through unchecked.
var Schema = config.Schema{
	"verbose":    {Type: config.TypeBool, Description: "Enable debug logging"},
	"log_level":  {Type: config.TypeString, Description: "Log level: debug, info, warn or error"},
	"log_format": {Type: config.TypeString, Description: "Log format: text or json"},
	"editor":     {Type: config.TypeString, Description: "Editor used by 'configure'"},
	"global":     {Type: config.TypeBool},
	"format":     {Type: config.TypeString, Default: "table", Description: "Output format of 'options'"},
	"get":        {Type: config.TypeString},
	"baz":        {Type: config.TypeString, Description: "Demo option read by 'bar'"},
}
