package strategy

// Param helpers for the loosely-typed Params map that viper produces.
// YAML numbers arrive as int or float64 depending on their spelling.

// IntParam reads an integer parameter, falling back to def.
func (c Config) IntParam(key string, def int) int {
	switch v := c.Params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// FloatParam reads a float parameter, falling back to def.
func (c Config) FloatParam(key string, def float64) float64 {
	switch v := c.Params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}
