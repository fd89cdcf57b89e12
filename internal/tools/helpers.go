package tools

// strArg reads a string argument. Required string args are guaranteed
// present and non-empty after validation; optional ones come back "".
func strArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads a numeric argument as int. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) int {
	f, _ := args[key].(float64)
	return int(f)
}
