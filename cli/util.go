package cli

// MustGet wraps a [pflag.FlagSet] getter, and panics if the flag isn't defined or has a different type.
// Flags are defined next to the function that reads them, so a failed get is a programming error.
func MustGet[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
