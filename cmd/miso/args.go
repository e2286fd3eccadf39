package main

import "strings"

// multiValueFlags take a fixed number of space separated values.
var multiValueFlags = map[string]int{
	"--run":        2,
	"--paired-end": 2,
}

// normalizeArgs rewrites "--run A B" into "--run=A --run=B" so the values land
// in a repeated string flag. A value list cut short by another long flag is
// kept as is; option resolution reports the wrong count.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		n, ok := multiValueFlags[arg]
		if !ok {
			out = append(out, arg)
			continue
		}
		taken := 0
		for taken < n && i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
			i++
			taken++
			out = append(out, arg+"="+args[i])
		}
		if taken == 0 {
			// cobra reports the missing argument.
			out = append(out, arg)
		}
	}
	return out
}

// versionRequested reports whether --version appears before any "--".
func versionRequested(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "--version", "--version=true":
			return true
		}
	}
	return false
}
