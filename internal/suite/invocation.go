// Package suite runs sub-test executables in order and summarizes the results.
package suite

import (
	"fmt"
	"os/exec"
	"strings"
)

// GIFCommand is the subcommand re-executed for the GIF structure check.
const GIFCommand = "gif"

// Invocation is one sub-test: the argv to spawn and a human label.
type Invocation struct {
	Command []string
	Label   string
	// Dir overrides the executor's working directory when set.
	Dir string
}

// String returns the command line, shell-quoted where needed.
func (inv Invocation) String() string {
	parts := make([]string, len(inv.Command))
	for i, arg := range inv.Command {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			parts[i] = fmt.Sprintf("%q", arg)
		} else {
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}

// Available reports whether the executable resolves, either on PATH or
// as a path relative to the current directory.
func (inv Invocation) Available() bool {
	if len(inv.Command) == 0 {
		return false
	}
	_, err := exec.LookPath(inv.Command[0])
	return err == nil
}

// GIFLabel is the summary label of the GIF structure check for path.
func GIFLabel(path string) string {
	return fmt.Sprintf("GIF structure check (%s)", path)
}

// Self describes how the GIF structure check re-invokes cimcheck.
type Self struct {
	// Args is the executable followed by global flags such as --config.
	Args []string
	// Dir is where the child runs, normally the caller's working directory.
	Dir string
}

// Plan builds the ordered invocation list: the fixed tests, then the GIF
// structure check only when path is non-empty.
func Plan(tests []Invocation, self Self, path, size string) []Invocation {
	plan := make([]Invocation, 0, len(tests)+1)
	for _, t := range tests {
		plan = append(plan, Invocation{
			Command: append([]string(nil), t.Command...),
			Label:   t.Label,
			Dir:     t.Dir,
		})
	}
	if path != "" {
		cmd := make([]string, 0, len(self.Args)+3)
		cmd = append(cmd, self.Args...)
		plan = append(plan, Invocation{
			Command: append(cmd, GIFCommand, path, size),
			Label:   GIFLabel(path),
			Dir:     self.Dir,
		})
	}
	return plan
}
