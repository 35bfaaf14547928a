// Package proc answers whether the umbra daemon is currently running, so
// the CLI can warn when a configuration change will not take effect until
// a restart.
package proc

import (
	"strings"

	"github.com/mitchellh/go-ps"
)

var _ Checker = (*PSChecker)(nil)

// Checker is an interface for checking if a process is running.
type Checker interface {
	IsRunning(name string) bool
}

// PSChecker checks the live process table.
type PSChecker struct{}

// IsRunning checks if a process with the given name is running.
func (pc *PSChecker) IsRunning(name string) bool {
	procs, err := ps.Processes()
	if err != nil {
		return false
	}

	for _, proc := range procs {
		if procName := proc.Executable(); len(procName) >= len(name) {
			if strings.EqualFold(procName[:len(name)], name) {
				return true
			}
		}
	}
	return false
}
