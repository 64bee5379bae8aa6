package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"

	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// FakeRunner substitutes canned process results for the command runner
// port. Outputs and failures are keyed by binary name; every executed
// install command is recorded for assertion.
type FakeRunner struct {
	mu sync.Mutex

	// Outputs maps a binary name to the stdout its probe returns.
	Outputs map[string]string
	// OutputErrs maps a binary name to a probe failure.
	OutputErrs map[string]error
	// Missing marks binary names absent from PATH.
	Missing map[string]bool
	// RunErrs maps a binary name to an install command failure.
	RunErrs map[string]error

	Ran     []types.Command
	Queried []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Outputs:    map[string]string{},
		OutputErrs: map[string]error{},
		Missing:    map[string]bool{},
		RunErrs:    map[string]error{},
	}
}

func (f *FakeRunner) Output(_ context.Context, name string, _ ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Queried = append(f.Queried, name)
	if err, ok := f.OutputErrs[name]; ok {
		return "", err
	}
	return f.Outputs[name], nil
}

func (f *FakeRunner) Run(_ context.Context, cmd types.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ran = append(f.Ran, cmd)
	if len(cmd.Argv) == 0 {
		return nil
	}
	return f.RunErrs[cmd.Argv[0]]
}

func (f *FakeRunner) LookPath(name string) bool {
	return !f.Missing[name]
}

// RanCommands renders the executed commands as shell strings.
func (f *FakeRunner) RanCommands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Ran))
	for _, cmd := range f.Ran {
		out = append(out, cmd.String())
	}
	return out
}

// ProbeCount reports how many times a probe binary was invoked.
func (f *FakeRunner) ProbeCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, queried := range f.Queried {
		if queried == name {
			count++
		}
	}
	return count
}

// StaticOsDetector returns a fixed OS identity.
type StaticOsDetector struct {
	Os types.OsIdentity
}

func (d StaticOsDetector) Detect(context.Context) (types.OsIdentity, error) {
	return d.Os, nil
}

// RepoRoot returns the absolute path of the repository root, resolved
// relative to this source file so tests work from any package
// directory.
func RepoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(filepath.Dir(filepath.Dir(file)))
}

var _ ports.CommandRunner = (*FakeRunner)(nil)
var _ ports.OsDetectPort = StaticOsDetector{}
