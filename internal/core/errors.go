package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sysdep/internal/types"
)

// Message prefixes are part of the CLI contract: exitCodeForError in
// the cli package refines exit codes by prefix, so the constructors
// below are the only places these strings are assembled.

// ErrMalformedSource reports a source document that does not follow the
// dependency-database format. Fatal to that document only.
func ErrMalformedSource(origin string, detail string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed source document %s: %s", origin, detail))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// ErrUnresolvableKey reports a key absent from the merged view.
func ErrUnresolvableKey(key string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no rule for key '%s'", key))
}

// ErrUnresolvableKeyForOs reports a key that is defined but has no rule
// applying to the given OS/version after walking the fallback chain.
func ErrUnresolvableKeyForOs(key string, os types.OsIdentity) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("key is not resolvable for OS %s: '%s'", os, key))
}

// ErrUnsupportedOs reports an OS name the installer registry knows
// nothing about, typically a bad --os override.
func ErrUnsupportedOs(osName string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unsupported OS '%s'", osName))
}

// ErrInstallerExecution reports an install command that exited non-zero.
// Fatal to the run; remaining installer groups are not attempted.
func ErrInstallerExecution(installer types.InstallerName, token string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("install command failed for [%s] token '%s'", installer, token)).
		WithCause(cause)
}
