package app

import (
	"os"

	"sysdep/internal/adapters"
	"sysdep/internal/core"
	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// Service implements the user-facing operations by composing the
// resolver with the installer adapters. All fields are ports so tests
// can wire fakes.
type Service struct {
	Sources    ports.SourceCachePort
	Manifests  ports.ManifestPort
	OsDetect   ports.OsDetectPort
	Runner     ports.CommandRunner
	Registry   *core.Registry
	Installers map[types.InstallerName]ports.Installer

	// Privileged reports whether the process already runs with the
	// privileged identity, in which case install commands skip sudo.
	Privileged func() bool
}

func NewService() Service {
	runner := adapters.NewExecRunner()
	return Service{
		Sources:   adapters.NewSourceCacheAdapter(),
		Manifests: adapters.NewManifestXMLAdapter(),
		OsDetect:  adapters.NewHostOsDetector(),
		Runner:    runner,
		Registry:  core.DefaultRegistry(),
		Installers: map[types.InstallerName]ports.Installer{
			types.InstallerApt:    adapters.NewAptInstaller(runner),
			types.InstallerDnf:    adapters.NewDnfInstaller(runner),
			types.InstallerPip:    adapters.NewPipInstaller(runner),
			types.InstallerSource: adapters.NewSourceInstaller(runner),
		},
		Privileged: func() bool { return os.Geteuid() == 0 },
	}
}
