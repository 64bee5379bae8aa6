package adapters

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/host"

	"sysdep/internal/ports"
	"sysdep/internal/types"
)

// HostOsDetector reads the host's platform identity (distribution name
// and release) via gopsutil. It runs at most once per invocation; the
// --os override bypasses it entirely.
type HostOsDetector struct{}

func NewHostOsDetector() HostOsDetector {
	return HostOsDetector{}
}

func (HostOsDetector) Detect(ctx context.Context) (types.OsIdentity, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return types.OsIdentity{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to detect host OS").
			WithCause(err)
	}
	identity := types.OsIdentity{
		Name:    strings.ToLower(strings.TrimSpace(info.Platform)),
		Version: strings.TrimSpace(info.PlatformVersion),
	}
	if identity.Name == "" {
		return types.OsIdentity{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("host OS detection returned an empty platform name")
	}
	log.Debug().Str("os", identity.String()).Msg("host OS detected")
	return identity, nil
}

var _ ports.OsDetectPort = HostOsDetector{}
