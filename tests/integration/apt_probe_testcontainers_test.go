//go:build integration

package integration

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"

	"sysdep/internal/adapters"
	"sysdep/tests/testutil"
)

// TestAptProbeAgainstRealDpkg validates the dpkg-query probe contract
// against a real Debian-family userland: the format string is accepted
// and the parsed set contains packages every base image ships.
func TestAptProbeAgainstRealDpkg(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers test in short mode")
	}

	ctx := t.Context()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:      "ubuntu:24.04",
			Cmd:        []string{"sleep", "infinity"},
			WaitingFor: wait.ForExec([]string{"dpkg-query", "--version"}),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	code, reader, err := container.Exec(ctx,
		[]string{"dpkg-query", "-W", "-f=${Package} ${Version} ${db:Status-Status}\n"},
		tcexec.Multiplexed())
	require.NoError(t, err)
	require.Zero(t, code)
	out, err := io.ReadAll(reader)
	require.NoError(t, err)

	runner := testutil.NewFakeRunner()
	runner.Outputs["dpkg-query"] = string(out)
	installed, err := adapters.NewAptInstaller(runner).DetectInstalled(ctx)
	require.NoError(t, err)

	// Packages present in every ubuntu base image.
	assert.True(t, installed.Has("dpkg"))
	assert.True(t, installed.Has("bash"))
	assert.True(t, installed.Has("coreutils"))
	assert.False(t, installed.Has("definitely-not-a-package"))
}
