package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePipName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PyYAML", "pyyaml"},
		{"backports.ssl_match_hostname", "backports-ssl-match-hostname"},
		{"  Flask ", "flask"},
		{"already-normal", "already-normal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePipName(tt.in), tt.in)
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := CommandError([]byte("E: Unable to locate package\n"), cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "E: Unable to locate package: exit status 1", err.Error())
}
