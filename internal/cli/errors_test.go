package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      *ExitError
		wantCode int
		wantMsg  string
	}{
		{"config", ConfigError("loading configuration", cause), ExitConfig, "loading configuration: dial tcp: connection refused"},
		{"build", BuildError("building query", cause), ExitBuild, "building query: dial tcp: connection refused"},
		{"db", DBConnectError("connecting to database", cause), ExitDBConnect, "connecting to database: dial tcp: connection refused"},
		{"general without cause", GeneralError("running query", nil), ExitGeneral, "running query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.wantCode, ExitCode(tt.err))
		})
	}

	assert.ErrorIs(t, ConfigError("x", cause), cause)
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneral, ExitCode(cause))
}
