package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceConfig struct {
	Patterns []string `validate:"required,dive,required,glob"`
	Level    string   `validate:"required,loglevel"`
}

func TestNew_CustomTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  sourceConfig
		wantTag string
	}{
		{
			name:   "valid",
			config: sourceConfig{Patterns: []string{"access_json.log", "access_json_*.log.gz"}, Level: "debug"},
		},
		{
			name:    "malformed pattern",
			config:  sourceConfig{Patterns: []string{"access_json_[.log"}, Level: "info"},
			wantTag: TagGlob,
		},
		{
			name:    "unknown level",
			config:  sourceConfig{Patterns: []string{"access_json.log"}, Level: "verbose"},
			wantTag: TagLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := New().Struct(&tt.config)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			var validationErrors ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			require.Len(t, validationErrors, 1)
			assert.Equal(t, tt.wantTag, validationErrors[0].Tag())
		})
	}
}
