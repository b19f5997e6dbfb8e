package common

import (
	"testing"

	"resumeradar/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	all := []string{"json", "text", "markdown"}

	tests := []struct {
		name      string
		format    string
		supported []string
		wantErr   string
	}{
		{"json", "json", all, ""},
		{"markdown", "markdown", all, ""},
		{"unknown format", "pdf", all, "unsupported output format 'pdf'. Supported formats: [json text markdown]"},
		{"case sensitive", "JSON", all, "unsupported output format 'JSON'. Supported formats: [json text markdown]"},
		{"empty format", "", all, "unsupported output format ''. Supported formats: [json text markdown]"},
		{"no restriction", "pdf", nil, ""},
		{"single format", "text", []string{"json"}, "unsupported output format 'text'. Supported formats: [json]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supported)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrCodeInvalidFormat, appErr.Code)
			assert.Equal(t, tt.wantErr, appErr.Message)
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "text"}, GetSupportedFormats([]string{"json", "text"}))
	assert.Empty(t, GetSupportedFormats(nil))
}
