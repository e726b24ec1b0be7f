package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "id",
				ClientSecret:  "secret",
				RefreshToken:  "token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
		},
		{
			name:    "no auth",
			config:  Config{BatchSize: 100},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID:           "id",
				ClientSecret:       "secret",
				RefreshToken:       "token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods",
		},
		{
			name: "zero batch size",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retry attempts",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      -1,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorContains(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("service account only", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/path/to/key.json")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

		cfg := DefaultConfig()
		assert.NoError(t, cfg.LoadFromEnv())
		assert.Equal(t, "/path/to/key.json", cfg.ServiceAccountPath)
		assert.Equal(t, "Sales Analysis Report", cfg.SpreadsheetName)
	})

	t.Run("missing auth", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

		cfg := DefaultConfig()
		assert.Error(t, cfg.LoadFromEnv())
	})
}
