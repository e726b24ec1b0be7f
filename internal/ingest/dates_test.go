package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "ISO date", input: "2024-03-05", want: want},
		{name: "RFC3339", input: "2024-03-05T14:30:00Z", want: want},
		{name: "datetime without zone", input: "2024-03-05 14:30:00", want: want},
		{name: "slash separated", input: "2024/03/05", want: want},
		{name: "dotted european", input: "05.03.2024", want: want},
		{name: "US slashes", input: "03/05/2024", want: want},
		{name: "long form", input: "Mar 5, 2024", want: want},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseDate_NormalizesToMidnightUTC(t *testing.T) {
	got, err := ParseDate("2024-03-05T23:59:59+05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}
