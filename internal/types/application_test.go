//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "pending", want: StatusPending},
		{input: "Interview", want: StatusInterview},
		{input: "  OFFERED ", want: StatusOffered},
		{input: "rejected", want: StatusRejected},
		{input: "accepted", want: StatusAccepted},
		{input: "ghosted", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplication_EffectiveStatus(t *testing.T) {
	assert.Equal(t, StatusPending, (&Application{}).EffectiveStatus())
	assert.Equal(t, StatusInterview, (&Application{Status: "Interview"}).EffectiveStatus())
}

func TestApplicationStats_Add(t *testing.T) {
	var stats ApplicationStats
	for _, s := range []Status{"", StatusPending, StatusInterview, "Offered", StatusAccepted, StatusRejected, "unknown"} {
		stats.Add(&Application{Status: s})
	}

	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Interview)
	assert.Equal(t, 1, stats.Offered)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Rejected)
}

func TestApplicationEntry_JSONFlattensRecord(t *testing.T) {
	entry := ApplicationEntry{
		Index:       2,
		Application: Application{CompanyName: "Acme", Status: StatusPending},
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(2), decoded["index"])
	assert.Equal(t, "Acme", decoded["company_name"])
	assert.Equal(t, "pending", decoded["status"])
}
