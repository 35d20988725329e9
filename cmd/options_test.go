package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/connstat/engine"
)

func TestOptionsValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"zero interval", Options{Interval: 0, intervalSet: true}, engine.ErrInvalidConfig},
		{"negative interval", Options{Interval: -3, intervalSet: true}, engine.ErrInvalidConfig},
		{"zero count", Options{Count: 0, countSet: true, Interval: 1, intervalSet: true}, engine.ErrInvalidConfig},
		{"count without interval", Options{Count: 2, countSet: true}, engine.ErrInvalidConfig},
		{"bad timestamp", Options{Timestamp: "x"}, engine.ErrInvalidConfig},
		{"parsable without output", Options{Parsable: true}, engine.ErrInvalidConfig},
		{"parsable with all", Options{Parsable: true, Output: "all", outputSet: true}, engine.ErrInvalidConfig},
		{"empty output", Options{Output: "", outputSet: true}, engine.ErrInvalidConfig},
		{"blank output", Options{Output: " ", outputSet: true}, engine.ErrInvalidConfig},
		{"parsable with padded all", Options{Parsable: true, Output: " all", outputSet: true}, engine.ErrInvalidConfig},
		{"parsable with trailing-space all", Options{Parsable: true, Output: "all ", outputSet: true}, engine.ErrInvalidConfig},
		{"parsable with blank output", Options{Parsable: true, Output: " ", outputSet: true}, engine.ErrInvalidConfig},
		{"unknown output field", Options{Output: "nosuchfield", outputSet: true}, engine.ErrUnknownField},
		{"malformed filter", Options{Filter: "state"}, engine.ErrMalformedFilter},
		{"filter on unknown field", Options{Filter: "bogus=1"}, engine.ErrUnknownField},
		{"live with parsable", Options{Live: true, Parsable: true, Output: "laddr", outputSet: true}, engine.ErrInvalidConfig},
		{"live with count", Options{Live: true, Count: 1, countSet: true, Interval: 1, intervalSet: true}, engine.ErrInvalidConfig},
		{"live with timestamp", Options{Live: true, Timestamp: "u"}, engine.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.validate()
			require.ErrorIs(t, err, tt.want)
			assert.True(t, engine.IsConfigError(err))
		})
	}
}

func TestOptionsValidate_Plan(t *testing.T) {
	opts := Options{
		Count: 3, countSet: true,
		Interval: 2, intervalSet: true,
		Established: true,
		Filter:      "rport=443",
		NoLoopback:  true,
		Output:      "laddr,rtt", outputSet: true,
		Parsable:  true,
		Timestamp: "d",
	}
	p, err := opts.validate()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, p.interval)
	assert.Equal(t, 3, p.count)
	assert.True(t, p.parsable)
	assert.Equal(t, "d", p.timestamp)
	assert.True(t, p.engine.NoLoopback)
	assert.Equal(t, engine.OutputList, p.engine.Output.Mode)
	assert.Equal(t, []string{"laddr", "rtt"}, p.engine.Output.Names)
	assert.Equal(t, []engine.FilterTerm{{Field: "state", Value: "ESTABLISHED"}, {Field: "rport", Value: "443"}}, p.engine.Filters.Terms())
}

func TestOptionsValidate_SingleShotDefaults(t *testing.T) {
	p, err := (&Options{}).validate()
	require.NoError(t, err)
	assert.Zero(t, p.interval)
	assert.Zero(t, p.count)
	assert.Equal(t, engine.OutputDefault, p.engine.Output.Mode)
	assert.Zero(t, p.engine.Filters.Len())
}
