package collector

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftahirops/connstat/model"
)

func TestParseSnapshot(t *testing.T) {
	now := time.Unix(1700000000, 0)
	snap, err := ParseSnapshot([]string{
		"",
		"laddr, lport ,state\r",
		"10.0.0.1,443,ESTABLISHED",
		"   ",
		"10.0.0.2,80,LISTEN",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, now, snap.Timestamp)
	assert.Equal(t, []string{"laddr", "lport", "state"}, snap.Header)
	assert.Equal(t, []model.Row{
		{"10.0.0.1", "443", "ESTABLISHED"},
		{"10.0.0.2", "80", "LISTEN"},
	}, snap.Rows)
}

func TestParseSnapshot_Empty(t *testing.T) {
	_, err := ParseSnapshot(nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = ParseSnapshot([]string{"", "  "}, time.Now())
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcpstat")
	require.NoError(t, os.WriteFile(path, []byte("laddr,lport\n1.2.3.4,22\n"), 0o600))

	src := NewFileSource(path)
	assert.Equal(t, path, src.Name())

	snap, err := src.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"laddr", "lport"}, snap.Header)
	require.Len(t, snap.Rows, 1)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent"))
	_, err := src.Read()
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "kernel module")
}

func TestNewFileSource_Default(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFileSource("").Path)
}

func TestStaticSource_RepeatsLast(t *testing.T) {
	src := NewStaticSource([]string{"a"}, []string{"b"})
	src.Now = func() time.Time { return time.Unix(5, 0) }

	for _, want := range []string{"a", "b", "b"} {
		snap, err := src.Read()
		require.NoError(t, err)
		assert.Equal(t, []string{want}, snap.Header)
		assert.Equal(t, int64(5), snap.Timestamp.Unix())
	}
	assert.Equal(t, 3, src.Reads())
}
