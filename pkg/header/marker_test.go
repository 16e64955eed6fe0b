package header

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"basic", "@@CWT|java,cpp@@", []string{"java", "cpp"}},
		{"case and spaces", "@@cwt| JAVA , Cpp ,h @@", []string{"java", "cpp", "h"}},
		{"duplicates keep first order", "@@CWT|go,JAVA,go,java,c@@", []string{"go", "java", "c"}},
		{"leading dots", "@@CWT|.go,..ts@@", []string{"go", ".ts"}},
		{"empty entries dropped", "@@CWT|java,,cpp,@@", []string{"java", "cpp"}},
		{"trailing text ignored", "@@CWT|py@@ anything after", []string{"py"}},
		{"byte order mark", "\ufeff@@CWT|rs@@", []string{"rs"}},
		{"no extensions", "@@CWT|@@", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMarker(tt.line)
			require.NoError(t, err)
			assert.Equal(t, MarkerTag, m.Tag)
			assert.Equal(t, tt.want, m.Extensions)
		})
	}
}

func TestParseMarkerNoMatch(t *testing.T) {
	for _, line := range []string{"", "Copyright 2026", " @@CWT|java@@", "@@CWT java@@", "@@CWT|java"} {
		_, err := ParseMarker(line)
		assert.ErrorIs(t, err, ErrNoMarker, line)
	}
}

func TestParseMarkerUnsupportedTag(t *testing.T) {
	_, err := ParseMarker("@@LIC|java@@")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedMarker))
	assert.Contains(t, err.Error(), `"LIC"`)
}

func TestMarkerString(t *testing.T) {
	m, err := ParseMarker("@@cwt|JAVA, cpp@@")
	require.NoError(t, err)
	assert.Equal(t, "@@CWT|java,cpp@@", m.String())
}
