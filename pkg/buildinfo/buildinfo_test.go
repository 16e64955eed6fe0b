package buildinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryVersionDefault(t *testing.T) {
	assert.Equal(t, "dev", BinaryVersion)
}

func TestVersionPrefersLdflags(t *testing.T) {
	orig := BinaryVersion
	t.Cleanup(func() { BinaryVersion = orig })

	BinaryVersion = "v1.4.0"
	assert.Equal(t, "v1.4.0", Version())
}

func TestVersionFallback(t *testing.T) {
	v := Version()
	if mv := ModuleVersion(); mv != "" {
		assert.Equal(t, mv, v)
		return
	}
	assert.Equal(t, "dev", v)
}

func TestCurrent(t *testing.T) {
	info := Current()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.Version)
}
