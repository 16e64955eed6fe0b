package inject

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortFile lets budget bytes through to the real file, then fails.
type shortFile struct {
	f      *os.File
	budget int
}

func (s *shortFile) Write(p []byte) (int, error) {
	if len(p) <= s.budget {
		s.budget -= len(p)
		return s.f.Write(p)
	}
	n, _ := s.f.Write(p[:s.budget])
	s.budget = 0
	return n, errors.New("no space left on device")
}

func (s *shortFile) Seek(offset int64, whence int) (int64, error) { return s.f.Seek(offset, whence) }
func (s *shortFile) Close() error                                 { return s.f.Close() }

func injectorWithOpen(t *testing.T, opts Options, open func(string, int, os.FileMode) (targetFile, error)) *Injector {
	t.Helper()
	in, err := New(opts)
	require.NoError(t, err)
	in.openFile = open
	return in
}

func TestPrependFailureRestoresOriginalBytes(t *testing.T) {
	fx := newFixture(t)
	fx.template(t, "h.txt", "@@CWT|go@@\n// a fairly long header line\n")
	original := "package main\n\nfunc main() {}\n"
	f := fx.target(t, "main.go", original)

	for _, budget := range []int{0, 5, 40} {
		in := injectorWithOpen(t, fx.options(), func(name string, flag int, perm os.FileMode) (targetFile, error) {
			real, err := os.OpenFile(name, flag, perm)
			if err != nil {
				return nil, err
			}
			return &shortFile{f: real, budget: budget}, nil
		})

		res := in.Run()
		assert.False(t, res.Success(), "budget %d", budget)
		assert.Equal(t, []Outcome{{Path: f, Reason: ReasonWriteFailure}}, res.Failed, "budget %d", budget)
		assert.Equal(t, original, readFile(t, f), "budget %d", budget)
	}

	entries, err := os.ReadDir(fx.backups)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrependOpenFailure(t *testing.T) {
	fx := newFixture(t)
	fx.template(t, "h.txt", "@@CWT|go@@\n// H\n")
	f := fx.target(t, "main.go", "package main\n")
	g := fx.target(t, "other.go", "package other\n")

	in := injectorWithOpen(t, fx.options(), func(name string, flag int, perm os.FileMode) (targetFile, error) {
		if name == f {
			return nil, os.ErrPermission
		}
		return openOSFile(name, flag, perm)
	})

	res := in.Run()
	assert.Equal(t, []Outcome{{Path: f, Reason: ReasonWriteFailure}}, res.Failed)
	assert.Equal(t, []string{g}, res.Succeeded)
	assert.Equal(t, "package main\n", readFile(t, f))
	assert.Equal(t, "// H"+sep+"package other\n", readFile(t, g))
}

func TestPrependCloseFailureRestores(t *testing.T) {
	fx := newFixture(t)
	fx.template(t, "h.txt", "@@CWT|go@@\n// H\n")
	f := fx.target(t, "main.go", "package main\n")

	in := injectorWithOpen(t, fx.options(), func(name string, flag int, perm os.FileMode) (targetFile, error) {
		real, err := os.OpenFile(name, flag, perm)
		if err != nil {
			return nil, err
		}
		return closeFails{real}, nil
	})

	res := in.Run()
	assert.Equal(t, []Outcome{{Path: f, Reason: ReasonWriteFailure}}, res.Failed)
	assert.Equal(t, "package main\n", readFile(t, f))
}

type closeFails struct{ *os.File }

func (c closeFails) Close() error {
	_ = c.File.Close()
	return io.ErrClosedPipe
}

func TestPrependBackupDirGoneFailsFile(t *testing.T) {
	fx := newFixture(t)
	fx.template(t, "h.txt", "@@CWT|go@@\n// H\n")
	f := fx.target(t, "main.go", "package main\n")

	in, err := New(fx.options())
	require.NoError(t, err)
	require.NoError(t, os.Remove(fx.backups))

	res := in.Run()
	assert.Equal(t, []Outcome{{Path: f, Reason: ReasonWriteFailure}}, res.Failed)
	assert.Equal(t, "package main\n", readFile(t, f))
}
