package catalog

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/om"
)

const sample = "Uniform representatives of rank 2 on 3 elements:\n" +
	"+++\n" +
	"++-\r\n" +
	"\n" +
	"-+-\n"

func readAll(t *testing.T, r *Reader) []string {
	t.Helper()
	var got []string
	for {
		c, err := r.Next()
		if err == io.EOF {
			return got
		}
		require.NoError(t, err)
		got = append(got, c.String())
	}
}

func TestFileNames(t *testing.T) {
	require.Equal(t, "uniform_representatives_rank3_6elements.txt", UniformFileName(3, 6))
	require.Equal(t, "lower_cones_rank3_6elements_12.txt", LowerConeFileName(3, 6, 12))
	require.Equal(t,
		"Elements of lower cone of the 4-th uniform representative (under reorientations and permutations) of rank 3 on 7 elements:",
		LowerConeHeader(4, 3, 7))
}

func TestReader_SkipsHeader(t *testing.T) {
	r := NewReader(strings.NewReader(sample), "sample", 3)
	got := readAll(t, r)
	if diff := cmp.Diff([]string{"+++", "++-", "-+-"}, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	_, err := r.Next()
	require.Equal(t, io.EOF, err, "reader stays at EOF")
}

func TestReader_HeaderOnly(t *testing.T) {
	r := NewReader(strings.NewReader("+++\n"), "sample", 0)
	_, err := r.Next()
	require.Equal(t, io.EOF, err, "the first line is always a header")
}

func TestReader_BadCharacter(t *testing.T) {
	r := NewReader(strings.NewReader("header\n+++\n+x+\n+++\n"), "bad.txt", 3)

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidData})

	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	require.Equal(t, []string{"bad.txt", "3"}, e.Path)
	require.Equal(t, byte('x'), e.Value)

	_, again := r.Next()
	require.Equal(t, err, again, "a malformed line stops the reader")
}

func TestReader_WrongLength(t *testing.T) {
	r := NewReader(strings.NewReader("header\n++++\n"), "short.txt", 3)
	_, err := r.Next()
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidData})
}

func TestReader_Nth(t *testing.T) {
	tests := []struct {
		name string
		idx  int
		want string
		ok   bool
	}{
		{"first", 0, "+++", true},
		{"middle", 1, "++-", true},
		{"last", 2, "-+-", true},
		{"past end", 3, "", false},
		{"negative", -1, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(strings.NewReader(sample), "sample", 3)
			c, err := r.Nth(tt.idx)
			if !tt.ok {
				require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindOutOfRange})
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, c.String())
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"), 0)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindIO})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), LowerConeFileName(2, 3, 0))
	w, err := Create(path, LowerConeHeader(0, 2, 3))
	require.NoError(t, err)

	var want []string
	for _, s := range []string{"+00", "0+0", "++0", "+-+", "000"} {
		c, err := om.Parse(s)
		require.NoError(t, err)
		require.NoError(t, w.Emit(c))
		want = append(want, s)
	}
	require.Equal(t, 5, w.Count())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Equal(t, LowerConeHeader(0, 2, 3), lines[0])

	r, err := Open(path, 3)
	require.NoError(t, err)
	defer r.Close()
	if diff := cmp.Diff(want, readAll(t, r)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCreate_BadDirectory(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.txt"), "header")
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseWrite, Kind: errors.KindIO})
}
