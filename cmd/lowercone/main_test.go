package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/chirotope/catalog"
	"github.com/wippyai/chirotope/config"
	"github.com/wippyai/chirotope/errors"
)

func testConfig(t *testing.T, r, n int) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Rank, cfg.Elements = r, n
	cfg.InputDir = dir
	cfg.OutputDir = dir
	return cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func writeCatalogue(t *testing.T, path string, entries ...string) {
	t.Helper()
	text := "Uniform representatives:\n" + strings.Join(entries, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunJob_Rank2(t *testing.T) {
	cfg := testConfig(t, 2, 4)
	cfg.MetricsFile = filepath.Join(cfg.OutputDir, "run.prom")

	res, err := runJob(context.Background(), cfg, 0, jobOptions{runID: "test"})
	require.NoError(t, err)
	require.False(t, res.Skipped)
	require.Equal(t, uint64(33), res.Stats.Accepted)
	require.Equal(t, filepath.Join(cfg.OutputDir, "lower_cones_rank2_4elements_0.txt"), res.Output)

	lines := readLines(t, res.Output)
	require.Len(t, lines, 34)
	require.Equal(t, catalog.LowerConeHeader(0, 2, 4), lines[0])
	require.Equal(t, "+00000", lines[1])
	require.Equal(t, "++++++", lines[33])

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), "chirotope_lower_cone_candidates_checked_total")
}

func TestRunJob_Rank2OnlyIndexZero(t *testing.T) {
	cfg := testConfig(t, 2, 4)
	res, err := runJob(context.Background(), cfg, 1, jobOptions{})
	require.NoError(t, err)
	require.True(t, res.Skipped)

	_, err = os.Stat(filepath.Join(cfg.OutputDir, catalog.LowerConeFileName(2, 4, 1)))
	require.True(t, os.IsNotExist(err), "no output for an out of range index")
}

func TestRunJob_FromCatalogue(t *testing.T) {
	cfg := testConfig(t, 3, 5)
	writeCatalogue(t, cfg.InputPath(catalog.UniformFileName(3, 5)), "++++++++++", "-+++++++++")

	res, err := runJob(context.Background(), cfg, 0, jobOptions{})
	require.NoError(t, err)
	require.Equal(t, uint64(131), res.Stats.Accepted)
	require.Len(t, readLines(t, res.Output), 132)

	res, err = runJob(context.Background(), cfg, 2, jobOptions{})
	require.NoError(t, err)
	require.True(t, res.Skipped)
}

func TestRunJob_MissingCatalogue(t *testing.T) {
	cfg := testConfig(t, 3, 5)
	_, err := runJob(context.Background(), cfg, 0, jobOptions{})
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindIO})
}

func TestRunJob_MalformedCatalogue(t *testing.T) {
	cfg := testConfig(t, 3, 5)
	writeCatalogue(t, cfg.InputPath(catalog.UniformFileName(3, 5)), "+++++?++++")
	_, err := runJob(context.Background(), cfg, 0, jobOptions{})
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidData})
}

func TestRunJob_NonUniformRepresentative(t *testing.T) {
	cfg := testConfig(t, 3, 5)
	writeCatalogue(t, cfg.InputPath(catalog.UniformFileName(3, 5)), "+++++0++++")
	_, err := runJob(context.Background(), cfg, 0, jobOptions{})
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEnumerate, Kind: errors.KindInvalidInput})
}

func TestRunJob_Capacity(t *testing.T) {
	cfg := testConfig(t, 3, 9)
	_, err := runJob(context.Background(), cfg, 0, jobOptions{})
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseSetup, Kind: errors.KindCapacity})

	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	require.Empty(t, entries, "capacity is checked before any file is touched")
}

func TestCLI_LowerCone(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--rank", "2", "--elements", "4", "--output-dir", dir, "0")
	require.NoError(t, err)
	require.Equal(t, "33 chirotopes\n", out)
	require.FileExists(t, filepath.Join(dir, catalog.LowerConeFileName(2, 4, 0)))
}

func TestCLI_IndexTooLarge(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "--rank", "2", "--elements", "4", "--output-dir", dir, "3")
	require.NoError(t, err)
	require.Equal(t, tooLarge+"\n", out)
}

func TestCLI_BadIndex(t *testing.T) {
	_, err := execute(t, "--rank", "2", "--elements", "4", "three")
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseSetup, Kind: errors.KindInvalidInput})
}

func TestCLI_Bases(t *testing.T) {
	out, err := execute(t, "--rank", "2", "--elements", "4", "bases")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, "0: 0 1", lines[0])
	require.Equal(t, "5: 2 3", lines[5])
}

func TestCLI_Check(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	writeCatalogue(t, good, "++++++", "---+++")
	out, err := execute(t, "--rank", "2", "--elements", "4", "check", good)
	require.NoError(t, err)
	require.Contains(t, out, "2 entries, 2 chirotopes, 0 invalid")

	bad := filepath.Join(dir, "bad.txt")
	writeCatalogue(t, bad, "++++++", "+0++0+", "000000")
	out, err = execute(t, "--rank", "2", "--elements", "4", "check", bad)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseAxiom, Kind: errors.KindViolation})
	require.Contains(t, out, "entry 1: ")
	require.Contains(t, out, "entry 2: ")
	require.Contains(t, out, "3 entries, 1 chirotopes, 2 invalid")
}

func TestCLI_Fixed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	writeCatalogue(t, in, "------", "+00000")
	group := filepath.Join(dir, "group.txt")
	require.NoError(t, os.WriteFile(group, []byte("# identity and reversal\n0 1 2 3\n3 2 1 0\n"), 0o644))
	outFile := filepath.Join(dir, "fixed.txt")

	out, err := execute(t, "--rank", "2", "--elements", "4", "fixed", "--group", group, "-o", outFile, in)
	require.NoError(t, err)
	require.Equal(t, "1 of 2 entries fixed\n", out)

	lines := readLines(t, outFile)
	require.Len(t, lines, 2)
	require.Equal(t, "++++++", lines[1], "kept entries are standardized")
}

func TestCLI_FixedNeedsGroup(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	writeCatalogue(t, in, "++++++")
	_, err := execute(t, "--rank", "2", "--elements", "4", "fixed", in)
	require.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseSymmetry, Kind: errors.KindInvalidInput})
}

func TestProgressModel(t *testing.T) {
	cfg := testConfig(t, 2, 4)
	canceled := false
	m := newProgressModel(cfg, 0, func() { canceled = true })

	m.Update(progressMsg{Bases: 6, Checked: 32, Accepted: 10})
	require.Contains(t, m.View(), "checked")
	require.InDelta(t, 0.5, m.current.Fraction(), 1e-9)

	_, cmd := m.Update(doneMsg{res: jobResult{Output: "out.txt"}})
	require.NotNil(t, cmd)
	require.True(t, m.done)
	require.Contains(t, m.View(), "wrote out.txt")
	require.False(t, canceled)
}
