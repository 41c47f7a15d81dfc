package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdxpulse/internal/shared/testutil"
	"pdxpulse/pkg/contracts/domain"
)

func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Summary(t *testing.T) {
	path := writeSample(t, "pdx.csv", testutil.SampleCSV)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-file", path, "-top", "2", "-filter", "gender=Masculino"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	var summary domain.Summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, 2, summary.Totals.Locations)
	assert.Equal(t, "Masculino", summary.Filters[domain.FilterGender])
	for _, list := range summary.TopLists {
		assert.LessOrEqual(t, len(list.Entries), 2)
	}
}

func TestRun_DirectoryAndExports(t *testing.T) {
	path := writeSample(t, "pdx.csv", testutil.SampleCSV)
	outDir := t.TempDir()
	rowsOut := filepath.Join(outDir, "rows.csv")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-file", filepath.Dir(path), "-state", "PE", "-top-dir", outDir, "-rows-out", rowsOut}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.FileExists(t, filepath.Join(outDir, domain.GroupBrands+".csv"))
	data, err := os.ReadFile(rowsOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Loja Derby")
	assert.NotContains(t, string(data), "Loja Paulista")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want int
	}{
		{name: "bad filter", args: func(*testing.T) []string { return []string{"-filter", "income=high"} }, want: 2},
		{name: "missing file", args: func(t *testing.T) []string {
			return []string{"-file", filepath.Join(t.TempDir(), "nope.csv")}
		}, want: 1},
		{name: "unsupported extension", args: func(t *testing.T) []string {
			return []string{"-file", writeSample(t, "pdx.txt", "x")}
		}, want: 1},
		{name: "missing longitude", args: func(t *testing.T) []string {
			return []string{"-file", writeSample(t, "pdx.csv", testutil.SampleMissingLongitudeCSV)}
		}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(tt.args(t), &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestFilterFlags(t *testing.T) {
	f := filterFlags{}
	require.NoError(t, f.Set("age=18-24"))
	assert.Equal(t, "age=18-24", f.String())
	assert.Error(t, f.Set("age"))
	assert.Error(t, f.Set("income=x"))
}
