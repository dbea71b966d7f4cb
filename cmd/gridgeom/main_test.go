package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const twoTetNeutral = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
Two tetrahedra
PROGRAM:                  Test     VERSION:  1.0
Mon Jan  1 00:00:00 2025
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         5         2         1         0         3         3
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.00000000000e+00   0.00000000000e+00   0.00000000000e+00
         2   1.00000000000e+00   0.00000000000e+00   0.00000000000e+00
         3   0.00000000000e+00   1.00000000000e+00   0.00000000000e+00
         4   0.00000000000e+00   0.00000000000e+00   1.00000000000e+00
         5   1.00000000000e+00   1.00000000000e+00   1.00000000000e+00
ENDOFSECTION
   ELEMENTS/CELLS 2.0.0
         1         6         4         1         2         3         4
         2         6         4         2         3         4         5
ENDOFSECTION
`

func writeMesh(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "two_tets.neu")
	require.NoError(t, os.WriteFile(path, []byte(twoTetNeutral), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestCompute_YAML(t *testing.T) {
	mesh := writeMesh(t)
	stdout, stderr, err := runCLI(t, "compute", "--mesh", mesh, "--workers", "2", "--strategy", "weighted")
	require.NoError(t, err)
	assert.Contains(t, stderr, "mesh loaded")

	var rep report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, mesh, rep.Mesh)
	assert.Equal(t, 7, rep.Summary.NumFaces)
	assert.Equal(t, 2, rep.Summary.NumCells)
	assert.InDelta(t, 0.5, rep.Summary.TotalVolume, 1e-12)
	assert.Empty(t, rep.Warnings)
	require.Len(t, rep.Cells, 2)
	assert.Equal(t, 1, rep.Cells[1].Element)
	assert.InDelta(t, 1.0/3.0, rep.Cells[1].Volume, 1e-12)
	require.Len(t, rep.Faces, 7)
	assert.Len(t, rep.Faces[0].Normal, 3)
}

func TestCompute_JSONToFile(t *testing.T) {
	mesh := writeMesh(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gridgeom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: json\nlog_level: error\n"), 0o644))
	outPath := filepath.Join(dir, "report.json")

	stdout, stderr, err := runCLI(t, "compute", "-c", cfgPath, "-m", mesh, "-o", outPath, "--summary-only")
	require.NoError(t, err)
	assert.Contains(t, stdout, "7 faces, 2 cells written to")
	assert.Empty(t, stderr)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, 2, rep.Summary.NumCells)
	assert.Empty(t, rep.Faces)
	assert.Empty(t, rep.Cells)
}

func TestCompute_Errors(t *testing.T) {
	mesh := writeMesh(t)
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no mesh", []string{"compute"}, "--mesh is required"},
		{"missing mesh", []string{"compute", "-m", filepath.Join(t.TempDir(), "none.neu")}, "none.neu"},
		{"strategy", []string{"compute", "-m", mesh, "--strategy", "metis"}, "Strategy"},
		{"format", []string{"compute", "-m", mesh, "-f", "xml"}, "Format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCheck(t *testing.T) {
	mesh := writeMesh(t)
	stdout, _, err := runCLI(t, "check", "-m", mesh, "-t", "1e-12")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 cells checked, 0 open, 0 with non-positive volume, 0 warnings")

	_, _, err = runCLI(t, "check", "-m", mesh, "-t", "-1")
	assert.ErrorContains(t, err, "ClosureTolerance")
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gridgeom v"+Version)
}
