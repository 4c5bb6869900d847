package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/bvh"
)

func runBench(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestMindist_AgreesWithBruteForce(t *testing.T) {
	out, err := runBench(t, "mindist", "--dims", "4", "--points", "300", "--queries", "200", "--offset", "0.3")
	require.NoError(t, err)
	assert.Contains(t, out, "mindist: 200 results agree")
}

func TestIsect_AgreesWithBruteForce(t *testing.T) {
	out, err := runBench(t, "isect", "--dims", "7", "--points", "300", "--queries", "300",
		"--min-dist", "0.1,0.2,0.4", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "isect: 900 results agree")
}

func TestIsectTree_AgreesWithBruteForce(t *testing.T) {
	out, err := runBench(t, "isect-tree", "--dims", "5", "--points", "200", "--offset", "0.8",
		"--min-dist", "0.05,0.1,0.3,0.6,1.2", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "isect-tree: 5 results agree")
}

func TestMindist_SaveSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bvh")
	_, err := runBench(t, "mindist", "--dims", "3", "--points", "100", "--queries", "10", "--save", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	idx, err := bvh.ReadIndex(f, bvh.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 100, idx.Len())
	assert.Equal(t, 3, idx.Dims())
}

func TestRoot_RejectsBadSizes(t *testing.T) {
	_, err := runBench(t, "mindist", "--points", "0")
	assert.Error(t, err)
}
