package catalog

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRecordAndListRuns(t *testing.T) {
	c := openTestCatalog(t)

	id1, err := c.RecordStart("/data/run1", ".txt")
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := c.RecordStart("/data/run2", ".bin")
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	require.NoError(t, c.RecordResult(id1, 12, nil))
	require.NoError(t, c.RecordResult(id2, 0, fmt.Errorf("viewport render failed")))

	runs, err := c.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]Run{}
	for _, r := range runs {
		byID[r.RunID] = r
	}

	done := byID[id1]
	assert.Equal(t, StatusCompleted, done.Status)
	assert.Equal(t, 12, done.FrameCount)
	assert.Equal(t, "/data/run1", done.OutputDir)
	assert.Empty(t, done.Error)
	require.NotNil(t, done.CompletedAt)

	failed := byID[id2]
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "viewport render failed")
}

func TestRecordResultUnknownRun(t *testing.T) {
	c := openTestCatalog(t)
	err := c.RecordResult("no-such-run", 0, nil)
	require.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	c1, err := Open(path)
	require.NoError(t, err)
	_, err = c1.RecordStart("/data/run", ".txt")
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	// Reopening applies no further migrations and keeps existing rows.
	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()
	runs, err := c2.ListRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListRunsLimit(t *testing.T) {
	c := openTestCatalog(t)
	for i := 0; i < 5; i++ {
		_, err := c.RecordStart(fmt.Sprintf("/data/run%d", i), ".txt")
		require.NoError(t, err)
	}
	runs, err := c.ListRuns(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
