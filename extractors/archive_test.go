package extractors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/models"
	"github.com/inhamo/Banking-AML-Risk-Analysis-Project/utils"
)

func TestArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	archiver := NewArchiver(dir, utils.NewETLLogger(false))

	batch := []models.Record{
		{"customer_id": "CUST001", "first_name": "Tendai"},
		{"customer_id": "CUST002", "first_name": "Rudo"},
	}
	require.NoError(t, archiver.ArchiveBatch("customers_staged", batch))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "customers_staged_")
	assert.Contains(t, entries[0].Name(), ".json.snappy")

	restored, err := archiver.ReadSnapshot(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	require.Len(t, restored, 2)
	assert.Equal(t, "CUST001", restored[0].Str("customer_id"))
	assert.Equal(t, "Rudo", restored[1].Str("first_name"))
}

func TestArchiveIdenticalBatchIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	archiver := NewArchiver(dir, utils.NewETLLogger(false))

	batch := []models.Record{{"account_id": "ACC001"}}
	require.NoError(t, archiver.ArchiveBatch("accounts_staged", batch))
	require.NoError(t, archiver.ArchiveBatch("accounts_staged", batch))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestArchiveAddressedBySourceHash(t *testing.T) {
	dir := t.TempDir()
	archiver := NewArchiver(dir, utils.NewETLLogger(false))

	batch := []models.Record{
		{"customer_id": "CUST001", models.LineageSourceHash: "a1b2c3d4e5f60718"},
		{"customer_id": "CUST002", models.LineageSourceHash: "a1b2c3d4e5f60718"},
	}
	require.NoError(t, archiver.ArchiveBatch("customers_staged", batch))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "customers_staged_a1b2c3d4e5f6.json.snappy", entries[0].Name())
}

func TestArchiveCombinesSourceHashesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	archiver := NewArchiver(dir, utils.NewETLLogger(false))

	// Rows unioned from two source files: the snapshot name must stay
	// stable regardless of row order.
	forward := []models.Record{
		{"account_id": "ACC001", models.LineageSourceHash: "aaaa0000"},
		{"account_id": "ACC002", models.LineageSourceHash: "bbbb1111"},
	}
	reversed := []models.Record{forward[1], forward[0]}

	require.NoError(t, archiver.ArchiveBatch("accounts_staged", forward))
	require.NoError(t, archiver.ArchiveBatch("accounts_staged", reversed))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestArchiveDistinctBatchesGetDistinctSnapshots(t *testing.T) {
	dir := t.TempDir()
	archiver := NewArchiver(dir, utils.NewETLLogger(false))

	require.NoError(t, archiver.ArchiveBatch("accounts_staged", []models.Record{{"account_id": "ACC001"}}))
	require.NoError(t, archiver.ArchiveBatch("accounts_staged", []models.Record{{"account_id": "ACC002"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
