package filestorage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	id, err := storage.Put([]byte("ecu contents"), "ecu.bin")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(id, ".bin"))

	reader, err := storage.Get(id)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	reader.Close()
	assert.Equal(t, []byte("ecu contents"), data)

	require.NoError(t, storage.Delete(id))
	_, err = storage.Get(id)
	assert.Error(t, err)
}

func TestPutGeneratesUniqueReferences(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	a, err := storage.Put([]byte("one"), "ecu.bin")
	require.NoError(t, err)
	b, err := storage.Put([]byte("two"), "ecu.bin")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDeleteMissingBlobIsNoop(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, storage.Delete("2026/01/01/missing.bin"))
}

func TestGetRejectsTraversal(t *testing.T) {
	storage, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.Get("../../../etc/passwd")
	assert.Error(t, err)

	_, err = storage.Get("/etc/passwd")
	assert.Error(t, err)
}
