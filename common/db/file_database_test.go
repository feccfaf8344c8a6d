package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
)

func TestFileDatabaseRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"products":[{"id":1}]}`), 0o644))

	var dest struct {
		Products []struct {
			ID int `json:"id"`
		} `json:"products"`
	}
	fdb := NewFileDatabase(path)
	assert.NilError(t, fdb.Read(context.Background(), &dest))
	assert.Equal(t, len(dest.Products), 1)
	assert.Equal(t, fdb.FilePath(), path)
}

func TestFileDatabaseErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFileDatabase(filepath.Join(dir, "missing.json")).ReadRaw(context.Background())
	assert.Assert(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.json")
	assert.NilError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	var v map[string]interface{}
	assert.ErrorContains(t, NewFileDatabase(bad).Read(context.Background(), &v), "unexpected end of JSON input")
}
