package boltdb

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/edge-modules/storage"
)

func newStorage(t *testing.T) (storage.Storage, func()) {
	t.Helper()

	s, err := NewBoltDBStorage(filepath.Join(t.TempDir(), "db"), hclog.NewNullLogger())
	require.NoError(t, err)

	closeFn := func() {
		require.NoError(t, s.Close())
	}

	return s, closeFn
}

func TestStorage(t *testing.T) {
	t.Parallel()

	storage.TestStorage(t, newStorage)
}
