package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/storage"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	location, err := store.Upload(ctx, "fulfilment_output/2018-02-09_HOME_DELIVERY.csv", strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NotEmpty(t, location)

	rc, err := store.NewReader(ctx, "fulfilment_output/2018-02-09_HOME_DELIVERY.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "a,b\n1,2\n", string(data))
}

func TestLocalStoreMissingObject(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.NewReader(context.Background(), "nope/missing.csv")
	require.ErrorIs(t, err, storage.ErrObjectNotExist)
}

func TestNewStoreValidation(t *testing.T) {
	ctx := context.Background()

	_, err := storage.NewStore(ctx, storage.Config{Provider: storage.ProviderLocal})
	require.ErrorIs(t, err, storage.ErrDirRequired)

	_, err = storage.NewStore(ctx, storage.Config{Provider: "ftp"})
	require.ErrorIs(t, err, storage.ErrUnsupportedProvider)
}
