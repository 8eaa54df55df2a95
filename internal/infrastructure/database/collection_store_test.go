package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"propmedia/internal/domain/model"
)

const (
	mongoImage    = "mongo:latest"
	mongoUser     = "testuser"
	mongoPassword = "testpass"
	mongoDBName   = "testdb"
)

func setupDatabase(t *testing.T) *Database {
	t.Helper()

	if _, err := os.Stat("/var/run/docker.sock"); err != nil {
		t.Skip("docker not available")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": mongoUser,
			"MONGO_INITDB_ROOT_PASSWORD": mongoPassword,
		},
		WaitingFor: wait.ForLog("Waiting for connections").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("failed to terminate mongo container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	db, err := Connect(Config{
		URI:               fmt.Sprintf("mongodb://%s:%s@%s", mongoUser, mongoPassword, endpoint),
		DBName:            mongoDBName,
		ConnectionTimeout: 30000,
		QueryTimeout:      30000,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Stop(); err != nil {
			t.Errorf("failed to stop database: %v", err)
		}
	})

	return db
}

func TestCollectionStoreRoundTrip(t *testing.T) {
	store := NewCollectionStore(setupDatabase(t))
	ctx := context.Background()

	col := model.NewCollection("rec-1")
	col.Items = []model.MediaItem{
		{
			ID:           "m1",
			Type:         model.MediaTypeImage,
			Storage:      model.StorageRemote,
			RemoteURL:    "https://cdn.test/m1.jpg",
			ThumbnailURL: "https://cdn.test/m1_thumb.jpg",
			IsCover:      true,
			FileName:     "kitchen.jpg",
			FileSize:     2048,
			FileType:     "image/jpeg",
			UploadedAt:   time.Now().UTC().Truncate(time.Millisecond),
		},
		{
			ID:       "m2",
			Type:     model.MediaTypeVideo,
			Storage:  model.StorageLocal,
			LocalKey: "rec-1/m2",
			FileName: "walkthrough.mp4",
		},
	}

	require.NoError(t, store.Save(ctx, col))

	got, err := store.Load(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", got.ParentID)
	require.Len(t, got.Items, 2)
	assert.Equal(t, col.Items[0].ID, got.Items[0].ID)
	assert.True(t, got.Items[0].IsCover)
	assert.Equal(t, "rec-1/m2", got.Items[1].LocalKey)
}

func TestCollectionStoreLoadUnknownParent(t *testing.T) {
	store := NewCollectionStore(setupDatabase(t))

	got, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "never-seen", got.ParentID)
	assert.Empty(t, got.Items)
}

func TestCollectionStoreSaveReplacesWholeDocument(t *testing.T) {
	store := NewCollectionStore(setupDatabase(t))
	ctx := context.Background()

	col := model.NewCollection("rec-1")
	col.Items = []model.MediaItem{
		{ID: "m1", Type: model.MediaTypeImage, IsCover: true},
		{ID: "m2", Type: model.MediaTypeImage},
	}
	require.NoError(t, store.Save(ctx, col))

	col.Items = col.Items[:1]
	require.NoError(t, store.Save(ctx, col))

	got, err := store.Load(ctx, "rec-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "m1", got.Items[0].ID)
}
