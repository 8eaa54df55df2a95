package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	brokerRepo "propmedia/internal/domain/repository/broker"
	"propmedia/internal/infrastructure/blobstore"
)

type collectionEnv struct {
	manager     *Collection
	blobs       *blobstore.MemoryStore
	collections *memCollectionStore
	publisher   *fakePublisher
}

func newCollectionEnv(t *testing.T) *collectionEnv {
	t.Helper()

	env := &collectionEnv{
		blobs:       blobstore.NewMemoryStore(1 << 30),
		collections: newMemCollectionStore(),
		publisher:   &fakePublisher{},
	}
	env.manager = NewCollection(env.collections, env.blobs, env.publisher, NewRecordLocks())

	return env
}

func (e *collectionEnv) seed(t *testing.T, parentID string, items ...model.MediaItem) {
	t.Helper()

	col := model.NewCollection(parentID)
	col.Items = items
	require.NoError(t, e.collections.Save(context.Background(), col))
	e.collections.saves = 0
}

func remoteImage(id string, cover bool) model.MediaItem {
	return model.MediaItem{
		ID:           id,
		Type:         model.MediaTypeImage,
		Storage:      model.StorageRemote,
		RemoteURL:    "https://cdn.test/" + id + ".jpg",
		ThumbnailURL: "https://cdn.test/" + id + "_thumb.jpg",
		IsCover:      cover,
		FileName:     id + ".jpg",
	}
}

func localVideo(id string) model.MediaItem {
	return model.MediaItem{
		ID:       id,
		Type:     model.MediaTypeVideo,
		Storage:  model.StorageLocal,
		LocalKey: "rec-1/" + id,
		FileName: id + ".mp4",
	}
}

func TestRemoveCoverPromotesNextImage(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1",
		remoteImage("m1", true),
		remoteImage("m2", false),
		remoteImage("m3", false),
	)

	result, err := env.manager.RemoveItem(context.Background(), "rec-1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/m2_thumb.jpg", result.NewCoverURL)

	col, err := env.manager.List(context.Background(), "rec-1")
	require.NoError(t, err)
	require.Len(t, col.Items, 2)

	cover := col.Cover()
	require.NotNil(t, cover)
	assert.Equal(t, "m2", cover.ID)

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, brokerRepo.EventMediaRemoved, env.publisher.events[0].Name)
	assert.Equal(t, "m1", env.publisher.events[0].MediaID)
}

func TestRemoveNonCoverLeavesCoverAlone(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1",
		remoteImage("m1", true),
		remoteImage("m2", false),
	)

	result, err := env.manager.RemoveItem(context.Background(), "rec-1", "m2")
	require.NoError(t, err)
	assert.Empty(t, result.NewCoverURL)

	col, _ := env.manager.List(context.Background(), "rec-1")
	cover := col.Cover()
	require.NotNil(t, cover)
	assert.Equal(t, "m1", cover.ID)
}

func TestRemoveLocalVideoDeletesBlob(t *testing.T) {
	env := newCollectionEnv(t)

	vid := localVideo("v1")
	require.NoError(t, env.blobs.Put(context.Background(), vid.LocalKey,
		[]byte("payload"), model.BlobMetadata{FileName: vid.FileName}))
	env.seed(t, "rec-1", remoteImage("m1", true), vid)

	_, err := env.manager.RemoveItem(context.Background(), "rec-1", "v1")
	require.NoError(t, err)

	_, err = env.blobs.Get(context.Background(), vid.LocalKey)
	assert.ErrorIs(t, err, mediaerr.ErrBlobNotFound)
}

func TestRemoveUnknownItem(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1", remoteImage("m1", true))

	_, err := env.manager.RemoveItem(context.Background(), "rec-1", "ghost")
	assert.ErrorIs(t, err, mediaerr.ErrMediaNotFound)
	assert.Equal(t, 0, env.collections.saves)
	assert.Empty(t, env.publisher.events)
}

func TestRemoveKeepsBlobWhenSaveFails(t *testing.T) {
	env := newCollectionEnv(t)

	vid := localVideo("v1")
	require.NoError(t, env.blobs.Put(context.Background(), vid.LocalKey,
		[]byte("payload"), model.BlobMetadata{}))
	env.seed(t, "rec-1", vid)
	env.collections.saveErr = assert.AnError

	_, err := env.manager.RemoveItem(context.Background(), "rec-1", "v1")
	require.Error(t, err)

	// Persist failed, so the payload is still referenced and must survive.
	_, err = env.blobs.Get(context.Background(), vid.LocalKey)
	assert.NoError(t, err)
	assert.Empty(t, env.publisher.events)
}

func TestSetCoverMovesCover(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1",
		remoteImage("m1", true),
		remoteImage("m2", false),
	)

	require.NoError(t, env.manager.SetCover(context.Background(), "rec-1", "m2"))

	col, _ := env.manager.List(context.Background(), "rec-1")
	cover := col.Cover()
	require.NotNil(t, cover)
	assert.Equal(t, "m2", cover.ID)
	assert.False(t, col.Find("m1").IsCover)
}

func TestSetCoverRejectsVideoWithoutSaving(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1", remoteImage("m1", true), localVideo("v1"))

	err := env.manager.SetCover(context.Background(), "rec-1", "v1")
	assert.ErrorIs(t, err, mediaerr.ErrInvariantViolation)
	assert.Equal(t, 0, env.collections.saves)

	col, _ := env.manager.List(context.Background(), "rec-1")
	assert.Equal(t, "m1", col.Cover().ID)
}

func TestReorderPersistsNewOrder(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1",
		remoteImage("m1", true),
		remoteImage("m2", false),
		remoteImage("m3", false),
	)

	require.NoError(t, env.manager.Reorder(context.Background(), "rec-1",
		[]string{"m3", "m1", "m2"}))

	col, _ := env.manager.List(context.Background(), "rec-1")
	got := make([]string, 0, len(col.Items))
	for _, item := range col.Items {
		got = append(got, item.ID)
	}
	assert.Equal(t, []string{"m3", "m1", "m2"}, got)
	assert.Equal(t, "m1", col.Cover().ID, "reorder does not move the cover")
}

func TestReorderRejectsBadPermutation(t *testing.T) {
	env := newCollectionEnv(t)
	env.seed(t, "rec-1", remoteImage("m1", true), remoteImage("m2", false))

	err := env.manager.Reorder(context.Background(), "rec-1", []string{"m1"})
	assert.ErrorIs(t, err, mediaerr.ErrInvariantViolation)
	assert.Equal(t, 0, env.collections.saves)
}
