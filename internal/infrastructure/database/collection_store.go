package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"propmedia/internal/domain/model"
)

// CollectionStore persists one document per parent record, keyed by the
// parent ID. The media of a record is always written as a whole, which
// keeps the cover invariant intact on disk.
type CollectionStore struct {
	db *Database
}

func NewCollectionStore(db *Database) *CollectionStore {
	return &CollectionStore{db: db}
}

type collectionDoc struct {
	ParentID  string            `bson:"_id"`
	Items     []model.MediaItem `bson:"items"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// Load returns the media collection of a parent record. A parent without
// one yet yields an empty collection.
func (s *CollectionStore) Load(ctx context.Context, parentID string) (*model.MediaCollection, error) {
	ctx, cancel := context.WithTimeout(ctx, s.db.QueryTimeout)
	defer cancel()

	coll := s.db.Client.Database(s.db.DBName).Collection(CollectionName)

	var doc collectionDoc
	err := coll.FindOne(ctx, bson.M{"_id": parentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.NewCollection(parentID), nil
	}
	if err != nil {
		return nil, err
	}

	return &model.MediaCollection{ParentID: doc.ParentID, Items: doc.Items}, nil
}

func (s *CollectionStore) Save(ctx context.Context, col *model.MediaCollection) error {
	ctx, cancel := context.WithTimeout(ctx, s.db.QueryTimeout)
	defer cancel()

	coll := s.db.Client.Database(s.db.DBName).Collection(CollectionName)

	doc := collectionDoc{
		ParentID:  col.ParentID,
		Items:     col.Items,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := coll.ReplaceOne(ctx, bson.M{"_id": col.ParentID}, doc, options.Replace().SetUpsert(true))

	return err
}
