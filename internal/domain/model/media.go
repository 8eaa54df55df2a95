package model

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type StorageType string

const (
	StorageRemote StorageType = "remote"
	StorageLocal  StorageType = "local"
)

// MediaItem is one attachment of a parent record. Exactly one of
// RemoteURL/LocalKey is set, matching Storage. Provenance fields are
// write-once at creation.
type MediaItem struct {
	ID           string      `bson:"_id" json:"id"`
	Type         MediaType   `bson:"type" json:"type"`
	Storage      StorageType `bson:"storage_type" json:"storage_type"`
	RemoteURL    string      `bson:"remote_url,omitempty" json:"remote_url,omitempty"`
	LocalKey     string      `bson:"local_key,omitempty" json:"local_key,omitempty"`
	ThumbnailURL string      `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	IsCover      bool        `bson:"is_cover" json:"is_cover"`
	FileName     string      `bson:"file_name" json:"file_name"`
	FileSize     int64       `bson:"file_size" json:"file_size_bytes"`
	FileType     string      `bson:"file_type" json:"file_type"`
	UploadedAt   time.Time   `bson:"uploaded_at" json:"uploaded_at"`
}

// DisplayURL is what consumers show for this item: the thumbnail when one
// exists, otherwise the remote original. Local-only items without a
// thumbnail yield "" and the UI falls back to a placeholder.
func (m *MediaItem) DisplayURL() string {
	if m.ThumbnailURL != "" {
		return m.ThumbnailURL
	}

	return m.RemoteURL
}

// BlobMetadata travels with a payload into the local blob store. It mirrors
// the MediaItem provenance fields so a local item remains self-describing.
type BlobMetadata struct {
	FileName     string    `json:"file_name"`
	FileSize     int64     `json:"file_size_bytes"`
	FileType     string    `json:"file_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// LocalBlobRecord is owned exclusively by the local blob store and is
// referenced, never duplicated, through MediaItem.LocalKey.
type LocalBlobRecord struct {
	Key      string
	Payload  []byte
	Metadata BlobMetadata
}
