package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"propmedia/internal/domain/mediaerr"
	"propmedia/internal/domain/model"
	"propmedia/internal/domain/repository/blobstore"
)

// SQLiteStore is the production local blob store: one embedded database
// file holding payloads and their metadata in a single table, so a row
// delete removes both atomically.
type SQLiteStore struct {
	db  *sql.DB
	cfg Config
}

func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	cfg = cfg.withDefaults()

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mediaerr.ErrLocalStorageBlocked, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS blobs (
	key           TEXT PRIMARY KEY,
	payload       BLOB NOT NULL,
	file_name     TEXT NOT NULL,
	file_size     INTEGER NOT NULL,
	file_type     TEXT NOT NULL,
	uploaded_at   TIMESTAMP NOT NULL,
	thumbnail_url TEXT NOT NULL DEFAULT ''
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("%w: %v", mediaerr.ErrLocalStorageBlocked, err)
	}

	return &SQLiteStore{db: db, cfg: cfg}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Put(ctx context.Context, key string, payload []byte, meta model.BlobMetadata) error {
	used, err := s.usedBytes(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", mediaerr.ErrLocalStorageBlocked, err)
	}
	if used+int64(len(payload)) > s.cfg.QuotaBytes {
		return fmt.Errorf("%w: %d of %d bytes used", mediaerr.ErrLocalStorageFull, used, s.cfg.QuotaBytes)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blobs (key, payload, file_name, file_size, file_type, uploaded_at, thumbnail_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key, payload, meta.FileName, meta.FileSize, meta.FileType, meta.UploadedAt, meta.ThumbnailURL)
	if err != nil {
		return fmt.Errorf("%w: %v", mediaerr.ErrLocalStorageBlocked, err)
	}

	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*model.LocalBlobRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, file_name, file_size, file_type, uploaded_at, thumbnail_url FROM blobs WHERE key = ?`, key)

	rec := model.LocalBlobRecord{Key: key}
	var uploadedAt time.Time
	err := row.Scan(&rec.Payload, &rec.Metadata.FileName, &rec.Metadata.FileSize,
		&rec.Metadata.FileType, &uploadedAt, &rec.Metadata.ThumbnailURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mediaerr.ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mediaerr.ErrLocalStorageBlocked, err)
	}
	rec.Metadata.UploadedAt = uploadedAt

	return &rec, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("%w: %v", mediaerr.ErrLocalStorageBlocked, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mediaerr.ErrBlobNotFound
	}

	return nil
}

// StorageInfo reports payload bytes against the configured quota. Pure
// advisory: measurement problems degrade to zeros instead of failing.
func (s *SQLiteStore) StorageInfo(ctx context.Context) (blobstore.StorageInfo, error) {
	used, err := s.usedBytes(ctx)
	if err != nil {
		return blobstore.StorageInfo{}, nil
	}

	return blobstore.StorageInfo{UsedBytes: used, QuotaBytes: s.cfg.QuotaBytes}, nil
}

func (s *SQLiteStore) CheckAvailability(ctx context.Context) blobstore.Availability {
	if err := s.db.PingContext(ctx); err != nil {
		return blobstore.Availability{Available: false, Warning: "local storage is not responding"}
	}

	info, _ := s.StorageInfo(ctx)
	if info.QuotaBytes > 0 && float64(info.UsedBytes) >= float64(info.QuotaBytes)*s.cfg.WarnUsageRatio {
		return blobstore.Availability{
			Available: true,
			Warning: fmt.Sprintf("local storage is %d%% full, consider freeing space",
				info.UsedBytes*100/info.QuotaBytes),
		}
	}

	return blobstore.Availability{Available: true}
}

func (s *SQLiteStore) usedBytes(ctx context.Context) (int64, error) {
	var used int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(LENGTH(payload)), 0) FROM blobs`).Scan(&used)

	return used, err
}
