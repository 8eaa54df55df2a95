package entity

import "propmedia/internal/domain/model"

// File is one user-supplied payload moving through the pipeline. Size
// always matches len(Data); it is carried separately so failure context
// survives after the payload is dropped.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// ProcessedFile is a validated, compressed file ready for storage, plus
// the optional preview asset derived from it.
type ProcessedFile struct {
	Original  File
	Thumbnail *File
	Type      model.MediaType
}

// RemoteObject identifies an object acknowledged by remote storage.
type RemoteObject struct {
	Key    string
	Bucket string
	URL    string
	Size   int64
}
