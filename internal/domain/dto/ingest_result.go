package dto

import "propmedia/internal/domain/model"

// IngestFailure reports one rejected or failed file of a batch.
type IngestFailure struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

// IngestResult separates partial success precisely: every submitted file
// ends up in exactly one of the two lists.
type IngestResult struct {
	StoredItems []model.MediaItem `json:"stored_items"`
	Failures    []IngestFailure   `json:"failures"`
}

// RemoveResult carries the display URL of the newly promoted cover, when
// the removal caused a promotion.
type RemoveResult struct {
	NewCoverURL string `json:"new_cover_url,omitempty"`
}
