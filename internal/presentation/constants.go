package presentation

const (
	ParentIDParam = "parentId"
	MediaIDParam  = "mediaId"

	FilesField   = "files"
	PromoteParam = "promote_cover"

	UserIDHeader = "X-User-ID"
	TypeKey      = "Content-Type"
	ReasonTag    = "X-Reason"
)
