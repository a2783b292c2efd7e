package entities

import "time"

// File version vocabulary: the client's initial upload, up to three staff
// deliverables, and after-sales (SAV) replacements.
const (
	VersionTypeOriginal = "original"
	VersionTypeV1       = "v1"
	VersionTypeV2       = "v2"
	VersionTypeV3       = "v3"
	VersionTypeSav      = "sav"
)

var VersionTypes = map[string]bool{
	VersionTypeOriginal: true,
	VersionTypeV1:       true,
	VersionTypeV2:       true,
	VersionTypeV3:       true,
	VersionTypeSav:      true,
}

// StaffDeliverableTypes are the version types only staff may upload.
var StaffDeliverableTypes = map[string]bool{
	VersionTypeV1:  true,
	VersionTypeV2:  true,
	VersionTypeV3:  true,
	VersionTypeSav: true,
}

// FileVersion is one uploaded artifact attached to an order. Entries are
// append-only: created once, never mutated or removed.
type FileVersion struct {
	FileID      string    `json:"file_id"`
	Filename    string    `json:"filename"`
	VersionType string    `json:"version_type"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Notes       string    `json:"notes,omitempty"`
}
