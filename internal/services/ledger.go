package services

import (
	"fmt"
	"regexp"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

// immatriculationPattern matches the "Immatriculation" keyword followed by a
// plate-like token, as produced by the order form's free-text vehicle block
// ("• Immatriculation: AB-123-CD"). Advisory text mining only: no real plate
// format is enforced.
var immatriculationPattern = regexp.MustCompile(`(?i)immatriculation[^0-9A-Za-z]*([0-9A-Za-z][0-9A-Za-z-]*)`)

// FileVersionLedger guards the append-only list of file versions on an
// order: it enforces the version vocabulary and the payload cap, and mines
// the vehicle plate out of the client's notes on the initial upload.
type FileVersionLedger struct {
	maxFileSize int64
}

func NewFileVersionLedger(maxFileSize int64) *FileVersionLedger {
	return &FileVersionLedger{maxFileSize: maxFileSize}
}

// Validate runs before any blob write. The payload is expected to be fully
// buffered; callers bound the request size upstream.
func (l *FileVersionLedger) Validate(versionType string, size int64) error {
	if !entities.VersionTypes[versionType] {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidVersionType, versionType)
	}
	if size > l.maxFileSize {
		return apperrors.ErrPayloadTooLarge
	}
	return nil
}

// Append attaches the version to the end of the order's ledger. Entries are
// never reordered or removed. On the client's initial upload it also tries
// to fill Order.Immatriculation from the accompanying notes; a non-matching
// note simply leaves the field untouched.
func (l *FileVersionLedger) Append(o *entities.Order, fv entities.FileVersion) {
	o.Files = append(o.Files, fv)

	if fv.VersionType == entities.VersionTypeOriginal && o.Immatriculation == "" {
		if plate := extractImmatriculation(fv.Notes); plate != "" {
			o.Immatriculation = plate
		}
	}
}

func extractImmatriculation(notes string) string {
	m := immatriculationPattern.FindStringSubmatch(notes)
	if m == nil {
		return ""
	}
	return m[1]
}
