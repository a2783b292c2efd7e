package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

func TestValidateRejectsUnknownVersionType(t *testing.T) {
	ledger := NewFileVersionLedger(1024)

	err := ledger.Validate("final", 10)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVersionType)

	for _, vt := range []string{
		entities.VersionTypeOriginal,
		entities.VersionTypeV1,
		entities.VersionTypeV2,
		entities.VersionTypeV3,
		entities.VersionTypeSav,
	} {
		assert.NoError(t, ledger.Validate(vt, 10), vt)
	}
}

func TestValidateEnforcesSizeCap(t *testing.T) {
	ledger := NewFileVersionLedger(1024)

	assert.NoError(t, ledger.Validate(entities.VersionTypeOriginal, 1024))
	assert.ErrorIs(t, ledger.Validate(entities.VersionTypeOriginal, 1025), apperrors.ErrPayloadTooLarge)
}

func TestAppendPreservesOrder(t *testing.T) {
	ledger := NewFileVersionLedger(1024)
	o := &entities.Order{Files: []entities.FileVersion{}}

	ledger.Append(o, entities.FileVersion{FileID: "a", VersionType: entities.VersionTypeOriginal})
	ledger.Append(o, entities.FileVersion{FileID: "b", VersionType: entities.VersionTypeV1})
	ledger.Append(o, entities.FileVersion{FileID: "c", VersionType: entities.VersionTypeSav})

	require.Len(t, o.Files, 3)
	assert.Equal(t, "a", o.Files[0].FileID)
	assert.Equal(t, "b", o.Files[1].FileID)
	assert.Equal(t, "c", o.Files[2].FileID)
}

func TestAppendMinesImmatriculation(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		want  string
	}{
		{"form bullet", "• Immatriculation: AB-123-CD\n• Marque: Peugeot", "AB-123-CD"},
		{"lowercase keyword", "immatriculation : xy-987-zz", "xy-987-zz"},
		{"no separator", "Immatriculation AB123CD", "AB123CD"},
		{"missing keyword", "Peugeot 208, plate AB-123-CD", ""},
		{"empty notes", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewFileVersionLedger(1024)
			o := &entities.Order{}
			ledger.Append(o, entities.FileVersion{
				VersionType: entities.VersionTypeOriginal,
				Notes:       tc.notes,
			})
			assert.Equal(t, tc.want, o.Immatriculation)
		})
	}
}

func TestAppendDoesNotOverwriteImmatriculation(t *testing.T) {
	ledger := NewFileVersionLedger(1024)
	o := &entities.Order{Immatriculation: "AB-123-CD"}

	ledger.Append(o, entities.FileVersion{
		VersionType: entities.VersionTypeOriginal,
		Notes:       "Immatriculation: ZZ-999-ZZ",
	})

	assert.Equal(t, "AB-123-CD", o.Immatriculation)
}

func TestAppendIgnoresNotesOnStaffVersions(t *testing.T) {
	ledger := NewFileVersionLedger(1024)
	o := &entities.Order{}

	ledger.Append(o, entities.FileVersion{
		VersionType: entities.VersionTypeV1,
		Notes:       "Immatriculation: AB-123-CD",
	})

	assert.Empty(t, o.Immatriculation)
}
