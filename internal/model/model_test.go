package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{raw: "Aguardando Envio", want: StatusAwaitingShipment},
		{raw: "  componente entregue ", want: StatusDelivered},
		{raw: "sent_for_refurbishment", want: StatusSentForRefurbishment},
		{raw: "CANCELLED", want: StatusCancelled},
		{raw: "Perdido", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStatus(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusLabelsCoverEnum(t *testing.T) {
	t.Parallel()

	for _, s := range AllStatuses() {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, string(s), s.Label(), "label missing for %s", s)
	}
	assert.False(t, Status("LOST").Valid())
	assert.Equal(t, "LOST", Status("LOST").Label())
}

func TestDate(t *testing.T) {
	t.Parallel()

	d, ok := ParseDate(" 2024-01-11 ")
	require.True(t, ok)
	assert.Equal(t, Date("2024-01-11"), d)

	_, ok = ParseDate("11/01/2024")
	assert.False(t, ok)

	legacy := Date("11/01/2024")
	_, ok = legacy.Time()
	assert.False(t, ok)
	assert.False(t, legacy.IsZero())
	assert.Equal(t, "11/01/2024", legacy.String())
	assert.True(t, Date("  ").IsZero())
}

func TestProcessDurationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10 dias", ProcessDuration{Days: 10, Known: true}.String())
	assert.Equal(t, UnknownDuration, ProcessDuration{}.String())
}

func TestOrphanedAttachmentErrorUnwraps(t *testing.T) {
	t.Parallel()

	err := error(&OrphanedAttachmentError{Path: "images/uploads/a.png", Err: ErrStoreWrite})

	assert.ErrorIs(t, err, ErrOrphanedAttachment)
	assert.ErrorIs(t, err, ErrStoreWrite)
	assert.Contains(t, err.Error(), "images/uploads/a.png")

	var orphan *OrphanedAttachmentError
	require.True(t, errors.As(err, &orphan))
	assert.Equal(t, "images/uploads/a.png", orphan.Path)
}

func TestPurgeable(t *testing.T) {
	t.Parallel()

	assert.True(t, Record{Status: StatusDelivered}.Purgeable())
	assert.True(t, Record{Status: StatusCancelled, Cancelled: true}.Purgeable())
	assert.False(t, Record{Status: StatusAwaitingShipment}.Purgeable())
	assert.False(t, Record{Status: StatusAwaitingReturn}.Purgeable())
}
