package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
)

func fixedLifecycle(t time.Time) *OrderLifecycle {
	return &OrderLifecycle{now: func() time.Time { return t }}
}

func TestNewOrderSnapshotsService(t *testing.T) {
	lc := fixedLifecycle(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))
	user := &entities.User{ID: "user-1"}
	svc := &entities.Service{ID: "svc-1", Name: "Stage 1", Price: 70}

	o := lc.NewOrder(user, svc)

	assert.Equal(t, entities.OrderStatusPending, o.Status)
	assert.Equal(t, entities.PaymentStatusUnpaid, o.PaymentStatus)
	assert.Equal(t, "Stage 1", o.ServiceName)
	assert.Equal(t, float64(70), o.Price)
	assert.NotEmpty(t, o.ID)
	assert.NotNil(t, o.Files)
	assert.Empty(t, o.Files)

	// DMR-YYYYMMDD- plus the first uuid group, uppercased.
	assert.Regexp(t, `^DMR-20260901-[0-9A-F]{8}$`, o.OrderNumber)
}

func TestNewOrderPriceSurvivesCatalogChange(t *testing.T) {
	lc := NewOrderLifecycle()
	svc := &entities.Service{ID: "svc-1", Name: "Stage 2", Price: 90}

	o := lc.NewOrder(&entities.User{ID: "u"}, svc)
	svc.Price = 999

	assert.Equal(t, float64(90), o.Price)
}

func TestReceiveClientFileTransitions(t *testing.T) {
	lc := NewOrderLifecycle()

	o := &entities.Order{Status: entities.OrderStatusPending}
	lc.ReceiveClientFile(o)
	assert.Equal(t, entities.OrderStatusProcessing, o.Status)

	// Re-upload while processing changes nothing.
	lc.ReceiveClientFile(o)
	assert.Equal(t, entities.OrderStatusProcessing, o.Status)

	o.Status = entities.OrderStatusCompleted
	lc.ReceiveClientFile(o)
	assert.Equal(t, entities.OrderStatusCompleted, o.Status)
}

func TestReceiveStaffDeliverableCompletes(t *testing.T) {
	lc := NewOrderLifecycle()
	o := &entities.Order{Status: entities.OrderStatusProcessing}

	lc.ReceiveStaffDeliverable(o, entities.VersionTypeV1)

	assert.Equal(t, entities.OrderStatusCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
}

func TestSavDeliverableKeepsCompletionMark(t *testing.T) {
	lc := NewOrderLifecycle()
	o := &entities.Order{Status: entities.OrderStatusProcessing}

	lc.ReceiveStaffDeliverable(o, entities.VersionTypeV1)
	require.NotNil(t, o.CompletedAt)
	first := *o.CompletedAt

	lc.ReceiveStaffDeliverable(o, entities.VersionTypeSav)
	assert.Equal(t, entities.OrderStatusProcessing, o.Status)
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, first, *o.CompletedAt)

	// Completing again after the SAV round keeps the original mark.
	lc.ReceiveStaffDeliverable(o, entities.VersionTypeV2)
	assert.Equal(t, entities.OrderStatusCompleted, o.Status)
	assert.Equal(t, first, *o.CompletedAt)
}

func TestSetStatusValidatesVocabulary(t *testing.T) {
	lc := NewOrderLifecycle()
	o := &entities.Order{Status: entities.OrderStatusPending}

	err := lc.SetStatus(o, "shipped")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Equal(t, entities.OrderStatusPending, o.Status)

	require.NoError(t, lc.SetStatus(o, entities.OrderStatusProcessing))
	assert.Equal(t, entities.OrderStatusProcessing, o.Status)
}

func TestSetStatusCancelledKeepsPrice(t *testing.T) {
	lc := NewOrderLifecycle()
	o := &entities.Order{Status: entities.OrderStatusProcessing, Price: 150}

	require.NoError(t, lc.SetStatus(o, entities.OrderStatusCancelled))

	assert.Equal(t, entities.OrderStatusCancelled, o.Status)
	assert.Equal(t, float64(150), o.Price)
	assert.NotNil(t, o.CancelledAt)
}

func TestCancelZeroesPriceAndIsIdempotent(t *testing.T) {
	lc := NewOrderLifecycle()
	o := &entities.Order{Status: entities.OrderStatusProcessing, Price: 150}

	lc.Cancel(o)
	assert.Equal(t, entities.OrderStatusCancelled, o.Status)
	assert.Equal(t, float64(0), o.Price)
	require.NotNil(t, o.CancelledAt)
	first := *o.CancelledAt

	lc.Cancel(o)
	assert.Equal(t, first, *o.CancelledAt)
}

func TestCancelPreservesCompletionMark(t *testing.T) {
	lc := NewOrderLifecycle()
	o := &entities.Order{Status: entities.OrderStatusProcessing, Price: 150}

	lc.ReceiveStaffDeliverable(o, entities.VersionTypeV1)
	require.NotNil(t, o.CompletedAt)
	completed := *o.CompletedAt

	lc.Cancel(o)
	assert.Equal(t, completed, *o.CompletedAt)
}
