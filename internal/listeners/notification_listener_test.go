package listeners

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tuning-portal/internal/entities"
	"tuning-portal/internal/events"
	apperrors "tuning-portal/pkg/errors"
)

type memNotificationRepo struct {
	created   []entities.Notification
	createErr error
}

func (r *memNotificationRepo) Create(ctx context.Context, n *entities.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, *n)
	return nil
}

func (r *memNotificationRepo) FindByUser(ctx context.Context, userID string) ([]entities.Notification, error) {
	return nil, nil
}

func (r *memNotificationRepo) FindStaff(ctx context.Context) ([]entities.Notification, error) {
	return nil, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id string, userID *string) error {
	return apperrors.ErrNotFound
}

func (r *memNotificationRepo) Delete(ctx context.Context, id string, userID *string) error {
	return apperrors.ErrNotFound
}

func (r *memNotificationRepo) DeleteStaffAll(ctx context.Context) error {
	return nil
}

func newListenerFixture() (*NotificationListener, *memNotificationRepo) {
	repo := &memNotificationRepo{}
	return NewNotificationListener(repo, zap.NewNop()), repo
}

func TestOrderCreatedRoutesToStaff(t *testing.T) {
	l, repo := newListenerFixture()

	order := entities.Order{ID: "o-1", UserID: "client-1", ServiceName: "Stage 1"}
	actor := entities.User{FirstName: "Jean", LastName: "Dupont"}

	err := l.Handle(context.Background(), events.OrderCreatedEvent{Order: order, Actor: actor})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, entities.NotificationNewOrder, n.Type)
	assert.Equal(t, "Nouvelle commande", n.Title)
	assert.Equal(t, "Nouvelle commande de Jean Dupont : Stage 1", n.Message)
	assert.Nil(t, n.UserID)
	require.NotNil(t, n.OrderID)
	assert.Equal(t, "o-1", *n.OrderID)
	assert.False(t, n.IsRead)
}

func TestFileDeliveredRoutesToClient(t *testing.T) {
	l, repo := newListenerFixture()

	order := entities.Order{
		ID: "o-1", UserID: "client-1",
		ServiceName: "Stage 1", Immatriculation: "AB-123-CD",
	}

	err := l.Handle(context.Background(), events.StaffFileDeliveredEvent{
		Order: order, VersionType: entities.VersionTypeV2,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, entities.NotificationNewFile, n.Type)
	assert.Equal(t, "Nouveau fichier disponible", n.Title)
	assert.Equal(t, "Une nouvelle version (v2) de votre fichier est disponible : AB-123-CD - Stage 1", n.Message)
	require.NotNil(t, n.UserID)
	assert.Equal(t, "client-1", *n.UserID)
}

func TestSavFileDeliveredWording(t *testing.T) {
	l, repo := newListenerFixture()

	order := entities.Order{ID: "o-1", UserID: "client-1", ServiceName: "Stage 1"}

	err := l.Handle(context.Background(), events.StaffFileDeliveredEvent{
		Order: order, VersionType: entities.VersionTypeSav,
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Fichier SAV disponible", repo.created[0].Title)
	assert.Equal(t, "Votre fichier SAV est disponible : Stage 1", repo.created[0].Message)
}

func TestSavRequestedRoutesToStaff(t *testing.T) {
	l, repo := newListenerFixture()

	order := entities.Order{ID: "o-1", ServiceName: "Stage 1", Immatriculation: "AB-123-CD"}
	actor := entities.User{FirstName: "Jean", LastName: "Dupont"}

	err := l.Handle(context.Background(), events.SavRequestedEvent{Order: order, Actor: actor})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, entities.NotificationSavRequest, n.Type)
	assert.Equal(t, "Demande SAV de Jean Dupont pour AB-123-CD - Stage 1", n.Message)
	assert.Nil(t, n.UserID)
}

func TestClientMessageTruncated(t *testing.T) {
	l, repo := newListenerFixture()

	sender := entities.User{FirstName: "Jean", LastName: "Dupont"}
	text := strings.Repeat("é", 80)

	err := l.Handle(context.Background(), events.ClientMessageSentEvent{Sender: sender, Text: text})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, entities.NotificationNewMessage, n.Type)
	assert.Equal(t, "Jean Dupont : "+strings.Repeat("é", 50)+"...", n.Message)
	assert.Nil(t, n.UserID)
	assert.Nil(t, n.OrderID)
}

func TestShortMessagesNotTruncated(t *testing.T) {
	l, repo := newListenerFixture()

	err := l.Handle(context.Background(), events.ClientMessageSentEvent{
		Sender: entities.User{FirstName: "Jean"},
		Text:   "Bonjour",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Jean : Bonjour", repo.created[0].Message)
}
