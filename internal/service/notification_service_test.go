package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/models"
)

type memoryNotificationRepo struct {
	notifications []models.Notification
}

func (m *memoryNotificationRepo) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	m.notifications = append(m.notifications, notifications...)
	return nil
}

func (m *memoryNotificationRepo) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	matched := make([]models.Notification, 0, len(m.notifications))
	for _, notification := range m.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.Read {
			continue
		}
		matched = append(matched, notification)
	}
	return matched, nil
}

func (m *memoryNotificationRepo) MarkRead(ctx context.Context, id, userID uint) (models.Notification, error) {
	for i, notification := range m.notifications {
		if notification.ID == id && notification.UserID == userID {
			m.notifications[i].Read = true
			return m.notifications[i], nil
		}
	}
	return models.Notification{}, gorm.ErrRecordNotFound
}

func (m *memoryNotificationRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	var updated int64
	for i, notification := range m.notifications {
		if notification.UserID == userID && !notification.Read {
			m.notifications[i].Read = true
			updated++
		}
	}
	return updated, nil
}

func (m *memoryNotificationRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for _, notification := range m.notifications {
		if notification.UserID == userID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (m *memoryNotificationRepo) Delete(ctx context.Context, id, userID uint) error {
	for i, notification := range m.notifications {
		if notification.ID == id && notification.UserID == userID {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestNotificationServiceDispatchFormatsMessage(t *testing.T) {
	repo := &memoryNotificationRepo{}
	svc := NewNotificationService(repo, &stubDirectory{}, nil, "mentora", nil, zerolog.Nop())

	err := svc.DispatchTaskAssigned(context.Background(), []uint{10, 11}, 42, 1, "Build a parser")
	require.NoError(t, err)

	require.Len(t, repo.notifications, 2)
	first := repo.notifications[0]
	require.Equal(t, uint(10), first.UserID)
	require.Equal(t, uint(42), first.TaskID)
	require.Equal(t, uint(1), first.ExpertID)
	require.Equal(t, "New Task Assigned", first.Title)
	require.Equal(t, "Dr. Chen assigned you a new task: Build a parser", first.Message)
	require.Equal(t, models.NotificationTypeTaskAssigned, first.Type)
	require.Equal(t, models.PriorityHigh, first.Priority)
}

func TestNotificationServiceDispatchSanitizesTitle(t *testing.T) {
	repo := &memoryNotificationRepo{}
	svc := NewNotificationService(repo, &stubDirectory{}, nil, "mentora", nil, zerolog.Nop())

	err := svc.DispatchTaskAssigned(context.Background(), []uint{10}, 42, 1, "<script>alert(1)</script>Read chapter 3")
	require.NoError(t, err)

	require.Len(t, repo.notifications, 1)
	require.NotContains(t, repo.notifications[0].Message, "<script>")
	require.Contains(t, repo.notifications[0].Message, "Read chapter 3")
}

func TestNotificationServiceDispatchNoRecipients(t *testing.T) {
	repo := &memoryNotificationRepo{}
	svc := NewNotificationService(repo, &stubDirectory{}, nil, "mentora", nil, zerolog.Nop())

	require.NoError(t, svc.DispatchTaskAssigned(context.Background(), nil, 42, 1, "Build a parser"))
	require.Empty(t, repo.notifications)
}

func TestNotificationServiceDispatchPublishesEvent(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, "mentora:notifications")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	repo := &memoryNotificationRepo{}
	svc := NewNotificationService(repo, &stubDirectory{}, client, "mentora", nil, zerolog.Nop())

	require.NoError(t, svc.DispatchTaskAssigned(ctx, []uint{10, 11}, 42, 1, "Build a parser"))

	message, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var event struct {
		TaskID     uint   `json:"task_id"`
		ExpertID   uint   `json:"expert_id"`
		Recipients []uint `json:"recipients"`
		Title      string `json:"title"`
	}
	require.NoError(t, json.Unmarshal([]byte(message.Payload), &event))
	require.Equal(t, uint(42), event.TaskID)
	require.Equal(t, uint(1), event.ExpertID)
	require.Equal(t, []uint{10, 11}, event.Recipients)
	require.Equal(t, "Build a parser", event.Title)
}

func TestNotificationServiceDeleteScopedToUser(t *testing.T) {
	repo := &memoryNotificationRepo{notifications: []models.Notification{
		{ID: 1, UserID: 10, Title: "New Task Assigned", Message: "m"},
	}}
	svc := NewNotificationService(repo, &stubDirectory{}, nil, "mentora", nil, zerolog.Nop())

	err := svc.Delete(context.Background(), 1, 99)
	require.ErrorIs(t, err, ErrNotificationNotFound)
	require.Len(t, repo.notifications, 1)

	require.NoError(t, svc.Delete(context.Background(), 1, 10))
	require.Empty(t, repo.notifications)
}

func TestNotificationServiceListLimitsToOwner(t *testing.T) {
	repo := &memoryNotificationRepo{notifications: []models.Notification{
		{ID: 1, UserID: 10, Message: "mine", Read: true},
		{ID: 2, UserID: 10, Message: "mine unread"},
		{ID: 3, UserID: 11, Message: strings.Repeat("x", 10)},
	}}
	svc := NewNotificationService(repo, &stubDirectory{}, nil, "mentora", nil, zerolog.Nop())

	all, err := svc.List(context.Background(), 10, false)
	require.NoError(t, err)
	require.Len(t, all, 2)

	unread, err := svc.List(context.Background(), 10, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, "mine unread", unread[0].Message)
}
