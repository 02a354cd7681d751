package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/mentora-go-api/internal/dto"
	"github.com/noah-isme/mentora-go-api/internal/models"
	"github.com/noah-isme/mentora-go-api/internal/observability"
	"github.com/noah-isme/mentora-go-api/internal/repository"
)

// ErrNotificationNotFound indicates no notification matched the id for the
// requesting user.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles the fan-out at task creation and the per-user
// notification reads and maintenance operations.
type NotificationService interface {
	DispatchTaskAssigned(ctx context.Context, studentIDs []uint, taskID, expertID uint, title string) error
	List(ctx context.Context, userID uint, unreadOnly bool) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id, userID uint) error
}

type notificationService struct {
	repo         repository.NotificationRepository
	users        repository.UserRepository
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	nodeID       string
}

// taskAssignedEvent is the at-least-once outbound record published after the
// notification rows are committed.
type taskAssignedEvent struct {
	Source     string    `json:"source"`
	TaskID     uint      `json:"task_id"`
	ExpertID   uint      `json:"expert_id"`
	Recipients []uint    `json:"recipients"`
	Title      string    `json:"title"`
	SentAt     time.Time `json:"sent_at"`
}

// NewNotificationService constructs a notification service. The redis client
// and nats connection are both optional; a nil broker simply skips the
// outbound event.
func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) NotificationService {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":notifications"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".notifications"
	}

	return &notificationService{
		repo:         repo,
		users:        users,
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "notification_service").Logger(),
		nodeID:       uuid.NewString(),
	}
}

// DispatchTaskAssigned inserts one notification per assignee and then emits
// the outbound event. Broker failures are logged and swallowed; the inserted
// rows stand either way.
func (s *notificationService) DispatchTaskAssigned(ctx context.Context, studentIDs []uint, taskID, expertID uint, title string) error {
	if len(studentIDs) == 0 {
		return nil
	}

	expert, err := s.users.GetByID(ctx, expertID)
	if err != nil {
		return fmt.Errorf("expert lookup failed: %w", err)
	}

	cleanTitle := strings.TrimSpace(s.sanitizer.Sanitize(title))
	message := fmt.Sprintf("%s assigned you a new task: %s", expert.Name, cleanTitle)

	notifications := make([]models.Notification, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		notifications = append(notifications, models.Notification{
			UserID:   studentID,
			TaskID:   taskID,
			ExpertID: expertID,
			Title:    "New Task Assigned",
			Message:  message,
			Type:     models.NotificationTypeTaskAssigned,
			Priority: models.PriorityHigh,
		})
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("notification batch insert failed: %w", err)
	}

	observability.NotificationsDispatchedTotal().WithLabelValues(models.NotificationTypeTaskAssigned).Add(float64(len(notifications)))

	if err := s.publish(ctx, taskAssignedEvent{
		Source:     s.nodeID,
		TaskID:     taskID,
		ExpertID:   expertID,
		Recipients: studentIDs,
		Title:      cleanTitle,
		SentAt:     time.Now().UTC(),
	}); err != nil {
		s.logger.Warn().Err(err).Uint("task_id", taskID).Msg("failed to publish task_assigned event")
	}

	return nil
}

func (s *notificationService) publish(ctx context.Context, event taskAssignedEvent) error {
	if s.redis == nil && s.nats == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisChannel != "" {
		if err := s.redis.Publish(ctx, s.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) List(ctx context.Context, userID uint, unreadOnly bool) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly, 50)
	if err != nil {
		return nil, err
	}
	return dto.NewNotificationResponseSlice(notifications), nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) (dto.NotificationResponse, error) {
	notification, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.NotificationResponse{}, ErrNotificationNotFound
		}
		return dto.NotificationResponse{}, err
	}
	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// Delete is scoped to the requesting user like every other mutation; a row
// owned by someone else reads as not found.
func (s *notificationService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}
