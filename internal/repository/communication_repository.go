package repository

import (
	"context"

	"github.com/noah-isme/edusync-api/internal/models"
)

const (
	messageColumns      = "id, sender_id, receiver_id, message, read, sent_at"
	announcementColumns = "id, user_id, title, content, target_role, target_class_id, created_at"
)

func (s *DatabaseStorage) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	return getOne[models.Message](ctx, s, "get message", "SELECT "+messageColumns+" FROM messages WHERE id = $1", id)
}

func (s *DatabaseStorage) ListMessagesBySender(ctx context.Context, senderID int64) ([]models.Message, error) {
	return selectMany[models.Message](ctx, s, "list messages by sender", "SELECT "+messageColumns+" FROM messages WHERE sender_id = $1 ORDER BY id", senderID)
}

func (s *DatabaseStorage) ListMessagesByReceiver(ctx context.Context, receiverID int64) ([]models.Message, error) {
	return selectMany[models.Message](ctx, s, "list messages by receiver", "SELECT "+messageColumns+" FROM messages WHERE receiver_id = $1 ORDER BY id", receiverID)
}

func (s *DatabaseStorage) CreateMessage(ctx context.Context, m models.Message) (*models.Message, error) {
	const query = `INSERT INTO messages (sender_id, receiver_id, message, read, sent_at) VALUES ($1, $2, $3, $4, $5) RETURNING ` + messageColumns
	return insertOne[models.Message](ctx, s, "create message", query, m.SenderID, m.ReceiverID, m.Message, m.Read, s.now())
}

func (s *DatabaseStorage) UpdateMessage(ctx context.Context, id int64, patch models.MessagePatch) (*models.Message, error) {
	return updateOne[models.Message](ctx, s, "update message", "messages", messageColumns, id, patch)
}

func (s *DatabaseStorage) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete message", "messages", id)
}

func (s *DatabaseStorage) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	return getOne[models.Announcement](ctx, s, "get announcement", "SELECT "+announcementColumns+" FROM announcements WHERE id = $1", id)
}

func (s *DatabaseStorage) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return selectMany[models.Announcement](ctx, s, "list announcements", "SELECT "+announcementColumns+" FROM announcements ORDER BY id")
}

func (s *DatabaseStorage) ListAnnouncementsByUser(ctx context.Context, userID int64) ([]models.Announcement, error) {
	return selectMany[models.Announcement](ctx, s, "list announcements by user", "SELECT "+announcementColumns+" FROM announcements WHERE user_id = $1 ORDER BY id", userID)
}

func (s *DatabaseStorage) ListAnnouncementsByRole(ctx context.Context, role string) ([]models.Announcement, error) {
	const query = "SELECT " + announcementColumns + " FROM announcements WHERE target_role = $1 OR target_role = $2 ORDER BY id"
	return selectMany[models.Announcement](ctx, s, "list announcements by role", query, role, models.AudienceAll)
}

func (s *DatabaseStorage) ListAnnouncementsByClass(ctx context.Context, classID int64) ([]models.Announcement, error) {
	return selectMany[models.Announcement](ctx, s, "list announcements by class", "SELECT "+announcementColumns+" FROM announcements WHERE target_class_id = $1 ORDER BY id", classID)
}

func (s *DatabaseStorage) CreateAnnouncement(ctx context.Context, a models.Announcement) (*models.Announcement, error) {
	const query = `INSERT INTO announcements (user_id, title, content, target_role, target_class_id, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + announcementColumns
	return insertOne[models.Announcement](ctx, s, "create announcement", query, a.UserID, a.Title, a.Content, a.TargetRole, a.TargetClassID, s.now())
}

func (s *DatabaseStorage) UpdateAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	return updateOne[models.Announcement](ctx, s, "update announcement", "announcements", announcementColumns, id, patch)
}

func (s *DatabaseStorage) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete announcement", "announcements", id)
}
