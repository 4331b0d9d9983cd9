package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type communicationStore interface {
	repository.MessageStore
	repository.AnnouncementStore
}

// MessageFilter selects messages by sender or receiver. With neither set the
// principal's inbox is returned.
type MessageFilter struct {
	SenderID   *int64
	ReceiverID *int64
}

// AnnouncementFilter selects announcements by author, role audience or class.
// With nothing set every announcement is returned.
type AnnouncementFilter struct {
	UserID  *int64
	Role    *string
	ClassID *int64
}

// CommunicationService manages direct messages and announcements.
type CommunicationService struct {
	store     communicationStore
	validator *validator.Validate
}

// NewCommunicationService constructs a CommunicationService.
func NewCommunicationService(store communicationStore, validate *validator.Validate) *CommunicationService {
	return &CommunicationService{store: store, validator: newValidator(validate)}
}

// ListMessages returns messages the principal may read. Only admins can list
// another user's mailbox.
func (s *CommunicationService) ListMessages(ctx context.Context, principal *models.Principal, filter MessageFilter) ([]models.Message, error) {
	var (
		items []models.Message
		err   error
	)
	switch {
	case filter.SenderID != nil:
		if err := ownOrAdmin(principal, *filter.SenderID); err != nil {
			return nil, err
		}
		items, err = s.store.ListMessagesBySender(ctx, *filter.SenderID)
	case filter.ReceiverID != nil:
		if err := ownOrAdmin(principal, *filter.ReceiverID); err != nil {
			return nil, err
		}
		items, err = s.store.ListMessagesByReceiver(ctx, *filter.ReceiverID)
	default:
		items, err = s.store.ListMessagesByReceiver(ctx, principal.User.ID)
	}
	return listed(items, err, "messages")
}

// Send stores a message from the principal.
func (s *CommunicationService) Send(ctx context.Context, principal *models.Principal, msg models.Message) (*models.Message, error) {
	msg.SenderID = principal.User.ID
	msg.Read = false
	if err := s.validator.Struct(msg); err != nil {
		return nil, validationError(err, "invalid message payload")
	}
	created, err := s.store.CreateMessage(ctx, msg)
	if err != nil {
		return nil, storageError(err, "failed to send message")
	}
	return created, nil
}

// MarkRead flags a message as read. Only its receiver may do so.
func (s *CommunicationService) MarkRead(ctx context.Context, principal *models.Principal, id int64) (*models.Message, error) {
	msg, err := s.store.GetMessage(ctx, id)
	if msg, err = found(msg, err, "message"); err != nil {
		return nil, err
	}
	if msg.ReceiverID != principal.User.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the receiver can mark a message as read")
	}
	read := true
	msg, err = s.store.UpdateMessage(ctx, id, models.MessagePatch{Read: &read})
	return found(msg, err, "message")
}

// DeleteMessage removes a message sent by the principal. Admins may remove any.
func (s *CommunicationService) DeleteMessage(ctx context.Context, principal *models.Principal, id int64) error {
	msg, err := s.store.GetMessage(ctx, id)
	if msg, err = found(msg, err, "message"); err != nil {
		return err
	}
	if err := ownOrAdmin(principal, msg.SenderID); err != nil {
		return err
	}
	ok, err := s.store.DeleteMessage(ctx, id)
	return removed(ok, err, "message")
}

// ListAnnouncements returns announcements matching filter, checked in the
// order author, role, class.
func (s *CommunicationService) ListAnnouncements(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, error) {
	var (
		items []models.Announcement
		err   error
	)
	switch {
	case filter.UserID != nil:
		items, err = s.store.ListAnnouncementsByUser(ctx, *filter.UserID)
	case filter.Role != nil:
		items, err = s.store.ListAnnouncementsByRole(ctx, *filter.Role)
	case filter.ClassID != nil:
		items, err = s.store.ListAnnouncementsByClass(ctx, *filter.ClassID)
	default:
		items, err = s.store.ListAnnouncements(ctx)
	}
	return listed(items, err, "announcements")
}

func (s *CommunicationService) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	a, err := s.store.GetAnnouncement(ctx, id)
	return found(a, err, "announcement")
}

// Announce publishes an announcement authored by the principal. Without a
// target role it reaches every role.
func (s *CommunicationService) Announce(ctx context.Context, principal *models.Principal, a models.Announcement) (*models.Announcement, error) {
	a.UserID = principal.User.ID
	if a.TargetRole == nil {
		all := models.AudienceAll
		a.TargetRole = &all
	}
	if err := s.validator.Struct(a); err != nil {
		return nil, validationError(err, "invalid announcement payload")
	}
	created, err := s.store.CreateAnnouncement(ctx, a)
	if err != nil {
		return nil, storageError(err, "failed to create announcement")
	}
	return created, nil
}

// UpdateAnnouncement edits an announcement owned by the principal. Admins may
// edit any.
func (s *CommunicationService) UpdateAnnouncement(ctx context.Context, principal *models.Principal, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid announcement payload")
	}
	a, err := s.store.GetAnnouncement(ctx, id)
	if a, err = found(a, err, "announcement"); err != nil {
		return nil, err
	}
	if err := ownOrAdmin(principal, a.UserID); err != nil {
		return nil, err
	}
	a, err = s.store.UpdateAnnouncement(ctx, id, patch)
	return found(a, err, "announcement")
}

func (s *CommunicationService) DeleteAnnouncement(ctx context.Context, principal *models.Principal, id int64) error {
	a, err := s.store.GetAnnouncement(ctx, id)
	if a, err = found(a, err, "announcement"); err != nil {
		return err
	}
	if err := ownOrAdmin(principal, a.UserID); err != nil {
		return err
	}
	ok, err := s.store.DeleteAnnouncement(ctx, id)
	return removed(ok, err, "announcement")
}

// ownOrAdmin allows admins and the user owning the record.
func ownOrAdmin(principal *models.Principal, ownerID int64) error {
	if principal == nil {
		return appErrors.ErrUnauthorized
	}
	if principal.User.ID == ownerID || principal.HasRole(models.RoleAdmin) {
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "not allowed to access another user's records")
}
