package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"senderId" validate:"required"`
	ReceiverID int64     `db:"receiver_id" json:"receiverId" validate:"required"`
	Message    string    `db:"message" json:"message" validate:"required"`
	Read       bool      `db:"read" json:"read"`
	SentAt     time.Time `db:"sent_at" json:"sentAt"`
}

type MessagePatch struct {
	Message *string `db:"message" json:"message,omitempty" validate:"omitempty,min=1"`
	Read    *bool   `db:"read" json:"read,omitempty"`
}

func (p MessagePatch) IsEmpty() bool { return p == MessagePatch{} }

func (p MessagePatch) Apply(m *Message) {
	assign(&m.Message, p.Message)
	assign(&m.Read, p.Read)
}

// AudienceAll targets an announcement at every role.
const AudienceAll = "all"

// Announcement is a broadcast optionally targeted at a role or a class.
type Announcement struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"userId" validate:"required"`
	Title         string    `db:"title" json:"title" validate:"required"`
	Content       string    `db:"content" json:"content" validate:"required"`
	TargetRole    *string   `db:"target_role" json:"targetRole,omitempty" validate:"omitempty,oneof=all admin teacher student"`
	TargetClassID *int64    `db:"target_class_id" json:"targetClassId,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

type AnnouncementPatch struct {
	Title         *string `db:"title" json:"title,omitempty" validate:"omitempty,min=1"`
	Content       *string `db:"content" json:"content,omitempty" validate:"omitempty,min=1"`
	TargetRole    *string `db:"target_role" json:"targetRole,omitempty" validate:"omitempty,oneof=all admin teacher student"`
	TargetClassID *int64  `db:"target_class_id" json:"targetClassId,omitempty"`
}

func (p AnnouncementPatch) IsEmpty() bool { return p == AnnouncementPatch{} }

func (p AnnouncementPatch) Apply(a *Announcement) {
	assign(&a.Title, p.Title)
	assign(&a.Content, p.Content)
	assignOptional(&a.TargetRole, p.TargetRole)
	assignOptional(&a.TargetClassID, p.TargetClassID)
}
