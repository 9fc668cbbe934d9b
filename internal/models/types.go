package models

import "time"

// EntityKind distinguishes one-on-one contacts from group chats.
type EntityKind string

const (
	KindIndividual EntityKind = "individual"
	KindGroup      EntityKind = "group"
)

// Entity is an addressable contact or group in the directory.
// Entities are immutable after the roster is loaded.
type Entity struct {
	ID      int        `yaml:"id" validate:"required,min=1"`
	Name    string     `yaml:"name" validate:"required"`
	Kind    EntityKind `yaml:"kind" validate:"required,oneof=individual group"`
	Members []string   `yaml:"members,omitempty" validate:"required_if=Kind group,omitempty,min=1,dive,required"`
}

// IsGroup reports whether the entity is a group chat.
func (e Entity) IsGroup() bool {
	return e.Kind == KindGroup
}

type Direction int

const (
	Received Direction = iota
	Sent
)

// Message is one entry in an entity's conversation. ID is dense and
// zero-based within the owning conversation, assigned at append time.
// Timestamp is a display-only clock string; Date carries the calendar
// date used for grouping. Sender is set only on received group messages.
type Message struct {
	ID        int
	Text      string
	Direction Direction
	Timestamp string
	Date      time.Time
	Sender    string
}

// DateGroup holds the messages of one calendar date, in append order.
// Date is truncated to midnight in the messages' location.
type DateGroup struct {
	Date     time.Time
	Messages []Message
}

// SessionState is the logged-in user, the selected conversation, and the
// active contact-search text. A logged-out session has no valid state.
type SessionState struct {
	CurrentUser  int
	ActiveEntity int
	SearchFilter string
}
