package core

import "time"

// Kind classifies a chat message.
type Kind string

const (
	// KindStatus is a join/leave notice emitted by the system.
	KindStatus Kind = "status"
	// KindMessage is a chat line addressed to the whole room.
	KindMessage Kind = "message"
	// KindPrivateMessage is a chat line addressed to a single participant.
	KindPrivateMessage Kind = "private_message"
)

// Valid reports whether k belongs to the closed set of kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStatus, KindMessage, KindPrivateMessage:
		return true
	}
	return false
}

// RequiresSender reports whether appending k needs a present sender.
func (k Kind) RequiresSender() bool {
	return k == KindMessage || k == KindPrivateMessage
}

const (
	// BroadcastTarget is the recipient meaning "every participant".
	BroadcastTarget = "Todos"
	// JoinedText is the body of the status notice recorded on join.
	JoinedText = "entra na sala..."
	// LeftText is the body of the status notice recorded on eviction.
	LeftText = "sai da sala..."

	// TimeLayout formats message times as zero-padded 24h wall clock.
	TimeLayout = "15:04:05"
)

// Participant is a name currently considered present.
type Participant struct {
	Name          string
	LastHeartbeat time.Time
}

// Message is the domain model for a chat event.
type Message struct {
	ID        int64
	From      string
	To        string
	Text      string
	Kind      Kind
	Time      string
	CreatedAt time.Time
}

// Stamp sets both time fields of m from now.
func (m *Message) Stamp(now time.Time) {
	m.CreatedAt = now
	m.Time = now.Format(TimeLayout)
}

// VisibleTo reports whether viewer may read m: broadcasts, messages addressed
// to viewer and messages sent by viewer.
func (m *Message) VisibleTo(viewer string) bool {
	return m.To == BroadcastTarget || m.To == viewer || m.From == viewer
}

// StatusMessage builds a system notice about name.
func StatusMessage(name, text string) Message {
	return Message{
		From: name,
		To:   BroadcastTarget,
		Text: text,
		Kind: KindStatus,
	}
}
