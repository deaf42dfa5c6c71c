package notification

import "fmt"

// Kind is the type of entity a notification is about.
type Kind string

const (
	KindDocument Kind = "document"
	KindMedia    Kind = "media"
	KindMember   Kind = "member"
)

// Event is what happened to the entities.
type Event string

const (
	EventSaved     Event = "saved"
	EventPublished Event = "published"
)

// Kinds lists every supported entity kind.
var Kinds = []Kind{KindDocument, KindMedia, KindMember}

// Events lists every supported event.
var Events = []Event{EventSaved, EventPublished}

// Notification announces that entities of one kind were saved or published.
type Notification struct {
	Kind  Kind  `json:"kind" validate:"required,oneof=document media member"`
	Event Event `json:"event" validate:"required,oneof=saved published"`
	IDs   []int `json:"ids" validate:"required,min=1,dive,gt=0"`
}

func (n Notification) String() string {
	return fmt.Sprintf("%s.%s(%d)", n.Kind, n.Event, len(n.IDs))
}
