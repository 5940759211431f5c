package webhooks

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

type EventType string

const (
	EventAuthorizationRemoved                 EventType = "authorization.removed"
	EventPostPublishFailed                    EventType = "post.publish.failed"
	EventPostPublishComplete                  EventType = "post.publish.complete"
	EventPostPublishPubliclyAvailable         EventType = "post.publish.publicly_available"
	EventPostPublishNoLongerPubliclyAvailable EventType = "post.publish.no_longer_publicly_available"
	EventCommentUpdate                        EventType = "comment.update"
)

func (t EventType) Known() bool {
	switch t {
	case EventAuthorizationRemoved,
		EventPostPublishFailed,
		EventPostPublishComplete,
		EventPostPublishPubliclyAvailable,
		EventPostPublishNoLongerPubliclyAvailable,
		EventCommentUpdate:
		return true
	}
	return false
}

type CommentType string

const (
	CommentTypeComment CommentType = "comment"
	CommentTypeReply   CommentType = "reply"
)

type CommentAction string

const (
	CommentActionInsert           CommentAction = "insert"
	CommentActionDelete           CommentAction = "delete"
	CommentActionSetToHidden      CommentAction = "set_to_hidden"
	CommentActionSetToFriendsOnly CommentAction = "set_to_friends_only"
	CommentActionSetToPublic      CommentAction = "set_to_public"
)

const PublishTypeDirect = "DIRECT_PUBLISH"

// Event is the delivery envelope. Content is a JSON document encoded as a
// string whose shape depends on Event.
type Event struct {
	ClientKey  string     `json:"client_key"`
	Event      EventType  `json:"event"`
	CreateTime int64      `json:"create_time"`
	UserOpenID string     `json:"user_openid"`
	Content    string     `json:"content"`
	Extra      core.Extra `json:"-"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	return core.UnmarshalWithExtra(data, (*plain)(e), &e.Extra)
}

func (e Event) Recognized() bool {
	return len(e.Extra) == 0 && e.Event.Known()
}

func (e Event) CreatedAt() time.Time {
	return time.Unix(e.CreateTime, 0).UTC()
}

// ParseEvent decodes a verified delivery body.
func ParseEvent(body []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return Event{}, fmt.Errorf("webhooks: decode event: %w", err)
	}
	if strings.TrimSpace(string(event.Event)) == "" {
		return Event{}, fmt.Errorf("webhooks: event type is required")
	}
	return event, nil
}

type AuthorizationRemoved struct {
	Reason int64      `json:"reason"`
	Extra  core.Extra `json:"-"`
}

func (a *AuthorizationRemoved) UnmarshalJSON(data []byte) error {
	type plain AuthorizationRemoved
	return core.UnmarshalWithExtra(data, (*plain)(a), &a.Extra)
}

type CommentUpdate struct {
	CommentID        int64         `json:"comment_id"`
	VideoID          int64         `json:"video_id"`
	ParentCommentID  int64         `json:"parent_comment_id"`
	CommentType      CommentType   `json:"comment_type"`
	CommentAction    CommentAction `json:"comment_action"`
	UniqueIdentifier string        `json:"unique_identifier"`
	Timestamp        int64         `json:"timestamp"`
	Extra            core.Extra    `json:"-"`
}

func (c *CommentUpdate) UnmarshalJSON(data []byte) error {
	type plain CommentUpdate
	return core.UnmarshalWithExtra(data, (*plain)(c), &c.Extra)
}

// PublishUpdate covers the post.publish.* events. PostID is set once the post
// is public; Reason only on failure.
type PublishUpdate struct {
	PublishID   string     `json:"publish_id"`
	PublishType string     `json:"publish_type"`
	PostID      string     `json:"post_id,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Content     string     `json:"content,omitempty"`
	Extra       core.Extra `json:"-"`
}

func (p *PublishUpdate) UnmarshalJSON(data []byte) error {
	type plain PublishUpdate
	return core.UnmarshalWithExtra(data, (*plain)(p), &p.Extra)
}

func (e Event) AuthorizationRemoved() (AuthorizationRemoved, error) {
	var out AuthorizationRemoved
	err := e.decodeContent(&out, EventAuthorizationRemoved)
	return out, err
}

func (e Event) CommentUpdate() (CommentUpdate, error) {
	var out CommentUpdate
	err := e.decodeContent(&out, EventCommentUpdate)
	return out, err
}

func (e Event) PublishUpdate() (PublishUpdate, error) {
	var out PublishUpdate
	err := e.decodeContent(&out,
		EventPostPublishFailed,
		EventPostPublishComplete,
		EventPostPublishPubliclyAvailable,
		EventPostPublishNoLongerPubliclyAvailable,
	)
	return out, err
}

func (e Event) decodeContent(target any, allowed ...EventType) error {
	match := false
	for _, t := range allowed {
		if e.Event == t {
			match = true
			break
		}
	}
	if !match {
		return fmt.Errorf("webhooks: event %q has no such content", e.Event)
	}
	if err := json.Unmarshal([]byte(e.Content), target); err != nil {
		return fmt.Errorf("webhooks: decode %s content: %w", e.Event, err)
	}
	return nil
}
