package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parleyapp/parley/internal/directory"
	"github.com/parleyapp/parley/internal/models"
	"github.com/parleyapp/parley/internal/store"
	"github.com/parleyapp/parley/internal/timeline"
)

var (
	// ErrInvalidEntity rejects references to unknown or disallowed entity ids.
	ErrInvalidEntity = errors.New("invalid entity")
	// ErrEmptyMessage rejects sends of blank or whitespace-only text.
	ErrEmptyMessage = errors.New("empty message")
)

// NoMessagesPreview is the sentinel shown for entities without history.
const NoMessagesPreview = "No messages yet"

// Controller mediates every session transition. It is the only writer to
// the conversation store; each transition runs to completion on the event
// loop before the next is accepted. Failed transitions leave the session
// state untouched.
type Controller struct {
	dir   *directory.Directory
	store *store.Store
	log   *zap.Logger
	now   func() time.Time

	loggedIn  bool
	state     models.SessionState
	sessionID string
}

// New wires a controller over the directory and store. A nil clock means
// time.Now.
func New(dir *directory.Directory, st *store.Store, log *zap.Logger, now func() time.Time) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Controller{dir: dir, store: st, log: log, now: now}
}

// LoggedIn reports whether a session is active.
func (c *Controller) LoggedIn() bool {
	return c.loggedIn
}

// State returns the current session state. Only meaningful while logged in.
func (c *Controller) State() models.SessionState {
	return c.state
}

// CurrentUser resolves the logged-in user's entity.
func (c *Controller) CurrentUser() (models.Entity, bool) {
	if !c.loggedIn {
		return models.Entity{}, false
	}
	return c.dir.Find(c.state.CurrentUser)
}

// ActiveEntity resolves the selected conversation's entity.
func (c *Controller) ActiveEntity() (models.Entity, bool) {
	if !c.loggedIn {
		return models.Entity{}, false
	}
	return c.dir.Find(c.state.ActiveEntity)
}

// Login starts a session as the given entity. The active conversation
// defaults to the first directory entity other than the user. Conversations
// from an earlier session in this process are kept as-is.
func (c *Controller) Login(entityID int) error {
	user, ok := c.dir.Find(entityID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidEntity, entityID)
	}

	// Entity ids are validated to be >= 1, so 0 means no conversation:
	// the user is alone in the directory until someone else is selected.
	active := 0
	for _, e := range c.dir.List() {
		if e.ID != entityID {
			active = e.ID
			break
		}
	}

	c.loggedIn = true
	c.state = models.SessionState{CurrentUser: entityID, ActiveEntity: active}
	c.sessionID = uuid.NewString()

	c.log.Info("logged in",
		zap.String("session", c.sessionID),
		zap.Int("user", entityID),
		zap.String("name", user.Name),
	)
	return nil
}

// Logout clears the session state. The store keeps its conversations until
// the process exits.
func (c *Controller) Logout() {
	if !c.loggedIn {
		return
	}
	c.log.Info("logged out", zap.String("session", c.sessionID))
	c.loggedIn = false
	c.state = models.SessionState{}
	c.sessionID = ""
}

// SelectEntity switches the active conversation. Selecting the current
// user's own id is disallowed.
func (c *Controller) SelectEntity(entityID int) error {
	if !c.loggedIn {
		return fmt.Errorf("%w: no active session", ErrInvalidEntity)
	}
	if entityID == c.state.CurrentUser {
		return fmt.Errorf("%w: cannot chat with yourself", ErrInvalidEntity)
	}
	if _, ok := c.dir.Find(entityID); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidEntity, entityID)
	}

	c.state.ActiveEntity = entityID
	return nil
}

// SetSearchFilter updates the contact-search text. Conversations are not
// touched.
func (c *Controller) SetSearchFilter(text string) {
	if !c.loggedIn {
		return
	}
	c.state.SearchFilter = text
}

// SendMessage appends a sent message to the active conversation, stamped
// with the current date and time. The selection and filter are unchanged.
func (c *Controller) SendMessage(text string) (models.Message, error) {
	if !c.loggedIn {
		return models.Message{}, fmt.Errorf("%w: no active session", ErrInvalidEntity)
	}
	if c.state.ActiveEntity == 0 {
		return models.Message{}, fmt.Errorf("%w: no conversation selected", ErrInvalidEntity)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, ErrEmptyMessage
	}

	now := c.now()
	msg, err := c.store.Append(c.state.ActiveEntity, models.Message{
		Text:      text,
		Direction: models.Sent,
		Timestamp: now.Format("03:04 PM"),
		Date:      now,
	})
	if err != nil {
		if errors.Is(err, store.ErrUnknownEntity) {
			return models.Message{}, fmt.Errorf("%w: %d", ErrInvalidEntity, c.state.ActiveEntity)
		}
		return models.Message{}, err
	}

	c.log.Info("message sent",
		zap.String("session", c.sessionID),
		zap.Int("entity", c.state.ActiveEntity),
		zap.Int("id", msg.ID),
	)
	return msg, nil
}

// FilteredEntities returns the directory entries whose name contains the
// search filter, case-insensitively, excluding the current user. Recomputed
// on every call; never cached.
func (c *Controller) FilteredEntities() []models.Entity {
	if !c.loggedIn {
		return nil
	}

	needle := strings.ToLower(c.state.SearchFilter)
	filtered := make([]models.Entity, 0, c.dir.Len())
	for _, e := range c.dir.List() {
		if e.ID == c.state.CurrentUser {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.Name), needle) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// ConversationGroups reads an entity's conversation and buckets it by date,
// most recent date first.
func (c *Controller) ConversationGroups(entityID int) ([]models.DateGroup, error) {
	messages, err := c.store.Get(entityID)
	if err != nil {
		if errors.Is(err, store.ErrUnknownEntity) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidEntity, entityID)
		}
		return nil, err
	}
	return timeline.GroupByDate(messages), nil
}

// LastMessagePreview returns the text of an entity's most recent message,
// or the no-messages sentinel.
func (c *Controller) LastMessagePreview(entityID int) string {
	msg, ok, err := c.store.Last(entityID)
	if err != nil || !ok {
		return NoMessagesPreview
	}
	return msg.Text
}
