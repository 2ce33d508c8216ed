package core

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"citizensera.com/sera/internal/catalog"
	"citizensera.com/sera/internal/config"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry. Only assistant messages carry quick
// actions.
type Message struct {
	ID           string                `json:"id"`
	Seq          int                   `json:"seq"`
	Sender       Sender                `json:"sender"`
	Text         string                `json:"text"`
	CreatedAt    time.Time             `json:"created_at"`
	QuickActions []catalog.QuickAction `json:"quick_actions,omitempty"`
}

func (m Message) clone() Message {
	m.QuickActions = slices.Clone(m.QuickActions)
	return m
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ConversationSimulator owns a transcript and answers posts with canned
// replies after a delay.
type ConversationSimulator struct {
	sched    *Scheduler
	tuning   config.ChatTuning
	replies  ReplyStrategy
	emitter  Emitter
	logger   *zap.Logger
	freeText []catalog.ResponseTemplate

	mu         sync.Mutex
	transcript []Message
	inFlight   int
}

func NewConversationSimulator(sched *Scheduler, tuning config.ChatTuning, replies ReplyStrategy, emitter Emitter, logger *zap.Logger) *ConversationSimulator {
	if replies == nil {
		replies = NewRandomStrategy(0)
	}
	if emitter == nil {
		emitter = nopEmitter{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationSimulator{
		sched:    sched,
		tuning:   tuning,
		replies:  replies,
		emitter:  emitter,
		logger:   logger,
		freeText: catalog.FreeTextReplies(),
	}
}

// PostUserMessage appends text as a user message and schedules a free-text
// reply. Blank text is ignored, as is any post after the scheduler is
// closed; the result reports whether it was accepted.
func (c *ConversationSimulator) PostUserMessage(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	return c.post(text, c.tuning.ReplyDelay, func() catalog.ResponseTemplate {
		return c.freeText[c.replies.Choose(len(c.freeText))]
	})
}

// PostQuickAction appends label as a user message and schedules the reply
// registered for actionKey, or the default reply for unknown keys.
func (c *ConversationSimulator) PostQuickAction(actionKey, label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		label = strings.TrimSpace(actionKey)
	}
	if label == "" {
		return false
	}
	return c.post(label, c.tuning.QuickActionDelay, func() catalog.ResponseTemplate {
		if t, ok := catalog.QuickActionReply(actionKey); ok {
			return t
		}
		c.logger.Debug("unknown quick action, using default reply", zap.String("action_key", actionKey))
		return catalog.DefaultReply()
	})
}

// Greet appends the opening assistant message addressed to name.
func (c *ConversationSimulator) Greet(name string) Message {
	t := catalog.Greeting(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendLocked(SenderAssistant, t.Text, t.FollowUps)
}

// post returns false without touching the transcript once the scheduler is
// closed, since no reply could ever land.
func (c *ConversationSimulator) post(text string, delay time.Duration, pick func() catalog.ResponseTemplate) bool {
	c.mu.Lock()
	if c.sched.Closed() {
		c.mu.Unlock()
		return false
	}
	c.appendLocked(SenderUser, text, nil)
	c.inFlight++
	if c.inFlight == 1 {
		c.emitComposingLocked(true)
	}
	c.mu.Unlock()

	c.sched.Schedule(delay, func() { c.reply(pick()) })
	return true
}

func (c *ConversationSimulator) reply(t catalog.ResponseTemplate) {
	c.mu.Lock()
	c.appendLocked(SenderAssistant, t.Text, t.FollowUps)
	c.inFlight--
	if c.inFlight == 0 {
		c.emitComposingLocked(false)
	}
	c.mu.Unlock()

	if t.NavigateTo == "" {
		return
	}
	view := t.NavigateTo
	c.sched.Schedule(c.tuning.NavigateDelay, func() {
		c.logger.Debug("navigating", zap.String("view", view), zap.String("trigger", t.Trigger))
		c.emitter.Emit(Event{Type: EventNavigate, At: c.sched.Now(), View: view})
	})
}

func (c *ConversationSimulator) appendLocked(sender Sender, text string, actions []catalog.QuickAction) Message {
	msg := Message{
		ID:        newMessageID(),
		Seq:       len(c.transcript),
		Sender:    sender,
		Text:      text,
		CreatedAt: c.sched.Now(),
	}
	if sender == SenderAssistant && len(actions) > 0 {
		msg.QuickActions = slices.Clone(actions)
	}
	c.transcript = append(c.transcript, msg)

	out := msg.clone()
	c.emitter.Emit(Event{Type: EventMessage, At: msg.CreatedAt, Message: &out})
	return msg.clone()
}

func (c *ConversationSimulator) emitComposingLocked(v bool) {
	c.emitter.Emit(Event{Type: EventComposing, At: c.sched.Now(), Composing: &v})
}

// Transcript returns a copy of the messages in insertion order.
func (c *ConversationSimulator) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	for i, m := range c.transcript {
		out[i] = m.clone()
	}
	return out
}

// IsComposing reports whether any reply is still in flight.
func (c *ConversationSimulator) IsComposing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}
