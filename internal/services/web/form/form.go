// Package form validates and submits the word, meaning and reflection
// forms for one browser session.
package form

import (
	"context"
	"strings"
	"sync"

	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"github.com/louisbranch/lingo/internal/services/web/signal"
)

// NoWord marks a meaning or reflection form without a selected word.
const NoWord int64 = 0

// Message keys produced by submissions.
const (
	KeyWordMissing        = "notice.word.missing"
	KeyMeaningMissing     = "notice.meaning.missing"
	KeyReflectionMissing  = "notice.reflection.missing"
	KeyWordSuccess        = "notice.word.success"
	KeyMeaningSuccess     = "notice.meaning.success"
	KeyReflectionSuccess  = "notice.reflection.success"
	KeyWordFailed         = "notice.word.failed"
	KeyMeaningFailed      = "notice.meaning.failed"
	KeyReflectionFailed   = "notice.reflection.failed"
	KeyWordNeedsTeam      = "notice.word.needs_team"
	KeySubmitInFlight     = "notice.submit.in_flight"
	KeySubmitUnauthorized = "notice.submit.signed_out"
)

// Fields is the editable state of one form.
type Fields struct {
	WordID int64
	Text   string
}

// CanSubmit reports whether fields are complete enough to send for kind.
func CanSubmit(kind signal.Kind, fields Fields) bool {
	if strings.TrimSpace(fields.Text) == "" {
		return false
	}
	switch kind {
	case signal.Words:
		return true
	case signal.Meanings, signal.Reflections:
		return fields.WordID > NoWord
	default:
		return false
	}
}

// Writer is the create side of the Lingo API.
type Writer interface {
	CreateWord(ctx context.Context, token string, teamID int64, word string) lingoapi.WriteResult
	CreateMeaning(ctx context.Context, token string, wordID int64, meaning string) lingoapi.WriteResult
	CreateReflection(ctx context.Context, token string, wordID int64, reflection string) lingoapi.WriteResult
}

// Outcome is the result of one submission.
type Outcome struct {
	Notice Notice
	// Fields is what the form shows afterwards.
	Fields Fields
	// Sent reports whether a request reached the API.
	Sent   bool
	Bumped bool
}

// Controller submits forms for one browser session and bumps the matching
// signal on success.
type Controller struct {
	api     Writer
	signals *signal.Signals

	mu       sync.Mutex
	inFlight map[signal.Kind]bool
}

// NewController builds a Controller over api and signals.
func NewController(api Writer, signals *signal.Signals) *Controller {
	return &Controller{api: api, signals: signals, inFlight: make(map[signal.Kind]bool)}
}

// Submit validates fields and sends the create request for kind. At most
// one submission per kind runs at a time; an overlapping call is rejected
// with a warning and sends nothing.
func (c *Controller) Submit(ctx context.Context, kind signal.Kind, s session.Session, fields Fields) Outcome {
	out := Outcome{Fields: fields}
	if !CanSubmit(kind, fields) {
		out.Notice = Warning(missingKey(kind))
		return out
	}
	if !s.LoggedIn() {
		out.Notice = Warning(KeySubmitUnauthorized)
		return out
	}
	if kind == signal.Words && !s.HasTeam() {
		out.Notice = Warning(KeyWordNeedsTeam)
		return out
	}
	if !c.acquire(kind) {
		out.Notice = Warning(KeySubmitInFlight)
		return out
	}
	defer c.release(kind)

	text := strings.TrimSpace(fields.Text)
	var result lingoapi.WriteResult
	switch kind {
	case signal.Words:
		result = c.api.CreateWord(ctx, s.APIToken, s.CurrentTeamID, text)
	case signal.Meanings:
		result = c.api.CreateMeaning(ctx, s.APIToken, fields.WordID, text)
	case signal.Reflections:
		result = c.api.CreateReflection(ctx, s.APIToken, fields.WordID, text)
	}
	out.Sent = true

	if !result.Succeeded() {
		out.Notice = Danger(failedKey(kind), result.Message)
		return out
	}
	out.Fields.Text = ""
	if c.signals != nil {
		c.signals.Bump(kind)
		out.Bumped = true
	}
	out.Notice = Success(successKey(kind))
	return out
}

// InFlight reports whether a submission of kind is running.
func (c *Controller) InFlight(kind signal.Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[kind]
}

func (c *Controller) acquire(kind signal.Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[kind] {
		return false
	}
	c.inFlight[kind] = true
	return true
}

func (c *Controller) release(kind signal.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, kind)
}

func missingKey(kind signal.Kind) string {
	switch kind {
	case signal.Meanings:
		return KeyMeaningMissing
	case signal.Reflections:
		return KeyReflectionMissing
	default:
		return KeyWordMissing
	}
}

func successKey(kind signal.Kind) string {
	switch kind {
	case signal.Meanings:
		return KeyMeaningSuccess
	case signal.Reflections:
		return KeyReflectionSuccess
	default:
		return KeyWordSuccess
	}
}

func failedKey(kind signal.Kind) string {
	switch kind {
	case signal.Meanings:
		return KeyMeaningFailed
	case signal.Reflections:
		return KeyReflectionFailed
	default:
		return KeyWordFailed
	}
}
