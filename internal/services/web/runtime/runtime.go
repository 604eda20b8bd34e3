// Package runtime dispatches browser events against one session's state.
//
// A Runtime owns no goroutines. Callers serialize Dispatch per session with
// Locks so every event runs to completion before the next one starts.
package runtime

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/lingo/internal/platform/identity"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/session"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	"go.uber.org/zap"
)

// Message keys produced by session events.
const (
	KeyLoginMissing    = "notice.login.missing"
	KeyLoginExpired    = "notice.login.expired"
	KeySessionExpired  = "notice.session.expired"
	KeyTeamSelected    = "notice.team.selected"
	KeyTeamSelectFail  = "notice.team.select_failed"
	KeyTeamUnavailable = "notice.team.unavailable"
	KeyTeamInvalid     = "notice.team.invalid"
)

// API is the slice of the Lingo API the runtime drives.
type API interface {
	form.Writer
	UserInfo(ctx context.Context, token string) (lingoapi.UserInfo, bool)
	Team(ctx context.Context, token string, teamID int64) (lingoapi.Team, bool)
	SetCurrentTeam(ctx context.Context, token string, teamID int64) lingoapi.WriteResult
}

// Event is one user or timer action.
type Event interface {
	isEvent()
}

// Login records the identity reported by the identity widget.
type Login struct {
	DisplayName string
	Token       string
}

// Logout signs the session out.
type Logout struct{}

// SelectTeam switches the current team.
type SelectTeam struct {
	TeamID int64
}

// Submit sends one of the create forms.
type Submit struct {
	Kind   signal.Kind
	Fields form.Fields
}

// Tick is the periodic liveness check.
type Tick struct {
	Now time.Time
}

func (Login) isEvent()      {}
func (Logout) isEvent()     {}
func (SelectTeam) isEvent() {}
func (Submit) isEvent()     {}
func (Tick) isEvent()       {}

// Result describes what one event changed.
type Result struct {
	Notice *form.Notice
	Fields form.Fields
	// Triggered lists the signals bumped by the event.
	Triggered []signal.Kind
	// Changed reports whether the session state changed.
	Changed bool
}

// Options configures a Runtime.
type Options struct {
	Logger *zap.Logger
	Now    func() time.Time
	Forms  *form.Controller
}

// Runtime binds the API to one session context and its signals.
type Runtime struct {
	api     API
	session *session.Context
	signals *signal.Signals
	forms   *form.Controller
	logger  *zap.Logger
	now     func() time.Time
}

// New builds a Runtime. A nil Forms option creates a controller over api.
func New(api API, sc *session.Context, signals *signal.Signals, opts Options) *Runtime {
	if sc == nil {
		sc = session.New(session.Empty())
	}
	if signals == nil {
		signals = signal.New()
	}
	rt := &Runtime{
		api:     api,
		session: sc,
		signals: signals,
		forms:   opts.Forms,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if rt.forms == nil {
		rt.forms = form.NewController(api, signals)
	}
	if rt.logger == nil {
		rt.logger = zap.NewNop()
	}
	if rt.now == nil {
		rt.now = time.Now
	}
	return rt
}

// Session returns the session context driven by the runtime.
func (rt *Runtime) Session() *session.Context {
	return rt.session
}

// Signals returns the signals bumped by the runtime.
func (rt *Runtime) Signals() *signal.Signals {
	return rt.signals
}

// Dispatch applies ev and reports its effects.
func (rt *Runtime) Dispatch(ctx context.Context, ev Event) Result {
	before := rt.session.Snapshot()
	var triggered []signal.Kind
	unsubscribe := make([]func(), 0, len(signal.Kinds()))
	for _, kind := range signal.Kinds() {
		initial := true
		unsubscribe = append(unsubscribe, rt.signals.Subscribe(kind, func(uint64) {
			if initial {
				initial = false
				return
			}
			triggered = append(triggered, kind)
		}))
	}

	var result Result
	switch ev := ev.(type) {
	case Login:
		result = rt.login(ctx, ev)
	case Logout:
		rt.session.ClearIdentity()
	case SelectTeam:
		result = rt.selectTeam(ctx, ev)
	case Submit:
		out := rt.forms.Submit(ctx, ev.Kind, rt.session.Snapshot(), ev.Fields)
		result.Fields = out.Fields
		if out.Notice.Key != "" {
			notice := out.Notice
			result.Notice = &notice
		}
	case Tick:
		result = rt.tick(ev)
	}

	for _, fn := range unsubscribe {
		fn()
	}
	result.Triggered = triggered
	result.Changed = rt.session.Snapshot() != before
	return result
}

func (rt *Runtime) login(ctx context.Context, ev Login) Result {
	token := strings.TrimSpace(ev.Token)
	name := strings.TrimSpace(ev.DisplayName)
	if name == "" {
		name = identity.DisplayName(token)
	}
	if name == "" || token == "" {
		return Result{Notice: notice(form.Warning(KeyLoginMissing))}
	}
	if identity.Expired(token, rt.now()) {
		return Result{Notice: notice(form.Warning(KeyLoginExpired))}
	}
	rt.session.SetIdentity(name, token)
	rt.resolveTeam(ctx, token)
	return Result{}
}

// resolveTeam loads the user's current team from the API. Any unavailable
// read leaves the session without a team. The team detail may omit its id,
// so the requested id is kept.
func (rt *Runtime) resolveTeam(ctx context.Context, token string) {
	info, ok := rt.api.UserInfo(ctx, token)
	if !ok {
		rt.session.ClearCurrentTeam()
		return
	}
	teamID, ok := info.TeamID()
	if !ok {
		rt.session.ClearCurrentTeam()
		return
	}
	team, ok := rt.api.Team(ctx, token, teamID)
	if !ok {
		rt.logger.Info("current team unavailable", zap.Int64("team_id", teamID))
		rt.session.ClearCurrentTeam()
		return
	}
	if err := rt.session.SetCurrentTeam(teamID, team.Name, team.IsOwner); err != nil {
		rt.logger.Warn("current team rejected", zap.Int64("team_id", teamID), zap.Error(err))
		rt.session.ClearCurrentTeam()
	}
}

func (rt *Runtime) selectTeam(ctx context.Context, ev SelectTeam) Result {
	s := rt.session.Snapshot()
	if !s.LoggedIn() {
		return Result{Notice: notice(form.Warning(form.KeySubmitUnauthorized))}
	}
	if ev.TeamID < 0 {
		return Result{Notice: notice(form.Warning(KeyTeamInvalid))}
	}
	written := rt.api.SetCurrentTeam(ctx, s.APIToken, ev.TeamID)
	if !written.Succeeded() {
		rt.logger.Warn("failed to update current team", zap.Int64("team_id", ev.TeamID), zap.Int("status", written.Status))
		return Result{Notice: notice(form.Danger(KeyTeamSelectFail, strconv.FormatInt(ev.TeamID, 10), written.Message))}
	}
	team, ok := rt.api.Team(ctx, s.APIToken, ev.TeamID)
	if !ok {
		rt.logger.Warn("failed to fetch team", zap.Int64("team_id", ev.TeamID))
		return Result{Notice: notice(form.Danger(KeyTeamUnavailable, strconv.FormatInt(ev.TeamID, 10)))}
	}
	if err := rt.session.SetCurrentTeam(ev.TeamID, team.Name, team.IsOwner); err != nil {
		return Result{Notice: notice(form.Danger(KeyTeamUnavailable, strconv.FormatInt(ev.TeamID, 10)))}
	}
	return Result{Notice: notice(form.Success(KeyTeamSelected, team.Name))}
}

func (rt *Runtime) tick(ev Tick) Result {
	now := ev.Now
	if now.IsZero() {
		now = rt.now()
	}
	s := rt.session.Snapshot()
	if !s.LoggedIn() || !identity.Expired(s.APIToken, now) {
		return Result{}
	}
	rt.session.ClearIdentity()
	return Result{Notice: notice(form.Warning(KeySessionExpired))}
}

func notice(n form.Notice) *form.Notice {
	return &n
}
