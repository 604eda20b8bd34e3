package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/form"
)

// NoticesID is the element id of the notice stack.
const NoticesID = "notices"

// NoticeView is a localized notice ready to render.
type NoticeView struct {
	Level          string
	Message        string
	DismissAfterMS int64
}

// NoticeViews localizes notices for rendering.
func NoticeViews(loc Localizer, notices ...form.Notice) []NoticeView {
	views := make([]NoticeView, 0, len(notices))
	for _, n := range notices {
		if n.Key == "" {
			continue
		}
		views = append(views, NoticeView{
			Level:          string(n.Level),
			Message:        TArgs(loc, n.Key, n.Args),
			DismissAfterMS: n.DismissAfter.Milliseconds(),
		})
	}
	return views
}

// Notice renders one dismissible alert.
func Notice(n NoticeView, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		level := n.Level
		if level == "" {
			level = string(form.LevelInfo)
		}
		h.raw("<div")
		h.attr("class", "notice notice-"+level)
		h.attr("role", "alert")
		if n.DismissAfterMS > 0 {
			h.attr("data-dismiss-after", itoa(n.DismissAfterMS))
		}
		h.raw("><span class=\"notice-text\">")
		h.text(n.Message)
		h.raw("</span><button type=\"button\" class=\"notice-close\"")
		h.attr("aria-label", T(loc, "notice.dismiss"))
		h.raw(" data-dismiss>&times;</button></div>")
	})
}

// Notices renders the notice stack container.
func Notices(notices []NoticeView, loc Localizer) templ.Component {
	return noticeStack(notices, loc, false)
}

// NoticesOOB renders notices appended out of band to the stack of an
// already loaded page.
func NoticesOOB(notices []NoticeView, loc Localizer) templ.Component {
	if len(notices) == 0 {
		return templ.NopComponent
	}
	return noticeStack(notices, loc, true)
}

func noticeStack(notices []NoticeView, loc Localizer, oob bool) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<div")
		h.attr("id", NoticesID)
		h.attr("class", "notices")
		if oob {
			h.attr("hx-swap-oob", "beforeend")
		} else {
			h.attr("aria-live", "polite")
		}
		h.raw(">")
		for _, n := range notices {
			h.render(ctx, Notice(n, loc))
		}
		h.raw("</div>")
	})
}
