// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/form"
	webi18n "github.com/louisbranch/lingo/internal/services/web/i18n"
	"github.com/louisbranch/lingo/internal/services/web/platform/flash"
	"github.com/louisbranch/lingo/internal/services/web/platform/httpx"
	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/lingo/internal/services/web/session"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

// Page describes a page response for both full-page and htmx flows.
type Page struct {
	Title      string
	StatusCode int
	Route      view.Route
	Session    session.Session
	Notices    []form.Notice
	Body       templ.Component
}

// Write renders page. htmx requests receive the body plus out-of-band
// notices; other requests receive the full layout. A pending flash notice
// is shown first and cleared.
func Write(w http.ResponseWriter, r *http.Request, page Page, policy requestmeta.SchemePolicy) error {
	if w == nil {
		return nil
	}
	loc, tag := webi18n.ForRequest(r)
	notices := page.Notices
	if pending, ok := flash.ReadAndClear(w, r, policy); ok {
		notices = append([]form.Notice{pending}, notices...)
	}
	views := webtemplates.NoticeViews(loc, notices...)
	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}

	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := body.Render(ctx, &buf); err != nil {
			return err
		}
		if err := webtemplates.NoticesOOB(views, loc).Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		layout := webtemplates.Layout(webtemplates.PageContext{
			Lang:    tag.String(),
			Loc:     loc,
			Title:   page.Title,
			Route:   page.Route,
			Session: page.Session,
			Notices: views,
		})
		if err := layout.Render(templ.WithChildren(ctx, body), &buf); err != nil {
			return err
		}
	}
	return flush(w, page.StatusCode, &buf)
}

// WriteFragment renders body followed by out-of-band notices, for htmx
// actions and live regions.
func WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, body templ.Component, notices ...form.Notice) error {
	if w == nil {
		return nil
	}
	loc, _ := webi18n.ForRequest(r)
	if body == nil {
		body = templ.NopComponent
	}
	ctx := httpx.RequestContext(r)
	var buf bytes.Buffer
	if err := body.Render(ctx, &buf); err != nil {
		return err
	}
	if err := webtemplates.NoticesOOB(webtemplates.NoticeViews(loc, notices...), loc).Render(ctx, &buf); err != nil {
		return err
	}
	return flush(w, statusCode, &buf)
}

func flush(w http.ResponseWriter, statusCode int, buf *bytes.Buffer) error {
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write(buf.Bytes())
	return err
}
