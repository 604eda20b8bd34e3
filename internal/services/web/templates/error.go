package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorPageTitle returns the heading for an error page.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, "error.not_found.title")
	}
	return T(loc, "error.server.title")
}

// ErrorState renders the failed-to-load body used for unknown routes and
// internal failures.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	status := normalizeErrorStatus(statusCode)
	return component(func(_ context.Context, h *htmlWriter) {
		body := "error.server.body"
		if status == http.StatusNotFound {
			body = "error.not_found.body"
		}
		h.raw("<section id=\"error-state\" class=\"page error-state\"")
		h.attr("data-status", itoa(int64(status)))
		h.raw(">")
		h.element("h1", "", ErrorPageTitle(status, loc))
		h.element("p", "", T(loc, body))
		h.raw("<a class=\"btn\"")
		h.attr("href", routepath.Root)
		h.raw(">")
		h.text(T(loc, "error.back_home"))
		h.raw("</a></section>")
	})
}
