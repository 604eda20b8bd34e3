// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	webi18n "github.com/louisbranch/lingo/internal/services/web/i18n"
	apperrors "github.com/louisbranch/lingo/internal/services/web/platform/errors"
	"github.com/louisbranch/lingo/internal/services/web/platform/pagerender"
	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/lingo/internal/services/web/session"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes the failed-to-load page for full-page and htmx
// requests. s drives the app chrome.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, s session.Session, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := webi18n.ForRequest(r)
	err := pagerender.Write(w, r, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Route:      view.RouteUnknown,
		Session:    s,
		Body:       webtemplates.ErrorState(statusCode, loc),
	}, policy)
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, s session.Session, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, s, policy)
		return
	}
	loc, _ := webi18n.ForRequest(r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
