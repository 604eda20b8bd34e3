// Package flash provides one-time web notices persisted across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/platform/requestmeta"
)

// CookieName is the canonical cookie used for one-time web notices.
const CookieName = "lingo_flash"

const maxArgs = 4

type payload struct {
	Level     string   `json:"l"`
	Key       string   `json:"k"`
	Args      []string `json:"a,omitempty"`
	DismissMS int64    `json:"d,omitempty"`
}

// Write stores a flash notice cookie for the next page render.
func Write(w http.ResponseWriter, r *http.Request, notice form.Notice, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	raw, err := json.Marshal(payload{
		Level:     string(normalized.Level),
		Key:       normalized.Key,
		Args:      normalized.Args,
		DismissMS: normalized.DismissAfter.Milliseconds(),
	})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear reads and clears the flash notice cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) (form.Notice, bool) {
	if r == nil {
		return form.Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return form.Notice{}, false
	}
	Clear(w, r, policy)
	return decode(cookie.Value)
}

// Clear expires any flash notice cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) (form.Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return form.Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return form.Notice{}, false
	}
	var p payload
	if err := json.Unmarshal(decoded, &p); err != nil {
		return form.Notice{}, false
	}
	return normalize(form.Notice{
		Level:        form.Level(p.Level),
		Key:          p.Key,
		Args:         p.Args,
		DismissAfter: time.Duration(p.DismissMS) * time.Millisecond,
	})
}

func normalize(notice form.Notice) (form.Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	if notice.Key == "" {
		return form.Notice{}, false
	}
	notice.Level = form.Level(strings.ToLower(strings.TrimSpace(string(notice.Level))))
	switch notice.Level {
	case form.LevelSuccess, form.LevelInfo, form.LevelWarning, form.LevelDanger:
	default:
		return form.Notice{}, false
	}
	if len(notice.Args) > maxArgs {
		notice.Args = notice.Args[:maxArgs]
	}
	if len(notice.Args) == 0 {
		notice.Args = nil
	}
	if notice.DismissAfter < 0 {
		notice.DismissAfter = 0
	}
	return notice, true
}
