// Package static embeds the stylesheet and script served under /static/.
package static

import (
	"embed"
	"net/http"

	"github.com/louisbranch/lingo/internal/services/web/routepath"
)

// FS exposes web static assets for HTTP serving.
//
//go:embed *.css *.js
var FS embed.FS

// Handler serves FS under routepath.StaticPrefix.
func Handler() http.Handler {
	files := http.FileServerFS(FS)
	return http.StripPrefix(routepath.StaticPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	}))
}
