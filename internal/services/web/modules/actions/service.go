package actions

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	webtemplates "github.com/louisbranch/lingo/internal/services/web/templates"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

// maxFormBody bounds posted form bodies.
const maxFormBody = 64 << 10

// parseFields reads the create form for kind. An unusable word_id leaves
// the form without a word, which the submit then rejects.
func parseFields(w http.ResponseWriter, r *http.Request, kind signal.Kind) form.Fields {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	_ = r.ParseForm()
	fields := form.Fields{Text: r.PostForm.Get(webtemplates.FormFieldName(kind))}
	if kind != signal.Words {
		fields.WordID = parseID(r.PostForm.Get("word_id"), form.NoWord)
	}
	return fields
}

// parseTeamID reads the team_id field. Anything but a non-negative integer
// yields -1.
func parseTeamID(w http.ResponseWriter, r *http.Request) int64 {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	_ = r.ParseForm()
	return parseID(r.PostForm.Get("team_id"), -1)
}

func parseID(raw string, fallback int64) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return fallback
	}
	return id
}

// pageFor returns the page that shows kind's entries for wordID: its path,
// raw query and redirect target.
func pageFor(kind signal.Kind, wordID int64) (path, rawQuery, location string) {
	if kind == signal.Words {
		return routepath.Glossary, "", routepath.Glossary
	}
	if wordID > form.NoWord {
		rawQuery = url.Values{view.WordParam: {strconv.FormatInt(wordID, 10)}}.Encode()
	}
	return routepath.Reflections, rawQuery, routepath.ReflectionsForWord(wordID)
}
