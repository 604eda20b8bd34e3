package templates

import (
	"context"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

const createdAtLayout = "2006-01-02 15:04"

// Element ids of the live fragments.
const (
	WordsListID        = "words-list"
	MeaningsTableID    = "meanings-table"
	ReflectionsTableID = "reflections-table"
	TeamMembersID      = "team-members"
)

// liveRegion opens a container that re-fetches itself from src whenever
// the given signal event reaches the body.
func liveRegion(h *htmlWriter, id, class, src, trigger string) {
	h.raw("<div")
	h.attr("id", id)
	h.attr("class", class)
	h.attr("hx-get", src)
	h.attr("hx-trigger", trigger)
	h.attr("hx-swap", "outerHTML")
	h.raw(">")
}

func signalTrigger(kind signal.Kind) string {
	return kind.Event() + " from:body"
}

func placeholder(h *htmlWriter, class, text string) {
	h.element("p", class, text)
}

// WordsList renders the team's words, refreshed on word updates.
func WordsList(words view.Section[lingoapi.Word], needsTeam bool, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		liveRegion(h, WordsListID, "words-list", routepath.FragmentWords, signalTrigger(signal.Words))
		switch {
		case needsTeam:
			placeholder(h, "muted", T(loc, "words.needs_team"))
		case words.Unavailable():
			placeholder(h, "load-error", T(loc, "words.unavailable"))
		case !words.Available || len(words.Items) == 0:
			placeholder(h, "muted", T(loc, "words.empty"))
		default:
			h.raw("<ul class=\"word-items\">")
			for _, word := range words.Items {
				h.raw("<li><a")
				h.attr("href", routepath.ReflectionsForWord(word.ID))
				h.attr("data-word-id", itoa(word.ID))
				h.raw(">")
				h.text(word.Word)
				h.raw("</a></li>")
			}
			h.raw("</ul>")
		}
		h.raw("</div>")
	})
}

type entryRow struct {
	text    string
	created string
}

func formatCreated(raw string, parsed time.Time, ok bool) string {
	if !ok {
		return raw
	}
	return parsed.Local().Format(createdAtLayout)
}

func meaningRows(items []lingoapi.Meaning) []entryRow {
	rows := make([]entryRow, 0, len(items))
	for _, item := range items {
		created, ok := item.Created()
		rows = append(rows, entryRow{text: item.Meaning, created: formatCreated(item.CreatedAt, created, ok)})
	}
	return rows
}

func reflectionRows(items []lingoapi.Reflection) []entryRow {
	rows := make([]entryRow, 0, len(items))
	for _, item := range items {
		created, ok := item.Created()
		rows = append(rows, entryRow{text: item.Reflection, created: formatCreated(item.CreatedAt, created, ok)})
	}
	return rows
}

type entryTable struct {
	id          string
	src         string
	kind        signal.Kind
	columnKey   string
	selectKey   string
	emptyKey    string
	failedKey   string
	wordID      int64
	unavailable bool
	rows        []entryRow
}

func (t entryTable) component(loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		liveRegion(h, t.id, "entry-table", t.src, signalTrigger(t.kind))
		switch {
		case t.wordID == view.NoWord:
			placeholder(h, "muted", T(loc, t.selectKey))
		case t.unavailable:
			placeholder(h, "load-error", T(loc, t.failedKey))
		case len(t.rows) == 0:
			placeholder(h, "muted", T(loc, t.emptyKey))
		default:
			h.raw("<table><thead><tr><th>")
			h.text(T(loc, t.columnKey))
			h.raw("</th><th>")
			h.text(T(loc, "column.created_at"))
			h.raw("</th></tr></thead><tbody>")
			for _, row := range t.rows {
				h.raw("<tr><td>")
				h.text(row.text)
				h.raw("</td><td>")
				h.text(row.created)
				h.raw("</td></tr>")
			}
			h.raw("</tbody></table>")
		}
		h.raw("</div>")
	})
}

// MeaningsTable renders the meanings of wordID, refreshed on meaning updates.
func MeaningsTable(meanings view.Section[lingoapi.Meaning], wordID int64, loc Localizer) templ.Component {
	return entryTable{
		id:          MeaningsTableID,
		src:         routepath.FragmentMeaningsForWord(wordID),
		kind:        signal.Meanings,
		columnKey:   "meanings.column.text",
		selectKey:   "meanings.select_word",
		emptyKey:    "meanings.empty",
		failedKey:   "meanings.unavailable",
		wordID:      wordID,
		unavailable: meanings.Unavailable(),
		rows:        meaningRows(meanings.Items),
	}.component(loc)
}

// ReflectionsTable renders the reflections of wordID, refreshed on
// reflection updates.
func ReflectionsTable(reflections view.Section[lingoapi.Reflection], wordID int64, loc Localizer) templ.Component {
	return entryTable{
		id:          ReflectionsTableID,
		src:         routepath.FragmentReflectionsForWord(wordID),
		kind:        signal.Reflections,
		columnKey:   "reflections.column.text",
		selectKey:   "reflections.select_word",
		emptyKey:    "reflections.empty",
		failedKey:   "reflections.unavailable",
		wordID:      wordID,
		unavailable: reflections.Unavailable(),
		rows:        reflectionRows(reflections.Items),
	}.component(loc)
}

// TeamMembers renders the member card shown to team owners.
func TeamMembers(team view.Section[lingoapi.Team], hasTeam bool, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<section")
		h.attr("id", TeamMembersID)
		h.attr("class", "card team-members")
		h.attr("hx-get", routepath.FragmentTeamMembers)
		h.attr("hx-trigger", "every 60s")
		h.attr("hx-swap", "outerHTML")
		h.raw(">")
		h.element("h2", "", T(loc, "teams.members.title"))
		switch {
		case !hasTeam:
			placeholder(h, "muted", T(loc, "teams.members.needs_team"))
		case team.Unavailable() || len(team.Items) == 0:
			placeholder(h, "load-error", T(loc, "teams.members.unavailable"))
		case len(team.Items[0].Members) == 0:
			placeholder(h, "muted", T(loc, "teams.members.empty"))
		default:
			h.raw("<ul class=\"member-items\">")
			for _, member := range team.Items[0].Members {
				h.raw("<li>")
				h.element("span", "member-name", member.DisplayName)
				if member.Email != "" {
					h.element("span", "member-email muted", member.Email)
				}
				h.raw("</li>")
			}
			h.raw("</ul>")
		}
		h.raw("</section>")
	})
}
