package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/lingo/internal/services/lingoapi"
	"github.com/louisbranch/lingo/internal/services/web/form"
	"github.com/louisbranch/lingo/internal/services/web/routepath"
	"github.com/louisbranch/lingo/internal/services/web/signal"
	"github.com/louisbranch/lingo/internal/services/web/view"
)

// Form element ids.
const (
	WordFormID       = "word-form"
	MeaningFormID    = "meaning-form"
	ReflectionFormID = "reflection-form"
	WordPickerID     = "word-picker"
)

type entryForm struct {
	id          string
	kind        signal.Kind
	action      string
	field       string
	multiline   bool
	labelKey    string
	placeholder string
	submitKey   string
	withWord    bool
}

var entryForms = map[signal.Kind]entryForm{
	signal.Words: {
		id: WordFormID, kind: signal.Words, action: routepath.ActionWords, field: "word",
		labelKey: "words.form.label", placeholder: "words.form.placeholder", submitKey: "words.form.submit",
	},
	signal.Meanings: {
		id: MeaningFormID, kind: signal.Meanings, action: routepath.ActionMeanings, field: "meaning", multiline: true,
		labelKey: "meanings.title", placeholder: "meanings.form.placeholder", submitKey: "meanings.form.submit", withWord: true,
	},
	signal.Reflections: {
		id: ReflectionFormID, kind: signal.Reflections, action: routepath.ActionReflections, field: "reflection", multiline: true,
		labelKey: "reflections.title", placeholder: "reflections.form.placeholder", submitKey: "reflections.form.submit", withWord: true,
	},
}

// FormFieldName returns the text field name posted by the kind's form.
func FormFieldName(kind signal.Kind) string {
	return entryForms[kind].field
}

// EntryForm renders the create form for kind. locked disables every
// control, as when no team or word is selected.
func EntryForm(kind signal.Kind, fields form.Fields, locked bool, loc Localizer) templ.Component {
	def, ok := entryForms[kind]
	if !ok {
		return templ.NopComponent
	}
	return component(func(_ context.Context, h *htmlWriter) {
		inputID := def.id + "-text"
		h.raw("<form")
		h.attr("id", def.id)
		h.attr("class", "entry-form")
		h.attr("method", "post")
		h.attr("action", def.action)
		h.attr("hx-post", def.action)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "find button[type='submit']")
		h.attr("data-submit-guard", string(kind))
		h.raw("><fieldset")
		h.flag("disabled", locked)
		h.raw(">")
		if def.withWord {
			h.raw("<input type=\"hidden\" name=\"word_id\"")
			h.attr("value", itoa(fields.WordID))
			h.raw(">")
		}
		h.raw("<label")
		h.attr("for", inputID)
		h.raw(">")
		h.text(T(loc, def.labelKey))
		h.raw("</label>")
		if def.multiline {
			h.raw("<textarea rows=\"3\" required")
			h.attr("id", inputID)
			h.attr("name", def.field)
			h.attr("placeholder", T(loc, def.placeholder))
			h.raw(">")
			h.text(fields.Text)
			h.raw("</textarea>")
		} else {
			h.raw("<input type=\"text\" required autocomplete=\"off\"")
			h.attr("id", inputID)
			h.attr("name", def.field)
			h.attr("value", fields.Text)
			h.attr("placeholder", T(loc, def.placeholder))
			h.raw(">")
		}
		h.raw("<button type=\"submit\" class=\"btn btn-primary\"")
		h.flag("disabled", !form.CanSubmit(kind, fields))
		h.raw(">")
		h.text(T(loc, def.submitKey))
		h.raw("</button></fieldset></form>")
	})
}

// WordPicker renders the word dropdown that navigates to the reflections
// page for the chosen word.
func WordPicker(words []lingoapi.Word, selected int64, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<form")
		h.attr("id", WordPickerID)
		h.attr("class", "word-picker")
		h.attr("method", "get")
		h.attr("action", routepath.Reflections)
		h.attr("hx-get", routepath.Reflections)
		h.attr("hx-target", "#"+MainID)
		h.attr("hx-push-url", "true")
		h.attr("hx-trigger", "change")
		h.raw("><label for=\"word-picker-select\">")
		h.text(T(loc, "words.select.label"))
		h.raw("</label><select id=\"word-picker-select\"")
		h.attr("name", view.WordParam)
		h.raw("><option value=\"\">")
		h.text(T(loc, "words.select.placeholder"))
		h.raw("</option>")
		for _, word := range words {
			h.raw("<option")
			h.attr("value", itoa(word.ID))
			h.flag("selected", word.ID == selected)
			h.raw(">")
			h.text(word.Word)
			h.raw("</option>")
		}
		h.raw("</select><noscript><button type=\"submit\" class=\"btn\">")
		h.text(T(loc, "words.select.go"))
		h.raw("</button></noscript></form>")
	})
}

// TeamSelectForm renders the button that makes teamID current.
func TeamSelectForm(teamID int64, current bool, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw("<form class=\"team-select\" method=\"post\"")
		h.attr("action", routepath.ActionTeam)
		h.raw("><input type=\"hidden\" name=\"team_id\"")
		h.attr("value", itoa(teamID))
		h.raw("><button type=\"submit\" class=\"btn btn-primary\"")
		h.flag("disabled", current)
		h.raw(">")
		if current {
			h.text(T(loc, "teams.current"))
		} else {
			h.text(T(loc, "teams.select"))
		}
		h.raw("</button></form>")
	})
}
