package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Chrome
	message.SetString(lang, "app.name", "Lingo")
	message.SetString(lang, "app.title", "%s | Lingo")
	message.SetString(lang, "nav.dashboard", "Dashboard")
	message.SetString(lang, "nav.glossary", "Words")
	message.SetString(lang, "nav.reflections", "Meanings and Reflections")
	message.SetString(lang, "nav.teams", "Teams")
	message.SetString(lang, "header.current_team", "Current Team: %s")
	message.SetString(lang, "header.sign_in", "Sign in")
	message.SetString(lang, "header.sign_out", "Sign out")
	message.SetString(lang, "header.display_name", "Display name")
	message.SetString(lang, "header.token", "Access token")
	message.SetString(lang, "notice.dismiss", "Dismiss")

	// Page titles
	message.SetString(lang, "page.dashboard.title", "Dashboard")
	message.SetString(lang, "page.glossary.title", "Words")
	message.SetString(lang, "page.reflections.title", "Meanings and Reflections")
	message.SetString(lang, "page.teams.title", "Teams")
	message.SetString(lang, "page.unknown.title", "Page not found")
	message.SetString(lang, "page.sign_in_required", "Please sign in to see this page.")

	// Dashboard
	message.SetString(lang, "dashboard.welcome", "Sign in to start building your team's glossary.")
	message.SetString(lang, "dashboard.profile.title", "User Profile")
	message.SetString(lang, "dashboard.profile.name", "Name: %s")
	message.SetString(lang, "dashboard.profile.email", "Email: %s")
	message.SetString(lang, "dashboard.profile.unavailable", "Failed to load your profile, please refresh your browser.")
	message.SetString(lang, "dashboard.words.title", "Words")
	message.SetString(lang, "dashboard.reflections.title", "Meanings and Reflections")

	// Words
	message.SetString(lang, "words.empty", "No words found")
	message.SetString(lang, "words.unavailable", "Failed to load words, please refresh your browser.")
	message.SetString(lang, "words.needs_team", "Select a team to see its words.")
	message.SetString(lang, "words.form.label", "New word")
	message.SetString(lang, "words.form.placeholder", "Enter a word")
	message.SetString(lang, "words.form.submit", "Submit Word")
	message.SetString(lang, "words.select.label", "Word")
	message.SetString(lang, "words.select.placeholder", "Select a word")
	message.SetString(lang, "words.select.go", "Show")

	// Meanings and reflections
	message.SetString(lang, "meanings.title", "Meanings")
	message.SetString(lang, "meanings.column.text", "Meaning")
	message.SetString(lang, "meanings.empty", "No meanings found for the selected word")
	message.SetString(lang, "meanings.select_word", "Select a word to see meanings")
	message.SetString(lang, "meanings.unavailable", "Failed to load meanings, please refresh your browser.")
	message.SetString(lang, "meanings.form.placeholder", "Enter a meaning")
	message.SetString(lang, "meanings.form.submit", "Submit Meaning")
	message.SetString(lang, "reflections.title", "Reflections")
	message.SetString(lang, "reflections.column.text", "Reflection")
	message.SetString(lang, "reflections.empty", "No reflections found for the selected word")
	message.SetString(lang, "reflections.select_word", "Select a word to see reflections")
	message.SetString(lang, "reflections.unavailable", "Failed to load reflections, please refresh your browser.")
	message.SetString(lang, "reflections.form.placeholder", "Enter a reflection")
	message.SetString(lang, "reflections.form.submit", "Submit Reflection")
	message.SetString(lang, "column.created_at", "Created At")

	// Teams
	message.SetString(lang, "teams.empty", "You are not a member of any team yet.")
	message.SetString(lang, "teams.unavailable", "Failed to load teams, please refresh your browser.")
	message.SetString(lang, "teams.select", "Select")
	message.SetString(lang, "teams.current", "Current")
	message.SetString(lang, "teams.owner", "Owner")
	message.SetString(lang, "teams.members.title", "Team Members")
	message.SetString(lang, "teams.members.empty", "Names of team members will be here")
	message.SetString(lang, "teams.members.unavailable", "Failed to load team members, please refresh your browser.")
	message.SetString(lang, "teams.members.needs_team", "Select a team to see its members.")

	// Notices
	message.SetString(lang, "notice.word.missing", "Please enter a word before submitting.")
	message.SetString(lang, "notice.meaning.missing", "Please select a word and enter a meaning before submitting.")
	message.SetString(lang, "notice.reflection.missing", "Please select a word and enter a reflection before submitting.")
	message.SetString(lang, "notice.word.success", "Word submitted successfully!")
	message.SetString(lang, "notice.meaning.success", "Meaning submitted successfully!")
	message.SetString(lang, "notice.reflection.success", "Reflection submitted successfully!")
	message.SetString(lang, "notice.word.failed", "Failed to submit word. Error: %s")
	message.SetString(lang, "notice.meaning.failed", "Failed to submit meaning. Error: %s")
	message.SetString(lang, "notice.reflection.failed", "Failed to submit reflection. Error: %s")
	message.SetString(lang, "notice.word.needs_team", "Please select a team before adding words.")
	message.SetString(lang, "notice.submit.in_flight", "A submission is already in progress.")
	message.SetString(lang, "notice.submit.signed_out", "Please sign in first.")
	message.SetString(lang, "notice.invalid_word_param", "The selected word is not valid; showing all words instead.")
	message.SetString(lang, "notice.login.missing", "Please provide a display name and an access token.")
	message.SetString(lang, "notice.login.expired", "That access token has expired. Please sign in again.")
	message.SetString(lang, "notice.session.expired", "Your session has expired. Please sign in again.")
	message.SetString(lang, "notice.team.selected", "Current team is now %s.")
	message.SetString(lang, "notice.team.select_failed", "Failed to update team for %s. Error: %s")
	message.SetString(lang, "notice.team.unavailable", "Failed to fetch team for %s.")
	message.SetString(lang, "notice.team.invalid", "Please choose a valid team.")
	message.SetString(lang, "notice.signed_out", "You have been signed out.")

	// Errors
	message.SetString(lang, "error.not_found.title", "Page not found")
	message.SetString(lang, "error.not_found.body", "Failed to load page: nothing lives at this address.")
	message.SetString(lang, "error.server.title", "Something went wrong")
	message.SetString(lang, "error.server.body", "Failed to load page, please refresh your browser.")
	message.SetString(lang, "error.back_home", "Back to dashboard")
}
