// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
)

const (
	Root        = "/"
	Glossary    = "/glossary"
	Reflections = "/reflections"
	Teams       = "/teams"
	Health      = "/up"

	StaticPrefix = "/static/"

	AuthPrefix   = "/auth/"
	AuthSession  = "/auth/session"
	AuthLogout   = "/auth/logout"
	AuthLiveness = "/auth/liveness"

	ActionsPrefix     = "/actions/"
	ActionWords       = "/actions/words"
	ActionMeanings    = "/actions/meanings"
	ActionReflections = "/actions/reflections"
	ActionTeam        = "/actions/team"

	FragmentsPrefix     = "/fragments/"
	FragmentWords       = "/fragments/words"
	FragmentMeanings    = "/fragments/meanings"
	FragmentReflections = "/fragments/reflections"
	FragmentTeamMembers = "/fragments/team-members"
)

// ReflectionsForWord returns the reflections page with wordID selected.
func ReflectionsForWord(wordID int64) string {
	return withWord(Reflections, wordID)
}

// FragmentMeaningsForWord returns the meanings fragment for wordID.
func FragmentMeaningsForWord(wordID int64) string {
	return withWord(FragmentMeanings, wordID)
}

// FragmentReflectionsForWord returns the reflections fragment for wordID.
func FragmentReflectionsForWord(wordID int64) string {
	return withWord(FragmentReflections, wordID)
}

func withWord(path string, wordID int64) string {
	if wordID <= 0 {
		return path
	}
	query := url.Values{"word": []string{strconv.FormatInt(wordID, 10)}}
	return path + "?" + query.Encode()
}
