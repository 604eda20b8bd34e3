// Package web serves the Lingo browser frontend.
//
// Pages, forms and live fragments are rendered on the server and wired
// together with htmx. Each browser is bound to a persisted session that
// remembers its identity and current team; the Lingo API holds everything
// else.
package web
