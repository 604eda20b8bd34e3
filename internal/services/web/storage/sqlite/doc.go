// Package sqlite provides the browser session store backed by SQLite.
package sqlite
