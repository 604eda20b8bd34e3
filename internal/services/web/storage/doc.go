// Package storage declares persistence for browser session state.
//
// Only the identity display name and team context are stored. Access
// tokens stay with the browser and are never written.
package storage
