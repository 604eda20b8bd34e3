// Package domain defines the Lingo MCP tools: their inputs, results and the
// handlers that call the Lingo API on behalf of one configured user.
package domain
