// Package service wires protocol transport to domain services.
//
// It runs the MCP server over stdio and delegates every tool call to the
// handlers in the domain package.
package service
