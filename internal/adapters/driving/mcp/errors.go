// Package mcp provides an MCP (Model Context Protocol) server adapter
// for scout. It lets AI assistants search the candidate corpus, ask for
// query suggestions and manage saved candidates over stdio or HTTP.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
