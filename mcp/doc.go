// Package mcp contains the protocol data types and constants shared across
// transports and the dispatch engine. It mirrors the wire representation of
// the Model Context Protocol surface this server speaks while keeping the
// types Go-friendly (exported structs with json tags, string constants for
// method names and enumerations).
//
// The package is intentionally free of transport logic: the stdio and HTTP
// transports import these types but implement their own framing. Higher-level
// packages (tools, catalog, completion) construct responses using these
// concrete types and hand them to the engine for JSON-RPC serialization.
//
// # Method Names
//
// JSON-RPC method names are enumerated as Method constants (e.g.
// ToolsListMethod). Using the constants avoids typographical mistakes and
// gives a single point of truth if the protocol surface evolves.
//
// # Pagination
//
// Every list operation uses cursor-based pagination. PaginatedRequest and
// PaginatedResult are embedded in request / result envelopes; the cursor
// package owns token encoding and page slicing.
package mcp
