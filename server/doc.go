// Package server provides the tool registry consumed by the protocol engine.
//
// A Server holds an immutable identity (name, version) and a catalog of tools
// registered at startup through the fluent ToolBuilder API. The catalog is
// read-only after construction and is reported in registration order.
//
// The Registry interface decouples the request dispatcher from this concrete
// implementation, so the protocol engine can be exercised against a mock
// registry in tests.
package server
