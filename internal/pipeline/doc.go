// Package pipeline is the concurrency core of the service. The Client
// processes a single chunk: cache lookup, then a remote generation call
// under a fixed-size permit pool, with failures recovered as sentinel
// outcomes. The Orchestrator fans a document's chunks out to the Client
// concurrently and reassembles results in original chunk order.
package pipeline
