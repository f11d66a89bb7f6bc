// Package query answers questions against previously ingested chunks.
//
// The Workflow runs a fixed stage sequence: embed the query text,
// retrieve the nearest chunks from the store, format them into an
// attributed context block, and generate a grounded answer. Every run
// returns a well-formed result; failures are carried in the result
// rather than propagated, and an empty retrieval yields a fixed
// insufficient-context answer instead of a generator call.
package query
