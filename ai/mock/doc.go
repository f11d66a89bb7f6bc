// Package mock provides test doubles for the ai package interfaces.
//
// The doubles default to deterministic behavior (hash-derived unit
// vectors, canned answers) and accept function fields for injecting
// failures, rate limits and custom responses in workflow tests.
package mock
