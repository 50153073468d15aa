// Package model defines the minimal text completion interface the
// model-backed strategies are built on, plus a deterministic MockModel for
// tests and examples. Provider adapters live in the openai and anthropic
// subpackages.
package model
