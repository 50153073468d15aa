// Package strategy defines the pluggable decision capabilities the
// controller calls out to: planning (goal -> ordered tool steps), evaluation
// (are the accumulated results sufficient?) and response generation.
//
// Deterministic implementations (fixed plans, keyword rules, result-based
// verdicts, templated responses) keep the state machine independently
// testable; model-backed implementations delegate the same decisions to a
// model.Model completion.
package strategy
