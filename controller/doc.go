// Package controller implements the deterministic state machine that drives a
// run: ENTRY -> PLAN -> EXECUTE_TOOL -> EVALUATE -> REFLECT -> GENERATE ->
// END, with REFLECT routing back to EXECUTE_TOOL for a bounded number of
// retries.
//
// All decision making is delegated to injected strategy implementations, so
// the transition and retry logic stays independently testable with
// deterministic stubs. Tool failures never abort a run: they flow through the
// evaluate/reflect cycle as data, and the retry loop is the recovery
// mechanism.
package controller
