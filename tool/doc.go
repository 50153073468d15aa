// Package tool implements the execution plane of the agent control loop: a
// closed registry of named capabilities and an executor that validates
// requested invocations against each tool's declared parameter schema before
// dispatching them.
//
// The registry is populated once at startup by explicit Register calls and is
// read-only afterwards, which keeps the set of callable capabilities auditable
// and makes it safe to share across concurrent runs. The executor is
// stateless and converts every failure mode (unknown tool, invalid
// parameters, tool error, tool panic) into a structured core.ToolResult
// rather than propagating it.
package tool
