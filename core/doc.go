// Package core defines the shared data model of the agent control loop: the
// per-run AgentContext threaded through the controller states, the
// request/result envelopes exchanged with the tool executor, and the
// evaluation verdict type.
//
// Types in this package carry no behavior beyond construction and formatting
// helpers; the controller package owns all mutation of an AgentContext during
// a run, and the tool package owns construction of ToolResult values.
package core
