// Package services defines shared utilities consumed by the cache reconciler,
// the selection workflow, and the external tool adapters.
//
// Key responsibilities:
//   - Context helpers that stamp reconciliation pass IDs and command names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     into the categories the CLI maps to exit codes.
//   - ToolError, which separates "binary not found" from "process failed" for
//     every external program the adapters shell out to.
//
// Use these helpers when wiring new adapters so operational behaviour (error
// shape, exit codes, observability) stays uniform across commands.
package services
