// Package preflight provides readiness checks for the external programs and
// filesystem paths the wallpaper manager depends on.
//
// The doctor command renders RunAll and CheckSystemDeps as a report. Checks
// never fail the process on their own; callers decide what a failed check
// means.
package preflight
