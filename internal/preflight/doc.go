// Package preflight provides readiness checks for the external programs and
// filesystem paths miso depends on.
//
// The CLI "miso check" command runs RunAll and renders the results. The
// checks never modify anything on disk.
package preflight
