// Package options turns raw command-line values into validated requests.
//
// Resolve enforces the cross-option rules (cluster-only flags, required run
// parameters, the paired-end/overhang override), applies defaults, expands
// every path to absolute form, and returns a Plan naming the modes to run.
// Nothing is executed here: a failing option set never reaches a collaborator.
package options
