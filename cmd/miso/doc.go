// Package main hosts the miso CLI entrypoint.
//
// A single cobra root command validates the option set, loads settings once,
// and dispatches to quantification (--run) and/or annotation inspection
// (--view-gene). The settings subcommands scaffold and print the settings
// file. Heavy lifting lives in the internal packages; this package only wires
// flags to them.
package main
