// Package quant forwards resolved run requests to the quantification engine.
//
// Invoker is the only entry point the dispatcher uses; it adds logging and
// nothing else. CommandEngine is the production engine: it runs the external
// quantification program named in the settings with arguments derived from
// the request. Local runs hold a lock on the output directory; cluster runs
// return as soon as the program has submitted its jobs.
package quant
