// Package group turns one browser tab into a grouping decision and applies
// it.
//
// The Engine builds a prompt from the sanitized tab title and URL plus the
// window's existing groups, asks the configured provider for a minimal JSON
// object, and parses the answer defensively: the first brace-delimited JSON
// object found anywhere in the response is used, an unparseable response
// degrades to the default {Misc, grey} decision, and an off-palette color is
// replaced. A bad model response never fails tab processing.
//
// The Processor drives the Engine against a Browser: a per-tab in-flight
// guard prevents duplicate concurrent processing, every provider call runs
// under a timeout, and batch runs are strictly sequential with an inter-item
// delay so rate-limited APIs are not hammered. Provider errors mean "skip
// this tab, leave it ungrouped" — logged, never fatal.
package group
