// Package harness runs scripted demo scenarios end to end.
//
// A scenario is a YAML file describing a sequence of evaluations with
// expected outcomes, plus assertions over the resulting trace. Each
// scenario runs against a fresh in-memory session store, with a fixed
// session token and a deterministic sequence clock, so the same
// scenario always produces the same trace. Traces serialize through
// canonical JSON and compare against golden files with goldie.
package harness
