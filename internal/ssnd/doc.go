// Package ssnd implements the parsers for the SSND benchmark text formats.
//
// An instance file is a sequence of named sections: a key/value header, a
// single "Arcs" line, and up to six tab-separated tables recognized by their
// verbatim header rows. ParseInstance splits the file into sections, decodes
// each table, and assembles one Instance record. ParseScenarioSet handles the
// simpler demand-scenario file family.
//
// Parsing is purely structural: field counts, literal syntax, and required
// header keys are enforced, cross-section consistency is not. Callers that
// want the structural invariants checked can run Instance.Validate.
package ssnd
