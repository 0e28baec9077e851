// Package docs ingests DocBook reference pages and turns them into the
// Documentation records that the bindings emitter embeds as comments.
//
// A Context is created once per generation run (one profile). It scans the
// primary and fallback documentation directories into a FileIndex, then
// answers Process calls: resolve a file for the Function, normalize the raw
// markup (entities, namespaces, DOCTYPE, MathML), parse it, and extract the
// summary and parameter descriptions. Every result, including the empty
// placeholder for functions without documentation, is cached for the rest of
// the run.
//
// A Context is not safe for concurrent use. Parameter order in extracted
// records is document order and is not reconciled with the declared
// parameter order of the Function.
package docs
