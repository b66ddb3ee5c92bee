// Package dochive discovers markdown documentation scattered across a
// host application's installed sources (the primary theme-equivalent and
// its extensions), parses it into structured documents, organizes it into
// a browsable category tree, caches the result until the underlying files
// change, and answers free-text queries with either deterministic keyword
// scoring or an LLM-backed answer path with citation mapping.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// gemini/, goldmark/), plus the domain-named index/ and search/ packages
// holding the pipeline services.
package dochive
