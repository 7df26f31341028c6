// Package manifest reads and writes the dependency manifest produced by the
// build system.
//
// # Format
//
// The manifest is line oriented. Each module occupies one entry line followed
// by zero or more tab-indented artifact path lines:
//
//	1 org.example:liba[1.0] #0[1.0]
//		/home/user/.m2/liba.klib
//	2 org.example:libb,org.example:libb-cinterop[2.0] #0[2.0] #1[1.9]
//		/home/user/.m2/libb.klib
//		/home/user/.m2/libb-cinterop.klib
//
// An entry line holds the module ordinal, its comma-separated unique names,
// its selected version in brackets, and one "#<ordinal>[<requested>]" token
// per dependent. Ordinal 0 is reserved for the module being compiled
// ([dag.Root]) and is never declared. Ordinals may be referenced before the
// entry that declares them. Empty versions are written as "[]".
//
// # Error Handling
//
// [Parse] is best effort: malformed lines (bad syntax, invalid names,
// duplicate ordinals or identities, unknown or self-referencing ordinals,
// artifact lines without an entry) are reported through a callback with
// their 1-based line number and skipped. Only I/O failures are returned as
// errors.
package manifest
