// Package dag provides the dependency node model shared by every stage of the
// linker diagnostics pipeline.
//
// # Overview
//
// When the linker cannot resolve a cross-module reference it explains the
// failure by rendering the dependency graph that led to it. This package holds
// the data shapes for that graph: module identities, dependency nodes and the
// node map produced by graph builders.
//
// A [Graph] is keyed by [ModuleID]. Edges are not stored as an adjacency list.
// Each [Node] records, for every module that depends on it, the version that
// dependent asked for ([Node.RequestedVersions]). The forward direction needed
// for rendering (which modules does X depend on) is derived on demand with
// [Graph.Index].
//
// # Module Identities
//
// A module may be known under several equivalent unique names, for example
// when the build system and the compiler name it differently. [NewModuleID]
// canonicalizes the names (sorted, deduplicated) so that two identities with
// the same name set compare equal with ==. The zero value [Root] stands for
// the module currently being compiled and is never a real library.
//
// # Invariants
//
// [Graph.Validate] checks that every key of every RequestedVersions map is
// either [Root] or a module present in the same graph. Builders that violate
// this return [ErrDanglingDependency]; it signals a programming error rather
// than a user-facing condition.
//
// Cycles are allowed in the data. Renderers break them by tracking which
// modules have already been expanded, never by deleting edges.
package dag
