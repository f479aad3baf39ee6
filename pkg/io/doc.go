// Package io provides JSON import and export for dependency graphs.
//
// # Overview
//
// A resolved graph can be saved as JSON for other tools, or fed back in as
// a test-mode source (the CLI accepts a .json file wherever it accepts an
// adjacency file).
//
// # JSON Format
//
//	{
//	  "root": "busybox",
//	  "nodes": [
//	    {"id": "busybox"},
//	    {"id": "musl"},
//	    {"id": "so:libc.musl-x86_64.so.1", "unresolved": true}
//	  ],
//	  "edges": [
//	    {"from": "busybox", "to": "musl"},
//	    {"from": "busybox", "to": "so:libc.musl-x86_64.so.1"}
//	  ]
//	}
//
// Nodes appear in first-seen order; edges in key order then declaration
// order, so the adjacency is preserved exactly, duplicates included.
// "unresolved" marks a name that only occurs as a dependency and has no
// adjacency entry of its own. "root" is optional.
//
// # Import
//
// [ReadJSON] validates that every edge endpoint is a listed node and that
// node IDs are unique and non-empty. Cycles are allowed: the input is a
// dependency graph, not necessarily a DAG.
package io
