// Package index parses line-oriented package indexes into records.
//
// The format is the one used by APKINDEX files: records are blocks of
// single-letter-prefixed lines, each block introduced by a name line.
//
//	P:busybox
//	V:1.36.1-r15
//	D:so:libc.musl-x86_64.so.1
//
//	P:musl
//	V:1.2.4-r2
//
// Only the name (P:), version (V:) and dependency (D:) fields are used; all
// other lines are ignored. Parsing is pure and idempotent: the same blob
// always yields the same records, in file order.
package index
