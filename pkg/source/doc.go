// Package source fetches raw package index payloads.
//
// A [Source] yields the plain-text index (the APKINDEX file itself), whatever
// form it is stored in. Two implementations exist:
//
//   - [File] reads a local path
//   - [Remote] downloads over HTTP with retry and an optional byte cache
//
// Both accept either the bare index text or a gzip-compressed tar archive
// containing it; [Extract] unwraps the archive. [New] picks the right
// implementation from a repository location string.
//
// Errors from this package are plain wrapped errors. Callers that need the
// coded form (pkg/deps) wrap them as SOURCE_UNAVAILABLE; archive problems are
// already coded MALFORMED_INPUT.
package source
