// Package revlog provides the high-level client API for revlog: named
// document collections ("entries") versioned through an ordered chain of
// immutable revisions, with on-demand snapshot materialization and
// free-standing comments.
//
// The client wraps the entry registry, the snapshot materializer, and the
// comment log over a pluggable store backend. A surrounding transport
// layer (HTTP handlers, RPC, a CLI) supplies decoded input and the
// authenticated author, and maps the typed failures in pkg/errclass to its
// own presentation.
package revlog
