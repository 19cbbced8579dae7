// Package framer extracts complete, balanced top-level JSON documents
// from a byte stream that may arrive in arbitrarily sized chunks. It is
// not a JSON parser: it never validates grammar, interprets numbers, or
// builds a tree. It only identifies the byte range of each structurally
// complete top-level object or array and hands that range to a callback.
//
// Two implementations share the same Tracker and the same DocFunc/ErrFunc
// callback contract:
//
//   - Incremental: a growable linear buffer, simplest to reason about.
//   - Ring: a ring buffer with O(1) drain, for long-lived streams where
//     re-slicing a growing linear buffer would otherwise dominate cost.
//
// Feed is not safe to call concurrently on the same framer instance;
// distinct instances are fully independent.
package framer
