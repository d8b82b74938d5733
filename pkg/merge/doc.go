// Package merge provides the ordered merge and deduplication primitives shared
// by the profile resolver and the permission combinator.
//
// Key functionality:
//   - [Dedup]: order-preserving deduplication of string lists
//   - [Union]: concatenation of lists followed by deduplication
//   - [Shallow]: shallow map spread where the later map wins per key
package merge
