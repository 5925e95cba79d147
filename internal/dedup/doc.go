// Package dedup decides whether a candidate review comment is redundant
// with a comment already posted near the same location. It layers
// heuristics from cheapest and most precise to most fuzzy: exact
// template match, keyword overlap, raw text similarity, and template
// similarity, short-circuiting at the first positive match.
//
// Everything here is a pure function over in-memory text: no I/O, no
// shared state, safe to call concurrently.
package dedup
