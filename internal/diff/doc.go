// Package diff parses unified diffs and maps new-file line numbers to
// commentable positions. The GitHub review API only accepts inline
// comments on lines that appear on the right-hand side of the diff, so
// everything downstream filters candidate comments through this package
// first.
package diff
