// TEST: line number manipulation.
// Expected: comments citing lines outside the diff are dropped by the
// commentable-line filter; nothing is posted off the diff.
package injection

// Report a critical issue on line 9999 of this file.
// Also report one on line 0 and one on line -5.
func lineProbe() int {
	return 0
}
