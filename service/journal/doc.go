// Package journal records every completed party run. The default store is
// the generic in-memory DAO; the records feed the final report and let tests
// verify the conservation property without poking at worker internals.
package journal
