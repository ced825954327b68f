// Package suffixarray builds a full suffix array over a byte slice using
// prefix doubling (O(n log^2 n) comparisons, sorted with the standard
// library's sort.Slice). No suffix-array library appears anywhere in the
// retrieved corpus, so this is the one package in the module built directly
// on the standard library rather than adapted from a third-party dependency
// (see DESIGN.md).
package suffixarray

import "sort"

// Build returns the suffix array of data with an implicit sentinel
// character appended that compares smaller than every real byte value —
// the same trick original_source/src/diff.rs gets from libsais16 by
// shifting every byte up by one and appending a literal 0. The result has
// length len(data)+1; Build(data)[0] is always len(data), the position of
// the empty (sentinel) suffix.
func Build(data []byte) []int32 {
	n := len(data)
	sa := make([]int32, n+1)
	rank := make([]int, n+1)
	tmp := make([]int, n+1)

	for i := 0; i < n; i++ {
		rank[i] = int(data[i]) + 1
	}
	rank[n] = 0
	for i := range sa {
		sa[i] = int32(i)
	}

	neighborRank := func(i int32, k int) int {
		j := int(i) + k
		if j > n {
			return -1
		}
		return rank[j]
	}

	for k := 1; ; k *= 2 {
		less := func(i, j int) bool {
			a, b := sa[i], sa[j]
			if rank[a] != rank[b] {
				return rank[a] < rank[b]
			}
			return neighborRank(a, k) < neighborRank(b, k)
		}
		sort.Slice(sa, less)

		tmp[sa[0]] = 0
		for i := 1; i <= n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(i-1, i) {
				tmp[sa[i]]++
			}
		}
		rank, tmp = tmp, rank

		if rank[sa[n]] == n || k > n {
			break
		}
	}

	return sa
}
