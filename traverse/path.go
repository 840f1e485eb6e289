// SPDX-License-Identifier: MIT
// Package traverse: predecessor-chain path reconstruction.
package traverse

import "fmt"

// PathTo walks pred from dest back to its root and returns the path in
// root → dest order. dest must have been finalized by the walk that produced
// pred; roots have pred -1.
//
// Returns ErrUnreachable if dest is outside pred, or ErrCycle if the chain
// does not reach a root within len(pred) hops.
// Complexity: O(path length).
func PathTo(pred []int, dest int) ([]int, error) {
	if dest < 0 || dest >= len(pred) {
		return nil, fmt.Errorf("%w: %d", ErrUnreachable, dest)
	}
	path := []int{dest}
	for cur := pred[dest]; cur >= 0; cur = pred[cur] {
		if len(path) > len(pred) || cur >= len(pred) {
			return nil, fmt.Errorf("%w: at %d", ErrCycle, cur)
		}
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// PathOrder numbers a path by steps remaining: the last entity is 0 and the
// first is len(path)-1. The result maps ref → order.
func PathOrder(path []int) map[int]int {
	order := make(map[int]int, len(path))
	for i, ref := range path {
		order[ref] = len(path) - 1 - i
	}

	return order
}
