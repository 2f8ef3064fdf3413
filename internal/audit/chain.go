// =============================================================================
// internal/audit/chain.go - CNAME chain resolution
// =============================================================================
package audit

import "context"

// ResolveChain walks CNAME indirection from start until it reaches a
// terminal state: an A record (live-checked through the oracle), a name with
// no local record (live-checked the same way), a record type the engine does
// not follow, or a loop. The visited set grows on every non-terminal step,
// so the walk takes at most index.Len()+1 iterations on any input, cyclic
// zone data included.
func ResolveChain(ctx context.Context, start string, index *Index, oracle Oracle) Outcome {
	visited := make(map[string]struct{})
	current := Normalize(start)

	for {
		if _, seen := visited[current]; seen {
			return Outcome{FinalName: current, Status: StatusLoopDetected}
		}
		visited[current] = struct{}{}

		rec, ok := index.Lookup(current)
		if !ok {
			// Not ours. The name may still resolve out in the world, which
			// is exactly what distinguishes a live external target from a
			// dangling one.
			if addrs := oracle.LookupA(ctx, current); len(addrs) > 0 {
				return Outcome{FinalName: current, Status: StatusResolvedExternally, Addrs: addrs}
			}
			return Outcome{FinalName: current, Status: StatusNoExternalMatch}
		}

		switch rec.Type {
		case RecordTypeA:
			if addrs := oracle.LookupA(ctx, current); len(addrs) > 0 {
				return Outcome{FinalName: current, Status: StatusExternallyResolvableA, Addrs: addrs}
			}
			return Outcome{FinalName: current, Status: StatusANotResolving}
		case RecordTypeCNAME:
			if len(rec.Values) == 0 {
				return Outcome{FinalName: current, Status: StatusMalformed}
			}
			current = Normalize(rec.Values[0])
		default:
			// The chain stops at the first record the engine cannot follow,
			// even mid-chain.
			return Outcome{FinalName: current, Status: UnsupportedStatus(rec.Type)}
		}
	}
}
