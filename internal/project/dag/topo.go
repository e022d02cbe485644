package dag

import (
	"fmt"

	"fortio.org/safecast"
)

// Topo is the scheduling result. Order always contains every document
// exactly once; Cyclic marks a degraded schedule where the trailing
// documents could not be ordered and were appended in input order.
type Topo struct {
	Order  []DocID
	Cyclic bool
	Cycles []DocID // unordered documents: cycle members and their consumers
}

// Schedule runs Kahn's algorithm with deterministic tie-breaking:
// ready documents are processed in original input order, never in map
// iteration order. On a cycle the remainder is appended in input order
// so the schedule stays total; resolution inside the cycle is not
// guaranteed.
func Schedule(g Graph) *Topo {
	n := len(g.Indeg)
	indeg := make([]int, n)
	copy(indeg, g.Indeg)

	topo := &Topo{Order: make([]DocID, 0, n)}

	queue := make([]DocID, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			id, err := safecast.Conv[DocID](i)
			if err != nil {
				panic(fmt.Errorf("document id overflow: %w", err))
			}
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]
		topo.Order = append(topo.Order, head)

		// Consumers are stored ascending, so freed documents join the
		// queue in input order.
		for _, consumer := range g.Consumers[head] {
			indeg[consumer]--
			if indeg[consumer] == 0 {
				queue = append(queue, consumer)
			}
		}
	}

	if len(topo.Order) != n {
		topo.Cyclic = true
		for i := range n {
			if indeg[i] > 0 {
				id, err := safecast.Conv[DocID](i)
				if err != nil {
					panic(fmt.Errorf("document id overflow: %w", err))
				}
				topo.Cycles = append(topo.Cycles, id)
				topo.Order = append(topo.Order, id)
			}
		}
	}

	return topo
}
