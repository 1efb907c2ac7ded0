package dijkstra

// nodeItem is a heap entry. seq is the insertion counter; ordering by
// (dist, seq) makes pops deterministic among equal distances.
type nodeItem struct {
	dist float64
	seq  uint64
	idx  int
}

// nodePQ is a value-typed binary min-heap of nodeItem.
// It uses the lazy decrease-key approach: improved distances push a new
// entry and stale ones are skipped on pop.
type nodePQ []nodeItem

func (pq nodePQ) less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq *nodePQ) push(it nodeItem) {
	*pq = append(*pq, it)
	h := *pq
	i := len(h) - 1
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			break
		}
		h[i], h[p] = h[p], h[i]
		i = p
	}
}

func (pq *nodePQ) pop() nodeItem {
	h := *pq
	n := len(h) - 1
	top := h[0]
	h[0] = h[n]
	h = h[:n]
	i := 0
	for {
		l := 2*i + 1
		if l >= n {
			break
		}
		m := l
		if r := l + 1; r < n && h.less(r, l) {
			m = r
		}
		if !h.less(m, i) {
			break
		}
		h[i], h[m] = h[m], h[i]
		i = m
	}
	*pq = h

	return top
}
