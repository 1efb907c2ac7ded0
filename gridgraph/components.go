package gridgraph

// ConnectedComponents finds all contiguous regions of passable cells
// according to the graph connectivity.
// Components are ordered by their smallest cell index and each lists its
// cell indices in BFS discovery order.
//
// Time:   O(R·C·d), where d = 4 or 8.
// Memory: O(R·C) for visited flags and output.
func (gg *GridGraph) ConnectedComponents() [][]int {
	return gg.label()
}

// UnseededComponents counts the components that contain no cell with
// seeds[i] set. Such regions are unreachable from every seed.
// seeds must have one entry per cell.
func (gg *GridGraph) UnseededComponents(seeds []bool) int {
	comps := gg.label()
	n := 0
	for _, comp := range comps {
		seeded := false
		for _, i := range comp {
			if seeds[i] {
				seeded = true
				break
			}
		}
		if !seeded {
			n++
		}
	}
	return n
}

func (gg *GridGraph) label() [][]int {
	total := gg.grid.Cells()
	visited := make([]bool, total)
	var comps [][]int

	for i0 := 0; i0 < total; i0++ {
		// 1) Each unvisited passable cell opens a new component.
		if !gg.passable[i0] || visited[i0] {
			continue
		}
		// 2) BFS to collect component
		queue := []int{i0}
		visited[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			gg.Neighbors(queue[qi], func(j int, _ float64) bool {
				if !visited[j] {
					visited[j] = true
					queue = append(queue, j)
				}
				return true
			})
		}
		// 3) Queue order is the discovery order.
		comps = append(comps, queue)
	}
	return comps
}
