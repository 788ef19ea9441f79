package gridgraph

// ConnectedComponents finds all contiguous regions of true cells in a
// rows×cols row-major grid, according to conn connectivity.
// Returns a slice of components; each component is a slice of cell indices in
// breadth-first order from its first cell in row-major order.
//
// Time:   O(R·C·d), where d = 4 or 8.
// Memory: O(R·C) for visited flags and output.
func ConnectedComponents(rows, cols int, cells []bool, conn Connectivity) ([][]int, error) {
	if len(cells) != rows*cols {
		return nil, ErrCellCount
	}
	offsets := offsets4
	if conn == Conn8 {
		offsets = offsets8
	}
	inBounds := func(r, c int) bool { return r >= 0 && r < rows && c >= 0 && c < cols }

	seen := make([]bool, len(cells))
	var comps [][]int
	for i0, on := range cells {
		if !on || seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ur, uc := u/cols, u%cols
			for _, d := range offsets {
				vr, vc := ur+d[0], uc+d[1]
				if !inBounds(vr, vc) {
					continue
				}
				vi := vr*cols + vc
				if cells[vi] && !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps, nil
}
