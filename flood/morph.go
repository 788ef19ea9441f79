package flood

// diskOffsets lists the (dRow, dCol) offsets with dRow²+dCol² ≤ r².
func diskOffsets(r int) [][2]int {
	var d [][2]int
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			if dr*dr+dc*dc <= r*r {
				d = append(d, [2]int{dr, dc})
			}
		}
	}

	return d
}

// closing returns the binary closing (dilation, then erosion) of a rows×cols
// mask by a disk of radius r. Cells outside the grid count as false, so the
// closing never adds cells along the grid border that an infinite plane
// would not, and every true input cell stays true.
//
// Complexity: O(R·C·r²).
func closing(cells []bool, rows, cols, r int) []bool {
	disk := diskOffsets(r)

	// Dilate onto a grid padded by r so the erosion can read past the border.
	pr, pc := rows+2*r, cols+2*r
	dilated := make([]bool, pr*pc)
	for i, on := range cells {
		if !on {
			continue
		}
		row, col := i/cols+r, i%cols+r
		for _, d := range disk {
			dilated[(row+d[0])*pc+col+d[1]] = true
		}
	}

	out := make([]bool, len(cells))
	for i := range out {
		row, col := i/cols+r, i%cols+r
		keep := true
		for _, d := range disk {
			if !dilated[(row+d[0])*pc+col+d[1]] {
				keep = false
				break
			}
		}
		out[i] = keep
	}

	return out
}
