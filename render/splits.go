package render

// ComputeSplits divides h rows into p contiguous bands and returns the first
// row of each band. The first h%p bands get one extra row, so band sizes
// differ by at most one. Band i covers [splits[i], splits[i+1]) and the last
// one ends at h. p below 1 is treated as 1.
func ComputeSplits(h, p int) []int {
	if p < 1 {
		p = 1
	}
	base, extra := h/p, h%p

	splits := make([]int, p)
	row := 0
	for i := range splits {
		splits[i] = row
		row += base
		if i < extra {
			row++
		}
	}
	return splits
}

// bandEnd returns the exclusive end row of band i.
func bandEnd(splits []int, i, h int) int {
	if i+1 < len(splits) {
		return splits[i+1]
	}
	return h
}
