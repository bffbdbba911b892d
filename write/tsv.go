package write

// TSV appends the Cartesian product of cols (one value list per selected
// attribute) as tab-separated rows, each terminated by delim. With zero
// columns nothing is appended; a column with no values makes the whole
// product empty.
func TSV(dst []byte, cols [][][]byte, delim byte) []byte {
	if len(cols) == 0 {
		return dst
	}
	for _, c := range cols {
		if len(c) == 0 {
			return dst
		}
	}

	idx := make([]int, len(cols))
	for {
		for i, c := range cols {
			if i > 0 {
				dst = append(dst, '\t')
			}
			dst = append(dst, c[idx[i]]...)
		}
		dst = append(dst, delim)

		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(cols[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return dst
		}
	}
}
