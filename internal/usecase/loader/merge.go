package loader

// Merge склеивает фрагменты строго в порядке списка в один непрерывный буфер.
// Фрагмент i лежит со смещения, равного сумме длин предыдущих.
func Merge(fragments [][]byte) []byte {
	var total int
	for _, f := range fragments {
		total += len(f)
	}

	merged := make([]byte, total)
	off := 0
	for _, f := range fragments {
		off += copy(merged[off:], f)
	}

	return merged
}
