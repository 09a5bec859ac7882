package ui

// followCursor returns the list offset that keeps cursor inside a window of
// maxVisible rows, moving the previous offset as little as possible.
func followCursor(offset, cursor, total, maxVisible int) int {
	if total == 0 || maxVisible <= 0 {
		return 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	if cursor < offset {
		offset = cursor
	}
	if upper := offset + maxVisible - 1; cursor > upper {
		offset = cursor - maxVisible + 1
		if offset > maxOffset {
			offset = maxOffset
		}
	}
	return offset
}
