package lineedit

// InsertText splices str into text at pos and returns the new text with the
// cursor placed after the inserted clusters. Invalid UTF-8 in str is dropped.
func InsertText(text string, pos int, str string) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	str = sanitize(str)
	if str == "" {
		return text, pos
	}
	at := ByteOffset(text, pos)
	out := text[:at] + str + text[at:]
	// The inserted text may merge with its neighbours, so the cursor is
	// derived from bytes and lands after whichever cluster holds the last
	// inserted byte.
	end := at + len(str)
	cursor := GraphemeOffset(out, end)
	if ByteOffset(out, cursor) < end {
		cursor++
	}
	return out, cursor
}

// DeleteCharBefore removes the cluster before pos. At offset 0 it is a no-op.
func DeleteCharBefore(text string, pos int) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	if pos == 0 {
		return text, 0
	}
	return deleteRange(text, pos-1, pos)
}

// DeleteCharAfter removes the cluster at pos. At the end of text it is a no-op.
// The cursor does not move.
func DeleteCharAfter(text string, pos int) (string, int) {
	n := GraphemeCount(text)
	pos = Clamp(pos, 0, n)
	if pos == n {
		return text, pos
	}
	return deleteRange(text, pos, pos+1)
}

// DeleteWordBefore removes everything between PrevWord(pos) and pos.
func DeleteWordBefore(text string, pos int) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	start := PrevWord(text, pos)
	return deleteRange(text, start, pos)
}

// DeleteWordAfter removes everything between pos and NextWord(pos).
func DeleteWordAfter(text string, pos int) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	end := NextWord(text, pos)
	return deleteRange(text, pos, end)
}

// KillWordBefore removes the whitespace-delimited field before pos, so
// "cd ../src|" becomes "cd |".
func KillWordBefore(text string, pos int) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	return deleteRange(text, PrevSpace(text, pos), pos)
}

// KillToLineStart removes the current line up to pos and moves the cursor to
// where the line now starts.
func KillToLineStart(text string, pos int) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	start := LineStart(text, pos)
	return deleteRange(text, start, pos)
}

// KillToLineEnd removes the current line from pos to its end, leaving the
// newline in place. The cursor does not move.
func KillToLineEnd(text string, pos int) (string, int) {
	pos = Clamp(pos, 0, GraphemeCount(text))
	end := LineEnd(text, pos)
	return deleteRange(text, pos, end)
}

// deleteRange removes clusters [start, end) and returns the cursor at start.
// The cursor is recomputed from bytes in case the clusters on either side of
// the gap merge into one.
func deleteRange(text string, start, end int) (string, int) {
	if end <= start {
		return text, start
	}
	from := ByteOffset(text, start)
	out := text[:from] + text[ByteOffset(text, end):]
	return out, GraphemeOffset(out, from)
}
