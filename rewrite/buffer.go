package rewrite

// splice records that the original span [start, end) was replaced by size
// bytes of new text.
type splice struct {
	start, end int
	size       int
}

// buffer holds the current text of an original span [start, end) of the
// program. Replacements are addressed with original offsets and translated
// through the splices applied so far.
type buffer struct {
	start, end int
	text       []byte
	splices    []splice
}

func newBuffer(src string, start, end int) *buffer {
	return &buffer{start: start, end: end, text: []byte(src[start:end])}
}

// offset translates the original offset pos into an index into text.
func (b *buffer) offset(pos int) (int, error) {
	if pos < b.start || pos > b.end {
		return 0, consistencyErrorf("offset %d outside span [%d,%d)", pos, b.start, b.end)
	}
	off := pos - b.start
	for _, s := range b.splices {
		switch {
		case s.end <= pos:
			off += s.size - (s.end - s.start)
		case s.start < pos:
			return 0, consistencyErrorf("offset %d falls inside replaced span [%d,%d)", pos, s.start, s.end)
		}
	}
	return off, nil
}

// slice returns the current text of the original span [start, end).
func (b *buffer) slice(start, end int) (string, error) {
	from, err := b.offset(start)
	if err != nil {
		return "", err
	}
	to, err := b.offset(end)
	if err != nil {
		return "", err
	}
	return string(b.text[from:to]), nil
}

// patch replaces the original span [start, end) with text. The span must
// lie inside the buffer and must not overlap an earlier replacement.
func (b *buffer) patch(start, end int, text string) error {
	if start < b.start || end > b.end || start > end {
		return consistencyErrorf("span [%d,%d) is not inside [%d,%d)", start, end, b.start, b.end)
	}
	for _, s := range b.splices {
		if s.start < end && start < s.end {
			return consistencyErrorf("span [%d,%d) overlaps replaced span [%d,%d)", start, end, s.start, s.end)
		}
	}
	from, err := b.offset(start)
	if err != nil {
		return err
	}
	to, err := b.offset(end)
	if err != nil {
		return err
	}
	out := make([]byte, 0, len(b.text)-(to-from)+len(text))
	out = append(out, b.text[:from]...)
	out = append(out, text...)
	out = append(out, b.text[to:]...)
	b.text = out
	b.splices = append(b.splices, splice{start: start, end: end, size: len(text)})
	return nil
}

func (b *buffer) String() string { return string(b.text) }
