package framer

// DocFunc receives one complete, framed top-level JSON document. It is
// called synchronously from Feed.
type DocFunc func(doc []byte)

// ErrFunc receives an error reported while framing. Incremental never
// calls it; Ring calls it with ErrOverflow when a write would exceed the
// cap set by WithMaxCapacity. A caller may also route its own downstream
// errors through a function of this type (see internal/validate).
type ErrFunc func(err error)

// Incremental frames documents out of a growable linear buffer.
type Incremental struct {
	onDoc DocFunc
	onErr ErrFunc

	buf     []byte
	lastPos int
	tracker Tracker
}

// NewIncremental creates an Incremental framer. onErr may be nil.
func NewIncremental(onDoc DocFunc, onErr ErrFunc) *Incremental {
	return &Incremental{onDoc: onDoc, onErr: onErr}
}

// Feed appends b to the internal buffer and emits every complete document
// it can now find, in order. Leading whitespace between documents is
// skipped without being fed to the tracker; a document's emitted slice
// has only its own leading/trailing whitespace stripped; internal bytes,
// including whitespace inside strings, are never altered.
func (f *Incremental) Feed(b []byte) {
	f.buf = append(f.buf, b...)

	i := f.skipLeadingWhitespace(f.lastPos)
	for i < len(f.buf) {
		c := f.buf[i]
		if f.tracker.Step(c) {
			f.emit(i)
			i = f.skipLeadingWhitespace(0)
			if i >= len(f.buf) || (f.buf[i] != '{' && f.buf[i] != '[') {
				break
			}
			continue
		}
		i++
	}
	f.lastPos = i
}

// emit slices buf[:end+1], strips surrounding whitespace, invokes onDoc,
// erases the consumed prefix, and resets the tracker.
func (f *Incremental) emit(end int) {
	doc := trimASCIISpace(f.buf[:end+1])
	if f.onDoc != nil {
		f.onDoc(doc)
	}
	f.buf = f.buf[end+1:]
	f.tracker.Reset()
}

func (f *Incremental) skipLeadingWhitespace(from int) int {
	if f.tracker.Started() {
		return from
	}
	i := from
	for i < len(f.buf) && isASCIISpace(f.buf[i]) {
		i++
	}
	return i
}

// Clear drops all buffered content and resets framing state.
func (f *Incremental) Clear() {
	f.buf = f.buf[:0]
	f.lastPos = 0
	f.tracker.Reset()
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// trimASCIISpace strips only leading and trailing ASCII whitespace; it
// never touches whitespace that occurs inside the document body,
// including inside JSON strings.
func trimASCIISpace(b []byte) []byte {
	start := 0
	for start < len(b) && isASCIISpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isASCIISpace(b[end-1]) {
		end--
	}
	return b[start:end]
}
