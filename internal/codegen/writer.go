package codegen

// Writer accumulates generated text and knows how to close a statement.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 1024)}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// Terminate closes the statement written since mark. Text that already
// ends a line is left alone, a trailing ';' only gets the newline.
func (w *Writer) Terminate(mark int) {
	if len(w.buf) == mark {
		return
	}
	switch w.buf[len(w.buf)-1] {
	case '\n':
	case ';':
		w.buf = append(w.buf, '\n')
	default:
		w.buf = append(w.buf, ";\n"...)
	}
}
