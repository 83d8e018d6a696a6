package shell

import (
	"bytes"
	"io"
	"sync"
)

// prefixWriter writes complete lines to a shared writer, each starting with
// prefix. A trailing partial line is held back until the next newline or
// flush, so lines of concurrent commands never interleave. mu guards both
// the shared writer and buf; background jobs of one script write from
// several goroutines.
type prefixWriter struct {
	mu     *sync.Mutex
	w      io.Writer
	prefix string
	buf    []byte
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf = append(p.buf, b...)
	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			return len(b), nil
		}
		if err := p.emit(p.buf[:i+1]); err != nil {
			return 0, err
		}
		p.buf = p.buf[i+1:]
	}
}

// flush writes a pending partial line, terminated with a newline.
func (p *prefixWriter) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buf) == 0 {
		return
	}
	_ = p.emit(append(p.buf, '\n'))
	p.buf = nil
}

// emit writes one prefixed line. The caller holds mu.
func (p *prefixWriter) emit(line []byte) error {
	if _, err := io.WriteString(p.w, p.prefix); err != nil {
		return err
	}
	_, err := p.w.Write(line)
	return err
}
