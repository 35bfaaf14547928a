package codec

import (
	"bufio"
	"bytes"
	"io"
	"sync"
)

// Scanner is the legacy flat-format reader. It owns a single growable line
// buffer that is reused across lookups for the duration of a parse session;
// a mutex serializes whole lookup operations (seek, scan, extract) because
// independent initialization steps may probe the same open file
// concurrently. Returned values are copied out of the buffer before the
// lock is released, so they stay valid after the next lookup.
//
// Matching quirk inherited from the flat format: a line matches when it
// merely contains "<key>=", not when it starts with it, so a key name can
// match inside another key's name or value. Existing configurations depend
// on this ambiguity, so it is preserved, not fixed.
type Scanner struct {
	mu  sync.Mutex
	src io.ReadSeeker
	br  *bufio.Reader
	buf []byte
}

// NewScanner wraps an open legacy file. The caller keeps ownership of src
// and closes it after Close.
func NewScanner(src io.ReadSeeker) *Scanner {
	return &Scanner{src: src}
}

// Lookup scans the file from the start for key and returns its trimmed
// value. Lines starting with '#' or ';' are comments. ok is false when the
// key is absent or the file cannot be read; absence is not an error.
func (s *Scanner) Lookup(key string) (value string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.src.Seek(0, io.SeekStart); err != nil {
		return "", false
	}
	if s.br == nil {
		s.br = bufio.NewReader(s.src)
	} else {
		s.br.Reset(s.src)
	}

	needle := []byte(key + "=")
	for {
		line, err := s.readLine()
		if len(line) > 0 && line[0] != '#' && line[0] != ';' && bytes.Contains(line, needle) {
			// everything after the first '=' belongs to the value;
			// the needle match guarantees one exists
			eq := bytes.IndexByte(line, '=')
			return string(bytes.TrimSpace(line[eq+1:])), true
		}
		if err != nil {
			return "", false
		}
	}
}

// readLine fills the shared buffer with the next line, growing it as
// needed. The returned slice aliases the buffer and is only valid until the
// next call.
func (s *Scanner) readLine() ([]byte, error) {
	s.buf = s.buf[:0]
	for {
		frag, err := s.br.ReadSlice('\n')
		s.buf = append(s.buf, frag...)
		if err == bufio.ErrBufferFull {
			continue
		}
		return s.buf, err
	}
}

// Close releases the scan buffer. Callers must invoke it between
// independent parse sessions; a later Lookup re-acquires the buffer
// lazily. The underlying file is not touched.
func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = nil
	s.br = nil
}
