package trace

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Reader iterates the entries of a trace file.
type Reader struct {
	Header Header

	f    *os.File
	dec  *zstd.Decoder
	sc   *bufio.Scanner
	line int
}

// Open reads the header of the trace at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open trace")
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "zstd reader")
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	r := &Reader{f: f, dec: dec, sc: sc}
	if !r.sc.Scan() {
		err := r.sc.Err()
		if err == nil {
			err = errors.New("empty trace")
		}
		return nil, multierr.Combine(errors.Wrap(err, "read trace header"), r.Close())
	}
	r.line++
	if err := json.Unmarshal(r.sc.Bytes(), &r.Header); err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "decode trace header"), r.Close())
	}
	if r.Header.Version != FormatVersion {
		return nil, multierr.Combine(errors.Errorf("unsupported trace version %d", r.Header.Version), r.Close())
	}
	return r, nil
}

// Next returns the next entry, or io.EOF after the last one.
func (r *Reader) Next() (Entry, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return Entry{}, errors.Wrapf(err, "line %d", r.line+1)
		}
		return Entry{}, io.EOF
	}
	r.line++
	var e Entry
	if err := json.Unmarshal(r.sc.Bytes(), &e); err != nil {
		return Entry{}, errors.Wrapf(err, "line %d", r.line)
	}
	return e, nil
}

// Close releases the file.
func (r *Reader) Close() error {
	if r.dec != nil {
		r.dec.Close()
		r.dec = nil
	}
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}
