package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Recorder appends entries to a single trace file.
type Recorder struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

const fileExt = ".jsonl.zst"

// FileName returns the trace file name for a start time.
func FileName(started time.Time) string {
	return "trace-" + started.UTC().Format("20060102-150405") + fileExt
}

// maxNameAttempts bounds the numbered names tried for traces started in the same second.
const maxNameAttempts = 100

// NewRecorder creates a trace file named after hdr.Started inside dir. When
// that name is taken a numbered suffix is added, existing traces are never
// overwritten.
func NewRecorder(dir string, hdr Header) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create trace dir")
	}
	base := FileName(hdr.Started)
	stem := strings.TrimSuffix(base, fileExt)
	for i := 0; i < maxNameAttempts; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s-%d%s", stem, i, fileExt)
		}
		r, err := Create(filepath.Join(dir, name), hdr)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return r, err
	}
	return nil, errors.Errorf("no free trace name for %s in %s", base, dir)
}

// Create writes a new trace file at path, starting with hdr. It fails if
// path already exists.
func Create(path string, hdr Header) (*Recorder, error) {
	if hdr.Version == 0 {
		hdr.Version = FormatVersion
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "create trace")
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "zstd writer")
	}
	r := &Recorder{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 64*1024),
	}
	if err := r.writeLine(hdr); err != nil {
		return nil, multierr.Combine(err, r.Close())
	}
	return r, nil
}

// Path is the file being written.
func (r *Recorder) Path() string {
	return r.path
}

// Record appends one entry.
func (r *Recorder) Record(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.w == nil {
		return errors.New("trace recorder closed")
	}
	if err := r.writeLine(e); err != nil {
		return err
	}
	r.n++
	return nil
}

// Count returns how many entries were recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

func (r *Recorder) writeLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode trace line")
	}
	if _, err := r.w.Write(b); err != nil {
		return errors.Wrap(err, "write trace")
	}
	return errors.Wrap(r.w.WriteByte('\n'), "write trace")
}

// Close flushes and closes the file. It is safe to call more than once.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.w != nil {
		err = multierr.Append(err, r.w.Flush())
		r.w = nil
	}
	if r.enc != nil {
		err = multierr.Append(err, r.enc.Close())
		r.enc = nil
	}
	if r.f != nil {
		err = multierr.Append(err, r.f.Close())
		r.f = nil
	}
	return err
}
