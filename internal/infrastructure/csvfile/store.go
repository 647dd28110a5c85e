// Package csvfile persists tables as CSV files inside one data directory.
package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
	"github.com/valyala/bytebufferpool"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNotFound marks reads of a table file that does not exist.
var ErrNotFound = table.ErrNotFound

type Options struct {
	// BOM prefixes written files with a UTF-8 byte order mark so that
	// spreadsheet tools pick the right encoding.
	BOM bool
}

type Store struct {
	dir string
	bom bool
}

func NewStore(dir string, opts Options) *Store {
	return &Store{dir: dir, bom: opts.BOM}
}

func (s *Store) Dir() string {
	return s.dir
}

// Path resolves name inside the store directory; absolute names are kept.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Exists reports whether name is present and non-empty.
func (s *Store) Exists(_ context.Context, name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Size() > 0
}

// Read loads a whole table. The first record is the header.
func (s *Store) Read(ctx context.Context, name string) (*table.Table, error) {
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, crerr.Mark(crerr.Wrapf(err, "read %s", name), ErrNotFound)
		}
		return nil, crerr.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	t, err := Decode(tableName(name), f)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", name)
	}
	return t, nil
}

// Write replaces name with t.
func (s *Store) Write(_ context.Context, name string, t *table.Table) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if s.bom {
		_, _ = buf.Write(utf8BOM)
	}
	if err := encode(buf, t.Columns, t.Rows); err != nil {
		return crerr.Wrapf(err, "encode %s", name)
	}
	return s.replace(name, buf.B)
}

// Append adds t's rows to name. An existing file keeps its header and the
// rows are aligned to it; a missing or empty file is written whole. It
// returns the header now on disk.
func (s *Store) Append(ctx context.Context, name string, t *table.Table) ([]string, error) {
	if !s.Exists(ctx, name) {
		if err := s.Write(ctx, name, t); err != nil {
			return nil, err
		}
		return append([]string(nil), t.Columns...), nil
	}

	path := s.Path(name)
	schema, err := readHeader(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read header of %s", name)
	}
	aligned := t.Select(schema...)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := encode(buf, nil, aligned.Rows); err != nil {
		return nil, crerr.Wrapf(err, "encode %s", name)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %s for append", path)
	}
	if _, err := f.Write(buf.B); err != nil {
		_ = f.Close()
		return nil, crerr.Wrapf(err, "append %s", path)
	}
	if err := f.Close(); err != nil {
		return nil, crerr.Wrapf(err, "close %s", path)
	}
	return schema, nil
}

func (s *Store) replace(name string, data []byte) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create dir for %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return crerr.Wrapf(err, "create temp for %s", path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return crerr.Wrapf(err, "rename into %s", path)
	}
	return nil
}

// Decode reads CSV from r into a table named name. A leading BOM is
// dropped and short rows are padded.
func Decode(name string, r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return table.New(name), nil
	}
	if err != nil {
		return nil, crerr.Wrap(err, "read header")
	}

	t := table.New(name, header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read row %d", t.Len()+1)
		}
		t.Append(record...)
	}
	return t, nil
}

func encode(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(skipBOM(f))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr.Read()
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func tableName(name string) string {
	base := filepath.Base(name)
	return base[:len(base)-len(filepath.Ext(base))]
}
