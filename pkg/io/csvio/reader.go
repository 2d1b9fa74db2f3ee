package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records
	// KeepText forces a column to KindString regardless of what inference
	// finds, so identifiers and postal codes keep their leading zeros.
	KeepText func(header string) bool
}

// recordSource is the part of *csv.Reader the Reader needs; spreadsheet
// rows are fed through the same path.
type recordSource interface {
	Read() ([]string, error)
}

type Reader struct {
	r   recordSource
	opt ReaderOptions
	buf [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Open opens a CSV file (gzip detected transparently, "-" for stdin).
// The caller closes the returned io.Closer.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	rr := csv.NewReader(rc)
	rr.FieldsPerRecord = -1
	if opt.Delimiter == 0 && path != "-" && path != "" {
		if d, lazy, err := sniffDelimiterAndQuotes(path); err == nil && d != 0 {
			rr.Comma = d
			rr.LazyQuotes = lazy
		}
	} else if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.ReuseRecord = true
	return &Reader{r: rr, opt: opt}, rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader (stdin, pipe).
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	rr.FieldsPerRecord = -1
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.ReuseRecord = true
	return &Reader{r: rr, opt: opt}
}

// NewRecordReader reads already split records, e.g. spreadsheet rows.
func NewRecordReader(records [][]string, opt ReaderOptions) *Reader {
	return &Reader{r: &sliceSource{rows: records}, opt: opt}
}

type sliceSource struct {
	rows [][]string
	pos  int
}

func (s *sliceSource) Read() ([]string, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	s.pos++
	return s.rows[s.pos-1], nil
}

// ReadFile opens path, infers its schema and loads it.
func ReadFile(path string, opt ReaderOptions) (*j.Frame, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	return r.ReadFrame()
}

// ReadFrame infers the schema and loads every record.
func (r *Reader) ReadFrame() (*j.Frame, error) {
	schema, _, err := r.InferSchema()
	if err == io.EOF {
		return j.NewFrame(schema), nil
	}
	if err != nil {
		return nil, err
	}
	return r.ReadAll(schema)
}

// InferSchema reads header (if present) and samples rows to determine column
// kinds. A file holding only a header yields its schema and io.EOF.
func (r *Reader) InferSchema() (j.Schema, []string, error) {
	var names []string
	// Peek first record to get column count and optionally header
	rec, err := r.r.Read()
	if err != nil {
		return j.Schema{}, nil, err
	}
	var sample [][]string
	if r.opt.HasHeader {
		names = headerNames(rec)
		for i := 0; i < r.sampleSize(); i++ {
			rr, err := r.r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return j.Schema{}, nil, err
			}
			sample = append(sample, clone(rr))
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
		sample = append(sample, clone(rec))
		for i := 1; i < r.sampleSize(); i++ {
			rr, err := r.r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return j.Schema{}, nil, err
			}
			sample = append(sample, clone(rr))
		}
	}

	kinds := inferKinds(sample, len(names))
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(names))}
	for i := range names {
		k := kinds[i]
		if r.opt.KeepText != nil && r.opt.KeepText(names[i]) {
			k = j.KindString
		}
		schema.Columns[i] = j.ColumnSchema{Name: names[i], Type: k, Nullable: true}
	}
	// retain sampled rows for subsequent ReadAll
	r.buf = append(r.buf, sample...)
	if len(sample) == 0 {
		return schema, names, io.EOF
	}
	return schema, names, nil
}

func (r *Reader) sampleSize() int {
	if r.opt.SampleRows <= 0 {
		return 100
	}
	return r.opt.SampleRows
}

// headerNames cleans the header row: strips a BOM, repairs invalid UTF-8
// and suffixes repeated names with .1, .2, ...
func headerNames(rec []string) []string {
	names := make([]string, len(rec))
	used := make(map[string]bool, len(rec))
	suffix := make(map[string]int)
	for i := range rec {
		n := rec[i]
		if i == 0 {
			n = strings.TrimPrefix(n, "\ufeff")
		}
		n = strings.ToValidUTF8(strings.TrimSpace(n), "?")
		base := n
		for used[n] {
			suffix[base]++
			n = base + "." + strconv.Itoa(suffix[base])
		}
		used[n] = true
		names[i] = n
	}
	return names
}

func clone(rec []string) []string { return append([]string(nil), rec...) }

// ReadAll loads the rest of the CSV into a Frame.
func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	f := j.NewFrame(schema)
	// drain buffered records from inference (if any)
	for len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// appendRecord appends a null row then sets its non-empty values.
func (r *Reader) appendRecord(f *j.Frame, schema j.Schema, rec []string) error {
	if len(rec) > len(schema.Columns) {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record at row %d: need %d fields, got %d", f.Rows()+1, len(schema.Columns), len(rec))
		}
	}
	if len(rec) < len(schema.Columns) {
		r.shortRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv short record at row %d: need %d fields, got %d", f.Rows()+1, len(schema.Columns), len(rec))
		}
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			break
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if val == "" {
			continue
		}
		switch cs.Type {
		case j.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case j.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case j.KindBool:
			if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, val)
		}
	}
	return nil
}

func inferKinds(rows [][]string, ncol int) []j.Kind {
	kinds := make([]j.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
				continue
			}
			lv := strings.ToLower(v)
			if lv == "true" || lv == "false" {
				boolean++
				continue
			}
			str++
		}
		switch {
		case str == 0 && num > 0 && boolean == 0:
			if integer == num {
				kinds[c] = j.KindInt
			} else {
				kinds[c] = j.KindFloat
			}
		case str == 0 && boolean > 0 && num == 0:
			kinds[c] = j.KindBool
		default:
			kinds[c] = j.KindString
		}
	}
	return kinds
}

func sniffDelimiterAndQuotes(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	// count on the header line only; data lines carry decimal commas
	if nl := strings.IndexByte(string(sample), '\n'); nl > 0 {
		sample = sample[:nl]
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := 0
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quoteCount := strings.Count(string(sample), `"`)
	lazy := quoteCount%2 != 0
	return rune(best), lazy, nil
}

// Warnings returns a summary string of any repairs/mismatches encountered.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	parts := []string{}
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
