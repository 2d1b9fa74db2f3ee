package jsonlio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type ReaderOptions struct {
	SampleRows int
	// KeepText forces a key to KindString regardless of inference.
	KeepText func(key string) bool
}

type Reader struct {
	dec  *json.Decoder
	opt  ReaderOptions
	buf  []map[string]any
	keys []string
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Open opens a JSON-lines file (gzip detected transparently). The caller
// closes the returned io.Closer.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(rc, opt), rc, nil
}

func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	dec := json.NewDecoder(bufio.NewReader(r))
	dec.UseNumber()
	return &Reader{dec: dec, opt: opt}
}

// ReadFile opens path, infers its schema and loads it.
func ReadFile(path string, opt ReaderOptions) (*j.Frame, error) {
	r, c, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()
	schema, err := r.InferSchema()
	if err != nil {
		return nil, err
	}
	return r.ReadAll(schema)
}

// InferSchema samples objects to determine keys and kinds. Columns follow
// the order keys first appear in.
func (r *Reader) InferSchema() (j.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	seen := map[string]struct{}{}
	for len(r.buf) < max {
		keys, m, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return j.Schema{}, err
		}
		r.buf = append(r.buf, m)
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				r.keys = append(r.keys, k)
			}
		}
	}
	kinds := inferKinds(r.buf, r.keys)
	schema := j.Schema{Columns: make([]j.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		kind := kinds[i]
		if r.opt.KeepText != nil && r.opt.KeepText(k) {
			kind = j.KindString
		}
		schema.Columns[i] = j.ColumnSchema{Name: k, Type: kind, Nullable: true}
	}
	return schema, nil
}

// next decodes one object, returning its keys in document order.
func (r *Reader) next() ([]string, map[string]any, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("jsonl: expected object, got %v", tok)
	}
	var keys []string
	m := map[string]any{}
	for r.dec.More() {
		kt, err := r.dec.Token()
		if err != nil {
			return nil, nil, err
		}
		k, _ := kt.(string)
		var v any
		if err := r.dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := m[k]; !dup {
			keys = append(keys, k)
		}
		m[k] = v
	}
	if _, err := r.dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, m, nil
}

func (r *Reader) ReadAll(schema j.Schema) (*j.Frame, error) {
	f := j.NewFrame(schema)
	// drain buffer
	for len(r.buf) > 0 {
		m := r.buf[0]
		r.buf = r.buf[1:]
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, m)
	}
	for {
		_, m, err := r.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, m)
	}
	return f, nil
}

func setRowFromMap(f *j.Frame, row int, m map[string]any) {
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		s := scalarText(v)
		switch cs.Type {
		case j.KindFloat:
			if x, err := strconv.ParseFloat(s, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case j.KindInt:
			if x, err := strconv.ParseInt(s, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case j.KindBool:
			if x, err := strconv.ParseBool(strings.ToLower(s)); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			if s != "" {
				_ = f.SetCell(row, cs.Name, s)
			}
		}
	}
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		// fallback to JSON encoding
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func inferKinds(sample []map[string]any, keys []string) []j.Kind {
	kinds := make([]j.Kind, len(keys))
	for i, k := range keys {
		nNum, nInt, nBool, nStr := 0, 0, 0, 0
		for _, m := range sample {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case json.Number:
				nNum++
				if !strings.ContainsAny(t.String(), ".eE") {
					nInt++
				}
			case bool:
				nBool++
			case string:
				s := strings.TrimSpace(t)
				if s == "" {
					continue
				}
				if numre.MatchString(s) {
					nNum++
					if !strings.ContainsAny(s, ".eE") {
						nInt++
					}
				} else {
					nStr++
				}
			default:
				nStr++
			}
		}
		switch {
		case nBool > 0 && nNum == 0 && nStr == 0:
			kinds[i] = j.KindBool
		case nNum > 0 && nStr == 0 && nBool == 0:
			if nInt == nNum {
				kinds[i] = j.KindInt
			} else {
				kinds[i] = j.KindFloat
			}
		default:
			kinds[i] = j.KindString
		}
	}
	return kinds
}
