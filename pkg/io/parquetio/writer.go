// Package parquetio writes frames as Parquet files.
package parquetio

import (
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type WriterOptions struct {
	// Headers renames columns on the way out; unmapped names are written as is.
	Headers map[string]string
	// Parallel is the number of marshalling goroutines parquet-go uses; default 4.
	Parallel int64
}

func parquetSchemaJSON(s j.Schema, names []string) (string, error) {
	// Build a minimal JSON schema for parquet-go JSONWriter
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for i, cs := range s.Columns {
		tag := "name=" + names[i] + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case j.KindFloat:
			tag += "DOUBLE"
		case j.KindInt:
			tag += "INT64"
		case j.KindBool:
			tag += "BOOLEAN"
		default:
			// strings and times (rendered with their layout)
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, err := json.Marshal(sc)
	return string(b), err
}

func outputNames(s j.Schema, rename map[string]string) []string {
	names := s.Names()
	for i, n := range names {
		if to, ok := rename[n]; ok {
			names[i] = to
		}
	}
	return names
}

// WriteAll writes a Frame to a Parquet file using the parquet-go JSONWriter.
func WriteAll(path string, f *j.Frame, opt WriterOptions) (err error) {
	schema := f.Schema()
	names := outputNames(schema, opt.Headers)
	js, err := parquetSchemaJSON(schema, names)
	if err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	np := opt.Parallel
	if np <= 0 {
		np = 4
	}
	writer, err := pw.NewJSONWriter(js, fw, np)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() {
		if serr := writer.WriteStop(); serr != nil && err == nil {
			err = fmt.Errorf("parquet write stop: %w", serr)
		}
		if cerr := fw.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	cols := f.Columns()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			if col.IsNull(r) {
				continue
			}
			if col.Kind() == j.KindTime {
				rec[names[i]], _ = col.Text(r)
				continue
			}
			rec[names[i]] = j.Value(col, r)
		}
		// JSONWriter takes each row as a JSON document
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row %d: %w", r, err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	return nil
}
