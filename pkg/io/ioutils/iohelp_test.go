package ioutils

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
)

func TestGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vendas.csv.gz")
	w, err := CreateMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "a,b\n1,2\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := OpenMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "a,b\n1,2\n" {
		t.Fatalf("got %q", b)
	}
}

func TestMissingInput(t *testing.T) {
	_, err := OpenMaybeCompressed(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestTrimCompression(t *testing.T) {
	if got := TrimCompression("a/vendas.jsonl.gz"); got != "a/vendas.jsonl" {
		t.Fatal(got)
	}
	if got := TrimCompression("vendas.csv"); got != "vendas.csv" {
		t.Fatal(got)
	}
}
