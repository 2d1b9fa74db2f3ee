// Package report writes the plain-text cleaning summary.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	iox "github.com/wdm0006/salesjanitor/pkg/io/ioutils"
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
	"github.com/wdm0006/salesjanitor/pkg/profile"
)

// Stage is the table shape after one pipeline stage.
type Stage struct {
	Name string
	Rows int
	Cols int
}

// Dropped is a column removed during cleaning.
type Dropped struct {
	Column string
	Reason string
}

// Recorder collects stage shapes; pass Hook to janitor.Pipeline.Observe.
type Recorder struct {
	Stages []Stage
}

// NewRecorder starts the stage list with the input shape.
func NewRecorder(input *j.Frame) *Recorder {
	return &Recorder{Stages: []Stage{{Name: "input", Rows: input.Rows(), Cols: input.Cols()}}}
}

func (r *Recorder) Hook(stage string, out *j.Frame) {
	r.Stages = append(r.Stages, Stage{Name: stage, Rows: out.Rows(), Cols: out.Cols()})
}

// Summary is everything the cleaning report states. It carries no clock
// readings, so the same input always renders the same text.
type Summary struct {
	RawColumns []string
	// Normalized maps raw headers to canonical names.
	Normalized map[string]string
	Final      *j.Frame

	InitialRows int
	Stages      []Stage
	Dropped     []Dropped
	Key         string
	// Notes are extra lines such as reader warnings.
	Notes []string

	ProfileTopK int
}

// Standardized lists the raw headers whose canonical name survived to the
// final table, in input order.
func (s *Summary) Standardized() []string {
	var out []string
	for _, raw := range s.RawColumns {
		if name, ok := s.Normalized[raw]; ok && s.Final.Has(name) {
			out = append(out, raw)
		}
	}
	return out
}

// Narrative lists the transformation categories applied, in pipeline order.
func Narrative(key string) []string {
	dedup := "Duplicate rows removed."
	if key != "" {
		dedup = "Duplicates removed by " + key + "."
	}
	return []string{
		"Column names standardised: ASCII snake_case without accents or symbols.",
		"Free text cleaned: accents, symbols and repeated spaces removed.",
		"Products collapsed to canonical names.",
		"Customer and seller names title-cased.",
		"Status and payment method mapped to fixed vocabularies.",
		"Postal codes validated: eight digits or missing.",
		"Monetary values parsed and rounded to cents; negative amounts removed.",
		"Dates and clock times parsed; deliveries before the sale removed.",
		"Derived fields: sale year and sale month.",
		"Columns over the missing-value budget removed, the rest imputed.",
		dedup,
		"Outliers removed with the interquartile-range rule.",
	}
}

func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	final := s.Final
	b.WriteString("# Data cleaning report\n\n")
	fmt.Fprintf(&b, "Standardized columns: %v\n", s.Standardized())
	fmt.Fprintf(&b, "Initial rows: %d\n", s.InitialRows)
	fmt.Fprintf(&b, "Final rows: %d\n", final.Rows())
	fmt.Fprintf(&b, "Rows removed: %d\n", s.InitialRows-final.Rows())
	fmt.Fprintf(&b, "Final columns: %d\n", final.Cols())
	for _, n := range s.Notes {
		fmt.Fprintf(&b, "Note: %s\n", n)
	}

	if len(s.Stages) > 0 {
		b.WriteString("\n## Stages\n\n")
		t := tablewriter.NewWriter(&b)
		t.SetHeader([]string{"stage", "rows", "cols", "rows removed"})
		t.SetAutoWrapText(false)
		prev := s.Stages[0].Rows
		for _, st := range s.Stages {
			t.Append([]string{st.Name, strconv.Itoa(st.Rows), strconv.Itoa(st.Cols), strconv.Itoa(prev - st.Rows)})
			prev = st.Rows
		}
		t.Render()
	}

	if len(s.Dropped) > 0 {
		b.WriteString("\n## Dropped columns\n\n")
		t := tablewriter.NewWriter(&b)
		t.SetHeader([]string{"column", "reason"})
		t.SetAutoWrapText(false)
		for _, d := range s.Dropped {
			t.Append([]string{d.Column, d.Reason})
		}
		t.Render()
	}

	b.WriteString("\n## Column profile\n\n")
	profile.Of(final, s.ProfileTopK).WriteTable(&b)

	b.WriteString("\n## Transformations\n\n")
	for _, line := range Narrative(s.Key) {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

// WriteFile renders the summary to path.
func (s *Summary) WriteFile(path string) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
