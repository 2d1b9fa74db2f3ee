package dedup

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

func purchases(rows ...[2]any) *j.Frame {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{
		{Name: "id_da_compra", Type: j.KindString},
		{Name: "produto", Type: j.KindString},
	}})
	for i, r := range rows {
		f.AppendNullRow()
		_ = f.SetCell(i, "id_da_compra", r[0])
		_ = f.SetCell(i, "produto", r[1])
	}
	return f
}

func column(f *j.Frame, name string) []any {
	c, _ := f.ColumnByName(name)
	out := make([]any, c.Len())
	for i := range out {
		out[i] = j.Value(c, i)
	}
	return out
}

func TestDeduplicator(t *testing.T) {
	Convey("Given purchases sharing an id", t, func() {
		f := purchases([2]any{"A1", "tv"}, [2]any{"B2", "mouse"}, [2]any{"A1", "laptop"}, [2]any{nil, "x"}, [2]any{nil, "y"})

		Convey("When deduplicating on the purchase id", func() {
			d := &Deduplicator{Key: "id_da_compra"}
			out, err := d.Apply(context.Background(), f)
			So(err, ShouldBeNil)

			Convey("The first row per id survives", func() {
				So(out.Rows(), ShouldEqual, 3)
				So(d.Removed, ShouldEqual, 2)
				So(column(out, "produto"), ShouldResemble, []any{"tv", "mouse", "x"})
			})

			Convey("Running it again changes nothing", func() {
				again, err := (&Deduplicator{Key: "id_da_compra"}).Apply(context.Background(), out)
				So(err, ShouldBeNil)
				So(column(again, "produto"), ShouldResemble, column(out, "produto"))
			})

			Convey("The input is untouched", func() {
				So(f.Rows(), ShouldEqual, 5)
			})
		})
	})
}

func TestDeduplicatorWithoutKeyUsesWholeRow(t *testing.T) {
	f := purchases([2]any{"A1", "tv"}, [2]any{"A1", "tv"}, [2]any{"A1", "mouse"}, [2]any{nil, nil}, [2]any{nil, nil})
	out, err := (&Deduplicator{Key: "missing"}).Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 3 {
		t.Fatalf("rows = %d, want 3", out.Rows())
	}
}
