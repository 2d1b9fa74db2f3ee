package mining

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

func salesFrame(rows ...[2]any) *j.Frame {
	f := j.NewFrame(j.Schema{Columns: []j.ColumnSchema{
		{Name: "Id_da_compra", Type: j.KindString},
		{Name: "Produto", Type: j.KindString},
	}})
	for i, r := range rows {
		f.AppendNullRow()
		_ = f.SetCell(i, "Id_da_compra", r[0])
		_ = f.SetCell(i, "Produto", r[1])
	}
	return f
}

func options() Options {
	return Options{
		ProductColumn:     "Produto",
		TransactionColumn: "Id_da_compra",
		MinProductCount:   2,
		MinSupportCount:   2,
		MinConfidence:     0.2,
		BucketSize:        5,
	}
}

func ruleText(r Rule) string {
	return strings.Join(r.Antecedent, ",") + "->" + strings.Join(r.Consequent, ",")
}

func TestApriori(t *testing.T) {
	m, err := Encode([][]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"c", "d"}, {"a", "c"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, m.Items())

	sets := Apriori(m, 0.4)
	var got []string
	for _, s := range sets {
		got = append(got, fmt.Sprintf("%s=%.1f", strings.Join(s.Items, ""), s.Support))
	}
	assert.Equal(t, []string{"a=0.6", "b=0.4", "c=0.6", "d=0.4", "ab=0.4", "cd=0.4"}, got)
}

func TestAprioriThreeItemsets(t *testing.T) {
	m, _ := Encode([][]string{{"a", "b", "c"}, {"a", "b", "c"}, {"a", "b"}, {"d"}})
	sets := Apriori(m, 0.5)
	last := sets[len(sets)-1]
	assert.Equal(t, []string{"a", "b", "c"}, last.Items)
	assert.Equal(t, 0.5, last.Support)
}

func TestRulesKeepPositiveLift(t *testing.T) {
	m, _ := Encode([][]string{{"a", "b"}, {"a", "b"}, {"c", "d"}, {"c", "d"}, {"a", "c"}})
	rules := Rules(Apriori(m, 0.4), 0.2)
	var got []string
	for i, r := range rules {
		got = append(got, ruleText(r))
		assert.InDelta(t, 5.0/3, r.Lift, 1e-9)
		assert.GreaterOrEqual(t, r.Confidence, 0.2)
		if i > 0 {
			assert.LessOrEqual(t, r.Lift, rules[i-1].Lift+1e-12)
		}
	}
	assert.ElementsMatch(t, []string{"a->b", "b->a", "c->d", "d->c"}, got)
}

func TestRulesDropLiftAtOrBelowOne(t *testing.T) {
	m, _ := Encode([][]string{{"a", "b"}, {"a", "b"}, {"a", "c"}, {"b", "c"}, {"a", "b", "c"}})
	assert.Empty(t, Rules(Apriori(m, 0.4), 0.2))
}

func TestMineGroupsByPurchaseID(t *testing.T) {
	f := salesFrame(
		[2]any{"A1", "tv"}, [2]any{"A1", "soundbar"},
		[2]any{"A2", "tv"}, [2]any{"A2", "soundbar"},
		[2]any{"A3", "mouse"}, [2]any{"A3", "teclado"},
		[2]any{"A4", "mouse"}, [2]any{"A4", "teclado"},
		[2]any{"A5", "tv"}, [2]any{"A5", "mouse"},
		[2]any{"A6", "cabo"},
	)
	res, err := Mine(f, options())
	require.NoError(t, err)
	assert.False(t, res.Bucketed)
	assert.Equal(t, 5, res.Transactions)
	assert.Len(t, res.Rules, 4)
	assert.Equal(t, []ProductCount{{"mouse", 3}, {"tv", 3}, {"soundbar", 2}, {"teclado", 2}}, res.Ranking)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, res, 10))
	out := buf.String()
	assert.Contains(t, out, "ALL QUALITY ASSOCIATION RULES")
	assert.Contains(t, out, "1.67")
	assert.NotContains(t, out, "cabo")
}

func TestMineBucketsWhenIDsAreSingletons(t *testing.T) {
	var rows [][2]any
	for i := 0; i < 20; i++ {
		p := "tv"
		if i%5 >= 3 {
			p = "soundbar"
		}
		rows = append(rows, [2]any{fmt.Sprintf("id%02d", i), p})
	}
	res, err := Mine(salesFrame(rows...), options())
	require.NoError(t, err)
	assert.True(t, res.Bucketed)
	assert.Equal(t, 4, res.Transactions)
}

func TestBucketUsesInputPosition(t *testing.T) {
	bs := []Basket{{Row: 0, Product: "a"}, {Row: 4, Product: "b"}, {Row: 5, Product: "c"}, {Row: 12, Product: "d"}}
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}, {"d"}}, Bucket(bs, 5))
}

func TestMineNoItemsets(t *testing.T) {
	opt := options()
	opt.MinSupportCount = 100
	f := salesFrame([2]any{"A1", "tv"}, [2]any{"A1", "mouse"}, [2]any{"A2", "tv"}, [2]any{"A2", "mouse"})
	res, err := Mine(f, opt)
	assert.True(t, errors.Is(err, ErrNoItemsets))
	require.NotNil(t, res)
	assert.Empty(t, res.Rules)
}

func TestMineMissingColumn(t *testing.T) {
	opt := options()
	opt.ProductColumn = "Item"
	_, err := Mine(salesFrame([2]any{"A1", "tv"}), opt)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}
