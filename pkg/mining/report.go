package mining

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

var rule = strings.Repeat("=", 60) + "\n"

// WriteReport renders the top rules, the top products and every rule. topN
// bounds the first two sections.
func WriteReport(w io.Writer, res *Result, topN int) error {
	var b bytes.Buffer
	b.WriteString("SALES ANALYSIS REPORT\n")
	b.WriteString(rule + "\n")
	b.WriteString("Transactions: " + strconv.Itoa(res.Transactions))
	if res.Bucketed {
		b.WriteString(" (grouped by row position)")
	}
	b.WriteString("\nFrequent itemsets: " + strconv.Itoa(len(res.Itemsets)) + "\n\n")

	section(&b, "ASSOCIATION RULES WITH HIGHEST LIFT (TOP "+strconv.Itoa(topN)+")")
	rulesTable(&b, head(res.Rules, topN))

	section(&b, "TOP "+strconv.Itoa(topN)+" BEST-SELLING PRODUCTS")
	t := tablewriter.NewWriter(&b)
	t.SetHeader([]string{"product", "quantity sold"})
	t.SetAutoWrapText(false)
	for i, pc := range res.Ranking {
		if i == topN {
			break
		}
		t.Append([]string{pc.Product, strconv.Itoa(pc.Count)})
	}
	t.Render()
	b.WriteString("\n")

	section(&b, "ALL QUALITY ASSOCIATION RULES")
	rulesTable(&b, res.Rules)

	_, err := w.Write(b.Bytes())
	return err
}

func section(b *bytes.Buffer, title string) {
	b.WriteString(rule)
	b.WriteString(" " + title + "\n")
	b.WriteString(rule)
}

func head(rs []Rule, n int) []Rule {
	if n >= 0 && n < len(rs) {
		return rs[:n]
	}
	return rs
}

func rulesTable(w io.Writer, rs []Rule) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"if bought", "then also", "support", "confidence", "lift"})
	t.SetAutoWrapText(false)
	for _, r := range rs {
		t.Append([]string{
			strings.Join(r.Antecedent, ", "),
			strings.Join(r.Consequent, ", "),
			strconv.FormatFloat(r.Support, 'f', 4, 64),
			strconv.FormatFloat(r.Confidence, 'f', 4, 64),
			strconv.FormatFloat(r.Lift, 'f', 2, 64),
		})
	}
	t.Render()
	_, _ = io.WriteString(w, "\n")
}
