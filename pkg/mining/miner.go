// Package mining finds co-purchase association rules in a cleaned sales
// table and ranks products by volume.
package mining

import (
	j "github.com/wdm0006/salesjanitor/pkg/janitor"
)

type Options struct {
	ProductColumn     string
	TransactionColumn string
	// MinProductCount drops products sold in fewer rows before grouping.
	MinProductCount int
	// MinSupportCount is the absolute support; the relative threshold is
	// MinSupportCount divided by the number of transactions.
	MinSupportCount int
	MinConfidence   float64
	// BucketSize is the number of consecutive input rows grouped into one
	// transaction when no purchase id spans several products.
	BucketSize int
	// Encode builds the item matrix; nil means Encode.
	Encode Encoder
}

// Result is the outcome of one mining run.
type Result struct {
	Transactions int
	// Bucketed is true when transactions came from Bucket instead of ids.
	Bucketed bool
	Itemsets []Itemset
	Rules    []Rule
	Ranking  []ProductCount
}

// Mine runs the whole analysis over f. When no itemset is frequent it
// returns the partial result (ranking included) and ErrNoItemsets.
func Mine(f *j.Frame, opt Options) (*Result, error) {
	bs, err := Baskets(f, opt.ProductColumn, opt.TransactionColumn)
	if err != nil {
		return nil, err
	}
	bs = DropRare(bs, opt.MinProductCount)
	res := &Result{Ranking: Rank(bs)}

	txs := GroupByID(bs)
	if len(txs) == 0 {
		txs = Bucket(bs, opt.BucketSize)
		res.Bucketed = true
	}
	res.Transactions = len(txs)
	if len(txs) == 0 {
		return res, ErrNoItemsets
	}

	enc := opt.Encode
	if enc == nil {
		enc = Encode
	}
	m, err := enc(txs)
	if err != nil {
		return nil, err
	}
	minSupport := float64(opt.MinSupportCount) / float64(m.Rows())
	res.Itemsets = Apriori(m, minSupport)
	if len(res.Itemsets) == 0 {
		return res, ErrNoItemsets
	}
	res.Rules = Rules(res.Itemsets, opt.MinConfidence)
	return res, nil
}
