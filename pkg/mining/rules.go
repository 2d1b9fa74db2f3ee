package mining

import (
	"sort"
	"strings"
)

// Rule reads "buying Antecedent implies buying Consequent".
type Rule struct {
	Antecedent []string
	Consequent []string
	Support    float64
	Confidence float64
	Lift       float64
}

// Rules derives every antecedent/consequent split of the itemsets of two or
// more items and keeps those with confidence >= minConfidence and lift > 1,
// strongest lift first.
func Rules(sets []Itemset, minConfidence float64) []Rule {
	support := make(map[string]float64, len(sets))
	for _, s := range sets {
		support[s.key()] = s.Support
	}
	var out []Rule
	for _, s := range sets {
		n := len(s.Items)
		if n < 2 || n > 30 {
			continue
		}
		for mask := 1; mask < (1<<n)-1; mask++ {
			var ante, cons []string
			for k, it := range s.Items {
				if mask&(1<<k) != 0 {
					ante = append(ante, it)
				} else {
					cons = append(cons, it)
				}
			}
			sa, okA := support[Itemset{Items: ante}.key()]
			sc, okC := support[Itemset{Items: cons}.key()]
			if !okA || !okC || sa == 0 || sc == 0 {
				continue
			}
			conf := s.Support / sa
			lift := conf / sc
			if conf < minConfidence || lift <= 1 {
				continue
			}
			out = append(out, Rule{Antecedent: ante, Consequent: cons, Support: s.Support, Confidence: conf, Lift: lift})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.Lift != y.Lift {
			return x.Lift > y.Lift
		}
		if x.Confidence != y.Confidence {
			return x.Confidence > y.Confidence
		}
		if ax, ay := strings.Join(x.Antecedent, ", "), strings.Join(y.Antecedent, ", "); ax != ay {
			return ax < ay
		}
		return strings.Join(x.Consequent, ", ") < strings.Join(y.Consequent, ", ")
	})
	return out
}
