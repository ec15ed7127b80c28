// internal/forecast/correlate.go
package forecast

import (
	"sort"
	"strings"
)

const maxPairs = 4

// mineCorrelations approximates "frequently bought together" pairs. The
// sales schema has no order id linking line items, so events falling in the
// same clock hour are treated as one synthetic transaction. That heuristic
// both merges unrelated purchases within an hour and splits checkouts that
// straddle an hour boundary; the dashboard shows its output as bundling
// suggestions, so the granularity must not change until the schema gains a
// real transaction id.
//
// Mining is best-effort: any internal failure degrades to an empty list so
// the rest of the forecast response still goes out.
func mineCorrelations(sales []SaleEvent, names map[string]string) (pairs []ProductPair) {
	pairs = make([]ProductPair, 0, maxPairs)
	defer func() {
		if r := recover(); r != nil {
			pairs = make([]ProductPair, 0)
		}
	}()

	buckets := make(map[string]map[string]struct{})
	for _, s := range sales {
		if s.ProductID == "" {
			continue
		}
		key := s.Date.Format(hourLayout)
		if buckets[key] == nil {
			buckets[key] = make(map[string]struct{})
		}
		buckets[key][s.ProductID] = struct{}{}
	}

	counts := make(map[string]int)
	for _, ids := range buckets {
		if len(ids) < 2 {
			continue
		}
		sorted := make([]string, 0, len(ids))
		for id := range ids {
			sorted = append(sorted, id)
		}
		sort.Strings(sorted)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				counts[sorted[i]+"|"+sorted[j]]++
			}
		}
	}

	for key, freq := range counts {
		ids := strings.SplitN(key, "|", 2)
		pairs = append(pairs, ProductPair{
			Product1:  PairProduct{ID: ids[0], Name: pairName(names, ids[0])},
			Product2:  PairProduct{ID: ids[1], Name: pairName(names, ids[1])},
			Frequency: freq,
			Score:     freq,
		})
	}

	// Tie-break on the canonical id pair so map iteration order never
	// leaks into the response.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Frequency != pairs[j].Frequency {
			return pairs[i].Frequency > pairs[j].Frequency
		}
		if pairs[i].Product1.ID != pairs[j].Product1.ID {
			return pairs[i].Product1.ID < pairs[j].Product1.ID
		}
		return pairs[i].Product2.ID < pairs[j].Product2.ID
	})
	if len(pairs) > maxPairs {
		pairs = pairs[:maxPairs]
	}
	return pairs
}

func pairName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "Unknown"
}
