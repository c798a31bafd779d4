package cabling

import (
	"sort"
	"strings"
)

// trailingDigits returns the longest run of decimal digits at the end
// of s and the prefix before it.
func trailingDigits(s string) (prefix, digits string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i], s[i:]
}

// compareNumeric compares two decimal digit strings by value without
// parsing, so arbitrarily long runs cannot overflow.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// compareNatural orders rack ids under natural_trailing_digits: ids
// with a trailing digit run sort before ids without one, by numeric
// value, then prefix, then the full string.
func compareNatural(a, b string) int {
	prefixA, digitsA := trailingDigits(a)
	prefixB, digitsB := trailingDigits(b)
	if (digitsA == "") != (digitsB == "") {
		if digitsA != "" {
			return -1
		}
		return 1
	}
	if digitsA != "" {
		if c := compareNumeric(digitsA, digitsB); c != 0 {
			return c
		}
		if c := strings.Compare(prefixA, prefixB); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// rackComparator returns the rack-id ordering function for a peer-sort
// strategy.
func rackComparator(p PeerSort) func(a, b string) int {
	if p == PeerSortLexicographic {
		return strings.Compare
	}
	return compareNatural
}

// pairKey identifies an unordered rack pair, held in peer-sorted order.
type pairKey struct {
	A string
	B string
}

// demandBucket aggregates every demand of one endpoint type between one
// rack pair. Flipped records whether the first contributing demand
// named the pair opposite to the sorted key.
type demandBucket struct {
	Key      pairKey
	Endpoint EndpointType
	Count    int
	Flipped  bool
}

// normalized is the demand normalizer's output: pair buckets in
// processing order plus the per-rack UTP peer map.
type normalized struct {
	buckets  []demandBucket
	utpRacks []string
	utpPeers map[string][]string
	cmp      func(a, b string) int
}

// normalizeDemands folds the project's demands into unordered pair
// buckets and derives the UTP peer listing, all ordered by the
// configured peer-sort strategy.
func normalizeDemands(p *Project) *normalized {
	cmp := rackComparator(p.Settings.Ordering.PeerSort)

	type bucketKey struct {
		pair     pairKey
		endpoint EndpointType
	}
	totals := make(map[bucketKey]*demandBucket)
	order := make([]bucketKey, 0, len(p.Demands))

	for _, demand := range p.Demands {
		key := pairKey{A: demand.Src, B: demand.Dst}
		flipped := false
		if cmp(key.A, key.B) > 0 {
			key.A, key.B = key.B, key.A
			flipped = true
		}
		bk := bucketKey{pair: key, endpoint: demand.EndpointType}
		bucket, ok := totals[bk]
		if !ok {
			bucket = &demandBucket{Key: key, Endpoint: demand.EndpointType, Flipped: flipped}
			totals[bk] = bucket
			order = append(order, bk)
		}
		bucket.Count += demand.Count
	}

	buckets := make([]demandBucket, 0, len(order))
	for _, bk := range order {
		buckets = append(buckets, *totals[bk])
	}
	sort.Slice(buckets, func(i, j int) bool {
		a, b := buckets[i], buckets[j]
		if c := cmp(a.Key.A, b.Key.A); c != 0 {
			return c < 0
		}
		if c := cmp(a.Key.B, b.Key.B); c != 0 {
			return c < 0
		}
		return a.Endpoint < b.Endpoint
	})

	n := &normalized{buckets: buckets, utpPeers: make(map[string][]string), cmp: cmp}
	for _, bucket := range buckets {
		if bucket.Endpoint != EndpointUTPRJ45 {
			continue
		}
		n.utpPeers[bucket.Key.A] = append(n.utpPeers[bucket.Key.A], bucket.Key.B)
		n.utpPeers[bucket.Key.B] = append(n.utpPeers[bucket.Key.B], bucket.Key.A)
	}
	for rack, peers := range n.utpPeers {
		sort.Slice(peers, func(i, j int) bool { return cmp(peers[i], peers[j]) < 0 })
		n.utpRacks = append(n.utpRacks, rack)
	}
	sort.Slice(n.utpRacks, func(i, j int) bool { return cmp(n.utpRacks[i], n.utpRacks[j]) < 0 })
	return n
}

// byEndpoint returns the buckets of one endpoint type in processing
// order.
func (n *normalized) byEndpoint(endpoint EndpointType) []demandBucket {
	var out []demandBucket
	for _, bucket := range n.buckets {
		if bucket.Endpoint == endpoint {
			out = append(out, bucket)
		}
	}
	return out
}

// utpCount returns the aggregated UTP demand between a and b, where
// (a, b) is already a sorted pair key.
func (n *normalized) utpCount(a, b string) (demandBucket, bool) {
	for _, bucket := range n.buckets {
		if bucket.Endpoint == EndpointUTPRJ45 && bucket.Key.A == a && bucket.Key.B == b {
			return bucket, true
		}
	}
	return demandBucket{}, false
}
