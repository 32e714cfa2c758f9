package labels

// Item is an opaque image handle. The grouping code never inspects it.
type Item = any

// Group is the capped run of items sharing a label, in input order.
type Group struct {
	Label Label
	Items []Item
	// Total is the number of items bearing Label before the cap was applied.
	Total int
}

// Representative is the first item seen for a label.
type Representative struct {
	Label Label
	Item  Item
	// Index is the position of Item in the input sequence.
	Index int
}

// GroupAndCap partitions items by label, keeping at most maxPerGroup of the
// earliest items of each label. Groups come back in the given order, or in
// natural label order when order is nil. Labels named in order but absent from
// the input are skipped.
func GroupAndCap(items []Item, ls []Label, maxPerGroup int, order []Label) ([]Group, error) {
	if err := CheckShape(len(items), len(ls)); err != nil {
		return nil, err
	}

	byLabel := make(map[Label]*Group)
	var seen []Label
	for i, l := range ls {
		g, ok := byLabel[l]
		if !ok {
			g = &Group{Label: l, Items: []Item{}}
			byLabel[l] = g
			seen = append(seen, l)
		}
		g.Total++
		if len(g.Items) < maxPerGroup {
			g.Items = append(g.Items, items[i])
		}
	}

	groups := make([]Group, 0, len(byLabel))
	for _, l := range resolveOrder(seen, order) {
		groups = append(groups, *byLabel[l])
	}
	return groups, nil
}

// SelectRepresentatives picks the first item of every label not in ignore,
// ordered like GroupAndCap orders its groups.
func SelectRepresentatives(items []Item, ls []Label, ignore Set, order []Label) ([]Representative, error) {
	if err := CheckShape(len(items), len(ls)); err != nil {
		return nil, err
	}

	first := make(map[Label]Representative)
	var seen []Label
	for i, l := range ls {
		if ignore.Contains(l) {
			continue
		}
		if _, ok := first[l]; ok {
			continue
		}
		first[l] = Representative{Label: l, Item: items[i], Index: i}
		seen = append(seen, l)
	}

	reps := make([]Representative, 0, len(first))
	for _, l := range resolveOrder(seen, order) {
		reps = append(reps, first[l])
	}
	return reps, nil
}

// Distinct returns the distinct labels of ls in natural order.
func Distinct(ls []Label) []Label {
	seen := make(map[Label]struct{}, len(ls))
	var out []Label
	for _, l := range ls {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	Sort(out)
	return out
}

// Sequence returns the integer labels 0..n-1.
func Sequence(n int) []Label {
	out := make([]Label, n)
	for i := range out {
		out[i] = Int(int64(i))
	}
	return out
}

// Truncate keeps the first limit pairs of the parallel sequences.
func Truncate(items []Item, ls []Label, limit int) ([]Item, []Label, error) {
	if err := CheckShape(len(items), len(ls)); err != nil {
		return nil, nil, err
	}
	limit = min(max(limit, 0), len(items))
	return items[:limit], ls[:limit], nil
}

// resolveOrder restricts order to the present labels, or sorts present when
// no order was supplied.
func resolveOrder(present []Label, order []Label) []Label {
	if order == nil {
		out := append([]Label(nil), present...)
		Sort(out)
		return out
	}
	has := make(map[Label]bool, len(present))
	for _, l := range present {
		has[l] = true
	}
	out := make([]Label, 0, len(present))
	for _, l := range order {
		if !has[l] {
			continue
		}
		has[l] = false
		out = append(out, l)
	}
	return out
}
