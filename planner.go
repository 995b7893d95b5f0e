package fetchz

// frontier collects the requests reachable from n without crossing a bind:
// it descends both sides of a join but only the left side of a bind, since
// the continuation is opaque until the left value resolves. The result is
// in first-encounter order and may contain duplicate cache keys; the batch
// compiler deduplicates.
func frontier(n node) []reqNode {
	var out []reqNode
	var walk func(node)
	walk = func(n node) {
		switch t := n.(type) {
		case pureNode, failNode:
		case reqNode:
			out = append(out, t)
		case joinNode:
			walk(t.left)
			walk(t.right)
		case bindNode:
			walk(t.left)
		}
	}
	walk(n)
	return out
}

// rewrite advances the tree against the cache: cached requests collapse to
// pure values, joins and binds whose children became pure are reduced,
// exposing fresh requests beneath former binds for the next round. A fail
// node short-circuits the subtree it appears in.
func rewrite(n node, cache Cache) (node, error) {
	switch t := n.(type) {
	case pureNode, failNode:
		return n, nil
	case reqNode:
		v, ok, err := cache.Get(Key{Source: t.source.name, Identity: t.identity})
		if err != nil {
			return nil, err
		}
		if !ok {
			return n, nil
		}
		if !t.source.valueOK(v) {
			return nil, &WrongTypeError{Source: t.source.name, Identity: t.identity, Value: v}
		}
		return pureNode{value: v}, nil
	case joinNode:
		l, err := rewrite(t.left, cache)
		if err != nil {
			return nil, err
		}
		r, err := rewrite(t.right, cache)
		if err != nil {
			return nil, err
		}
		if f, ok := l.(failNode); ok {
			return f, nil
		}
		if f, ok := r.(failNode); ok {
			return f, nil
		}
		lp, lok := l.(pureNode)
		rp, rok := r.(pureNode)
		if lok && rok {
			return pureNode{value: t.combine(lp.value, rp.value)}, nil
		}
		return joinNode{left: l, right: r, combine: t.combine}, nil
	case bindNode:
		l, err := rewrite(t.left, cache)
		if err != nil {
			return nil, err
		}
		if f, ok := l.(failNode); ok {
			return f, nil
		}
		if lp, ok := l.(pureNode); ok {
			return rewrite(t.cont(lp.value), cache)
		}
		return bindNode{left: l, cont: t.cont}, nil
	default:
		return n, nil
	}
}
