package builder

import "github.com/xrash/smetrics"

// suggestThreshold is the minimum Jaro-Winkler similarity a candidate
// must clear before it is offered as a "did you mean" suggestion —
// below this, unrelated identifiers start showing up as noise.
const suggestThreshold = 0.75

// visibleNames collects every identifier visible at the current parse
// point: locals innermost-first, then globals walking from the current
// module up through its parents, the same scoping order findLocal and
// module.Table.Lookup use independently.
func (b *Builder) visibleNames() []string {
	var names []string
	for i := len(b.locals) - 1; i >= 0; i-- {
		names = append(names, b.locals[i].name)
	}
	for m := b.mod; m != -1; m = b.mods.Get(m).Parent {
		for name := range b.mods.Get(m).Symbols {
			names = append(names, name)
		}
	}
	return names
}

// suggestFor returns the closest visible name to the misspelled
// identifier name by Jaro-Winkler similarity, for the "undeclared
// identifier" diagnostic's "did you mean" hint. Returns "", false if
// nothing clears suggestThreshold.
func (b *Builder) suggestFor(name string) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, candidate := range b.visibleNames() {
		if candidate == name {
			continue
		}
		score := smetrics.JaroWinkler(name, candidate, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
