package tui

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/retrodesk/internal/config"
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

// diffContextLines is how many unchanged lines surround each change.
const diffContextLines = 2

type diffLine struct {
	kind diffKind
	text string
}

// configDiff renders both configs as they would be written and returns the
// changed lines with some context. It returns nil when nothing changed.
func configDiff(before, after *config.Config) []diffLine {
	if before == nil || after == nil {
		return nil
	}
	a, err := yamlLines(before)
	if err != nil {
		return nil
	}
	b, err := yamlLines(after)
	if err != nil {
		return nil
	}
	return withContext(diffLines(a, b), diffContextLines)
}

func yamlLines(cfg *config.Config) ([]string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}

// diffLines returns a full line diff of a and b. Shared leading and trailing
// lines are peeled off before the LCS table is built, so a single edited key
// costs almost nothing.
func diffLines(a, b []string) []diffLine {
	pre := 0
	for pre < len(a) && pre < len(b) && a[pre] == b[pre] {
		pre++
	}
	suf := 0
	for suf < len(a)-pre && suf < len(b)-pre && a[len(a)-1-suf] == b[len(b)-1-suf] {
		suf++
	}

	out := make([]diffLine, 0, len(a)+len(b)-pre-suf)
	for _, l := range a[:pre] {
		out = append(out, diffLine{kind: diffContext, text: l})
	}
	out = append(out, lcsEdits(a[pre:len(a)-suf], b[pre:len(b)-suf])...)
	for _, l := range a[len(a)-suf:] {
		out = append(out, diffLine{kind: diffContext, text: l})
	}
	return out
}

// lcsEdits walks a longest-common-subsequence table, preferring removals
// before additions at each change.
func lcsEdits(a, b []string) []diffLine {
	n, m := len(a), len(b)
	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var out []diffLine
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			out = append(out, diffLine{kind: diffContext, text: a[i]})
			i++
			j++
		case j == m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			out = append(out, diffLine{kind: diffRemoved, text: a[i]})
			i++
		default:
			out = append(out, diffLine{kind: diffAdded, text: b[j]})
			j++
		}
	}
	return out
}

// withContext drops unchanged lines further than n from any change. Gaps
// between kept runs are marked with a "..." line; the ends are not.
func withContext(lines []diffLine, n int) []diffLine {
	keep := make([]bool, len(lines))
	changed := false
	for i, l := range lines {
		if l.kind == diffContext {
			continue
		}
		changed = true
		for j := max(i-n, 0); j <= min(i+n, len(lines)-1); j++ {
			keep[j] = true
		}
	}
	if !changed {
		return nil
	}

	var out []diffLine
	last := -1
	for i, l := range lines {
		if !keep[i] {
			continue
		}
		if last >= 0 && i > last+1 {
			out = append(out, diffLine{kind: diffContext, text: "..."})
		}
		out = append(out, l)
		last = i
	}
	return out
}
