// Package dfc folds signed ledger amounts into the category → subgroup →
// item tree of the cash-flow statement.
package dfc

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/farxc/dfc_dashboard/internal/category"
	"github.com/farxc/dfc_dashboard/internal/period"
)

const defaultSubgroup = "Outros"

type item struct {
	label string
	total period.Values
}

type subgroup struct {
	label string
	total period.Values
	items map[string]*item
}

type group struct {
	total     period.Values
	subgroups map[string]*subgroup
}

// Tree is request scoped and not safe for concurrent use.
type Tree struct {
	cols   period.Columns
	groups map[category.Category]*group
}

func NewTree(cols period.Columns) *Tree {
	return &Tree{cols: cols, groups: make(map[category.Category]*group)}
}

// ItemKey labels a line item by plan code and plan name.
func ItemKey(code, name string) string {
	return fmt.Sprintf("%s - %s", code, name)
}

// SubgroupLabel trims the secondary name, defaulting to "Outros".
func SubgroupLabel(name string) string {
	if s := strings.TrimSpace(name); s != "" {
		return s
	}
	return defaultSubgroup
}

// Accumulate adds amount to column at the category, subgroup and item levels.
// Nodes are created zeroed across every column on first touch. Nothing is
// written when the category is unclassified or the column is not part of the
// column set.
func (t *Tree) Accumulate(cat category.Category, subgroupName, itemKey, column string, amount float64) bool {
	if cat == category.Unclassified || !t.cols.Has(column) {
		return false
	}

	g, ok := t.groups[cat]
	if !ok {
		g = &group{total: t.cols.Zero(), subgroups: make(map[string]*subgroup)}
		t.groups[cat] = g
	}
	sg, ok := g.subgroups[subgroupName]
	if !ok {
		sg = &subgroup{label: subgroupName, total: t.cols.Zero(), items: make(map[string]*item)}
		g.subgroups[subgroupName] = sg
	}
	it, ok := sg.items[itemKey]
	if !ok {
		it = &item{label: itemKey, total: t.cols.Zero()}
		sg.items[itemKey] = it
	}

	g.total[column] += amount
	sg.total[column] += amount
	it.total[column] += amount
	return true
}

// Total returns a copy of a category's column totals, zeroed when untouched.
func (t *Tree) Total(cat category.Category) period.Values {
	if g, ok := t.groups[cat]; ok {
		return g.total.Clone()
	}
	return t.cols.Zero()
}

// Rows renders the tree in canonical category order. With backfill, categories
// without rows are emitted as zero-valued groups.
func (t *Tree) Rows(backfill bool) []Node {
	cl := collate.New(language.BrazilianPortuguese, collate.Numeric)
	less := func(a, b string) bool { return cl.CompareString(a, b) < 0 }

	rows := make([]Node, 0, len(t.groups))
	for _, cat := range category.All() {
		g, ok := t.groups[cat]
		if !ok {
			if backfill {
				rows = append(rows, Node{Conta: cat.Label(), Tipo: KindGroup, Values: t.cols.Zero(), Detalhes: []Node{}})
			}
			continue
		}

		subs := make([]Node, 0, len(g.subgroups))
		for _, sg := range g.subgroups {
			items := make([]Node, 0, len(sg.items))
			for _, it := range sg.items {
				items = append(items, Node{Conta: it.label, Tipo: KindItem, Values: it.total.Clone()})
			}
			sort.SliceStable(items, func(i, j int) bool { return less(items[i].Conta, items[j].Conta) })
			subs = append(subs, Node{Conta: sg.label, Tipo: KindSubgroup, Values: sg.total.Clone(), Detalhes: items})
		}
		sort.SliceStable(subs, func(i, j int) bool { return less(subs[i].Conta, subs[j].Conta) })

		rows = append(rows, Node{Conta: cat.Label(), Tipo: KindGroup, Values: g.total.Clone(), Detalhes: subs})
	}
	return rows
}
