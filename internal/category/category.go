// Package category resolves the free-text DFC origin of a ledger row into one
// of the fixed top-level cash-flow categories.
package category

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Category int

const (
	Unclassified Category = iota
	EntradasOperacionais
	SaidasOperacionais
	OperacoesFinanceiras
	AtivoImobilizado
	MovimentacoesSocios
	CaixasLoja
)

var labels = map[Category]string{
	EntradasOperacionais: "01- Entradas Operacionais",
	SaidasOperacionais:   "02- Saídas Operacionais",
	OperacoesFinanceiras: "03- Operações Financeiras",
	AtivoImobilizado:     "04- Ativo Imobilizado",
	MovimentacoesSocios:  "06- Movimentações de Sócios",
	CaixasLoja:           "07- Caixas da Loja",
}

var canonicalOrder = []Category{
	EntradasOperacionais,
	SaidasOperacionais,
	OperacoesFinanceiras,
	AtivoImobilizado,
	MovimentacoesSocios,
	CaixasLoja,
}

// All returns the categories in report order.
func All() []Category {
	return append([]Category(nil), canonicalOrder...)
}

// Label is the canonical display text, empty for Unclassified.
func (c Category) Label() string {
	return labels[c]
}

func (c Category) String() string {
	if c == Unclassified {
		return "unclassified"
	}
	return labels[c]
}

// Operational reports whether the category feeds the operational flow.
func (c Category) Operational() bool {
	return c == EntradasOperacionais || c == SaidasOperacionais
}

var (
	hyphenSpacing = regexp.MustCompile(`\s*-\s*`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Normalize folds case, accents and hyphen/whitespace variants so that
// "02 - SAÍDAS  Operacionais" and "02-saidas operacionais" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)
	s = hyphenSpacing.ReplaceAllString(s, "-")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

type entry struct {
	key  string
	name string
	cat  Category
}

var lookup = func() []entry {
	out := make([]entry, 0, len(canonicalOrder))
	for _, c := range canonicalOrder {
		key := Normalize(labels[c])
		name := key
		if i := strings.Index(key, "-"); i >= 0 {
			name = key[i+1:]
		}
		out = append(out, entry{key: key, name: name, cat: c})
	}
	return out
}()

// Classify maps raw origin text to its category. Exact normalised matches win,
// then containment of a full canonical label, then of the label without its
// numeric prefix.
func Classify(raw string) (Category, bool) {
	n := Normalize(raw)
	if n == "" {
		return Unclassified, false
	}
	for _, e := range lookup {
		if n == e.key {
			return e.cat, true
		}
	}
	for _, e := range lookup {
		if strings.Contains(n, e.key) {
			return e.cat, true
		}
	}
	for _, e := range lookup {
		if strings.Contains(n, e.name) {
			return e.cat, true
		}
	}
	return Unclassified, false
}

// IsOutflow reports whether a nature value ("saída", "Saida", "SAÍDA") denotes an outflow.
func IsOutflow(nature string) bool {
	return strings.HasPrefix(Normalize(nature), "sa")
}

// Signed applies the nature sign to amount, ignoring any sign already stored.
func Signed(amount float64, nature string) float64 {
	if amount < 0 {
		amount = -amount
	}
	if IsOutflow(nature) {
		return -amount
	}
	return amount
}
