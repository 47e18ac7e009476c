package dfc

import (
	"encoding/json"

	"github.com/farxc/dfc_dashboard/internal/period"
)

type Kind string

const (
	KindInfo     Kind = "info"
	KindGroup    Kind = "grupo"
	KindSubgroup Kind = "subgrupo"
	KindItem     Kind = "item"
	KindBalance  Kind = "saldo"
)

// Node is one row of the rendered table. Column amounts are flattened next
// to the conta/tipo fields when encoded.
type Node struct {
	Conta    string
	Tipo     Kind
	Values   period.Values
	Detalhes []Node
}

func (n Node) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Values)+3)
	for k, v := range n.Values {
		m[k] = v
	}
	m["conta"] = n.Conta
	m["tipo"] = n.Tipo
	if n.Detalhes != nil {
		m["detalhes"] = n.Detalhes
	}
	return json.Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON; numeric fields other than the
// reserved keys become column values.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node{Values: period.Values{}}
	for k, v := range raw {
		switch k {
		case "conta":
			if err := json.Unmarshal(v, &n.Conta); err != nil {
				return err
			}
		case "tipo":
			if err := json.Unmarshal(v, &n.Tipo); err != nil {
				return err
			}
		case "detalhes":
			if err := json.Unmarshal(v, &n.Detalhes); err != nil {
				return err
			}
		default:
			var f float64
			if err := json.Unmarshal(v, &f); err == nil {
				n.Values[k] = f
			}
		}
	}
	return nil
}

// InfoRow builds a single-level row such as the opening balance line.
func InfoRow(label string, kind Kind, values period.Values) Node {
	return Node{Conta: label, Tipo: kind, Values: values.Clone()}
}
