package model

// TableKind describes one of the supported input table shapes.
type TableKind struct {
	Name   string // e.g. "pcts"
	Column string // source column holding the raw identifier
	Table  string // serving table in the planning schema
}

var (
	KindPCTS   = TableKind{Name: "pcts", Column: "case_number", Table: "pcts_cases"}
	KindZoning = TableKind{Name: "zoning", Column: "zoning", Table: "zoning_strings"}
)

// AllTableKinds lists the supported table kinds in canonical order.
var AllTableKinds = []TableKind{KindPCTS, KindZoning}

// TableKindNames returns just the names for all table kinds.
func TableKindNames() []string {
	names := make([]string, len(AllTableKinds))
	for i, k := range AllTableKinds {
		names[i] = k.Name
	}
	return names
}

// TableKindByName returns the TableKind for the given name, or ok=false.
func TableKindByName(name string) (TableKind, bool) {
	for _, k := range AllTableKinds {
		if k.Name == name {
			return k, true
		}
	}
	return TableKind{}, false
}
