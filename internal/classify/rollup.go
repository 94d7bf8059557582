package classify

import "fmt"

// RollUpChildren drops child cases and, when keepChildEntitlements is set,
// ORs every child's indicator cells into its parent first. A case is a
// child when its parent_case_id is set and differs from its own case_id.
// Parents keep their original order.
func RollUpChildren(t *CaseTable, keepChildEntitlements bool) (*CaseTable, error) {
	if t.Rows == nil {
		return nil, fmt.Errorf("roll up: parent case ids need source rows")
	}

	var parents []int
	parentRow := make(map[int64][]int) // case id -> parent row indices
	for i, row := range t.Rows {
		if isChild(t, i) {
			continue
		}
		parents = append(parents, i)
		parentRow[row.CaseID] = append(parentRow[row.CaseID], i)
	}
	out := t.subset(parents)
	if !keepChildEntitlements {
		return out, nil
	}

	// Map original row index to its position in out.
	pos := make(map[int]int, len(parents))
	for j, i := range parents {
		pos[i] = j
	}
	for i, row := range t.Rows {
		if !isChild(t, i) {
			continue
		}
		for _, p := range parentRow[*row.ParentCaseID] {
			j := pos[p]
			for c := range out.Columns {
				if t.Columns[c].Values[i] {
					out.Columns[c].Values[j] = true
				}
			}
		}
	}
	return out, nil
}

func isChild(t *CaseTable, i int) bool {
	p := t.Rows[i].ParentCaseID
	return p != nil && *p != t.Rows[i].CaseID
}
