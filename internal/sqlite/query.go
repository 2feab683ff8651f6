package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// attributeColumns is the set of control table columns predicates may
// reference. Predicate values are always bound as parameters; only these
// vetted column names reach the SQL text.
var attributeColumns = map[string]bool{
	types.ColSystem: true,
	types.ColKind:   true,
	types.ColSchema: true,
	types.ColTable:  true,
}

// QueryFilenames returns the distinct document filenames synthesized from
// control table rows matching every predicate. An empty predicate list
// matches the whole table.
func (s *Store) QueryFilenames(preds ...types.Predicate) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	if err := checkIdent(s.Control()); err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`SELECT DISTINCT %s || '_' || %s || '_' || %s || '_' || %s || '.json' AS filename FROM %s`,
		types.ColSystem, types.ColKind, types.ColSchema, types.ColTable, s.Control(),
	)

	args := make([]any, 0, len(preds))
	for i, p := range preds {
		if !attributeColumns[p.Column] {
			return nil, fmt.Errorf("%w: %q", types.ErrBadPredicate, p.Column)
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.Column)
		sb.WriteString(" = ?")
		args = append(args, p.Value)
	}
	sb.WriteString(" ORDER BY filename")

	rows, err := s.db.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.Control(), err)
	}
	defer rows.Close()

	var filenames []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning filename: %w", err)
		}
		filenames = append(filenames, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filenames: %w", err)
	}
	return filenames, nil
}
