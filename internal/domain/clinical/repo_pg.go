package clinical

import "github.com/jackc/pgx/v5"

const patientJoin = `JOIN patient p ON p.id = t.patient_id`
const patientRefCols = `p.patient_code, p.first_name || ' ' || p.last_name`

// patientFilter is shared by every list query; $1 is the optional patient id.
const patientFilter = `WHERE ($1::uuid IS NULL OR t.patient_id = $1)`

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var items []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
