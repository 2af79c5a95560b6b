package domain

import "fmt"

// HospitalDirectory maps hospital identifiers to display names.
type HospitalDirectory map[string]string

// Name returns the display name for id, or "" when unknown.
func (d HospitalDirectory) Name(id string) string {
	return d[id]
}

// ParseHospitalDirectory builds a directory from a table with
// "id" and "name" columns. Later rows win on duplicate identifiers.
func ParseHospitalDirectory(t *Table) (HospitalDirectory, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidInput)
	}
	idCol, nameCol := t.Column("id"), t.Column("name")
	if idCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, "id")
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, "name")
	}

	dir := make(HospitalDirectory, len(t.Records))
	for _, rec := range t.Records {
		if idCol >= len(rec) {
			continue
		}
		name := ""
		if nameCol < len(rec) {
			name = rec[nameCol]
		}
		dir[rec[idCol]] = name
	}
	return dir, nil
}
