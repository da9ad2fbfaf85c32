package models

// OrgUnit is a named organizational reference (an area or an agencia).
type OrgUnit struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Employee is the identity record supplied by the employee lookup. Puesto,
// Area and Agencia are nil when the corresponding relation is missing.
type Employee struct {
	ID       int64    `json:"id"`
	Nombre   string   `json:"nombre"`
	Apellido string   `json:"apellido"`
	Puesto   *string  `json:"puesto"`
	Area     *OrgUnit `json:"area"`
	Agencia  *OrgUnit `json:"agencia"`
}

// FullName returns the display name persisted on analysis rows.
func (e Employee) FullName() string {
	return e.Nombre + " " + e.Apellido
}
