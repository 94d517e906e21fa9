package domain

// Branch is a master-data row resolved by the external directory; the
// engine only ever reads it to map branch codes to internal ids.
type Branch struct {
	ID         int64  `json:"id"`
	BranchCode string `json:"branchCode"`
	Name       string `json:"name"`
}

// User is a master-data row resolved by the external directory, used for
// recorder/closer/deleter attribution.
type User struct {
	ID           int64  `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
}

// DisplayName renders the "Name (CODE)" form the back office shows everywhere.
func (u User) DisplayName() string {
	if u.EmployeeCode == "" {
		return u.Name
	}
	return u.Name + " (" + u.EmployeeCode + ")"
}
