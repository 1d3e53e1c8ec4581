package employee

import (
	"sort"
	"strings"
	"time"
)

type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	DepartmentID string
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	DepartmentName *string
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// SortByName orders employees by first name, then last name, then ID so that the order is
// stable across requests.
func SortByName(employees []Employee) {
	sort.SliceStable(employees, func(i, j int) bool {
		a, b := employees[i], employees[j]
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.ID < b.ID
	})
}
