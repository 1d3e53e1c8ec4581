package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
)

// Cell is one employee on one date. Mark is nil when nothing was recorded.
type Cell struct {
	Mark *Mark
	Day  DayClassification
}

type Row struct {
	Employee employee.Employee
	Cells    []Cell
	Present  int
	Absent   int
}

// Matrix is employees (rows) by dates (columns).
type Matrix struct {
	Days []DayClassification
	Rows []Row
}

type markKey struct {
	employeeID string
	date       string
}

func keyOf(employeeID string, date time.Time) markKey {
	return markKey{employeeID: employeeID, date: calendar.Format(date)}
}

// BuildMatrix lays out marks for employees over dates. Rows are ordered by first name then
// last name; columns follow the order of dates.
func BuildMatrix(employees []employee.Employee, marks []Mark, dates []time.Time, holidays []holiday.Holiday) Matrix {
	byKey := make(map[markKey]Mark, len(marks))
	for _, m := range marks {
		byKey[keyOf(m.EmployeeID, m.Date)] = m
	}

	days := make([]DayClassification, len(dates))
	for i, d := range dates {
		days[i] = Classify(d, holidays)
	}

	sorted := make([]employee.Employee, len(employees))
	copy(sorted, employees)
	employee.SortByName(sorted)

	rows := make([]Row, 0, len(sorted))
	for _, emp := range sorted {
		row := Row{Employee: emp, Cells: make([]Cell, len(dates))}
		for i, d := range dates {
			cell := Cell{Day: days[i]}
			if m, ok := byKey[keyOf(emp.ID, d)]; ok {
				mark := m
				cell.Mark = &mark
				switch m.Status {
				case StatusPresent:
					row.Present++
				case StatusAbsent:
					row.Absent++
				}
			}
			row.Cells[i] = cell
		}
		rows = append(rows, row)
	}

	return Matrix{Days: days, Rows: rows}
}

// Aggregate counts marks for a single date.
type Aggregate struct {
	Total   int
	Present int
	Absent  int
}

func (a *Aggregate) add(s Status) {
	switch s {
	case StatusPresent:
		a.Present++
	case StatusAbsent:
		a.Absent++
	default:
		return
	}
	a.Total++
}

// DailyAggregate counts the marks recorded on date.
func DailyAggregate(marks []Mark, date time.Time) Aggregate {
	var agg Aggregate
	for _, m := range marks {
		if calendar.SameDay(m.Date, date) {
			agg.add(m.Status)
		}
	}
	return agg
}

// Aggregates returns DailyAggregate for each of dates in a single pass over marks.
func Aggregates(marks []Mark, dates []time.Time) []Aggregate {
	idx := make(map[string]int, len(dates))
	for i, d := range dates {
		idx[calendar.Format(d)] = i
	}

	out := make([]Aggregate, len(dates))
	for _, m := range marks {
		if i, ok := idx[calendar.Format(m.Date)]; ok {
			out[i].add(m.Status)
		}
	}
	return out
}
