package employee_test

import (
	"testing"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-desk/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeFilter_Validate(t *testing.T) {
	valid := "01890a5d-ac96-774b-bcce-b302099a8057"
	malformed := "d1"
	badSort := "salary"

	tests := []struct {
		name   string
		filter employee.EmployeeFilter
		fields []string
	}{
		{"defaults", employee.EmployeeFilter{}, nil},
		{"department uuid", employee.EmployeeFilter{DepartmentID: &valid}, nil},
		{"malformed department id", employee.EmployeeFilter{DepartmentID: &malformed}, []string{"department_id"}},
		{"bad sort and limit", employee.EmployeeFilter{SortBy: badSort, Limit: 500}, []string{"sort_by", "limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			m := verrs.ToMap()
			assert.Len(t, m, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, m, f)
			}
		})
	}
}
