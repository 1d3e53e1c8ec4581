package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, newDepartment Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	ExistsByName(ctx context.Context, name string, excludeID *string) (bool, error)
	Update(ctx context.Context, d Department) (Department, error)
	Delete(ctx context.Context, id string) error

	// List returns departments ordered by name with their employee counts
	List(ctx context.Context) ([]Department, error)
}
