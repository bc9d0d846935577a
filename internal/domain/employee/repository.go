package employee

import "context"

// EmployeeRepository defines data access for employees. Every method takes
// orgID so one tenant can never read another tenant's rows.
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string, orgID string) (Employee, error)
	GetByEmail(ctx context.Context, email string, orgID string) (*Employee, error)
	List(ctx context.Context, filter EmployeeFilter, orgID string) ([]Employee, int64, error)
	Update(ctx context.Context, emp Employee) error
	GetActiveByOrgID(ctx context.Context, orgID string) ([]Employee, error)
}
