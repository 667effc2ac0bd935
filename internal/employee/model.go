package employee

// Employee is a tracked worker. Employees reach a manager only through team membership.
type Employee struct {
	ID   int64
	Name string
}
