package team

// Team represents a row in the team table. Each team is owned by exactly one manager.
type Team struct {
	ID        int64
	Name      string
	ManagerID int64
}
