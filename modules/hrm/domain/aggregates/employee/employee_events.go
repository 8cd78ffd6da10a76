package employee

type CreatedEvent struct {
	Data   CreateDTO
	Result Employee
}

type DeletedEvent struct {
	EmployeeID string
}
