package employee

// Departments are offered as suggestions; any department of two or more
// characters is accepted.
var Departments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"HR",
	"Finance",
	"Operations",
	"IT",
	"Customer Support",
	"Product",
	"Design",
}
