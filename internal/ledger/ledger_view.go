package ledger

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const employeeListTemplate = "employee_list.html"

var viewTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type employeeListView struct {
	BasePath  string
	Employees []EmployeeWithHistoryResponse
}
