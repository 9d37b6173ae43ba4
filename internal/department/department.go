package department

import (
	"fmt"
	"strings"
)

// Department identifies one of the five fixed approval queues. The set is
// static: departments are never created or removed at runtime.
type Department string

const (
	HeadOfDepartment     Department = "HEAD_OF_DEPARTMENT"
	DeputyGovernor       Department = "DEPUTY_GOVERNOR"
	PersonnelDepartment  Department = "PERSONNEL_DEPARTMENT"
	PurchasingDepartment Department = "PURCHASING_DEPARTMENT"
	Bookkeeping          Department = "BOOKKEEPING"
)

var labels = map[Department]string{
	HeadOfDepartment:     "Начальник управления",
	DeputyGovernor:       "Заместитель губернатора",
	PersonnelDepartment:  "Отдел кадров",
	PurchasingDepartment: "Отдел закупок",
	Bookkeeping:          "Бухгалтерия",
}

// downstream is the approval DAG: completing a department admits the trip
// into each listed department, subject to the join rule.
var downstream = map[Department][]Department{
	HeadOfDepartment:     {DeputyGovernor, PurchasingDepartment},
	DeputyGovernor:       {PersonnelDepartment},
	PersonnelDepartment:  {Bookkeeping},
	PurchasingDepartment: {Bookkeeping},
	Bookkeeping:          {},
}

// prerequisites is the reverse adjacency, derived once at init. A department
// opens only after every prerequisite department has completed.
var prerequisites = func() map[Department][]Department {
	prereqs := make(map[Department][]Department)
	for _, dep := range All() {
		for _, next := range downstream[dep] {
			prereqs[next] = append(prereqs[next], dep)
		}
	}
	return prereqs
}()

// All returns the departments in pipeline order.
func All() []Department {
	return []Department{
		HeadOfDepartment,
		DeputyGovernor,
		PersonnelDepartment,
		PurchasingDepartment,
		Bookkeeping,
	}
}

// Entry is the sole node with no prerequisites; every trip starts here.
func Entry() Department {
	return HeadOfDepartment
}

func (d Department) Label() string {
	return labels[d]
}

func (d Department) Downstream() []Department {
	return downstream[d]
}

func (d Department) Prerequisites() []Department {
	return prerequisites[d]
}

func (d Department) IsValid() bool {
	_, ok := labels[d]
	return ok
}

// Slug is the lowercase form used in URLs and query parameters.
func (d Department) Slug() string {
	return strings.ToLower(string(d))
}

// Parse resolves a department from its identifier or URL slug.
func Parse(s string) (Department, error) {
	d := Department(strings.ToUpper(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("unknown department: %q", s)
	}
	return d, nil
}
