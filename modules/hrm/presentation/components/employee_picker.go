// Package components holds the stateful widgets shared by the hrm screens:
// the searchable employee picker and the attendance filter.
package components

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

// EmployeeLister is the read side of the employee service the picker needs.
type EmployeeLister interface {
	List(ctx context.Context, skip, limit int) (*employee.Page, error)
}

// EmployeeFetcher adapts an EmployeeLister to a list fetcher.
func EmployeeFetcher(src EmployeeLister) listing.Fetcher[employee.Employee] {
	return func(ctx context.Context, req listing.Request) (*listing.Page[employee.Employee], error) {
		page, err := src.List(ctx, req.Skip, req.Limit)
		if err != nil {
			return nil, err
		}
		return &listing.Page[employee.Employee]{Items: page.Employees, Pagination: page.Pagination}, nil
	}
}

// EmployeePicker is a paginated employee list with a search box and a single
// selection. Nothing is fetched until Open.
type EmployeePicker struct {
	list *listing.List[employee.Employee]

	mu       sync.Mutex
	selected *employee.Employee
}

func NewEmployeePicker(src EmployeeLister, pageSize int) *EmployeePicker {
	return &EmployeePicker{
		list: listing.New(EmployeeFetcher(src), listing.Options[employee.Employee]{
			PageSize: pageSize,
			Match:    employee.MatchesPicker,
		}),
	}
}

// Open reloads the first page. It runs every time the picker is shown.
func (p *EmployeePicker) Open(ctx context.Context) error {
	return p.list.Refresh(ctx)
}

func (p *EmployeePicker) Search(ctx context.Context, term string) error {
	return p.list.SetSearch(ctx, term)
}

func (p *EmployeePicker) LoadMore(ctx context.Context) (bool, error) {
	return p.list.LoadMore(ctx)
}

// LoadAll pages through every employee.
func (p *EmployeePicker) LoadAll(ctx context.Context) error {
	if p.list.Len() == 0 {
		if err := p.Open(ctx); err != nil {
			return err
		}
	}
	return p.list.LoadPages(ctx, 0)
}

// Options are the loaded employees matching the search term.
func (p *EmployeePicker) Options() []employee.Employee {
	return p.list.Visible()
}

func (p *EmployeePicker) List() *listing.List[employee.Employee] {
	return p.list
}

// Select picks a loaded employee by id. It reports false, leaving the
// selection unchanged, when no loaded employee has that id.
func (p *EmployeePicker) Select(employeeID string) (employee.Employee, bool) {
	employeeID = strings.TrimSpace(employeeID)
	for _, e := range p.list.Items() {
		if e.EmployeeID == employeeID {
			p.mu.Lock()
			p.selected = &e
			p.mu.Unlock()
			return e, true
		}
	}
	return employee.Employee{}, false
}

func (p *EmployeePicker) Selected() (employee.Employee, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected == nil {
		return employee.Employee{}, false
	}
	return *p.selected, true
}

func (p *EmployeePicker) Clear() {
	p.mu.Lock()
	p.selected = nil
	p.mu.Unlock()
}

// Suggest ranks the loaded employees whose name fuzzily contains query,
// closest first. At most limit results are returned; limit <= 0 means all.
func (p *EmployeePicker) Suggest(query string, limit int) []employee.Employee {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	items := p.list.Items()
	names := make([]string, len(items))
	for i, e := range items {
		names[i] = e.FullName
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := make([]employee.Employee, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, items[r.OriginalIndex])
	}
	return out
}
