package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

const (
	employeesPath   = "/labor/v1/employees"
	jobsPath        = "/labor/v1/jobs"
	shiftsPath      = "/labor/v1/shifts"
	timeEntriesPath = "/labor/v1/timeEntries"
)

// LaborFilter narrows shift and time entry listings.
type LaborFilter struct {
	BusinessDate int
	StartDate    string
	EndDate      string
	EmployeeGUID string
}

func (f LaborFilter) pairs() []any {
	return []any{
		"businessDate", f.BusinessDate,
		"startDate", f.StartDate,
		"endDate", f.EndDate,
		"employeeGuid", f.EmployeeGUID,
	}
}

type NewEmployee struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	ExternalEmployeeID string `json:"externalEmployeeId,omitempty"`
	ChosenName         string `json:"chosenName,omitempty"`
	JobGUID            string `json:"-"`
}

// EmployeeUpdate carries only the fields to change; empty fields are left
// untouched upstream.
type EmployeeUpdate struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ChosenName string `json:"chosenName,omitempty"`
}

type LaborService struct {
	client *toast.Client
	now    func() time.Time
}

func NewLaborService(client *toast.Client) *LaborService {
	return &LaborService{client: client, now: time.Now}
}

// Employees walks the employee list. Deleted and disabled employees are
// dropped unless includeInactive is set.
func (s *LaborService) Employees(ctx context.Context, tenant string, includeInactive bool) ([]model.Employee, error) {
	resolved, q, err := scope(s.client, tenant)
	if err != nil {
		return nil, err
	}
	all, err := toast.WalkTokens[model.Employee](ctx, s.client, toast.Request{Path: employeesPath, Query: q, Tenant: resolved}, "employees")
	if err != nil {
		return nil, err
	}
	if includeInactive {
		return all, nil
	}
	active := make([]model.Employee, 0, len(all))
	for _, e := range all {
		if !e.Deleted && !e.Disabled {
			active = append(active, e)
		}
	}
	return active, nil
}

func (s *LaborService) Employee(ctx context.Context, tenant, employeeGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, employeesPath+"/"+employeeGUID)
}

func (s *LaborService) CreateEmployee(ctx context.Context, tenant string, e NewEmployee) (json.RawMessage, error) {
	body := struct {
		NewEmployee
		JobReferences []model.JobReference `json:"jobReferences"`
	}{e, []model.JobReference{{JobGUID: e.JobGUID}}}
	return send(ctx, s.client, tenant, http.MethodPost, employeesPath, body)
}

func (s *LaborService) UpdateEmployee(ctx context.Context, tenant, employeeGUID string, u EmployeeUpdate) (json.RawMessage, error) {
	return send(ctx, s.client, tenant, http.MethodPatch, employeesPath+"/"+employeeGUID, u)
}

func (s *LaborService) DisableEmployee(ctx context.Context, tenant, employeeGUID string) error {
	body := struct {
		Disabled bool `json:"disabled"`
	}{true}
	_, err := send(ctx, s.client, tenant, http.MethodPatch, employeesPath+"/"+employeeGUID, body)
	return err
}

// SearchEmployees matches active employees whose first name, last name or
// email contains q case-insensitively, or whose phone contains q.
func (s *LaborService) SearchEmployees(ctx context.Context, tenant, q string) ([]model.Employee, error) {
	active, err := s.Employees(ctx, tenant, false)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]model.Employee, 0)
	for _, e := range active {
		if strings.Contains(strings.ToLower(e.FirstName), needle) ||
			strings.Contains(strings.ToLower(e.LastName), needle) ||
			(e.Email != "" && strings.Contains(strings.ToLower(e.Email), needle)) ||
			(e.Phone != "" && strings.Contains(e.Phone, q)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *LaborService) Jobs(ctx context.Context, tenant string) ([]json.RawMessage, error) {
	return getList(ctx, s.client, tenant, jobsPath)
}

func (s *LaborService) Job(ctx context.Context, tenant, jobGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, jobsPath+"/"+jobGUID)
}

// TimeEntries walks clock-in/clock-out records matching f.
func (s *LaborService) TimeEntries(ctx context.Context, tenant string, f LaborFilter) ([]json.RawMessage, error) {
	resolved, q, err := scope(s.client, tenant, f.pairs()...)
	if err != nil {
		return nil, err
	}
	return toast.WalkTokens[json.RawMessage](ctx, s.client, toast.Request{Path: timeEntriesPath, Query: q, Tenant: resolved}, "timeEntries")
}

func (s *LaborService) Shifts(ctx context.Context, tenant string, f LaborFilter) ([]model.Shift, error) {
	resolved, q, err := scope(s.client, tenant, f.pairs()...)
	if err != nil {
		return nil, err
	}
	shifts, err := toast.Get[[]model.Shift](ctx, s.client, resolved, shiftsPath, q)
	if err != nil {
		return nil, err
	}
	if shifts == nil {
		shifts = []model.Shift{}
	}
	return shifts, nil
}

func (s *LaborService) Shift(ctx context.Context, tenant, shiftGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, shiftsPath+"/"+shiftGUID)
}

// ActiveShifts returns today's shifts that are clocked in and not deleted.
func (s *LaborService) ActiveShifts(ctx context.Context, tenant string) ([]model.Shift, error) {
	shifts, err := s.Shifts(ctx, tenant, LaborFilter{BusinessDate: model.BusinessDate(s.now())})
	if err != nil {
		return nil, err
	}
	active := make([]model.Shift, 0, len(shifts))
	for _, sh := range shifts {
		if sh.OutDate == "" && !sh.Deleted {
			active = append(active, sh)
		}
	}
	return active, nil
}

func (s *LaborService) Report(ctx context.Context, tenant string, businessDate int) (report.LaborReport, error) {
	shifts, err := s.Shifts(ctx, tenant, LaborFilter{BusinessDate: businessDate})
	if err != nil {
		return report.LaborReport{}, err
	}
	return report.Labor(businessDate, shifts), nil
}

func (s *LaborService) Hours(ctx context.Context, tenant, employeeGUID, start, end string) (report.EmployeeHours, error) {
	shifts, err := s.Shifts(ctx, tenant, LaborFilter{EmployeeGUID: employeeGUID, StartDate: start, EndDate: end})
	if err != nil {
		return report.EmployeeHours{}, err
	}
	return report.Hours(employeeGUID, start, end, shifts), nil
}
