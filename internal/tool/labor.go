package tool

import (
	"context"

	"posbridge/internal/service"
)

type employeeRef struct {
	Scope
	EmployeeGUID string `json:"employeeGuid" validate:"required"`
}

type listEmployeesArgs struct {
	Scope
	IncludeDeleted bool `json:"includeDeleted,omitempty" desc:"Include deleted and disabled employees"`
}

type createEmployeeArgs struct {
	Scope
	FirstName          string `json:"firstName" validate:"required"`
	LastName           string `json:"lastName" validate:"required"`
	Email              string `json:"email,omitempty" validate:"omitempty,email"`
	Phone              string `json:"phone,omitempty"`
	ExternalEmployeeID string `json:"externalEmployeeId,omitempty"`
	ChosenName         string `json:"chosenName,omitempty"`
	JobGUID            string `json:"jobGuid" validate:"required" desc:"Primary job GUID"`
}

type updateEmployeeArgs struct {
	employeeRef
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	ChosenName string `json:"chosenName,omitempty"`
}

type jobRef struct {
	Scope
	JobGUID string `json:"jobGuid" validate:"required"`
}

type employeeEntriesArgs struct {
	employeeRef
	dateRange
}

type laborFilterArgs struct {
	Scope
	dateRange
	EmployeeGUID string `json:"employeeGuid,omitempty"`
}

func (a laborFilterArgs) filter() service.LaborFilter {
	return service.LaborFilter{
		BusinessDate: a.BusinessDate,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		EmployeeGUID: a.EmployeeGUID,
	}
}

type shiftRef struct {
	Scope
	ShiftGUID string `json:"shiftGuid" validate:"required"`
}

type laborReportArgs struct {
	Scope
	businessDay
}

type employeeHoursArgs struct {
	employeeRef
	StartDate string `json:"startDate" validate:"required,timestamp"`
	EndDate   string `json:"endDate" validate:"required,timestamp"`
}

func employeeTools(s *service.LaborService) []Tool {
	return []Tool{
		New("toast_list_employees", "List the employees of a restaurant",
			func(ctx context.Context, a listEmployeesArgs) (any, error) {
				employees, err := s.Employees(ctx, a.RestaurantGUID, a.IncludeDeleted)
				if err != nil {
					return nil, err
				}
				return list("employees", employees), nil
			}),

		New("toast_get_employee", "Get detailed information about an employee",
			func(ctx context.Context, a employeeRef) (any, error) {
				employee, err := s.Employee(ctx, a.RestaurantGUID, a.EmployeeGUID)
				if err != nil {
					return nil, err
				}
				return one("employee", employee), nil
			}),

		New("toast_create_employee", "Create a new employee with a primary job",
			func(ctx context.Context, a createEmployeeArgs) (any, error) {
				employee, err := s.CreateEmployee(ctx, a.RestaurantGUID, service.NewEmployee{
					FirstName:          a.FirstName,
					LastName:           a.LastName,
					Email:              a.Email,
					Phone:              a.Phone,
					ExternalEmployeeID: a.ExternalEmployeeID,
					ChosenName:         a.ChosenName,
					JobGUID:            a.JobGUID,
				})
				if err != nil {
					return nil, err
				}
				return one("employee", employee), nil
			}),

		New("toast_update_employee", "Update employee information; omitted fields are left unchanged",
			func(ctx context.Context, a updateEmployeeArgs) (any, error) {
				res, err := s.UpdateEmployee(ctx, a.RestaurantGUID, a.EmployeeGUID, service.EmployeeUpdate{
					FirstName:  a.FirstName,
					LastName:   a.LastName,
					Email:      a.Email,
					Phone:      a.Phone,
					ChosenName: a.ChosenName,
				})
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_disable_employee", "Disable an employee; login is blocked but records are kept",
			func(ctx context.Context, a employeeRef) (any, error) {
				if err := s.DisableEmployee(ctx, a.RestaurantGUID, a.EmployeeGUID); err != nil {
					return nil, err
				}
				return done("employeeGuid", a.EmployeeGUID), nil
			}),

		New("toast_list_jobs", "List the job positions of a restaurant",
			func(ctx context.Context, a Scope) (any, error) {
				jobs, err := s.Jobs(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("jobs", jobs), nil
			}),

		New("toast_get_job", "Get detailed information about a job position",
			func(ctx context.Context, a jobRef) (any, error) {
				job, err := s.Job(ctx, a.RestaurantGUID, a.JobGUID)
				if err != nil {
					return nil, err
				}
				return one("job", job), nil
			}),

		New("toast_search_employees", "Search active employees by name, email or phone",
			func(ctx context.Context, a searchArgs) (any, error) {
				employees, err := s.SearchEmployees(ctx, a.RestaurantGUID, a.Query)
				if err != nil {
					return nil, err
				}
				return list("employees", employees), nil
			}),

		New("toast_get_employee_time_entries", "Get the clock-in and clock-out entries of an employee",
			func(ctx context.Context, a employeeEntriesArgs) (any, error) {
				entries, err := s.TimeEntries(ctx, a.RestaurantGUID, service.LaborFilter{
					BusinessDate: a.BusinessDate,
					StartDate:    a.StartDate,
					EndDate:      a.EndDate,
					EmployeeGUID: a.EmployeeGUID,
				})
				if err != nil {
					return nil, err
				}
				return list("timeEntries", entries), nil
			}),
	}
}

func laborTools(s *service.LaborService) []Tool {
	return []Tool{
		New("toast_list_shifts", "List shifts for a business date or date range",
			func(ctx context.Context, a laborFilterArgs) (any, error) {
				shifts, err := s.Shifts(ctx, a.RestaurantGUID, a.filter())
				if err != nil {
					return nil, err
				}
				return list("shifts", shifts), nil
			}),

		New("toast_get_shift", "Get detailed information about a shift",
			func(ctx context.Context, a shiftRef) (any, error) {
				shift, err := s.Shift(ctx, a.RestaurantGUID, a.ShiftGUID)
				if err != nil {
					return nil, err
				}
				return one("shift", shift), nil
			}),

		New("toast_get_active_shifts", "Get today's shifts that are still clocked in",
			func(ctx context.Context, a Scope) (any, error) {
				shifts, err := s.ActiveShifts(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("shifts", shifts), nil
			}),

		New("toast_list_time_entries", "List clock-in and clock-out entries for a date range",
			func(ctx context.Context, a laborFilterArgs) (any, error) {
				entries, err := s.TimeEntries(ctx, a.RestaurantGUID, a.filter())
				if err != nil {
					return nil, err
				}
				return list("timeEntries", entries), nil
			}),

		New("toast_get_labor_report", "Get hours and wages for a business date",
			func(ctx context.Context, a laborReportArgs) (any, error) {
				return s.Report(ctx, a.RestaurantGUID, a.BusinessDate)
			}),

		New("toast_get_employee_hours", "Get the hours an employee worked in a date range",
			func(ctx context.Context, a employeeHoursArgs) (any, error) {
				return s.Hours(ctx, a.RestaurantGUID, a.EmployeeGUID, a.StartDate, a.EndDate)
			}),
	}
}
