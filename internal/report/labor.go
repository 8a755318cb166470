package report

import (
	"github.com/shopspring/decimal"

	"posbridge/internal/model"
)

var overtimeMultiplier = decimal.RequireFromString("1.5")

type LaborReport struct {
	BusinessDate  int             `json:"businessDate"`
	TotalHours    decimal.Decimal `json:"totalHours"`
	RegularHours  decimal.Decimal `json:"regularHours"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	TotalWages    model.Money     `json:"totalWages"`
	EmployeeCount int             `json:"employeeCount"`
	ShiftCount    int             `json:"shiftCount"`
}

// Labor sums hours and wages over shifts. Hourly wages are in cents per hour;
// overtime pays 1.5x. Wages are accumulated exactly and rounded to whole
// cents once at the end.
func Labor(businessDate int, shifts []model.Shift) LaborReport {
	r := LaborReport{BusinessDate: businessDate, ShiftCount: len(shifts)}

	wages := decimal.Zero
	employees := make(map[string]struct{})
	for _, s := range shifts {
		r.RegularHours = r.RegularHours.Add(s.RegularHoursWorked)
		r.OvertimeHours = r.OvertimeHours.Add(s.OvertimeHoursWorked)

		wages = wages.
			Add(s.RegularHoursWorked.Mul(s.HourlyWage)).
			Add(s.OvertimeHoursWorked.Mul(s.HourlyWage).Mul(overtimeMultiplier))

		if guid := s.EmployeeGUID(); guid != "" {
			employees[guid] = struct{}{}
		}
	}

	r.TotalHours = r.RegularHours.Add(r.OvertimeHours)
	r.TotalWages = model.Money(wages.Round(0).IntPart())
	r.EmployeeCount = len(employees)
	return r
}

type EmployeeHours struct {
	EmployeeGUID  string          `json:"employeeGuid"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	TotalHours    decimal.Decimal `json:"totalHours"`
	RegularHours  decimal.Decimal `json:"regularHours"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	ShiftCount    int             `json:"shiftCount"`
}

func Hours(employeeGUID, start, end string, shifts []model.Shift) EmployeeHours {
	h := EmployeeHours{EmployeeGUID: employeeGUID, StartDate: start, EndDate: end, ShiftCount: len(shifts)}
	for _, s := range shifts {
		h.RegularHours = h.RegularHours.Add(s.RegularHoursWorked)
		h.OvertimeHours = h.OvertimeHours.Add(s.OvertimeHoursWorked)
	}
	h.TotalHours = h.RegularHours.Add(h.OvertimeHours)
	return h
}
