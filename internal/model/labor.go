package model

import "github.com/shopspring/decimal"

type Employee struct {
	GUID               string         `json:"guid"`
	FirstName          string         `json:"firstName"`
	LastName           string         `json:"lastName"`
	ChosenName         string         `json:"chosenName,omitempty"`
	Email              string         `json:"email,omitempty"`
	Phone              string         `json:"phone,omitempty"`
	ExternalEmployeeID string         `json:"externalEmployeeId,omitempty"`
	Deleted            bool           `json:"deleted"`
	Disabled           bool           `json:"disabled"`
	JobReferences      []JobReference `json:"jobReferences,omitempty"`
}

type JobReference struct {
	GUID    string `json:"guid,omitempty"`
	JobGUID string `json:"jobGuid"`
}

type EmployeeReference struct {
	GUID         string `json:"guid,omitempty"`
	EmployeeGUID string `json:"employeeGuid"`
}

// Shift hours arrive as fractional numbers; they are decoded into decimals so
// that wage math stays exact until the final rounding to cents.
type Shift struct {
	GUID                string             `json:"guid"`
	InDate              string             `json:"inDate"`
	OutDate             string             `json:"outDate,omitempty"`
	Deleted             bool               `json:"deleted"`
	BusinessDate        int                `json:"businessDate,omitempty"`
	EmployeeReference   *EmployeeReference `json:"employeeReference,omitempty"`
	JobReference        *JobReference      `json:"jobReference,omitempty"`
	RegularHoursWorked  decimal.Decimal    `json:"regularHoursWorked"`
	OvertimeHoursWorked decimal.Decimal    `json:"overtimeHoursWorked"`
	HourlyWage          decimal.Decimal    `json:"hourlyWage"`
	BreakTimeSeconds    int                `json:"breakTimeSeconds,omitempty"`
}

// EmployeeGUID returns the referenced employee, or "" when the shift has none.
func (s Shift) EmployeeGUID() string {
	if s.EmployeeReference == nil {
		return ""
	}
	return s.EmployeeReference.EmployeeGUID
}
