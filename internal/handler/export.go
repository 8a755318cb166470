package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"posbridge/internal/model"
	"posbridge/internal/service"
)

// table is a report flattened to rows for export.
type table struct {
	sheet  string
	header []string
	rows   [][]any
}

type exporter func(ctx context.Context, tenant string, businessDate int) (table, error)

// ExportHandler serves GET /api/reports/{kind}/export?businessDate=YYYYMMDD&format=csv|xlsx.
func ExportHandler(reports *service.ReportService, labor *service.LaborService) http.HandlerFunc {
	exporters := map[string]exporter{
		"sales":     salesTable(reports),
		"hourly":    hourlyTable(reports),
		"items":     itemsTable(reports),
		"payments":  paymentsTable(reports),
		"discounts": discountsTable(reports),
		"labor":     laborTable(labor),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		export, ok := exporters[kind]
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("unknown report %q", kind))
			return
		}

		q := r.URL.Query()
		businessDate, err := parseBusinessDate(q.Get("businessDate"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		format := q.Get("format")
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "xlsx" {
			writeError(w, http.StatusBadRequest, "validation", "invalid format (use csv or xlsx)")
			return
		}

		t, err := export(r.Context(), q.Get("restaurantGuid"), businessDate)
		if err != nil {
			writeFailure(w, err)
			return
		}

		filename := fmt.Sprintf("%s_%d.%s", kind, businessDate, format)
		var data []byte
		switch format {
		case "csv":
			data, err = t.csv()
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		case "xlsx":
			data, err = t.xlsx()
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		}
		if err != nil {
			writeFailure(w, fmt.Errorf("render %s: %w", format, err))
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, _ = w.Write(data)
	}
}

func parseBusinessDate(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("businessDate is required")
	}
	if _, err := time.Parse("20060102", raw); err != nil {
		return 0, fmt.Errorf("businessDate must be YYYYMMDD")
	}
	return strconv.Atoi(raw)
}

// dollars renders cents with two decimals.
func dollars(m model.Money) string {
	return decimal.New(int64(m), -2).StringFixed(2)
}

func salesTable(s *service.ReportService) exporter {
	return func(ctx context.Context, tenant string, businessDate int) (table, error) {
		sum, err := s.Sales(ctx, tenant, businessDate)
		if err != nil {
			return table{}, err
		}
		return table{
			sheet:  "Sales",
			header: []string{"Metric", "Value"},
			rows: [][]any{
				{"Business Date", sum.BusinessDate},
				{"Total Sales", dollars(sum.TotalSales)},
				{"Gross Sales", dollars(sum.GrossSales)},
				{"Net Sales", dollars(sum.NetSales)},
				{"Tax", dollars(sum.TaxAmount)},
				{"Tips", dollars(sum.TipAmount)},
				{"Discounts", dollars(sum.DiscountAmount)},
				{"Voids", dollars(sum.VoidAmount)},
				{"Refunds", dollars(sum.RefundAmount)},
				{"Guests", sum.GuestCount},
				{"Checks", sum.CheckCount},
				{"Average Check", sum.AverageCheck.StringFixed(2)},
				{"Average Guest Spend", sum.AverageGuestSpend.StringFixed(2)},
			},
		}, nil
	}
}

func hourlyTable(s *service.ReportService) exporter {
	return func(ctx context.Context, tenant string, businessDate int) (table, error) {
		h, err := s.Hourly(ctx, tenant, businessDate)
		if err != nil {
			return table{}, err
		}
		t := table{sheet: "Hourly", header: []string{"Hour", "Sales", "Orders", "Guests"}}
		for _, b := range h.HourlyBreakdown {
			t.rows = append(t.rows, []any{b.Hour, dollars(b.Sales), b.Orders, b.Guests})
		}
		return t, nil
	}
}

func itemsTable(s *service.ReportService) exporter {
	return func(ctx context.Context, tenant string, businessDate int) (table, error) {
		rep, err := s.ItemSales(ctx, tenant, service.OrderFilter{BusinessDate: businessDate}, 0)
		if err != nil {
			return table{}, err
		}
		t := table{sheet: "Items", header: []string{"Item GUID", "Item", "Quantity", "Gross Sales", "Net Sales"}}
		for _, it := range rep.Items {
			t.rows = append(t.rows, []any{it.ItemGUID, it.ItemName, it.Quantity, dollars(it.GrossSales), dollars(it.NetSales)})
		}
		return t, nil
	}
}

func paymentsTable(s *service.ReportService) exporter {
	return func(ctx context.Context, tenant string, businessDate int) (table, error) {
		rep, err := s.PaymentTypes(ctx, tenant, businessDate)
		if err != nil {
			return table{}, err
		}
		t := table{sheet: "Payments", header: []string{"Type", "Amount", "Tips", "Count"}}
		for _, p := range rep.PaymentTypes {
			t.rows = append(t.rows, []any{p.Type, dollars(p.Amount), dollars(p.TipAmount), p.Count})
		}
		return t, nil
	}
}

func discountsTable(s *service.ReportService) exporter {
	return func(ctx context.Context, tenant string, businessDate int) (table, error) {
		rep, err := s.Discounts(ctx, tenant, businessDate)
		if err != nil {
			return table{}, err
		}
		t := table{sheet: "Discounts", header: []string{"Discount GUID", "Name", "Amount", "Count"}}
		for _, d := range rep.Discounts {
			t.rows = append(t.rows, []any{d.DiscountGUID, d.Name, dollars(d.Amount), d.Count})
		}
		return t, nil
	}
}

func laborTable(s *service.LaborService) exporter {
	return func(ctx context.Context, tenant string, businessDate int) (table, error) {
		rep, err := s.Report(ctx, tenant, businessDate)
		if err != nil {
			return table{}, err
		}
		return table{
			sheet:  "Labor",
			header: []string{"Metric", "Value"},
			rows: [][]any{
				{"Business Date", rep.BusinessDate},
				{"Total Hours", rep.TotalHours.String()},
				{"Regular Hours", rep.RegularHours.String()},
				{"Overtime Hours", rep.OvertimeHours.String()},
				{"Total Wages", dollars(rep.TotalWages)},
				{"Employees", rep.EmployeeCount},
				{"Shifts", rep.ShiftCount},
			},
		}, nil
	}
}

func (t table) csv() ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write(t.header)
	for _, row := range t.rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		_ = w.Write(record)
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (t table) xlsx() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), t.sheet); err != nil {
		return nil, err
	}

	for c, v := range t.header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(t.sheet, cell, v)
	}
	for r, row := range t.rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(t.sheet, cell, v)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(t.header), 1)
		_ = f.SetCellStyle(t.sheet, "A1", last, style)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
