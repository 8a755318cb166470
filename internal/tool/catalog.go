package tool

import (
	"posbridge/internal/service"
	"posbridge/internal/toast"
)

// Services is everything the catalog dispatches into.
type Services struct {
	Orders      *service.OrderService
	Menus       *service.MenuService
	Labor       *service.LaborService
	Payments    *service.PaymentService
	Inventory   *service.InventoryService
	Cash        *service.CashService
	Restaurants *service.RestaurantService
	Reports     *service.ReportService
	Customers   *service.CustomerService
}

// NewServices wires every domain service onto one shared client.
func NewServices(c *toast.Client, bulkLimit int) Services {
	menus := service.NewMenuService(c, bulkLimit)
	return Services{
		Orders:      service.NewOrderService(c),
		Menus:       menus,
		Labor:       service.NewLaborService(c),
		Payments:    service.NewPaymentService(c),
		Inventory:   service.NewInventoryService(c, menus, bulkLimit),
		Cash:        service.NewCashService(c),
		Restaurants: service.NewRestaurantService(c),
		Reports:     service.NewReportService(c),
		Customers:   service.NewCustomerService(c),
	}
}

// Catalog returns the full tool surface.
func Catalog(s Services) []Tool {
	var all []Tool
	for _, group := range [][]Tool{
		orderTools(s.Orders),
		menuTools(s.Menus),
		employeeTools(s.Labor),
		laborTools(s.Labor),
		paymentTools(s.Payments),
		inventoryTools(s.Inventory),
		cashTools(s.Cash),
		restaurantTools(s.Restaurants),
		reportTools(s.Reports),
		customerTools(s.Customers),
	} {
		all = append(all, group...)
	}
	return all
}

// dateRange is shared by listings that accept a business date or a window.
type dateRange struct {
	BusinessDate int    `json:"businessDate,omitempty" validate:"omitempty,bizdate" desc:"Business date in YYYYMMDD format"`
	StartDate    string `json:"startDate,omitempty" validate:"omitempty,timestamp" desc:"Start date in ISO 8601 format"`
	EndDate      string `json:"endDate,omitempty" validate:"omitempty,timestamp" desc:"End date in ISO 8601 format"`
}

func (d dateRange) orderFilter() service.OrderFilter {
	return service.OrderFilter{BusinessDate: d.BusinessDate, StartDate: d.StartDate, EndDate: d.EndDate}
}

type businessDay struct {
	BusinessDate int `json:"businessDate" validate:"required,bizdate" desc:"Business date in YYYYMMDD format, e.g. 20240215"`
}
