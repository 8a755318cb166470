package report

import (
	"sort"
	"strings"
	"time"

	"posbridge/internal/model"
)

type IdentityKind string

const (
	ByPhone IdentityKind = "phone"
	ByEmail IdentityKind = "email"
	ByGUID  IdentityKind = "guid"
)

// Identity keys a customer by the first identifier present, in the order
// phone, email, platform GUID. The kind is part of the key, so an email that
// happens to equal some phone string never collides with it.
type Identity struct {
	Kind  IdentityKind `json:"kind"`
	Value string       `json:"value"`
}

// IdentityOf resolves the identity of c; ok is false when c carries none.
func IdentityOf(c *model.Customer) (Identity, bool) {
	switch {
	case c == nil:
		return Identity{}, false
	case c.Phone != "":
		return Identity{Kind: ByPhone, Value: c.Phone}, true
	case c.Email != "":
		return Identity{Kind: ByEmail, Value: c.Email}, true
	case c.GUID != "":
		return Identity{Kind: ByGUID, Value: c.GUID}, true
	default:
		return Identity{}, false
	}
}

type CustomerStats struct {
	Identity      Identity    `json:"identity"`
	GUID          string      `json:"guid,omitempty"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	Name          string      `json:"name,omitempty"`
	Email         string      `json:"email,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	OrderCount    int         `json:"orderCount"`
	TotalSpent    model.Money `json:"totalSpent"`
	LastOrderDate string      `json:"lastOrderDate"`

	lastOrder time.Time
}

// Directory is the per-identity accumulation over a window of orders, in
// first-seen order.
type Directory struct {
	byID  map[Identity]*CustomerStats
	order []Identity
}

// BuildDirectory counts every check that names a customer. The profile fields
// come from the first check seen for an identity.
func BuildDirectory(orders []model.Order) *Directory {
	d := &Directory{byID: make(map[Identity]*CustomerStats)}
	for _, o := range orders {
		opened, _ := o.Opened()
		for _, c := range o.Checks {
			id, ok := IdentityOf(c.Customer)
			if !ok {
				continue
			}
			st, seen := d.byID[id]
			if !seen {
				cust := c.Customer
				st = &CustomerStats{
					Identity:  id,
					GUID:      cust.GUID,
					FirstName: cust.FirstName,
					LastName:  cust.LastName,
					Name:      strings.TrimSpace(cust.FirstName + " " + cust.LastName),
					Email:     cust.Email,
					Phone:     cust.Phone,
				}
				d.byID[id] = st
				d.order = append(d.order, id)
			}
			st.OrderCount++
			st.TotalSpent += c.TotalAmount
			if st.LastOrderDate == "" || opened.After(st.lastOrder) {
				st.LastOrderDate = o.OpenedDate
				st.lastOrder = opened
			}
		}
	}
	return d
}

func (d *Directory) Len() int { return len(d.order) }

func (d *Directory) Get(id Identity) (CustomerStats, bool) {
	st, ok := d.byID[id]
	if !ok {
		return CustomerStats{}, false
	}
	return *st, true
}

// All returns every customer in first-seen order.
func (d *Directory) All() []CustomerStats {
	out := make([]CustomerStats, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, *d.byID[id])
	}
	return out
}

type CustomerFilter struct {
	Phone string
	Email string
	Name  string
}

// Search applies every non-empty filter: exact phone, case-insensitive email,
// and a case-insensitive substring of first or last name.
func Search(d *Directory, f CustomerFilter) []CustomerStats {
	name := strings.ToLower(f.Name)
	out := make([]CustomerStats, 0)
	for _, c := range d.All() {
		if f.Phone != "" && c.Phone != f.Phone {
			continue
		}
		if f.Email != "" && !strings.EqualFold(c.Email, f.Email) {
			continue
		}
		if name != "" &&
			!strings.Contains(strings.ToLower(c.FirstName), name) &&
			!strings.Contains(strings.ToLower(c.LastName), name) {
			continue
		}
		out = append(out, c)
	}
	return out
}

const (
	SortByFrequency  = "frequency"
	SortByTotalSpent = "totalSpent"

	DefaultTopCustomers = 25
)

type TopCustomersReport struct {
	Customers      []CustomerStats `json:"customers"`
	TotalCustomers int             `json:"totalCustomers"`
}

// Top ranks customers reachable by phone or email. Ties fall back to the most
// recent order, then to the identity value.
func Top(d *Directory, sortBy string, limit int) TopCustomersReport {
	if limit <= 0 {
		limit = DefaultTopCustomers
	}

	ranked := make([]CustomerStats, 0, d.Len())
	for _, c := range d.All() {
		if c.Identity.Kind == ByGUID {
			continue
		}
		ranked = append(ranked, c)
	}

	primary := func(c CustomerStats) int64 { return int64(c.TotalSpent) }
	if sortBy == SortByFrequency {
		primary = func(c CustomerStats) int64 { return int64(c.OrderCount) }
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if primary(a) != primary(b) {
			return primary(a) > primary(b)
		}
		if !a.lastOrder.Equal(b.lastOrder) {
			return a.lastOrder.After(b.lastOrder)
		}
		return a.Identity.Value < b.Identity.Value
	})

	r := TopCustomersReport{TotalCustomers: len(ranked)}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	r.Customers = ranked
	return r
}

type OrderHistoryReport struct {
	Orders          []model.Order `json:"orders"`
	OrderCount      int           `json:"orderCount"`
	TotalOrderCount int           `json:"totalOrderCount"`
	TotalSpent      model.Money   `json:"totalSpent"`
}

// OrderHistory returns the orders in which any check names the customer by
// phone or email, newest first. Totals cover the returned slice;
// TotalOrderCount counts every match.
func OrderHistory(orders []model.Order, phone, email string, limit int) OrderHistoryReport {
	matches := make([]model.Order, 0)
	for _, o := range orders {
		if OrderHasCustomer(o, phone, email) {
			matches = append(matches, o)
		}
	}
	sortNewestFirst(matches)

	r := OrderHistoryReport{TotalOrderCount: len(matches)}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	r.Orders = matches
	r.OrderCount = len(matches)
	for _, o := range matches {
		r.TotalSpent += o.CheckTotal()
	}
	return r
}

// OrderHasCustomer reports whether a check of o names a customer with the
// given phone or email. Empty arguments never match.
func OrderHasCustomer(o model.Order, phone, email string) bool {
	for _, c := range o.Checks {
		if c.Customer == nil {
			continue
		}
		if phone != "" && c.Customer.Phone == phone {
			return true
		}
		if email != "" && c.Customer.Email == email {
			return true
		}
	}
	return false
}

const recentLoyaltyOrders = 5

type LoyaltyStatus struct {
	LoyaltyIdentifier string        `json:"loyaltyIdentifier"`
	OrderCount        int           `json:"orderCount"`
	TotalPoints       int64         `json:"totalPoints"`
	RecentOrders      []model.Order `json:"recentOrders"`
}

// Loyalty earns one point per whole currency unit spent on checks that carry
// the loyalty identifier.
func Loyalty(orders []model.Order, identifier string) LoyaltyStatus {
	var spent model.Money
	matches := make([]model.Order, 0)
	for _, o := range orders {
		matched := false
		for _, c := range o.Checks {
			if c.AppliedLoyaltyInfo == nil || c.AppliedLoyaltyInfo.LoyaltyIdentifier != identifier {
				continue
			}
			matched = true
			spent += c.TotalAmount
		}
		if matched {
			matches = append(matches, o)
		}
	}
	sortNewestFirst(matches)

	s := LoyaltyStatus{
		LoyaltyIdentifier: identifier,
		OrderCount:        len(matches),
		TotalPoints:       floorDiv(int64(spent), 100),
	}
	if len(matches) > recentLoyaltyOrders {
		matches = matches[:recentLoyaltyOrders]
	}
	s.RecentOrders = matches
	return s
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func sortNewestFirst(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, _ := orders[i].Opened()
		b, _ := orders[j].Opened()
		return a.After(b)
	})
}
