package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *toast.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return toast.NewClient(srv.URL, "rest-1", toast.StaticToken("test-token"), 2*time.Second)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestQuery_SkipsZeroValues(t *testing.T) {
	q := query("businessDate", 0, "startDate", "", "employeeGuid", "e1", "page", 2)
	assert.Equal(t, "e1", q.Get("employeeGuid"))
	assert.Equal(t, "2", q.Get("page"))
	assert.NotContains(t, q, "businessDate")
	assert.NotContains(t, q, "startDate")
}

func TestRunBulk_PartialFailure(t *testing.T) {
	keys := []string{"item-1", "item-2", "item-3", "item-4", "item-5"}

	res := runBulk(context.Background(), 2, keys, func(_ context.Context, i int) error {
		if i == 1 || i == 3 {
			return errors.New("boom")
		}
		return nil
	})

	assert.Equal(t, 3, res.SuccessCount)
	assert.Equal(t, 2, res.FailCount)
	assert.Equal(t, []BulkFailure{
		{ItemGUID: "item-2", Error: "boom"},
		{ItemGUID: "item-4", Error: "boom"},
	}, res.Failed)
}

func TestRunBulk_EmptyHasNonNilFailures(t *testing.T) {
	res := runBulk(context.Background(), 0, nil, func(context.Context, int) error { return nil })
	assert.NotNil(t, res.Failed)
	assert.Zero(t, res.SuccessCount)
}

func TestMenuService_Bulk86(t *testing.T) {
	var inFlight, maxInFlight int32
	var mu sync.Mutex
	patched := map[string]bool{}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, http.MethodPatch, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"outOfStock86":true}`, string(body))

		guid := strings.TrimPrefix(r.URL.Path, "/menus/v2/items/")
		if guid == "item-2" || guid == "item-4" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"item locked"}`))
			return
		}
		mu.Lock()
		patched[guid] = true
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})

	svc := NewMenuService(c, 2)
	res, err := svc.Bulk86(context.Background(), "", []string{"item-1", "item-2", "item-3", "item-4", "item-5"}, true)
	require.NoError(t, err)

	assert.Equal(t, 3, res.SuccessCount)
	assert.Equal(t, 2, res.FailCount)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, "item-2", res.Failed[0].ItemGUID)
	assert.Contains(t, res.Failed[0].Error, "item locked")
	assert.Equal(t, "item-4", res.Failed[1].ItemGUID)
	assert.Equal(t, map[string]bool{"item-1": true, "item-3": true, "item-5": true}, patched)
	assert.LessOrEqual(t, atomic.LoadInt32(&maxInFlight), int32(2))
}

func TestMenuService_Bulk86_NoTenant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))
	defer srv.Close()
	c := toast.NewClient(srv.URL, "", toast.StaticToken("t"), time.Second)

	_, err := NewMenuService(c, 2).Bulk86(context.Background(), "", []string{"a"}, true)
	require.ErrorIs(t, err, toast.ErrNoTenant)
}

const menusJSON = `[
	{"guid":"m1","name":"Lunch","groups":[
		{"guid":"g1","name":"Burgers","items":[
			{"guid":"i1","name":"Cheeseburger","sku":"BRG-01","price":1200},
			{"guid":"i2","name":"Veggie","plu":"4011","price":1100,"outOfStock86":true}
		]}
	]},
	{"guid":"m2","name":"Drinks","groups":[
		{"guid":"g2","name":"Soda","items":[
			{"guid":"i3","name":"Cola","price":300,"inheritedOutOfStock86":true},
			{"guid":"i4","name":"Lemonade","price":350}
		]}
	]}
]`

func menuServer(t *testing.T) *toast.Client {
	return newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/menus/v2/menus", r.URL.Path)
		assert.Equal(t, "rest-1", r.URL.Query().Get("restaurantGuid"))
		_, _ = w.Write([]byte(menusJSON))
	})
}

func TestMenuService_SearchItems(t *testing.T) {
	svc := NewMenuService(menuServer(t), 0)

	byName, err := svc.SearchItems(context.Background(), "", "BURGER")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "i1", byName[0].GUID)

	bySKU, err := svc.SearchItems(context.Background(), "", "brg")
	require.NoError(t, err)
	require.Len(t, bySKU, 1)

	byPLU, err := svc.SearchItems(context.Background(), "", "4011")
	require.NoError(t, err)
	require.Len(t, byPLU, 1)
	assert.Equal(t, "i2", byPLU[0].GUID)
}

func TestMenuService_OutOfStock(t *testing.T) {
	items, err := NewMenuService(menuServer(t), 0).OutOfStock(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "i2", items[0].GUID)
	assert.Equal(t, "i3", items[1].GUID)
}

func TestMenuService_Group(t *testing.T) {
	svc := NewMenuService(menuServer(t), 0)

	g, err := svc.Group(context.Background(), "", "g2")
	require.NoError(t, err)
	assert.Equal(t, "Soda", g.Name)
	assert.Len(t, g.Items, 2)

	_, err = svc.Group(context.Background(), "", "missing")
	require.Error(t, err)
	assert.Equal(t, "application", toast.Kind(err))
	assert.Contains(t, err.Error(), "missing")
}

func TestMenuService_GroupsAcrossMenus(t *testing.T) {
	groups, err := NewMenuService(menuServer(t), 0).Groups(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestOrderService_ListChecks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok-1", r.URL.Query().Get("pageToken"))
		assert.Equal(t, "20240215", r.URL.Query().Get("businessDate"))
		_, _ = w.Write([]byte(`{
			"orders":[
				{"guid":"o1","openedDate":"2024-02-15T12:00:00.000+0000","checks":[
					{"guid":"c1","voidStatus":"VOID","totalAmount":100},
					{"guid":"c2","totalAmount":200}
				]},
				{"guid":"o2","openedDate":"2024-02-15T13:00:00.000+0000","checks":[
					{"guid":"c3","voidStatus":"VOID","totalAmount":300}
				]}
			],
			"nextPageToken":"tok-2"
		}`))
	})
	svc := NewOrderService(c)

	page, err := svc.ListChecks(context.Background(), "", OrderFilter{BusinessDate: 20240215}, "VOID", "tok-1")
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "tok-2", page.NextPageToken)
	assert.Equal(t, "c1", page.Checks[0]["guid"])
	assert.Equal(t, "o1", page.Checks[0]["orderGuid"])
	assert.Equal(t, "2024-02-15T13:00:00.000+0000", page.Checks[1]["orderOpenedDate"])
}

func TestOrderService_VoidCheck(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/v2/orders/o1/checks/c1", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"voidStatus":"VOID","voidReason":"Voided via API","voidBusinessDate":20240215}`, string(body))
		_, _ = w.Write([]byte(`{"guid":"c1","voidStatus":"VOID"}`))
	})
	svc := NewOrderService(c)
	svc.now = fixedClock(time.Date(2024, 2, 15, 18, 30, 0, 0, time.Local))

	raw, err := svc.VoidCheck(context.Background(), "", "o1", "c1", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"guid":"c1","voidStatus":"VOID"}`, string(raw))
}

func TestOrderService_Create(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"restaurantGuid":"rest-1",
			"source":"ONLINE",
			"numberOfGuests":2,
			"checks":[{"selections":[{"itemGuid":"i1","quantity":2}],"customer":{"phone":"555"}}]
		}`, string(body))
		_, _ = w.Write([]byte(`{"guid":"o-new"}`))
	})

	raw, err := NewOrderService(c).Create(context.Background(), "", NewOrder{
		NumberOfGuests: 2,
		Selections:     []SelectionInput{{ItemGUID: "i1", Quantity: 2}},
		Customer:       &CustomerInput{Phone: "555"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"guid":"o-new"}`, string(raw))
}

func TestOrderService_Status(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"guid":"o1","openedDate":"x","voided":false,"checks":[
			{"selections":[{"displayName":"Fries","fulfillmentStatus":"READY"},{"displayName":"Soda","voided":true}]}
		]}`))
	})

	st, err := NewOrderService(c).Status(context.Background(), "", "o1")
	require.NoError(t, err)
	assert.Equal(t, []SelectionStatus{
		{ItemName: "Fries", FulfillmentStatus: "READY"},
		{ItemName: "Soda", Voided: true},
	}, st.SelectionStatuses)
}

func TestOrderService_SearchByCustomer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`[
			{"guid":"o1","extra":"kept","checks":[{"customer":{"phone":"555","email":"a@x.io"}}]},
			{"guid":"o2","checks":[{"customer":{"phone":"999","email":"b@x.io"}}]},
			{"guid":"o3","checks":[{}]},
			{"guid":"o4","checks":[{"customer":{"phone":"777","email":"b@x.io"}}]}
		]`))
	})
	svc := NewOrderService(c)

	byPhone, err := svc.SearchByCustomer(context.Background(), "", "555", "", OrderFilter{})
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.JSONEq(t, `{"guid":"o1","extra":"kept","checks":[{"customer":{"phone":"555","email":"a@x.io"}}]}`, string(byPhone[0]))

	byEmail, err := svc.SearchByCustomer(context.Background(), "", "", "b@x.io", OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	_, err = svc.SearchByCustomer(context.Background(), "", "", "", OrderFilter{})
	assert.Equal(t, "application", toast.Kind(err))
}

func TestLaborService_Employees(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Query().Get("pageToken") {
		case "":
			_, _ = w.Write([]byte(`{"employees":[
				{"guid":"e1","firstName":"Ann","lastName":"Lee","deleted":true},
				{"guid":"e2","firstName":"Bo","lastName":"Park","email":"bo@x.io"}
			],"nextPageToken":"p2"}`))
		case "p2":
			_, _ = w.Write([]byte(`{"employees":[
				{"guid":"e3","firstName":"Cy","lastName":"Ng","disabled":true},
				{"guid":"e4","firstName":"Di","lastName":"Bopp","phone":"555-0101"}
			]}`))
		default:
			t.Errorf("unexpected token %q", r.URL.Query().Get("pageToken"))
		}
	})
	svc := NewLaborService(c)

	active, err := svc.Employees(context.Background(), "", false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.Len(t, active, 2)
	assert.Equal(t, "e2", active[0].GUID)
	assert.Equal(t, "e4", active[1].GUID)

	all, err := svc.Employees(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	found, err := svc.SearchEmployees(context.Background(), "", "bo")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	byPhone, err := svc.SearchEmployees(context.Background(), "", "0101")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "e4", byPhone[0].GUID)
}

func TestLaborService_UpdateEmployeeSendsOnlySetFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"new@x.io"}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	})

	raw, err := NewLaborService(c).UpdateEmployee(context.Background(), "", "e1", EmployeeUpdate{Email: "new@x.io"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(raw))
}

func TestLaborService_CreateEmployee(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"firstName":"Ann","lastName":"Lee","jobReferences":[{"jobGuid":"j1"}]}`, string(body))
		_, _ = w.Write([]byte(`{"guid":"e9"}`))
	})

	_, err := NewLaborService(c).CreateEmployee(context.Background(), "", NewEmployee{FirstName: "Ann", LastName: "Lee", JobGUID: "j1"})
	require.NoError(t, err)
}

func TestLaborService_ActiveShifts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20240215", r.URL.Query().Get("businessDate"))
		_, _ = w.Write([]byte(`[
			{"guid":"s1","inDate":"2024-02-15T09:00:00.000+0000"},
			{"guid":"s2","inDate":"2024-02-15T08:00:00.000+0000","outDate":"2024-02-15T12:00:00.000+0000"},
			{"guid":"s3","inDate":"2024-02-15T08:00:00.000+0000","deleted":true}
		]`))
	})
	svc := NewLaborService(c)
	svc.now = fixedClock(time.Date(2024, 2, 15, 10, 0, 0, 0, time.Local))

	shifts, err := svc.ActiveShifts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "s1", shifts[0].GUID)
}

func TestLaborService_Report(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"guid":"s1","employeeReference":{"employeeGuid":"e1"},"regularHoursWorked":8,"overtimeHoursWorked":1,"hourlyWage":2000},
			{"guid":"s2","employeeReference":{"employeeGuid":"e2"},"regularHoursWorked":4.5,"hourlyWage":1600}
		]`))
	})

	r, err := NewLaborService(c).Report(context.Background(), "", 20240215)
	require.NoError(t, err)
	// 8*2000 + 1*2000*1.5 + 4.5*1600
	assert.Equal(t, model.Money(26200), r.TotalWages)
	assert.Equal(t, 2, r.EmployeeCount)
	assert.Equal(t, "13.5", r.TotalHours.String())
}

func TestInventoryService_LowStock(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/menus/v2/menus":
			_, _ = w.Write([]byte(menusJSON))
		case "/stock/v1/items/i1":
			_, _ = w.Write([]byte(`{"itemGuid":"i1","quantity":0,"outOfStock":true}`))
		case "/stock/v1/items/i2":
			w.WriteHeader(http.StatusNotFound)
		case "/stock/v1/items/i3":
			_, _ = w.Write([]byte(`{"itemGuid":"i3","infiniteQuantity":true}`))
		case "/stock/v1/items/i4":
			_, _ = w.Write([]byte(`{"itemGuid":"i4","quantity":2}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	svc := NewInventoryService(c, NewMenuService(c, 0), 0)

	low, err := svc.LowStock(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "i1", low[0].ItemGUID)
	assert.True(t, low[0].OutOfStock)

	low, err = svc.LowStock(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, low, 2)
}

// expiringToken serves ok tokens, then fails every exchange.
type expiringToken struct {
	ok    int32
	calls int32
}

func (e *expiringToken) Token(context.Context) (string, error) {
	if atomic.AddInt32(&e.calls, 1) > e.ok {
		return "", &toast.AuthError{Status: http.StatusUnauthorized, Message: "expired credentials"}
	}
	return "test-token", nil
}

func TestInventoryService_LowStockSurfacesNonHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(menusJSON))
	}))
	t.Cleanup(srv.Close)
	c := toast.NewClient(srv.URL, "rest-1", &expiringToken{ok: 1}, 2*time.Second)
	svc := NewInventoryService(c, NewMenuService(c, 0), 0)

	low, err := svc.LowStock(context.Background(), "", 0)
	assert.Nil(t, low)
	require.Error(t, err)
	assert.Equal(t, "auth", toast.Kind(err))
}

func TestInventoryService_BulkUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rest-1", r.URL.Query().Get("locationGuid"))
		var body struct {
			Quantity float64 `json:"quantity"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Quantity < 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	svc := NewInventoryService(c, nil, 3)

	res, err := svc.BulkUpdate(context.Background(), "", "", []StockUpdate{
		{ItemGUID: "a", Quantity: 1},
		{ItemGUID: "b", Quantity: -1},
		{ItemGUID: "c", Quantity: 3},
		{ItemGUID: "d", Quantity: -4},
		{ItemGUID: "e", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.SuccessCount)
	assert.Equal(t, 2, res.FailCount)
	assert.Equal(t, "b", res.Failed[0].ItemGUID)
	assert.Equal(t, "d", res.Failed[1].ItemGUID)
}

func TestPaymentService_CheckPayments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/v2/checks/c1", r.URL.Path)
		_, _ = w.Write([]byte(`{"guid":"c1","payments":[{"type":"CASH","amount":1000,"tipAmount":200},{"type":"CREDIT","amount":550}]}`))
	})

	res, err := NewPaymentService(c).CheckPayments(context.Background(), "", "c1")
	require.NoError(t, err)
	assert.Len(t, res.Payments, 2)
	assert.Equal(t, model.Money(1550), res.TotalPaid)
}

func TestPaymentService_Summary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"guid":"o1","checks":[{"payments":[{"type":"CASH","amount":1000},{"type":"CASH","amount":500,"tipAmount":50}]}]},
			{"guid":"o2","checks":[{"payments":[{"amount":70}]}]}
		]`))
	})

	sum, err := NewPaymentService(c).Summary(context.Background(), "", 20240215)
	require.NoError(t, err)
	assert.Equal(t, PaymentTypeAmounts{Amount: 1500, TipAmount: 50, Count: 2}, sum.PaymentsByType["CASH"])
	assert.Equal(t, PaymentTypeAmounts{Amount: 70, Count: 1}, sum.PaymentsByType["UNKNOWN"])
}

func TestCashService_CreateDepositDefaultsDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"amount":25000,"date":"2024-02-15T23:00:00.000Z"}`, string(body))
		_, _ = w.Write([]byte(`{"guid":"dep-1"}`))
	})
	svc := NewCashService(c)
	svc.now = fixedClock(time.Date(2024, 2, 15, 23, 0, 0, 0, time.UTC))

	_, err := svc.CreateDeposit(context.Background(), "", 25000, "")
	require.NoError(t, err)
}

func TestCashService_DrawerSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "d1", r.URL.Query().Get("drawerGuid"))
		_, _ = w.Write([]byte(`[
			{"type":"PAID_IN","amount":5000},
			{"type":"PAID_OUT","amount":-1200},
			{"type":"PAID_IN","amount":300,"deleted":true}
		]`))
	})

	s, err := NewCashService(c).DrawerSummary(context.Background(), "", "d1")
	require.NoError(t, err)
	assert.Equal(t, report.DrawerSummary{DrawerGUID: "d1", PaidIn: 5000, PaidOut: 1200, NetCash: 3800, EntryCount: 3}, s)
}

func TestCashService_VoidEntry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cashmgmt/v1/entries/ce1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, NewCashService(c).VoidEntry(context.Background(), "", "ce1"))
}

func TestRestaurantService(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/restaurants/v1/restaurants/rest-9", r.URL.Path)
		assert.Equal(t, "rest-9", r.Header.Get(toast.TenantHeader))
		_, _ = w.Write([]byte(`{"guid":"rest-9","tables":[{"guid":"t1","name":"T1"}],"revenuecenters":[{"guid":"rc1"}]}`))
	})
	svc := NewRestaurantService(c)
	ctx := context.Background()

	table, err := svc.Table(ctx, "rest-9", "t1")
	require.NoError(t, err)
	assert.Equal(t, "T1", table.Name)

	_, err = svc.Table(ctx, "rest-9", "t404")
	assert.Equal(t, "application", toast.Kind(err))

	centers, err := svc.RevenueCenters(ctx, "rest-9")
	require.NoError(t, err)
	assert.Len(t, centers, 1)

	areas, err := svc.ServiceAreas(ctx, "rest-9")
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)

	online, err := svc.OnlineOrdering(ctx, "rest-9")
	require.NoError(t, err)
	assert.False(t, online.Enabled)
}

func TestCustomerService_SearchWindow(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2023-11-17T12:00:00.000Z", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2024-02-15T12:00:00.000Z", r.URL.Query().Get("endDate"))
		_, _ = w.Write([]byte(`[
			{"guid":"o1","openedDate":"2024-02-01T12:00:00.000+0000","checks":[{"totalAmount":1000,"customer":{"phone":"555","email":"a@x.io","firstName":"Ann"}}]},
			{"guid":"o2","openedDate":"2024-02-02T12:00:00.000+0000","checks":[{"totalAmount":500,"customer":{"phone":"555","email":"other@x.io"}}]}
		]`))
	})
	svc := NewCustomerService(c)
	svc.now = fixedClock(time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC))

	found, err := svc.Search(context.Background(), "", report.CustomerFilter{Phone: "555"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].OrderCount)
	assert.Equal(t, model.Money(1500), found[0].TotalSpent)
}

func TestCustomerService_HistoryRequiresIdentifier(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	_, err := NewCustomerService(c).History(context.Background(), "", "", "", 10)
	require.Error(t, err)
	assert.Equal(t, "application", toast.Kind(err))
}

func TestReportService_WalkFailureFailsReport(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		orders := make([]model.Order, 100)
		for i := range orders {
			orders[i] = model.Order{GUID: "o", Checks: []model.Check{{Amount: 100, TotalAmount: 100}}}
		}
		_ = json.NewEncoder(w).Encode(orders)
	})

	_, err := NewReportService(c).Sales(context.Background(), "", 20240215)
	require.Error(t, err)
	assert.Equal(t, "http", toast.Kind(err))
}
