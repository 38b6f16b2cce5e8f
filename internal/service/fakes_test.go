package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/restaurant-management/internal/model"
	"github.com/iliyamo/restaurant-management/internal/repository"
)

// fakeCatalog is an in-memory Catalog used by the workflow tests.
// The tx handle is ignored; atomicity is simulated by fakeRunner,
// which snapshots the catalog before the body runs and restores it
// when the body fails.
type fakeCatalog struct {
	nextID uint64

	employees map[uint64]model.Employee
	items     map[uint64]model.MenuItem
	tables    map[uint64]model.Table

	customers    map[uint64]model.Customer
	orders       map[uint64]model.Order // headers only
	orderLines   map[uint64][]storedLine
	billsByOrder map[uint64]model.Bill
	resByTable   map[uint64]model.Reservation
}

type storedLine struct {
	itemID   uint64
	quantity uint32
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		employees:    make(map[uint64]model.Employee),
		items:        make(map[uint64]model.MenuItem),
		tables:       make(map[uint64]model.Table),
		customers:    make(map[uint64]model.Customer),
		orders:       make(map[uint64]model.Order),
		orderLines:   make(map[uint64][]storedLine),
		billsByOrder: make(map[uint64]model.Bill),
		resByTable:   make(map[uint64]model.Reservation),
	}
}

func (f *fakeCatalog) id() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeCatalog) addEmployee(email string) uint64 {
	id := f.id()
	f.employees[id] = model.Employee{ID: id, Email: email, Role: model.RoleCashier}
	return id
}

func (f *fakeCatalog) addItem(name string, price float64) uint64 {
	id := f.id()
	f.items[id] = model.MenuItem{ID: id, Name: name, Price: price, Category: "Test"}
	return id
}

func (f *fakeCatalog) addTable() uint64 {
	id := f.id()
	f.tables[id] = model.Table{ID: id, Category: "Standard", Capacity: 4}
	return id
}

func (f *fakeCatalog) GetEmployee(_ context.Context, _ *sql.Tx, id uint64) (model.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return model.Employee{}, sql.ErrNoRows
	}
	return e, nil
}

func (f *fakeCatalog) GetMenuItem(_ context.Context, _ *sql.Tx, id uint64) (model.MenuItem, error) {
	m, ok := f.items[id]
	if !ok {
		return model.MenuItem{}, sql.ErrNoRows
	}
	return m, nil
}

func (f *fakeCatalog) GetTable(_ context.Context, _ *sql.Tx, id uint64) (model.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return model.Table{}, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeCatalog) InsertCustomer(_ context.Context, _ *sql.Tx, name string, phone *string) (uint64, error) {
	id := f.id()
	f.customers[id] = model.Customer{ID: id, Name: name, Phone: phone}
	return id, nil
}

func (f *fakeCatalog) InsertOrder(_ context.Context, _ *sql.Tx, employeeID, customerID uint64, at time.Time) (uint64, error) {
	id := f.id()
	f.orders[id] = model.Order{
		ID:           id,
		EmployeeID:   employeeID,
		CustomerID:   customerID,
		CustomerName: f.customers[customerID].Name,
		CreatedAt:    at,
	}
	return id, nil
}

func (f *fakeCatalog) InsertOrderLine(_ context.Context, _ *sql.Tx, orderID, itemID uint64, quantity uint32) error {
	f.orderLines[orderID] = append(f.orderLines[orderID], storedLine{itemID: itemID, quantity: quantity})
	return nil
}

func (f *fakeCatalog) GetOrderHeader(_ context.Context, _ *sql.Tx, orderID uint64) (model.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return model.Order{}, sql.ErrNoRows
	}
	return o, nil
}

func (f *fakeCatalog) GetOrderLines(_ context.Context, _ *sql.Tx, orderID uint64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	for _, l := range f.orderLines[orderID] {
		item := f.items[l.itemID]
		lines = append(lines, model.OrderLine{
			ItemID:    l.itemID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  l.quantity,
		})
	}
	return lines, nil
}

func (f *fakeCatalog) GetBillByOrder(_ context.Context, _ *sql.Tx, orderID uint64) (model.Bill, error) {
	b, ok := f.billsByOrder[orderID]
	if !ok {
		return model.Bill{}, sql.ErrNoRows
	}
	return b, nil
}

func (f *fakeCatalog) InsertBill(_ context.Context, _ *sql.Tx, orderID uint64, amount float64, method string, at time.Time) (uint64, error) {
	if _, ok := f.billsByOrder[orderID]; ok {
		return 0, repository.ErrDuplicate
	}
	id := f.id()
	f.billsByOrder[orderID] = model.Bill{ID: id, OrderID: orderID, Amount: amount, PaymentMethod: method, CreatedAt: at}
	return id, nil
}

func (f *fakeCatalog) GetReservationByTable(_ context.Context, _ *sql.Tx, tableID uint64) (model.Reservation, error) {
	r, ok := f.resByTable[tableID]
	if !ok {
		return model.Reservation{}, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeCatalog) InsertReservation(_ context.Context, _ *sql.Tx, customerID, tableID uint64, at time.Time) (uint64, error) {
	if _, ok := f.resByTable[tableID]; ok {
		return 0, repository.ErrDuplicate
	}
	id := f.id()
	f.resByTable[tableID] = model.Reservation{
		ID:           id,
		CustomerID:   customerID,
		CustomerName: f.customers[customerID].Name,
		TableID:      tableID,
		CreatedAt:    at,
	}
	return id, nil
}

func (f *fakeCatalog) DeleteReservation(_ context.Context, _ *sql.Tx, id uint64) (bool, error) {
	for tableID, r := range f.resByTable {
		if r.ID == id {
			delete(f.resByTable, tableID)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalog) DeleteOrder(_ context.Context, _ *sql.Tx, id uint64) (bool, error) {
	if _, ok := f.orders[id]; !ok {
		return false, nil
	}
	delete(f.orders, id)
	delete(f.orderLines, id)
	return true, nil
}

// snapshot deep-copies the mutable state so fakeRunner can restore
// it on rollback.
func (f *fakeCatalog) snapshot() *fakeCatalog {
	cp := newFakeCatalog()
	cp.nextID = f.nextID
	for k, v := range f.employees {
		cp.employees[k] = v
	}
	for k, v := range f.items {
		cp.items[k] = v
	}
	for k, v := range f.tables {
		cp.tables[k] = v
	}
	for k, v := range f.customers {
		cp.customers[k] = v
	}
	for k, v := range f.orders {
		cp.orders[k] = v
	}
	for k, v := range f.orderLines {
		cp.orderLines[k] = append([]storedLine(nil), v...)
	}
	for k, v := range f.billsByOrder {
		cp.billsByOrder[k] = v
	}
	for k, v := range f.resByTable {
		cp.resByTable[k] = v
	}
	return cp
}

func (f *fakeCatalog) restore(from *fakeCatalog) {
	f.nextID = from.nextID
	f.employees = from.employees
	f.items = from.items
	f.tables = from.tables
	f.customers = from.customers
	f.orders = from.orders
	f.orderLines = from.orderLines
	f.billsByOrder = from.billsByOrder
	f.resByTable = from.resByTable
}

// fakeRunner simulates the Coordinator against the fake catalog: it
// snapshots before the body runs, restores on error, and counts the
// terminal states so tests can assert commit/rollback behavior.
type fakeRunner struct {
	catalog   *fakeCatalog
	commits   int
	rollbacks int
}

func (r *fakeRunner) InTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	before := r.catalog.snapshot()
	if err := fn(nil); err != nil {
		r.catalog.restore(before)
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

// newTestEnv wires a fake catalog with its runner.
func newTestEnv() (*fakeCatalog, *fakeRunner) {
	cat := newFakeCatalog()
	return cat, &fakeRunner{catalog: cat}
}
