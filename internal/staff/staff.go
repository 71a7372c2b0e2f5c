package staff

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/resto-crm/api/internal/enum"
)

// ErrEmployeeNotFound is returned when no employee matches the identity.
var ErrEmployeeNotFound = errors.New("employee not found")

// Employee is a staff profile. It is produced once at login and read-only for
// the rest of the session.
type Employee struct {
	ID     uuid.UUID
	Name   string
	Role   string
	Email  string
	Phone  string
	Avatar string
}

// Directory holds the employees known to the demo. Real deployments would
// swap this for an identity provider without touching the handlers.
type Directory struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]Employee
	demo Employee
}

// SeedDirectory returns a directory holding the demo employee.
func SeedDirectory() *Directory {
	e := Employee{
		ID:     uuid.New(),
		Name:   "Анна Смирнова",
		Role:   enum.RoleWaiter,
		Email:  "anna@restaurant.com",
		Phone:  "+7 999 888-77-66",
		Avatar: "female server",
	}
	return &Directory{
		byID: map[uuid.UUID]Employee{e.ID: e},
		demo: e,
	}
}

// Login accepts any credentials and returns the demo employee. A supplied
// email replaces the profile email for the session.
func (d *Directory) Login(email string) Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := d.demo
	if email != "" {
		e.Email = email
	}
	d.byID[e.ID] = e
	return e
}

// Get looks an employee up by identity.
func (d *Directory) Get(id uuid.UUID) (Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.byID[id]
	if !ok {
		return Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}
