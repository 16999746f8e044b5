package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func TestGetEmployeeNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewStore(mock)
	if _, err := store.GetEmployee(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListEmployeesActiveOnly(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "email", "role_title", "level", "manager_id", "team_id", "status", "created_at", "updated_at"}).
		AddRow("e1", "Alice", "alice@example.com", "Engineer", LevelMember, "m1", "t1", StatusActive, now, now)

	mock.ExpectQuery("FROM employees\\s+WHERE status = 'active'").WillReturnRows(rows)

	store := NewStore(mock)
	employees, err := store.ListEmployees(context.Background(), true)
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	if len(employees) != 1 || employees[0].Name != "Alice" {
		t.Fatalf("unexpected result: %+v", employees)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateEmployeeReturnsID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO employees").
		WithArgs("Bob", "bob@example.com", "Lead", LevelLeader, nil, "t2", StatusActive).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("e2"))

	store := NewStore(mock)
	id, err := store.CreateEmployee(context.Background(), Employee{
		Name:      "Bob",
		Email:     "bob@example.com",
		RoleTitle: "Lead",
		Level:     LevelLeader,
		TeamID:    "t2",
		Status:    StatusActive,
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}
	if id != "e2" {
		t.Fatalf("expected id e2, got %q", id)
	}
}
