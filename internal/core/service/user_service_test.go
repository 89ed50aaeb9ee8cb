package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	u, err := svc.Create(context.Background(), ports.CreateUserInput{
		FullName: "Alice", Email: "Alice@Example.com", Role: "Colaborator", Password: "pass123",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %s", u.Email)
	}
	if u.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if u.Role != domain.RoleCollaborator {
		t.Fatalf("unexpected role: %s", u.Role)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	cases := []struct {
		name  string
		in    ports.CreateUserInput
		field string
		kind  error
	}{
		{"no name", ports.CreateUserInput{Email: "a@b.c", Role: "Administrator", Password: "x"}, "fullName", domain.ErrMissingField},
		{"no email", ports.CreateUserInput{FullName: "A", Role: "Administrator", Password: "x"}, "email", domain.ErrMissingField},
		{"no role", ports.CreateUserInput{FullName: "A", Email: "a@b.c", Password: "x"}, "role", domain.ErrMissingField},
		{"no password", ports.CreateUserInput{FullName: "A", Email: "a@b.c", Role: "Administrator"}, "password", domain.ErrMissingField},
		{"corrected spelling", ports.CreateUserInput{FullName: "A", Email: "a@b.c", Role: "Collaborator", Password: "x"}, "role", domain.ErrInvalidField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			var fe *domain.FieldError
			if !errors.As(err, &fe) || fe.Field != tc.field || !errors.Is(err, tc.kind) {
				t.Fatalf("expected %s error on %s, got %v", tc.kind, tc.field, err)
			}
		})
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())
	in := ports.CreateUserInput{FullName: "Bob", Email: "bob@example.com", Role: "Administrator", Password: "x"}

	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_ChangesRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u, _ := svc.Create(context.Background(), ports.CreateUserInput{FullName: "C", Email: "c@example.com", Role: "Colaborator", Password: "x"})

	if err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Role: "Project_Manager"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.byID[u.ID].Role != domain.RoleProjectManager {
		t.Fatalf("role not updated")
	}
	if repo.byID[u.ID].Name != "C" {
		t.Fatalf("empty fields must be left untouched")
	}

	if err := svc.Update(context.Background(), "missing", ports.UpdateUserInput{FullName: "x"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_SeedDemoUsers_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.SeedDemoUsers(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.SeedDemoUsers(context.Background()); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(repo.byID) != 3 {
		t.Fatalf("expected 3 demo users, got %d", len(repo.byID))
	}

	admin, err := repo.FindByEmail(context.Background(), "admin@example.com")
	if err != nil || admin.Role != domain.RoleAdministrator {
		t.Fatalf("admin not seeded: %v", err)
	}
}
