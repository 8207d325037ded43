package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/repository"
)

func newAccountService(users *mockUserRepository) *AccountService {
	return NewAccountService(newTestController(users, newMockProductRepository()), zerolog.Nop())
}

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		setupRepo func(*mockUserRepository)
	}{
		{
			name: "success",
			input: RegisterInput{
				Username: "carlos",
				Email:    "carlos@example.com",
				Password: "secret123",
			},
		},
		{
			name: "username and email are stored trimmed",
			input: RegisterInput{
				Username: "  carlos  ",
				Email:    "  carlos@example.com  ",
				Password: "secret123",
			},
		},
		{
			name: "validation failure",
			input: RegisterInput{
				Username: "ab",
				Email:    "carlos@example.com",
				Password: "secret123",
			},
			wantErr: ErrUsernameTooShort,
		},
		{
			name: "duplicate username",
			input: RegisterInput{
				Username: "carlos",
				Email:    "fresh@example.com",
				Password: "secret123",
			},
			wantErr: domain.ErrUserAlreadyExists,
			setupRepo: func(m *mockUserRepository) {
				m.users["carlos"] = &domain.User{ID: 1, Username: "carlos", Email: "carlos@example.com"}
			},
		},
		{
			name: "duplicate email",
			input: RegisterInput{
				Username: "fresh",
				Email:    "carlos@example.com",
				Password: "secret123",
			},
			wantErr: domain.ErrUserAlreadyExists,
			setupRepo: func(m *mockUserRepository) {
				m.users["carlos"] = &domain.User{ID: 1, Username: "carlos", Email: "carlos@example.com"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMockUserRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(users)
			}
			svc := newAccountService(users)

			output, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.UserID == 0 {
				t.Error("expected a non-zero user id")
			}
			if output.Degraded {
				t.Error("expected a durable registration, got degraded")
			}

			stored, err := users.GetByID(context.Background(), output.UserID)
			if err != nil {
				t.Fatalf("user not stored: %v", err)
			}
			if stored.Username != "carlos" {
				t.Errorf("expected stored username carlos, got %q", stored.Username)
			}
			if stored.Email != "carlos@example.com" {
				t.Errorf("expected stored email carlos@example.com, got %q", stored.Email)
			}
			if stored.PasswordHash == tt.input.Password || stored.PasswordHash == "" {
				t.Error("expected a hashed password in the store")
			}
		})
	}
}

func TestAccountService_Register_Degraded(t *testing.T) {
	users := newMockUserRepository()
	users.createErr = repository.NewUnreachable(errors.New("connection refused"))
	svc := newAccountService(users)

	output, err := svc.Register(context.Background(), RegisterInput{
		Username: "carlos",
		Email:    "carlos@example.com",
		Password: "secret123",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Degraded {
		t.Error("expected a degraded registration")
	}
	if output.UserID == 0 {
		t.Error("expected a synthesized user id")
	}
	if len(users.users) != 0 {
		t.Error("degraded registration must not reach the store")
	}
}

func TestAccountService_Login(t *testing.T) {
	register := func(t *testing.T, svc *AccountService) int64 {
		t.Helper()
		output, err := svc.Register(context.Background(), RegisterInput{
			Username: "carlos",
			Email:    "carlos@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("registration failed: %v", err)
		}
		return output.UserID
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc := newAccountService(newMockUserRepository())
		userID := register(t, svc)

		output, err := svc.Login(context.Background(), LoginInput{
			Username: "carlos",
			Password: "secret123",
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Degraded {
			t.Error("expected a verified login, got degraded")
		}
		if output.User.ID != userID {
			t.Errorf("expected user id %d, got %d", userID, output.User.ID)
		}
		if output.User.Username != "carlos" || output.User.Email != "carlos@example.com" {
			t.Errorf("unexpected identity view: %+v", output.User)
		}
	})

	t.Run("wrong password yields the generic error", func(t *testing.T) {
		svc := newAccountService(newMockUserRepository())
		register(t, svc)

		_, err := svc.Login(context.Background(), LoginInput{
			Username: "carlos",
			Password: "wrong-password",
		})

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username yields the same generic error", func(t *testing.T) {
		svc := newAccountService(newMockUserRepository())

		_, err := svc.Login(context.Background(), LoginInput{
			Username: "nobody",
			Password: "secret123",
		})

		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		svc := newAccountService(newMockUserRepository())

		_, err := svc.Login(context.Background(), LoginInput{Username: "carlos"})

		if !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
	})

	t.Run("degraded login skips password verification", func(t *testing.T) {
		users := newMockUserRepository()
		users.getErr = repository.NewUnreachable(errors.New("connection refused"))
		svc := newAccountService(users)

		output, err := svc.Login(context.Background(), LoginInput{
			Username: "carlos",
			Password: "anything-at-all",
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Degraded {
			t.Error("expected a degraded login")
		}
		if output.User.ID != 1 {
			t.Errorf("expected synthesized id 1, got %d", output.User.ID)
		}
		if output.User.Username != "carlos" {
			t.Errorf("expected the supplied username, got %q", output.User.Username)
		}
		if output.User.Email != "test@test.com" {
			t.Errorf("expected the synthesized email, got %q", output.User.Email)
		}
	})
}
