package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/niteshkumar/dealdesk-api/pkg/apperror"
	"github.com/niteshkumar/dealdesk-api/pkg/utils"
)

type fakeUserStore struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeRoleStore struct {
	roles map[string]*entity.Role
}

func (f *fakeRoleStore) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return f.roles[name], nil
}

func newAuthFixture() *AuthService {
	roles := &fakeRoleStore{roles: map[string]*entity.Role{
		"sales": {
			ID:   1,
			Name: "sales",
			Permissions: []entity.Permission{
				{ID: 1, Name: "manage-leads"},
				{ID: 2, Name: "manage-pricing"},
			},
		},
	}}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(newFakeUserStore(), roles, jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	result, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Nitesh",
		LastName:  "Kumar",
		Email:     "nitesh@dealdesk.test",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("tokens not issued on register")
	}
	// Empty role defaults to sales.
	if names := result.User.RoleNames(); len(names) != 1 || names[0] != "sales" {
		t.Errorf("roles = %v, want [sales]", names)
	}

	// Duplicate email.
	_, err = svc.Register(ctx, &RegisterInput{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "nitesh@dealdesk.test",
		Password:  "whatever",
	})
	if code := apperror.GetAppError(err).Code; code != http.StatusConflict {
		t.Errorf("duplicate register error code = %d, want %d", code, http.StatusConflict)
	}

	// Login with the right password.
	login, err := svc.Login(ctx, "nitesh@dealdesk.test", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Error("login returned a different user")
	}

	// Wrong password and unknown email both map to the same error.
	if _, err := svc.Login(ctx, "nitesh@dealdesk.test", "wrong"); err != apperror.ErrInvalidCredentials {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@dealdesk.test", "s3cret-pass"); err != apperror.ErrInvalidCredentials {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &RegisterInput{
		FirstName: "Nitesh",
		LastName:  "Kumar",
		Email:     "nitesh@dealdesk.test",
		Password:  "s3cret-pass",
		Role:      "superuser",
	})
	if code := apperror.GetAppError(err).Code; code != http.StatusBadRequest {
		t.Errorf("error code = %d, want %d", code, http.StatusBadRequest)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		FirstName: "Nitesh",
		LastName:  "Kumar",
		Email:     "nitesh@dealdesk.test",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.User.ID != registered.User.ID {
		t.Error("refresh resolved a different user")
	}
	if refreshed.AccessToken == "" {
		t.Error("no access token issued on refresh")
	}

	if _, err := svc.Refresh(ctx, "not-a-token"); err != apperror.ErrInvalidToken {
		t.Errorf("garbage token err = %v, want ErrInvalidToken", err)
	}

	// A token signed with a different secret is rejected.
	otherManager := utils.NewJWTManager("other-secret", time.Hour, 24*time.Hour)
	foreign, err := otherManager.GenerateRefreshToken(registered.User.ID)
	if err != nil {
		t.Fatalf("generate foreign token: %v", err)
	}
	if _, err := svc.Refresh(ctx, foreign); err != apperror.ErrInvalidToken {
		t.Errorf("foreign-signed token err = %v, want ErrInvalidToken", err)
	}
}
