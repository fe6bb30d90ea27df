package usecase_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maheshmohan7319/GOODINSIDE/internal/config"
	"github.com/maheshmohan7319/GOODINSIDE/internal/domain/model"
	repo "github.com/maheshmohan7319/GOODINSIDE/internal/repository"
	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
	"github.com/maheshmohan7319/GOODINSIDE/internal/validator"
)

const testSecret = "test-secret"

type authDeps struct {
	users  *MockUserRepository
	audits *MockAuditLogRepository
	images *MockImageStore
}

func newAuthUC() (*usecase.AuthUsecase, *authDeps) {
	d := &authDeps{
		users:  new(MockUserRepository),
		audits: new(MockAuditLogRepository),
		images: new(MockImageStore),
	}
	cfg := config.Config{JWTSecret: testSecret, AccessTokenTTL: time.Hour, BcryptCost: bcrypt.MinCost}
	uc := usecase.NewAuthUsecase(cfg, d.users, d.audits, d.images, validator.NewAuthValidator(), nil, nil)
	return uc, d
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

// =====================
// Register
// =====================

func TestAuthUsecase_Register_Success(t *testing.T) {
	uc, d := newAuthUC()
	phone := "+919876543210"

	d.users.On("FindByPhone", mock.Anything, phone).Return(nil, repo.ErrNotFound)
	d.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PhoneNumber == phone &&
			u.Role == model.RoleCustomer &&
			u.IsActive &&
			u.TokenVersion == 0 &&
			u.PasswordHash != "" && u.PasswordHash != "CorrectHorse9"
	})).Return(nil)

	res, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{PhoneNumber: phone, Password: "CorrectHorse9"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, 3600, res.ExpiresIn)
	assert.Equal(t, model.RoleCustomer, res.User.Role)

	claims := parseClaims(t, res.Token)
	assert.Equal(t, res.User.ID, claims["sub"])
	assert.Equal(t, "Customer", claims["role"])
	assert.Equal(t, float64(0), claims["tv"])

	d.users.AssertExpectations(t)
}

func TestAuthUsecase_Register_Duplicate(t *testing.T) {
	uc, d := newAuthUC()
	phone := "9876543210"

	d.users.On("FindByPhone", mock.Anything, phone).Return(&model.User{ID: "u1", PhoneNumber: phone}, nil)

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{PhoneNumber: phone, Password: "CorrectHorse9"})
	assert.Equal(t, usecase.KindConflictFailed, usecase.KindOf(err))
	d.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_RaceDuplicate(t *testing.T) {
	uc, d := newAuthUC()
	phone := "9876543210"

	d.users.On("FindByPhone", mock.Anything, phone).Return(nil, repo.ErrNotFound)
	d.users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicate)

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{PhoneNumber: phone, Password: "CorrectHorse9"})
	assert.Equal(t, usecase.KindConflictFailed, usecase.KindOf(err))
}

func TestAuthUsecase_Register_Validation(t *testing.T) {
	cases := []usecase.AuthRegisterRequest{
		{PhoneNumber: "", Password: "CorrectHorse9"},
		{PhoneNumber: "abc", Password: "CorrectHorse9"},
		{PhoneNumber: "9876543210", Password: "short"},
		{PhoneNumber: "9876543210", Password: "password123"},
	}
	for _, c := range cases {
		uc, d := newAuthUC()
		_, err := uc.Register(context.Background(), c)
		assert.Equal(t, usecase.KindValidationFailed, usecase.KindOf(err), "%+v", c)
		d.users.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
	}
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login(t *testing.T) {
	phone := "9876543210"
	pass := "CorrectHorse9"

	t.Run("success", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByPhone", mock.Anything, phone).Return(&model.User{
			ID:           "u1",
			PhoneNumber:  phone,
			PasswordHash: mustHash(t, pass),
			Role:         model.RoleAdmin,
			TokenVersion: 4,
			IsActive:     true,
		}, nil)

		res, err := uc.Login(context.Background(), usecase.AuthLoginRequest{PhoneNumber: phone, Password: pass})
		require.NoError(t, err)

		claims := parseClaims(t, res.Token)
		assert.Equal(t, "u1", claims["sub"])
		assert.Equal(t, "Admin", claims["role"])
		assert.Equal(t, float64(4), claims["tv"])
		assert.Contains(t, claims, "exp")
		assert.Contains(t, claims, "iat")
	})

	t.Run("unknown phone", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByPhone", mock.Anything, phone).Return(nil, repo.ErrNotFound)

		_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{PhoneNumber: phone, Password: pass})
		assert.Equal(t, usecase.KindUnauthorized, usecase.KindOf(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByPhone", mock.Anything, phone).Return(&model.User{
			ID: "u1", PasswordHash: mustHash(t, pass), IsActive: true,
		}, nil)

		_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{PhoneNumber: phone, Password: "WrongHorse9"})
		assert.Equal(t, usecase.KindUnauthorized, usecase.KindOf(err))
	})

	t.Run("inactive", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByPhone", mock.Anything, phone).Return(&model.User{
			ID: "u1", PasswordHash: mustHash(t, pass), IsActive: false,
		}, nil)

		_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{PhoneNumber: phone, Password: pass})
		assert.Equal(t, usecase.KindForbidden, usecase.KindOf(err))
	})
}

// =====================
// GetUser
// =====================

func TestAuthUsecase_GetUser(t *testing.T) {
	t.Run("customer gets self", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Role: model.RoleCustomer}, nil)

		res, err := uc.GetUser(context.Background(), customer)
		require.NoError(t, err)
		require.NotNil(t, res.User)
		assert.Equal(t, "u1", res.User.ID)
		assert.Nil(t, res.Users)
		d.users.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("admin gets all", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByID", mock.Anything, "admin-1").Return(&model.User{ID: "admin-1", Role: model.RoleAdmin}, nil)
		d.users.On("List", mock.Anything).Return([]model.User{{ID: "admin-1"}, {ID: "u1"}}, nil)

		res, err := uc.GetUser(context.Background(), admin)
		require.NoError(t, err)
		assert.Nil(t, res.User)
		assert.Len(t, res.Users, 2)
	})
}

// =====================
// ChangePassword
// =====================

func TestAuthUsecase_ChangePassword(t *testing.T) {
	current := "CorrectHorse9"

	t.Run("success bumps token version", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", PasswordHash: mustHash(t, current)}, nil)
		d.users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("BatteryStaple7")) == nil
		})).Return(nil)
		d.users.On("IncrementTokenVersion", mock.Anything, "u1").Return(nil)

		err := uc.ChangePassword(context.Background(), customer, usecase.ChangePasswordRequest{
			CurrentPassword: current, NewPassword: "BatteryStaple7",
		})
		require.NoError(t, err)
		d.users.AssertExpectations(t)
	})

	t.Run("wrong current", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", PasswordHash: mustHash(t, current)}, nil)

		err := uc.ChangePassword(context.Background(), customer, usecase.ChangePasswordRequest{
			CurrentPassword: "nope-nope", NewPassword: "BatteryStaple7",
		})
		assert.Equal(t, usecase.KindUnauthorized, usecase.KindOf(err))
		d.users.AssertNotCalled(t, "IncrementTokenVersion", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc, _ := newAuthUC()
		err := uc.ChangePassword(context.Background(), customer, usecase.ChangePasswordRequest{CurrentPassword: current})
		assert.Equal(t, usecase.KindValidationFailed, usecase.KindOf(err))
	})
}

// =====================
// UpdateProfile
// =====================

func TestAuthUsecase_UpdateProfile_ReplacesImage(t *testing.T) {
	uc, d := newAuthUC()

	d.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Name: "Old", Image: "/uploads/profile/old.jpg"}, nil)
	d.images.On("Upload", mock.Anything, "profile", "me.jpg", "image/jpeg", mock.Anything).Return("/uploads/profile/new.jpg", nil)
	d.images.On("Delete", mock.Anything, "/uploads/profile/old.jpg").Return(nil)
	d.users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "New" && u.Email == "me@example.com" && u.Image == "/uploads/profile/new.jpg"
	})).Return(nil)

	dto, err := uc.UpdateProfile(context.Background(), customer, usecase.UpdateProfileRequest{
		Email: "me@example.com",
		Name:  "New",
		Image: &usecase.ImageUpload{Filename: "me.jpg", ContentType: "image/jpeg", Body: bytes.NewReader([]byte("jpeg"))},
	})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profile/new.jpg", dto.Image)

	d.images.AssertExpectations(t)
}

func TestAuthUsecase_UpdateProfile_InvalidEmail(t *testing.T) {
	uc, d := newAuthUC()
	_, err := uc.UpdateProfile(context.Background(), customer, usecase.UpdateProfileRequest{Email: "not-an-email"})
	assert.Equal(t, usecase.KindValidationFailed, usecase.KindOf(err))
	d.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// =====================
// ForceLogout
// =====================

func TestAuthUsecase_ForceLogout(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", TokenVersion: 2}, nil)
		d.users.On("IncrementTokenVersion", mock.Anything, "u1").Return(nil)
		d.audits.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionForceLogout &&
				l.ResourceType == model.AuditResourceUser &&
				l.ResourceID == "u1" &&
				l.BeforeJSON == `{"tokenVersion":2}` &&
				l.AfterJSON == `{"tokenVersion":3}`
		})).Return(nil)

		require.NoError(t, uc.ForceLogout(context.Background(), admin, "u1"))
		d.audits.AssertExpectations(t)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		uc, d := newAuthUC()
		err := uc.ForceLogout(context.Background(), customer, "u2")
		assert.Equal(t, usecase.KindForbidden, usecase.KindOf(err))
		d.users.AssertNotCalled(t, "IncrementTokenVersion", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByID", mock.Anything, "ghost").Return(nil, repo.ErrNotFound)
		err := uc.ForceLogout(context.Background(), admin, "ghost")
		assert.Equal(t, usecase.KindNotFound, usecase.KindOf(err))
	})
}

// =====================
// CreateAdmin
// =====================

func TestAuthUsecase_CreateAdmin(t *testing.T) {
	phone := "9876543210"

	t.Run("new", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByPhone", mock.Anything, phone).Return(nil, repo.ErrNotFound)
		d.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleAdmin && u.IsActive
		})).Return(nil)

		dto, created, err := uc.CreateAdmin(context.Background(), phone, "CorrectHorse9")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, model.RoleAdmin, dto.Role)
	})

	t.Run("promote", func(t *testing.T) {
		uc, d := newAuthUC()
		d.users.On("FindByPhone", mock.Anything, phone).Return(&model.User{ID: "u1", Role: model.RoleCustomer}, nil)
		d.users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == "u1" && u.Role == model.RoleAdmin
		})).Return(nil)
		d.users.On("IncrementTokenVersion", mock.Anything, "u1").Return(nil)

		_, created, err := uc.CreateAdmin(context.Background(), phone, "CorrectHorse9")
		require.NoError(t, err)
		assert.False(t, created)
		d.users.AssertExpectations(t)
	})
}
