package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/domain/model"
	"fleet-ops/internal/auth-service/core/myerrors"
	"fleet-ops/internal/config"
	"fleet-ops/internal/mylogger"
)

type storedOTP struct {
	hash      []byte
	expiresAt time.Time
}

// fakeAuthRepo keeps users and OTP hashes in memory.
type fakeAuthRepo struct {
	users map[string]model.User // by email
	otps  map[string]storedOTP
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users: map[string]model.User{},
		otps:  map[string]storedOTP{},
	}
}

func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, myerrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) UpdatePassword(ctx context.Context, email string, passwordHash []byte) error {
	u, ok := f.users[email]
	if !ok {
		return myerrors.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[email] = u
	return nil
}

func (f *fakeAuthRepo) SaveOTP(ctx context.Context, email string, otpHash []byte, expiresAt time.Time) error {
	f.otps[email] = storedOTP{hash: otpHash, expiresAt: expiresAt}
	return nil
}

func (f *fakeAuthRepo) GetOTP(ctx context.Context, email string) ([]byte, time.Time, error) {
	o, ok := f.otps[email]
	if !ok {
		return nil, time.Time{}, myerrors.ErrOTPNotFound
	}
	return o.hash, o.expiresAt, nil
}

func (f *fakeAuthRepo) DeleteOTP(ctx context.Context, email string) error {
	delete(f.otps, email)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: &config.Appconfig{
			PublicJwtSecret: "test-secret",
			TokenTTLHours:   24,
			OtpTTLMinutes:   10,
		},
	}
}

func testAuthService(repo *fakeAuthRepo) *AuthService {
	log := mylogger.New(mylogger.LevelError, "test")
	return NewAuthService(context.Background(), testConfig(), log, repo).(*AuthService)
}

func seedUser(repo *fakeAuthRepo, email, password string, active bool) model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := model.User{
		Id:           "user-" + email,
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         "dispatcher",
		IsActive:     active,
	}
	repo.users[email] = u
	return u
}

func loginRequest(identifier, password string) dto.LoginRequest {
	return dto.LoginRequest{Identifier: &identifier, Password: &password}
}

func TestLoginStaffEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	svc := testAuthService(repo)

	res, err := svc.Login(context.Background(), loginRequest("dispatcher@logistics.kz", "secret1"))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "dispatcher@logistics.kz", res.User.Email)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "dispatcher", claims["role"])
	assert.NotContains(t, claims, "driver_id")
}

func TestLoginDriverUsername(t *testing.T) {
	repo := newFakeAuthRepo()
	driverId := "d1"
	u := seedUser(repo, "ABC1234_1700000000"+CredentialDomain, "trippass", true)
	u.Role = "driver"
	u.DriverId = &driverId
	repo.users[u.Email] = u
	svc := testAuthService(repo)

	// bare username, no domain
	res, err := svc.Login(context.Background(), loginRequest("ABC1234_1700000000", "trippass"))
	require.NoError(t, err)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "driver", claims["role"])
	assert.Equal(t, "d1", claims["driver_id"])
}

func TestLoginRejections(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	seedUser(repo, "retired@logistics.kz", "secret1", false)
	svc := testAuthService(repo)
	ctx := context.Background()

	// unknown identifier and wrong password come back as the same error
	_, err := svc.Login(ctx, loginRequest("nobody@logistics.kz", "secret1"))
	assert.ErrorIs(t, err, myerrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, loginRequest("dispatcher@logistics.kz", "wrong"))
	assert.ErrorIs(t, err, myerrors.ErrInvalidCredentials)

	// deactivated accounts, even with the right password, look exactly
	// like bad credentials
	_, err = svc.Login(ctx, loginRequest("retired@logistics.kz", "secret1"))
	assert.ErrorIs(t, err, myerrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{})
	var validationErr *myerrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestForgotPasswordIssuesOTP(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	svc := testAuthService(repo)

	res, err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{
		Email: strPtr("dispatcher@logistics.kz"),
	})
	require.NoError(t, err)
	assert.Len(t, res.OTP, 6)

	// only the hash is stored
	stored := repo.otps["dispatcher@logistics.kz"]
	assert.NotEqual(t, []byte(res.OTP), stored.hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.hash, []byte(res.OTP)))
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), stored.expiresAt, time.Minute)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := testAuthService(repo)

	_, err := svc.ForgotPassword(context.Background(), dto.ForgotPasswordRequest{
		Email: strPtr("nobody@logistics.kz"),
	})
	assert.ErrorIs(t, err, myerrors.ErrUserNotFound)
}

func TestVerifyOTP(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	svc := testAuthService(repo)
	ctx := context.Background()

	res, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{
		Email: strPtr("dispatcher@logistics.kz"),
	})
	require.NoError(t, err)

	err = svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: strPtr("dispatcher@logistics.kz"), OTP: strPtr(res.OTP),
	})
	assert.NoError(t, err)

	err = svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: strPtr("dispatcher@logistics.kz"), OTP: strPtr("000000"),
	})
	assert.ErrorIs(t, err, myerrors.ErrOTPInvalid)

	err = svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: strPtr("nobody@logistics.kz"), OTP: strPtr("123456"),
	})
	assert.ErrorIs(t, err, myerrors.ErrOTPNotFound)
}

func TestVerifyOTPExpired(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	svc := testAuthService(repo)
	ctx := context.Background()

	res, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{
		Email: strPtr("dispatcher@logistics.kz"),
	})
	require.NoError(t, err)

	expired := repo.otps["dispatcher@logistics.kz"]
	expired.expiresAt = time.Now().Add(-time.Minute)
	repo.otps["dispatcher@logistics.kz"] = expired

	err = svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: strPtr("dispatcher@logistics.kz"), OTP: strPtr(res.OTP),
	})
	assert.ErrorIs(t, err, myerrors.ErrOTPExpired)

	// expired code is burned, a retry no longer finds it
	err = svc.VerifyOTP(ctx, dto.VerifyOTPRequest{
		Email: strPtr("dispatcher@logistics.kz"), OTP: strPtr(res.OTP),
	})
	assert.ErrorIs(t, err, myerrors.ErrOTPNotFound)
}

func TestResetPasswordRoundTrip(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	svc := testAuthService(repo)
	ctx := context.Background()

	res, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{
		Email: strPtr("dispatcher@logistics.kz"),
	})
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email:       strPtr("dispatcher@logistics.kz"),
		OTP:         strPtr(res.OTP),
		NewPassword: strPtr("newsecret"),
	})
	require.NoError(t, err)

	// OTP is burned
	_, ok := repo.otps["dispatcher@logistics.kz"]
	assert.False(t, ok)

	// old password no longer works, new one does
	_, err = svc.Login(ctx, loginRequest("dispatcher@logistics.kz", "secret1"))
	assert.ErrorIs(t, err, myerrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, loginRequest("dispatcher@logistics.kz", "newsecret"))
	assert.NoError(t, err)
}

func TestResetPasswordWrongOTP(t *testing.T) {
	repo := newFakeAuthRepo()
	seedUser(repo, "dispatcher@logistics.kz", "secret1", true)
	svc := testAuthService(repo)
	ctx := context.Background()

	_, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{
		Email: strPtr("dispatcher@logistics.kz"),
	})
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{
		Email:       strPtr("dispatcher@logistics.kz"),
		OTP:         strPtr("000000"),
		NewPassword: strPtr("newsecret"),
	})
	assert.ErrorIs(t, err, myerrors.ErrOTPInvalid)

	// password unchanged
	_, err = svc.Login(ctx, loginRequest("dispatcher@logistics.kz", "secret1"))
	assert.NoError(t, err)
}

func strPtr(s string) *string { return &s }
