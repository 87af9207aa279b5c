package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/domain/model"
	"fleet-ops/internal/auth-service/core/myerrors"
	"fleet-ops/internal/mylogger"
)

type fakeUsersRepo struct {
	users  map[string]model.User // by email
	nextId int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]model.User{}}
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return model.User{}, myerrors.ErrEmailRegistered
	}
	f.nextId++
	user.Id = "user-" + user.Email
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, userId string) error {
	for email, u := range f.users {
		if u.Id == userId {
			delete(f.users, email)
			return nil
		}
	}
	return myerrors.ErrUserNotFound
}

func testUserService(repo *fakeUsersRepo) *UserService {
	log := mylogger.New(mylogger.LevelError, "test")
	return NewUserService(context.Background(), log, repo).(*UserService)
}

func userRequest(email, role string) dto.UserCreateRequest {
	password := "secret1"
	fullName := "Aigerim Bekova"
	return dto.UserCreateRequest{
		Email:    &email,
		Password: &password,
		FullName: &fullName,
		Role:     &role,
	}
}

func TestCreateUser(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := testUserService(repo)

	user, err := svc.CreateUser(context.Background(), userRequest("analyst@logistics.kz", "financial_analyst"))
	require.NoError(t, err)
	assert.Equal(t, "financial_analyst", user.Role)
	assert.True(t, user.IsActive)

	// password is stored hashed
	stored := repo.users["analyst@logistics.kz"]
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("secret1")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := testUserService(repo)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, userRequest("analyst@logistics.kz", "financial_analyst"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, userRequest("analyst@logistics.kz", "dispatcher"))
	assert.ErrorIs(t, err, myerrors.ErrEmailRegistered)
}

func TestCreateUserRejections(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := testUserService(repo)
	ctx := context.Background()
	var validationErr *myerrors.ValidationError

	// driver accounts are minted by dispatch, never provisioned here
	_, err := svc.CreateUser(ctx, userRequest("someone@logistics.kz", "driver"))
	assert.ErrorAs(t, err, &validationErr)

	// the credential domain is reserved
	_, err = svc.CreateUser(ctx, userRequest("ABC1234_1700000000"+CredentialDomain, "dispatcher"))
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateUser(ctx, userRequest("analyst@logistics.kz", "janitor"))
	assert.ErrorAs(t, err, &validationErr)

	req := userRequest("analyst@logistics.kz", "dispatcher")
	short := "abc"
	req.Password = &short
	_, err = svc.CreateUser(ctx, req)
	assert.ErrorAs(t, err, &validationErr)
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := testUserService(repo)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, userRequest("analyst@logistics.kz", "financial_analyst"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.Id))
	assert.ErrorIs(t, svc.DeleteUser(ctx, user.Id), myerrors.ErrUserNotFound)
}
