package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fleet-ops/internal/auth-service/core/domain/dto"
	"fleet-ops/internal/auth-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type UsersHandler struct {
	userService ports.IUserService
	mylog       mylogger.Logger
}

func NewUsersHandler(userService ports.IUserService, mylog mylogger.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		mylog:       mylog,
	}
}

func (uh *UsersHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		users, err := uh.userService.ListUsers(ctx)
		if err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, users)
	}
}

func (uh *UsersHandler) CreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := uh.mylog.Action("CreateUser")

		req := dto.UserCreateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse user", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		user, err := uh.userService.CreateUser(ctx, req)
		if err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, user)
	}
}

func (uh *UsersHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId := r.PathValue("user_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		if err := uh.userService.DeleteUser(ctx, userId); err != nil {
			authError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{
			"message": "User deleted successfully",
		})
	}
}
