package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type ExpensesHandler struct {
	expenseService ports.IExpenseService
	mylog          mylogger.Logger
}

func NewExpensesHandler(expenseService ports.IExpenseService, mylog mylogger.Logger) *ExpensesHandler {
	return &ExpensesHandler{
		expenseService: expenseService,
		mylog:          mylog,
	}
}

func (eh *ExpensesHandler) ListExpenses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := dto.ExpenseFilter{
			VehicleId:   r.URL.Query().Get("vehicle_id"),
			ExpenseType: r.URL.Query().Get("expense_type"),
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		expenses, err := eh.expenseService.ListExpenses(ctx, filter)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, expenses)
	}
}

func (eh *ExpensesHandler) CreateExpense() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mylog := eh.mylog.Action("CreateExpense")

		req := dto.ExpenseCreateRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			mylog.Error("Failed to parse expense", err)
			JsonError(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		expense, err := eh.expenseService.CreateExpense(ctx, req)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusCreated, expense)
	}
}

func (eh *ExpensesHandler) TotalOperationalCost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleId := r.PathValue("vehicle_id")

		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		cost, err := eh.expenseService.TotalOperationalCost(ctx, vehicleId)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, cost)
	}
}
