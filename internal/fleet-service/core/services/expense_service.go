package services

import (
	"context"
	"strings"
	"time"

	"fleet-ops/internal/fleet-service/core/domain/dto"
	"fleet-ops/internal/fleet-service/core/domain/model"
	"fleet-ops/internal/fleet-service/core/myerrors"
	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type ExpenseService struct {
	ctx          context.Context
	mylog        mylogger.Logger
	expensesRepo ports.IExpensesRepo
}

func NewExpenseService(ctx context.Context, mylog mylogger.Logger, expensesRepo ports.IExpensesRepo) ports.IExpenseService {
	return &ExpenseService{
		ctx:          ctx,
		mylog:        mylog,
		expensesRepo: expensesRepo,
	}
}

func (es *ExpenseService) ListExpenses(ctx context.Context, filter dto.ExpenseFilter) ([]model.ExpenseDetails, error) {
	return es.expensesRepo.List(ctx, filter)
}

func (es *ExpenseService) CreateExpense(ctx context.Context, req dto.ExpenseCreateRequest) (model.Expense, error) {
	log := es.mylog.Action("CreateExpense")

	if req.VehicleId == nil || *req.VehicleId == "" {
		return model.Expense{}, myerrors.Validationf("vehicle_id required")
	}
	if req.ExpenseType == nil || strings.TrimSpace(*req.ExpenseType) == "" {
		return model.Expense{}, myerrors.Validationf("expense_type required")
	}
	if req.Cost == nil {
		return model.Expense{}, myerrors.Validationf("cost required")
	}
	if *req.Cost < 0 {
		return model.Expense{}, myerrors.Validationf("cost cannot be negative")
	}
	if req.ExpenseDate == nil {
		return model.Expense{}, myerrors.Validationf("expense_date required")
	}
	expenseDate, err := time.Parse(dateLayout, *req.ExpenseDate)
	if err != nil {
		return model.Expense{}, myerrors.Validationf("invalid expense_date: %v", err)
	}
	if req.FuelLiters != nil && *req.FuelLiters <= 0 {
		return model.Expense{}, myerrors.Validationf("fuel_liters must be positive when set")
	}

	m := model.Expense{
		VehicleId:       *req.VehicleId,
		ExpenseType:     strings.TrimSpace(*req.ExpenseType),
		FuelLiters:      req.FuelLiters,
		Cost:            *req.Cost,
		ExpenseDate:     expenseDate,
		OdometerReading: req.OdometerReading,
	}

	expense, err := es.expensesRepo.Create(ctx, m)
	if err != nil {
		log.Warn("expense rejected", "vehicle-id", m.VehicleId, "reason", err.Error())
		return model.Expense{}, err
	}
	return expense, nil
}

func (es *ExpenseService) TotalOperationalCost(ctx context.Context, vehicleId string) (dto.OperationalCost, error) {
	if vehicleId == "" {
		return dto.OperationalCost{}, myerrors.Validationf("vehicle_id required")
	}
	return es.expensesRepo.TotalOperationalCost(ctx, vehicleId)
}
