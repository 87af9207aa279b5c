package handle

import (
	"context"
	"net/http"
	"time"

	"fleet-ops/internal/fleet-service/core/ports"
	"fleet-ops/internal/mylogger"
)

type AnalyticsHandler struct {
	analyticsService ports.IAnalyticsService
	mylog            mylogger.Logger
}

func NewAnalyticsHandler(analyticsService ports.IAnalyticsService, mylog mylogger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		mylog:            mylog,
	}
}

func (ah *AnalyticsHandler) DashboardKPIs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		kpis, err := ah.analyticsService.DashboardKPIs(ctx)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, kpis)
	}
}

func (ah *AnalyticsHandler) FuelEfficiency() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		rows, err := ah.analyticsService.FuelEfficiency(ctx, r.URL.Query().Get("vehicle_id"))
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, rows)
	}
}

func (ah *AnalyticsHandler) VehicleROI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), WaitTime*time.Second)
		defer cancel()

		rows, err := ah.analyticsService.VehicleROI(ctx)
		if err != nil {
			businessError(w, err)
			return
		}
		jsonResponse(w, http.StatusOK, rows)
	}
}
