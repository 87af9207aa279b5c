package dto

type DashboardKPIs struct {
	ActiveFleet       int64   `json:"active_fleet"`
	MaintenanceAlerts int64   `json:"maintenance_alerts"`
	AvailableVehicles int64   `json:"available_vehicles"`
	TotalVehicles     int64   `json:"total_vehicles"`
	UtilizationRate   float64 `json:"utilization_rate"`
	PendingCargo      int64   `json:"pending_cargo"`
}

type FuelEfficiencyRow struct {
	VehicleId      string  `json:"id"`
	ModelName      string  `json:"model_name"`
	LicensePlate   string  `json:"license_plate"`
	Odometer       float64 `json:"odometer"`
	TotalFuel      float64 `json:"total_fuel"`
	FuelEfficiency float64 `json:"fuel_efficiency"`
}

type VehicleROIRow struct {
	VehicleId       string  `json:"id"`
	ModelName       string  `json:"model_name"`
	LicensePlate    string  `json:"license_plate"`
	AcquisitionCost float64 `json:"acquisition_cost"`
	TotalRevenue    float64 `json:"total_revenue"`
	FuelCost        float64 `json:"fuel_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	NetProfit       float64 `json:"net_profit"`
	ROIPercentage   float64 `json:"roi_percentage"`
}
