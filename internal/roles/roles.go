package roles

import "fmt"

// Role is the closed set of account roles. Stored as the literal
// string in users.role.
type Role string

const (
	FleetManager     Role = "fleet_manager"
	Dispatcher       Role = "dispatcher"
	SafetyOfficer    Role = "safety_officer"
	FinancialAnalyst Role = "financial_analyst"
	Driver           Role = "driver"
)

func Parse(s string) (Role, error) {
	switch Role(s) {
	case FleetManager, Dispatcher, SafetyOfficer, FinancialAnalyst, Driver:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Capability names one guarded action. Route handlers are gated on
// capabilities, never on role strings.
type Capability string

const (
	CapTripView       Capability = "trips.view"
	CapTripCreate     Capability = "trips.create"
	CapTripDispatch   Capability = "trips.dispatch"
	CapTripComplete   Capability = "trips.complete"
	CapTripCancel     Capability = "trips.cancel"
	CapTripActiveView Capability = "trips.active.view"

	CapVehicleView   Capability = "vehicles.view"
	CapVehicleManage Capability = "vehicles.manage"

	CapDriverView   Capability = "drivers.view"
	CapDriverManage Capability = "drivers.manage"

	CapMaintenanceView   Capability = "maintenance.view"
	CapMaintenanceManage Capability = "maintenance.manage"

	CapExpenseView   Capability = "expenses.view"
	CapExpenseCreate Capability = "expenses.create"

	CapAnalyticsView Capability = "analytics.view"
	CapROIView       Capability = "analytics.roi.view"

	CapUserManage Capability = "users.manage"

	CapBoardWatch Capability = "board.watch"
)

var staffView = []Capability{
	CapTripView, CapVehicleView, CapDriverView,
	CapMaintenanceView, CapExpenseView, CapAnalyticsView,
}

var capabilities = map[Role][]Capability{
	FleetManager: append([]Capability{
		CapTripCreate, CapTripDispatch, CapTripComplete, CapTripCancel,
		CapVehicleManage, CapDriverManage, CapMaintenanceManage,
		CapExpenseCreate, CapROIView, CapUserManage, CapBoardWatch,
	}, staffView...),
	Dispatcher: append([]Capability{
		CapTripCreate, CapTripDispatch, CapTripComplete, CapTripCancel,
		CapBoardWatch,
	}, staffView...),
	SafetyOfficer: append([]Capability{
		CapDriverManage, CapMaintenanceManage,
	}, staffView...),
	FinancialAnalyst: append([]Capability{
		CapExpenseCreate, CapROIView,
	}, staffView...),
	Driver: {
		CapTripActiveView, CapTripComplete,
	},
}

// Can reports whether the role holds the capability.
func (r Role) Can(c Capability) bool {
	for _, held := range capabilities[r] {
		if held == c {
			return true
		}
	}
	return false
}
