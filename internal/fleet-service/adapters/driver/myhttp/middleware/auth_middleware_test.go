package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops/internal/roles"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"email":   "u1@logistics.kz",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func gateRequest(t *testing.T, cap roles.Capability, authHeader string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	am := NewAuthMiddleware(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	am.Require(cap, next).ServeHTTP(rec, req)
	return rec, captured
}

func TestRequirePassesIdentityDownstream(t *testing.T) {
	token := mintToken(t, testSecret, "dispatcher")
	rec, captured := gateRequest(t, roles.CapTripCreate, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", captured.Header.Get("X-UserId"))
	assert.Equal(t, "dispatcher", captured.Header.Get("X-Role"))
}

func TestRequireMissingToken(t *testing.T) {
	rec, _ := gateRequest(t, roles.CapTripView, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireBadSignature(t *testing.T) {
	token := mintToken(t, "other-secret", "dispatcher")
	rec, _ := gateRequest(t, roles.CapTripView, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"role":    "dispatcher",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _ := gateRequest(t, roles.CapTripView, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUnknownRole(t *testing.T) {
	token := mintToken(t, testSecret, "janitor")
	rec, _ := gateRequest(t, roles.CapTripView, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Capability gating: a role holding the capability passes, one without
// it gets 403 rather than 401.
func TestRequireCapabilityMatrix(t *testing.T) {
	cases := []struct {
		role string
		cap  roles.Capability
		code int
	}{
		{"dispatcher", roles.CapTripDispatch, http.StatusOK},
		{"safety_officer", roles.CapTripDispatch, http.StatusForbidden},
		{"safety_officer", roles.CapMaintenanceManage, http.StatusOK},
		{"financial_analyst", roles.CapROIView, http.StatusOK},
		{"financial_analyst", roles.CapVehicleManage, http.StatusForbidden},
		{"driver", roles.CapTripActiveView, http.StatusOK},
		{"driver", roles.CapTripComplete, http.StatusOK},
		{"driver", roles.CapTripCreate, http.StatusForbidden},
		{"fleet_manager", roles.CapVehicleManage, http.StatusOK},
	}
	for _, tc := range cases {
		token := mintToken(t, testSecret, tc.role)
		rec, _ := gateRequest(t, tc.cap, "Bearer "+token)
		assert.Equal(t, tc.code, rec.Code, "%s / %s", tc.role, tc.cap)
	}
}
