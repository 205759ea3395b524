package api_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	adminhandler "github.com/carex-health/carex-api/internal/handler/admin"
	appointmenthandler "github.com/carex-health/carex-api/internal/handler/appointment"
	gatehandler "github.com/carex-health/carex-api/internal/handler/gate"
	patienthandler "github.com/carex-health/carex-api/internal/handler/patient"
	userhandler "github.com/carex-health/carex-api/internal/handler/user"
	"github.com/carex-health/carex-api/internal/middleware"
	"github.com/carex-health/carex-api/internal/repository"
	"github.com/carex-health/carex-api/internal/router"
	appointmentservice "github.com/carex-health/carex-api/internal/service/appointment"
	gateservice "github.com/carex-health/carex-api/internal/service/gate"
	registrationservice "github.com/carex-health/carex-api/internal/service/registration"
	"github.com/carex-health/carex-api/internal/store"
	"github.com/carex-health/carex-api/internal/validation"
	"github.com/carex-health/carex-api/pkg/metrics"
	"github.com/carex-health/carex-api/pkg/session"
)

const testPasskey = "111111"

var (
	engine    *gin.Engine
	authToken string
)

func TestMain(m *testing.M) {
	engine = buildEngine()

	// Unlock the gate once; admin flows reuse the token.
	resp := makeRequest("POST", "/gate/unlock", map[string]string{"passkey": testPasskey}, "")
	if !resp.IsSuccess() {
		fmt.Printf("gate unlock failed during setup: %s\n", resp.Message)
		os.Exit(1)
	}
	authToken = resp.GetString("token")

	os.Exit(m.Run())
}

func buildEngine() *gin.Engine {
	s := store.NewMemoryStore()
	users := repository.NewUserRepository(s, "users")
	patients := repository.NewPatientRepository(s, "patients")
	appointments := repository.NewAppointmentRepository(s, "appointments")

	registrationSvc := registrationservice.NewService(users, patients)
	appointmentSvc := appointmentservice.NewService(appointments, users, nil)
	gateSvc := gateservice.NewService(
		gateservice.Config{Passkey: testPasskey, TokenSecret: "test-secret", TokenExpiry: time.Hour},
		session.NewMemoryStore(time.Minute),
		nil,
	)

	validator := validation.New()
	guard := middleware.NewGateGuard(gateSvc)

	r := router.NewRouter(
		guard,
		userhandler.NewHandler(registrationSvc, validator),
		patienthandler.NewHandler(registrationSvc, validator),
		appointmenthandler.NewHandler(appointmentSvc, validator),
		gatehandler.NewHandler(gateSvc),
		adminhandler.NewHandler(appointmentSvc, validator),
		metrics.NewMetrics("carex_test"),
		router.Config{
			RateLimit: middleware.RateLimiterConfig{RPS: 1000, Burst: 1000},
			CORS:      middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()
	return r.Engine()
}
