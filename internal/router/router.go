package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"medidesk/internal/auth"
	"medidesk/internal/handler"
	"medidesk/internal/model"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Session      *handler.SessionHandler
	Doctor       *handler.DoctorHandler
	Patient      *handler.PatientHandler
	Prescription *handler.PrescriptionHandler
	Lab          *handler.LabHandler
	Pharmacy     *handler.PharmacyHandler
	Admin        *handler.AdminHandler
}

// Register wires routes and middleware. Every protected route carries its
// own guard so that unknown paths still reach the not-found handler.
func Register(e *echo.Echo, h Handlers, guard auth.StateSource, validate *validator.Validate, log zerolog.Logger) {
	e.Use(RequestID())
	e.Use(Logger(log))
	e.Use(Recovery(log))

	e.Validator = &CustomValidator{validator: validate}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/readyz", h.Session.Readyz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", h.Session.Home)
	e.GET(auth.LoginPath, h.Session.LoginPage)
	e.POST(auth.LoginPath, h.Session.Login)
	e.GET(auth.UnauthorizedPath, h.Session.Unauthorized)
	e.RouteNotFound("/*", h.Session.NotFound)

	signedIn := auth.RequireRole(guard)
	doctor := auth.RequireRole(guard, model.RoleDoctor)
	registrar := auth.RequireRole(guard, model.RoleDoctor, model.RoleAdmin)
	lab := auth.RequireRole(guard, model.RoleLabStaff)
	pharmacy := auth.RequireRole(guard, model.RolePharmacyStaff)
	admin := auth.RequireRole(guard, model.RoleAdmin)

	e.POST("/logout", h.Session.Logout, signedIn)

	// Doctor routes
	e.GET("/dashboard", h.Doctor.Dashboard, doctor)
	e.GET("/dashboard/patients", h.Doctor.Search, doctor)
	e.PATCH("/prescriptions/:id/status", h.Doctor.UpdateStatus, doctor)

	e.GET("/prescriptions/new", h.Prescription.New, doctor)
	e.PUT("/prescriptions/draft", h.Prescription.Update, doctor)
	e.DELETE("/prescriptions/draft", h.Prescription.Discard, doctor)
	e.POST("/prescriptions/draft/submit", h.Prescription.Submit, doctor)
	e.DELETE("/prescriptions/draft/banner", h.Prescription.DismissBanner, doctor)
	e.POST("/prescriptions/draft/:collection", h.Prescription.AddRow, doctor)
	e.DELETE("/prescriptions/draft/:collection/:rowId", h.Prescription.RemoveRow, doctor)

	// Patient routes
	e.GET("/patients/register", h.Patient.RegisterForm, registrar)
	e.POST("/patients/register", h.Patient.Register, registrar)
	e.GET("/patients/:id/timeline", h.Patient.Timeline, registrar)

	// Lab routes
	e.GET("/lab-reports", h.Lab.Dashboard, lab)
	e.POST("/lab-reports/upload", h.Lab.OpenUpload, lab)
	e.DELETE("/lab-reports/upload", h.Lab.CloseUpload, lab)
	e.POST("/lab-reports/upload/submit", h.Lab.Upload, lab)

	// Pharmacy routes
	e.GET("/pharmacy", h.Pharmacy.Dashboard, pharmacy)
	e.POST("/pharmacy/dispense", h.Pharmacy.OpenDispense, pharmacy)
	e.DELETE("/pharmacy/dispense", h.Pharmacy.CloseDispense, pharmacy)
	e.POST("/pharmacy/dispense/submit", h.Pharmacy.Submit, pharmacy)
	e.POST("/pharmacy/dispense/:medicineId", h.Pharmacy.Toggle, pharmacy)

	// Admin routes
	e.GET("/admin", h.Admin.Users, admin)
	e.GET("/admin/audit", h.Admin.Audit, admin)
	e.POST("/admin/users/new", h.Admin.OpenCreate, admin)
	e.POST("/admin/users/save", h.Admin.Save, admin)
	e.DELETE("/admin/users/modal", h.Admin.CloseModal, admin)
	e.DELETE("/admin/users/delete", h.Admin.CancelDelete, admin)
	e.POST("/admin/users/delete/confirm", h.Admin.ConfirmDelete, admin)
	e.POST("/admin/users/:id/edit", h.Admin.OpenEdit, admin)
	e.POST("/admin/users/:id/delete", h.Admin.RequestDelete, admin)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
