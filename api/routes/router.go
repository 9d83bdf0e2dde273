package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/budunsigorta/backend/api/controllers"
	"github.com/budunsigorta/backend/api/middleware"
	"github.com/budunsigorta/backend/internal/accounts"
	"github.com/budunsigorta/backend/internal/auth"
	"github.com/budunsigorta/backend/internal/companies"
	"github.com/budunsigorta/backend/internal/crossselling"
	"github.com/budunsigorta/backend/internal/dashboard"
	"github.com/budunsigorta/backend/internal/insurers"
	"github.com/budunsigorta/backend/internal/permissions"
	"github.com/budunsigorta/backend/internal/policies"
	"github.com/budunsigorta/backend/internal/products"
	"github.com/budunsigorta/backend/internal/renewals"
	"github.com/budunsigorta/backend/internal/salespeople"
	"github.com/budunsigorta/backend/internal/users"
	"github.com/budunsigorta/backend/pkg/auth/session"
	"github.com/budunsigorta/backend/pkg/config"
	"github.com/budunsigorta/backend/pkg/logger"
)

const serviceName = "budun-api"

// Deps carries everything the route tree needs. Optional entries may
// be nil; their handlers respond with an internal error.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      controllers.Pinger
	Cache   controllers.Pinger
	Session session.AccessSessionChecker

	Auth            auth.Service
	Users           users.Service
	Permissions     *permissions.Service
	PermissionCheck middleware.PermissionChecker
	Dashboard       *dashboard.Service
	Policies        *policies.Service
	Renewals        *renewals.Service
	Products        *products.Service
	Companies       *companies.Service
	Insurers        *insurers.Service
	Salespeople     *salespeople.Service
	CrossSelling    *crossselling.Service
	Generator       *crossselling.Generator
	Accounts        *accounts.Service
}

// NewRouter assembles the full BUDUN Sigorta API.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(serviceName))
		r.Get("/ready", controllers.HealthReady(logg, d.DB, d.Cache))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/companies", controllers.CompanyListActive(d.Companies, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
	})

	perm := func(name string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(d.PermissionCheck, name, logg)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Session, logg))

		r.Get("/ping", controllers.PrivatePing(logg))
		r.Post("/v1/auth/logout", controllers.AuthLogout(d.Auth, logg))

		r.Get("/v1/dashboard", controllers.DashboardSummary(d.Dashboard, logg))

		r.Route("/v1/policies", func(r chi.Router) {
			r.With(perm("policies_view")).Get("/", controllers.PolicyList(d.Policies, logg))
			r.With(perm("policies_add")).Post("/", controllers.PolicyCreate(d.Policies, logg))
			r.With(perm("policies_edit")).Put("/{policyId}", controllers.PolicyUpdate(d.Policies, logg))
			r.With(perm("policies_delete")).Delete("/{policyId}", controllers.PolicyDelete(d.Policies, logg))
		})

		r.Route("/v1/renewals", func(r chi.Router) {
			r.With(perm("renewals_view")).Get("/due", controllers.RenewalsDue(d.Renewals, logg))
			r.With(perm("renewals_view")).Get("/overdue", controllers.RenewalsOverdue(d.Renewals, logg))
			r.With(perm("renewals_view")).Get("/{policyId}/status", controllers.RenewalStatusGet(d.Renewals, logg))
			r.With(perm("renewals_status_update")).Put("/{policyId}/status", controllers.RenewalStatusUpdate(d.Renewals, logg))
		})

		r.Route("/v1/cross-selling", func(r chi.Router) {
			r.With(perm("cross_selling_view")).Get("/", controllers.CrossSellingList(d.CrossSelling, logg))
			r.With(perm("cross_selling_add")).Post("/", controllers.CrossSellingCreate(d.CrossSelling, logg))
			r.With(perm("cross_selling_edit")).Put("/{opportunityId}", controllers.CrossSellingUpdate(d.CrossSelling, logg))
			r.With(perm("cross_selling_edit")).Put("/{opportunityId}/status", controllers.CrossSellingStatusUpdate(d.CrossSelling, logg))
			r.With(perm("cross_selling_delete")).Delete("/{opportunityId}", controllers.CrossSellingDelete(d.CrossSelling, logg))
			r.Route("/{opportunityId}/reminders", func(r chi.Router) {
				r.With(perm("cross_selling_view")).Get("/", controllers.CrossSellingReminderList(d.CrossSelling, logg))
				r.With(perm("cross_selling_edit")).Post("/", controllers.CrossSellingReminderCreate(d.CrossSelling, logg))
				r.With(perm("cross_selling_edit")).Post("/{reminderId}/complete", controllers.CrossSellingReminderComplete(d.CrossSelling, logg))
			})
		})

		r.Route("/v1/accounts", func(r chi.Router) {
			r.With(perm("accounts_view")).Get("/", controllers.AccountEntryList(d.Accounts, logg))
			r.With(perm("accounts_add")).Post("/", controllers.AccountEntryCreate(d.Accounts, logg))
			r.With(perm("accounts_edit")).Put("/{entryId}", controllers.AccountEntryUpdate(d.Accounts, logg))
			r.With(perm("accounts_delete")).Delete("/{entryId}", controllers.AccountEntryDelete(d.Accounts, logg))
		})

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Products, logg))
			r.With(perm("products_manage")).Post("/", controllers.ProductCreate(d.Products, logg))
			r.With(perm("products_manage")).Put("/{productId}", controllers.ProductUpdate(d.Products, logg))
			r.With(perm("products_manage")).Delete("/{productId}", controllers.ProductDelete(d.Products, logg))
		})

		r.Route("/v1/salespeople", func(r chi.Router) {
			r.Get("/directory", controllers.SalespersonDirectory(d.Salespeople, logg))
			r.Get("/", controllers.SalespersonList(d.Salespeople, logg))
			r.With(perm("settings_edit")).Post("/", controllers.SalespersonCreate(d.Salespeople, logg))
			r.With(perm("settings_edit")).Put("/{salespersonId}/status", controllers.SalespersonStatus(d.Salespeople, logg))
			r.With(perm("settings_edit")).Delete("/{salespersonId}", controllers.SalespersonDelete(d.Salespeople, logg))
		})

		r.Route("/v1/users", func(r chi.Router) {
			r.With(perm("users_view")).Get("/", controllers.UserList(d.Users, logg))
			r.With(perm("users_add")).Post("/", controllers.UserCreate(d.Users, logg))
			r.With(perm("users_delete")).Delete("/{username}", controllers.UserDelete(d.Users, logg))
			r.Route("/{userId}/permissions", func(r chi.Router) {
				r.With(perm("permissions_manage")).Get("/", controllers.UserPermissionsGet(d.Permissions, logg))
				r.With(perm("permissions_manage")).Put("/", controllers.UserPermissionsSet(d.Permissions, logg))
				r.With(perm("permissions_manage")).Post("/apply-role", controllers.UserPermissionsApplyRole(d.Permissions, logg))
				r.With(perm("permissions_manage")).Post("/copy", controllers.UserPermissionsCopy(d.Permissions, logg))
			})
		})

		r.Get("/v1/companies", controllers.CompanyListActive(d.Companies, logg))
		r.Get("/v1/insurance-companies", controllers.InsurerList(d.Insurers, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Session, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Get("/ping", controllers.AdminPing(logg))

		r.Route("/v1/companies", func(r chi.Router) {
			r.Get("/", controllers.CompanyList(d.Companies, logg))
			r.Post("/", controllers.CompanyCreate(d.Companies, logg))
			r.Put("/{companyId}/status", controllers.CompanyStatus(d.Companies, logg))
			r.Delete("/{companyId}", controllers.CompanyDelete(d.Companies, logg))
		})

		r.Route("/v1/insurance-companies", func(r chi.Router) {
			r.Post("/", controllers.InsurerCreate(d.Insurers, logg))
			r.Put("/{insurerId}/status", controllers.InsurerStatus(d.Insurers, logg))
			r.Delete("/{insurerId}", controllers.InsurerDelete(d.Insurers, logg))
		})

		r.Post("/v1/cross-selling/generate", controllers.CrossSellingGenerate(d.Generator, logg))
	})

	return r
}
