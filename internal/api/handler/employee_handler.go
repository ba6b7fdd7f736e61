package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk-web/internal/api/metrics"
	"github.com/staffdesk/staffdesk-web/internal/api/middleware"
	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
	"github.com/staffdesk/staffdesk-web/internal/core/service"
	"github.com/staffdesk/staffdesk-web/internal/web/templates"
)

// EmployeeHandler serves the employee list and profile pages and the
// admin-only add/remove actions.
type EmployeeHandler struct {
	directory ports.EmployeeDirectory
}

func NewEmployeeHandler(directory ports.EmployeeDirectory) *EmployeeHandler {
	return &EmployeeHandler{directory: directory}
}

// createEmployeeForm is the add-employee form contract. Validation is
// advisory; the backend remains the authority.
type createEmployeeForm struct {
	Name  string `form:"name"  validate:"required,employee_name"`
	Email string `form:"email" validate:"required,employee_email"`
	Role  string `form:"role"  validate:"required,oneof=admin user"`
}

// List handles GET / — the employee list page. Full-page loads and explicit
// refreshes refetch from the backend; htmx search swaps filter the cached
// snapshot without a network round trip.
func (h *EmployeeHandler) List(c echo.Context) error {
	role := middleware.RoleFrom(c)
	query := c.QueryParam("q")

	var flash *templates.Flash
	var employees []domain.Employee
	if isHTMX(c) && c.QueryParam("refresh") == "" {
		employees = h.directory.Cached()
	} else {
		var err error
		employees, err = h.directory.Refresh(c.Request().Context())
		if err != nil {
			flash = &templates.Flash{Level: "error", Message: "Failed to load employees. Showing the last known list."}
		}
	}

	data := h.listData(role, query, employees, flash, templates.EmployeeFormData{})
	if isHTMX(c) {
		return render(c, http.StatusOK, templates.EmployeePageFragment(data))
	}
	return render(c, http.StatusOK, templates.EmployeeListPage(data))
}

// Create handles POST /employees (admin only). Validation failures re-render
// the form with retained values and inline messages; no backend request is
// issued for them.
func (h *EmployeeHandler) Create(c echo.Context) error {
	role := middleware.RoleFrom(c)

	var form createEmployeeForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	formData := templates.EmployeeFormData{
		Name:       form.Name,
		Email:      form.Email,
		RoleChoice: form.Role,
	}

	if err := c.Validate(&form); err != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionAddEmployee, metrics.OutcomeRejected).Inc()
		fields := FieldMessages(err)
		formData.NameError = fields["name"]
		formData.EmailError = fields["email"]
		formData.RoleError = fields["role"]
		data := h.listData(role, "", h.directory.Cached(), nil, formData)
		return h.renderList(c, data)
	}

	_, err := h.directory.Add(c.Request().Context(), ports.CreateEmployeeInput{
		Name:    form.Name,
		Email:   form.Email,
		IsAdmin: form.Role == domain.RoleAdmin,
	})
	if err != nil {
		// The list is unchanged and the typed values stay in the form.
		metrics.ActionsTotal.WithLabelValues(metrics.ActionAddEmployee, metrics.OutcomeError).Inc()
		flash := &templates.Flash{Level: "error", Message: "Failed to add employee."}
		data := h.listData(role, "", h.directory.Cached(), flash, formData)
		return h.renderList(c, data)
	}

	metrics.ActionsTotal.WithLabelValues(metrics.ActionAddEmployee, metrics.OutcomeSuccess).Inc()
	flash := &templates.Flash{Level: "success", Message: "Employee added successfully!"}
	data := h.listData(role, "", h.directory.Cached(), flash, templates.EmployeeFormData{})
	return h.renderList(c, data)
}

// Delete handles DELETE /employees/:id (admin only).
func (h *EmployeeHandler) Delete(c echo.Context) error {
	role := middleware.RoleFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid employee id")
	}

	var flash *templates.Flash
	if err := h.directory.Remove(c.Request().Context(), id); err != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionRemoveEmployee, metrics.OutcomeError).Inc()
		flash = &templates.Flash{Level: "error", Message: "Failed to delete employee."}
	} else {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionRemoveEmployee, metrics.OutcomeSuccess).Inc()
		flash = &templates.Flash{Level: "success", Message: "Employee deleted successfully!"}
	}

	data := h.listData(role, "", h.directory.Cached(), flash, templates.EmployeeFormData{})
	return h.renderList(c, data)
}

// Profile handles GET /employees/:id. An unknown id renders an inline
// not-found page instead of navigating away.
func (h *EmployeeHandler) Profile(c echo.Context) error {
	role := middleware.RoleFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return render(c, http.StatusNotFound, templates.NotFoundPage(role, "Employee not found"))
	}

	employee, err := h.directory.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return render(c, http.StatusNotFound, templates.NotFoundPage(role, "Employee not found"))
		}
		return err
	}

	return render(c, http.StatusOK, templates.EmployeeProfilePage(templates.ProfileData{
		Page:     templates.Page{Role: role},
		Employee: *employee,
		Form:     templates.ReportFormData{EmployeeID: employee.ID},
	}))
}

func (h *EmployeeHandler) listData(role, query string, employees []domain.Employee, flash *templates.Flash, form templates.EmployeeFormData) templates.EmployeeListData {
	filtered := service.FilterByName(employees, query)
	admins, others := service.PartitionByFlag(filtered, func(e domain.Employee) bool { return e.IsAdmin })
	return templates.EmployeeListData{
		Page:   templates.Page{Role: role, Flash: flash},
		Query:  query,
		Admins: admins,
		Others: others,
		Form:   form,
	}
}

func (h *EmployeeHandler) renderList(c echo.Context, data templates.EmployeeListData) error {
	if isHTMX(c) {
		return render(c, http.StatusOK, templates.EmployeePageFragment(data))
	}
	return render(c, http.StatusOK, templates.EmployeeListPage(data))
}
