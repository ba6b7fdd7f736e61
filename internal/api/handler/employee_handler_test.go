package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
	"github.com/staffdesk/staffdesk-web/internal/core/validate"
)

// ---------------------------------------------------------------------------
// Stub directory
// ---------------------------------------------------------------------------

type stubDirectory struct {
	employees  []domain.Employee
	refreshErr error
	addErr     error
	removeErr  error

	addCalls    int
	removeCalls int
}

func (s *stubDirectory) Refresh(_ context.Context) ([]domain.Employee, error) {
	if s.refreshErr != nil {
		return s.employees, s.refreshErr
	}
	return s.employees, nil
}

func (s *stubDirectory) Cached() []domain.Employee { return s.employees }

func (s *stubDirectory) Get(_ context.Context, id int64) (*domain.Employee, error) {
	for _, e := range s.employees {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, domain.ErrEmployeeNotFound
}

func (s *stubDirectory) Add(_ context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	s.addCalls++
	if s.addErr != nil {
		return nil, s.addErr
	}
	created := domain.Employee{ID: 100, Name: input.Name, Email: input.Email, IsAdmin: input.IsAdmin}
	s.employees = append(s.employees, created)
	return &created, nil
}

func (s *stubDirectory) Remove(_ context.Context, id int64) error {
	s.removeCalls++
	if s.removeErr != nil {
		return s.removeErr
	}
	for i, e := range s.employees {
		if e.ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			break
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func getContext(e *echo.Echo, target, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("view_role", role)
	return c, rec
}

func formContext(e *echo.Echo, method, target string, form url.Values, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("view_role", role)
	return c, rec
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestEmployeeHandler_List_PartitionsByRole(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{employees: []domain.Employee{
		{ID: 1, Name: "Ada Admin", IsAdmin: true},
		{ID: 2, Name: "Uma User", IsAdmin: false},
	}}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/", domain.RoleUser)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	adminIdx := strings.Index(body, "Ada Admin")
	userIdx := strings.Index(body, "Uma User")
	if adminIdx < 0 || userIdx < 0 {
		t.Fatal("both employees must render")
	}
	if !strings.Contains(body, "Admin Employees") {
		t.Error("admin section heading missing")
	}
}

func TestEmployeeHandler_List_SearchFiltersCached(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{employees: []domain.Employee{
		{ID: 1, Name: "Jane Doe"},
		{ID: 2, Name: "John Smith"},
	}}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/?q=jane", domain.RoleUser)
	c.Request().Header.Set("HX-Request", "true")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Jane Doe") {
		t.Error("matching employee missing")
	}
	if strings.Contains(body, "John Smith") {
		t.Error("non-matching employee rendered")
	}
}

func TestEmployeeHandler_List_RefreshFailureShowsStaleList(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{
		employees:  []domain.Employee{{ID: 1, Name: "Jane Doe"}},
		refreshErr: errors.New("backend down"),
	}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/", domain.RoleUser)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Jane Doe") {
		t.Error("stale list must still render")
	}
	if !strings.Contains(body, "Failed to load employees") {
		t.Error("error toast missing")
	}
}

func TestEmployeeHandler_List_RoleGatesControls(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{employees: []domain.Employee{{ID: 1, Name: "Jane Doe"}}}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/", domain.RoleUser)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "hx-delete") {
		t.Error("user view must not render remove buttons")
	}

	c, rec = getContext(e, "/", domain.RoleAdmin)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "hx-delete") {
		t.Error("admin view must render remove buttons")
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestEmployeeHandler_Create_InvalidNameRejectedLocally(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{}
	h := NewEmployeeHandler(dir)

	form := url.Values{"name": {"Jane"}, "email": {"jane@example.com"}, "role": {"user"}}
	c, rec := formContext(e, http.MethodPost, "/employees", form, domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if dir.addCalls != 0 {
		t.Error("invalid form must not reach the backend")
	}
	body := rec.Body.String()
	if !strings.Contains(body, validate.MsgInvalidName) {
		t.Error("inline name message missing")
	}
	// Typed values stay in the form.
	if !strings.Contains(body, `value="Jane"`) || !strings.Contains(body, `value="jane@example.com"`) {
		t.Error("form values not retained")
	}
}

func TestEmployeeHandler_Create_InvalidEmailRejectedLocally(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{}
	h := NewEmployeeHandler(dir)

	form := url.Values{"name": {"Jane Doe"}, "email": {"jane@example"}, "role": {"user"}}
	c, rec := formContext(e, http.MethodPost, "/employees", form, domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if dir.addCalls != 0 {
		t.Error("invalid form must not reach the backend")
	}
	if !strings.Contains(rec.Body.String(), validate.MsgInvalidEmail) {
		t.Error("inline email message missing")
	}
}

func TestEmployeeHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{}
	h := NewEmployeeHandler(dir)

	form := url.Values{"name": {"Jane Doe"}, "email": {"jane@example.com"}, "role": {"admin"}}
	c, rec := formContext(e, http.MethodPost, "/employees", form, domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if dir.addCalls != 1 {
		t.Fatalf("expected one backend create, got %d", dir.addCalls)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Employee added successfully!") {
		t.Error("success toast missing")
	}
	if !strings.Contains(body, "Jane Doe") {
		t.Error("created employee must appear in the list")
	}
}

func TestEmployeeHandler_Create_BackendFailureKeepsListAndValues(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{
		employees: []domain.Employee{{ID: 1, Name: "Existing Person"}},
		addErr:    errors.New("backend down"),
	}
	h := NewEmployeeHandler(dir)

	form := url.Values{"name": {"Jane Doe"}, "email": {"jane@example.com"}, "role": {"user"}}
	c, rec := formContext(e, http.MethodPost, "/employees", form, domain.RoleAdmin)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Failed to add employee.") {
		t.Error("error toast missing")
	}
	if !strings.Contains(body, "Existing Person") {
		t.Error("existing list must still render")
	}
	if !strings.Contains(body, `value="Jane Doe"`) {
		t.Error("form values not retained after backend failure")
	}
}

// ---------------------------------------------------------------------------
// Delete / Profile
// ---------------------------------------------------------------------------

func TestEmployeeHandler_Delete(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{employees: []domain.Employee{{ID: 1, Name: "Jane Doe"}}}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/employees/1", domain.RoleAdmin)
	c.Request().Method = http.MethodDelete
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if dir.removeCalls != 1 {
		t.Fatalf("expected one backend delete, got %d", dir.removeCalls)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Employee deleted successfully!") {
		t.Error("success toast missing")
	}
	if strings.Contains(body, "Jane Doe") {
		t.Error("deleted employee must disappear from the list")
	}
}

func TestEmployeeHandler_Profile_RendersEmployee(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{employees: []domain.Employee{
		{ID: 3, Name: "Jane Doe", Email: "jane@example.com"},
	}}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/employees/3", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Jane Doe") || !strings.Contains(body, "jane@example.com") {
		t.Error("profile fields missing")
	}
	// Users see the submission form; the hidden field carries the id.
	if !strings.Contains(body, `name="employee_id" value="3"`) {
		t.Error("submission form missing for user view")
	}
}

func TestEmployeeHandler_Profile_AdminSeesNoSubmitForm(t *testing.T) {
	e := newTestEcho()
	dir := &stubDirectory{employees: []domain.Employee{{ID: 3, Name: "Jane Doe"}}}
	h := NewEmployeeHandler(dir)

	c, rec := getContext(e, "/employees/3", domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if strings.Contains(rec.Body.String(), "Report Hours Worked") {
		t.Error("admin view must not render the submission form")
	}
}

func TestEmployeeHandler_Profile_UnknownID(t *testing.T) {
	e := newTestEcho()
	h := NewEmployeeHandler(&stubDirectory{})

	c, rec := getContext(e, "/employees/42", domain.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Employee not found") {
		t.Error("not-found message missing")
	}
}
