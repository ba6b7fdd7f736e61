// Package templates renders every page and htmx fragment of the staffdesk
// web UI. Each exported function returns a templ.Component; the markup is
// inlined html/template so the whole presentation layer ships in one package.
//
// Pages receive the view role explicitly through their data struct, so
// role-gated rendering is testable in isolation.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
)

// Flash is a dismissible notification rendered at the top of a page or
// fragment after an action. Level is "success" or "error".
type Flash struct {
	Level   string
	Message string
}

// Page carries the fields every full page needs.
type Page struct {
	Title string
	Role  string
	Flash *Flash
}

// EmployeeListData feeds the employee list page and its htmx fragment.
type EmployeeListData struct {
	Page
	Query  string
	Admins []domain.Employee
	Others []domain.Employee
	Form   EmployeeFormData
}

// EmployeeFormData holds the add-employee form state: retained values plus
// per-field validation messages, so a rejected submission re-renders with
// everything the user typed still in place.
type EmployeeFormData struct {
	Name       string
	Email      string
	RoleChoice string
	NameError  string
	EmailError string
	RoleError  string
}

// ProfileData feeds the employee profile page.
type ProfileData struct {
	Page
	Employee domain.Employee
	Form     ReportFormData
}

// ReportFormData holds the submit-report form state.
type ReportFormData struct {
	EmployeeID int64
	StartTime  string
	EndTime    string
	TimeError  string
	Submitted  bool
}

// TimeReportsData feeds the time report list page and its fragment.
type TimeReportsData struct {
	Page
	Approved []ports.ReportRow
	Pending  []ports.ReportRow
}

// RoleInfoData feeds the static role info page.
type RoleInfoData struct {
	Page
}

// MessageData feeds the not-found and error pages.
type MessageData struct {
	Page
	Status  int
	Message string
}

// Row templates need both the item and the view role, so these constructors
// bundle them for {{template}} invocations.
type employeeRow struct {
	Role     string
	Employee domain.Employee
}

type reportRow struct {
	Role string
	Row  ports.ReportRow
}

var funcs = template.FuncMap{
	"hours": hoursDisplay,
	"ts":    tsDisplay,
	"erow":  func(role string, e domain.Employee) employeeRow { return employeeRow{Role: role, Employee: e} },
	"rrow":  func(role string, r ports.ReportRow) reportRow { return reportRow{Role: role, Row: r} },
}

const baseHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · Staffdesk</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
  :root { --ink:#1f2430; --paper:#f7f8fa; --accent:#2563eb; --danger:#dc2626; --ok:#16a34a; --muted:#6b7280; --line:#e5e7eb; }
  * { box-sizing:border-box; }
  body { margin:0; background:var(--paper); color:var(--ink); font-family:system-ui,sans-serif; }
  .wrap { max-width:900px; margin:0 auto; padding:24px 16px; }
  nav { display:flex; gap:20px; align-items:center; padding:14px 16px; background:var(--ink); color:#fff; }
  nav a { color:#fff; text-decoration:none; font-weight:600; }
  nav .spacer { flex:1; }
  .role-badge { font-size:0.8rem; padding:2px 10px; border-radius:10px; background:var(--accent); }
  .role-badge.admin { background:var(--danger); }
  .btn { font:inherit; font-size:0.85rem; padding:6px 14px; border:1px solid var(--ink); border-radius:4px; background:#fff; cursor:pointer; }
  .btn-primary { background:var(--accent); border-color:var(--accent); color:#fff; }
  .btn-danger { background:var(--danger); border-color:var(--danger); color:#fff; }
  .btn-ok { background:var(--ok); border-color:var(--ok); color:#fff; }
  ul.rows { list-style:none; padding:0; margin:0; }
  ul.rows li { display:flex; justify-content:space-between; align-items:center; gap:12px; padding:10px 14px; margin-bottom:8px; background:#fff; border:1px solid var(--line); border-radius:6px; }
  ul.rows li a { color:var(--accent); text-decoration:none; }
  .field { margin-bottom:12px; }
  .field label { display:block; font-size:0.75rem; font-weight:600; text-transform:uppercase; color:var(--muted); margin-bottom:4px; }
  .field input { width:100%; padding:8px; font:inherit; border:1px solid var(--line); border-radius:4px; }
  .field-error { color:var(--danger); font-size:0.8rem; margin-top:4px; }
  .toast { padding:10px 14px; margin-bottom:16px; border-radius:6px; font-size:0.9rem; }
  .toast.success { background:#dcfce7; color:#166534; }
  .toast.error { background:#fee2e2; color:#991b1b; }
  .empty { color:var(--muted); padding:16px; text-align:center; background:#fff; border:1px dashed var(--line); border-radius:6px; }
  h2 { margin-top:28px; }
  .meta { color:var(--muted); font-size:0.85rem; }
</style>
</head>
<body>
<nav>
  <a href="/">Employee List</a>
  <a href="/time-reports">Time Reports</a>
  <a href="/profile">Profile</a>
  <div class="spacer"></div>
  <span class="role-badge {{.Role}}">{{.Role}}</span>
  <form method="post" action="/role/toggle" style="margin:0;">
    <button type="submit" class="btn" style="border-color:#fff;background:transparent;color:#fff;">Switch view</button>
  </form>
</nav>
<div class="wrap">
{{template "content" .}}
</div>
</body>
</html>
{{define "flash"}}{{if .}}<div class="toast {{.Level}}">{{.Message}}</div>{{end}}{{end}}`

var base = template.Must(template.New("base").Funcs(funcs).Parse(baseHTML))

func page(content string) *template.Template {
	return template.Must(template.Must(base.Clone()).Parse(content))
}

// ── Employee list ─────────────────────────────────────────────────────────────

const employeeListsHTML = `{{define "employee-lists"}}
<div id="employee-lists">
  <h2>Admin Employees</h2>
  {{if .Admins}}
  <ul class="rows">
    {{range .Admins}}{{template "employee-row" (erow $.Role .)}}{{end}}
  </ul>
  {{else}}<div class="empty">No employees available</div>{{end}}
  <h2>Employees</h2>
  {{if .Others}}
  <ul class="rows">
    {{range .Others}}{{template "employee-row" (erow $.Role .)}}{{end}}
  </ul>
  {{else}}<div class="empty">No employees available</div>{{end}}
</div>
{{end}}`

const employeePageHTML = `{{define "employee-page"}}
<div id="employee-page">
  {{template "flash" .Flash}}
  {{if eq .Role "admin"}}
  <details {{if or .Form.NameError .Form.EmailError .Form.RoleError}}open{{end}}>
    <summary class="btn" style="display:inline-block;margin-bottom:12px;">Add Employee</summary>
    {{template "employee-form" .}}
  </details>
  {{end}}
  <div class="field">
    <label for="q">Search Employees</label>
    <input type="search" id="q" name="q" value="{{.Query}}" placeholder="Search by name"
      hx-get="/" hx-trigger="keyup changed delay:300ms, search" hx-target="#employee-page" hx-include="this">
  </div>
  <button class="btn btn-ok" hx-get="/?refresh=1" hx-target="#employee-page" hx-include="#q">Refresh List</button>
  {{template "employee-lists" .}}
</div>
{{end}}

{{define "employee-form"}}
<form hx-post="/employees" hx-target="#employee-page" style="background:#fff;border:1px solid var(--line);border-radius:6px;padding:16px;margin-bottom:16px;">
  <div class="field">
    <label for="name">Name</label>
    <input type="text" id="name" name="name" value="{{.Form.Name}}">
    {{if .Form.NameError}}<div class="field-error">{{.Form.NameError}}</div>{{end}}
  </div>
  <div class="field">
    <label for="email">Email</label>
    <input type="text" id="email" name="email" value="{{.Form.Email}}">
    {{if .Form.EmailError}}<div class="field-error">{{.Form.EmailError}}</div>{{end}}
  </div>
  <div class="field">
    <label>Role</label>
    <label style="display:inline;text-transform:none;"><input type="radio" name="role" value="admin" style="width:auto;" {{if eq .Form.RoleChoice "admin"}}checked{{end}}> Admin</label>
    <label style="display:inline;text-transform:none;"><input type="radio" name="role" value="user" style="width:auto;" {{if eq .Form.RoleChoice "user"}}checked{{end}}> User</label>
    {{if .Form.RoleError}}<div class="field-error">{{.Form.RoleError}}</div>{{end}}
  </div>
  <button type="submit" class="btn btn-primary">Add Employee</button>
</form>
{{end}}`

const employeeRowHTML = `{{define "employee-row"}}
<li>
  <a href="/employees/{{.Employee.ID}}">{{.Employee.Name}}</a>
  <span class="meta">{{.Employee.Email}}</span>
  {{if eq .Role "admin"}}
  <button class="btn btn-danger"
    hx-delete="/employees/{{.Employee.ID}}"
    hx-target="#employee-page"
    hx-confirm="Are you sure you want to delete this employee?">Remove</button>
  {{end}}
</li>
{{end}}`

// ── Time reports ──────────────────────────────────────────────────────────────

const reportBoardHTML = `{{define "report-board"}}
<div id="report-board">
  {{template "flash" .Flash}}
  <button class="btn btn-ok" hx-get="/time-reports?refresh=1" hx-target="#report-board">Refresh List</button>
  <h2>Pending Reports</h2>
  {{if .Pending}}<ul class="rows">{{range .Pending}}{{template "report-row" (rrow $.Role .)}}{{end}}</ul>
  {{else}}<div class="empty">No pending reports</div>{{end}}
  <h2>Approved Reports</h2>
  {{if .Approved}}<ul class="rows">{{range .Approved}}{{template "report-row" (rrow $.Role .)}}{{end}}</ul>
  {{else}}<div class="empty">No approved reports</div>{{end}}
</div>
{{end}}`

const reportRowHTML = `{{define "report-row"}}
<li>
  <span>Report ID: {{.Row.Report.ID}}, Employee: {{.Row.EmployeeName}}</span>
  <span class="meta">From: {{ts .Row.Report.StartTime}} To: {{ts .Row.Report.EndTime}} ({{hours .Row.Report}} h)</span>
  {{if eq .Role "admin"}}
  {{if .Row.Report.IsApproved}}
  <button class="btn btn-danger" hx-patch="/time-reports/approve/{{.Row.Report.ID}}" hx-vals='{"approved":"false"}' hx-target="#report-board">Disapprove</button>
  {{else}}
  <button class="btn btn-ok" hx-patch="/time-reports/approve/{{.Row.Report.ID}}" hx-vals='{"approved":"true"}' hx-target="#report-board">Approve</button>
  {{end}}
  <button class="btn btn-danger" hx-delete="/time-reports/{{.Row.Report.ID}}" hx-confirm="Delete this time report?" hx-target="#report-board">Delete</button>
  {{end}}
</li>
{{end}}`

// ── Profile / misc pages ──────────────────────────────────────────────────────

const profileHTML = `{{define "content"}}
<h1>Employee Profile</h1>
<h2>{{.Employee.Name}}</h2>
<p>Email: {{.Employee.Email}}</p>
<p>Admin: {{if .Employee.IsAdmin}}Yes{{else}}No{{end}}</p>
<p>ID: {{.Employee.ID}}</p>
{{if eq .Role "user"}}
<h3>Report Hours Worked</h3>
{{template "report-form" .Form}}
{{end}}
{{end}}

{{define "report-form"}}
<form id="report-form" hx-post="/time-reports" hx-target="#report-form" hx-swap="outerHTML" style="background:#fff;border:1px solid var(--line);border-radius:6px;padding:16px;max-width:420px;">
  {{if .Submitted}}<div class="toast success">Time report submitted successfully!</div>{{end}}
  <input type="hidden" name="employee_id" value="{{.EmployeeID}}">
  <div class="field">
    <label for="start_time">Start date</label>
    <input type="datetime-local" id="start_time" name="start_time" step="1" value="{{.StartTime}}">
  </div>
  <div class="field">
    <label for="end_time">End date</label>
    <input type="datetime-local" id="end_time" name="end_time" step="1" value="{{.EndTime}}">
  </div>
  {{if .TimeError}}<div class="field-error">{{.TimeError}}</div>{{end}}
  <button type="submit" class="btn btn-primary">Submit Time Report</button>
</form>
{{end}}`

const roleInfoHTML = `{{define "content"}}
<h1>Profile</h1>
<p>You are browsing in the <strong>{{.Role}}</strong> view.</p>
{{if eq .Role "admin"}}
<p>Admins can add and remove employees, and approve or delete time reports.</p>
{{else}}
<p>Users can browse employees and submit time reports from an employee profile.</p>
{{end}}
<p class="meta">The view role only changes which controls are shown; it is not a login.</p>
{{end}}`

const messageHTML = `{{define "content"}}
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Back to the employee list</a></p>
{{end}}`

var (
	employeeListPageTmpl = page(`{{define "content"}}<h1>Employee List</h1>{{template "employee-page" .}}{{end}}` +
		employeePageHTML + employeeListsHTML + employeeRowHTML)
	timeReportsPageTmpl = page(`{{define "content"}}<h1>Time Reports</h1>{{template "report-board" .}}{{end}}` +
		reportBoardHTML + reportRowHTML)
	profilePageTmpl  = page(profileHTML)
	roleInfoPageTmpl = page(roleInfoHTML)
	messagePageTmpl  = page(messageHTML)
)

// component adapts a named html/template to a templ.Component.
func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

// EmployeeListPage renders the full employee list page.
func EmployeeListPage(data EmployeeListData) templ.Component {
	data.Title = "Employee List"
	return component(employeeListPageTmpl, "base", data)
}

// EmployeePageFragment renders the htmx fragment swapped into #employee-page.
func EmployeePageFragment(data EmployeeListData) templ.Component {
	return component(employeeListPageTmpl, "employee-page", data)
}

// TimeReportsPage renders the full time report page.
func TimeReportsPage(data TimeReportsData) templ.Component {
	data.Title = "Time Reports"
	return component(timeReportsPageTmpl, "base", data)
}

// ReportBoardFragment renders the htmx fragment swapped into #report-board.
func ReportBoardFragment(data TimeReportsData) templ.Component {
	return component(timeReportsPageTmpl, "report-board", data)
}

// EmployeeProfilePage renders one employee's profile, with the submission
// form when the view role is "user".
func EmployeeProfilePage(data ProfileData) templ.Component {
	data.Title = "Employee Profile"
	return component(profilePageTmpl, "base", data)
}

// ReportFormFragment re-renders the submission form with validation state.
func ReportFormFragment(data ReportFormData) templ.Component {
	return component(profilePageTmpl, "report-form", data)
}

// RoleInfoPage renders the static role-specific info page.
func RoleInfoPage(data RoleInfoData) templ.Component {
	data.Title = "Profile"
	return component(roleInfoPageTmpl, "base", data)
}

// FlashFragment renders a standalone toast, used for error responses to
// htmx requests where a full page would be the wrong swap target.
func FlashFragment(flash Flash) templ.Component {
	return component(messagePageTmpl, "flash", &flash)
}

// NotFoundPage renders an inline "not found" message without navigating away.
func NotFoundPage(role, message string) templ.Component {
	return component(messagePageTmpl, "base", MessageData{
		Page:    Page{Title: "Not Found", Role: role},
		Status:  404,
		Message: message,
	})
}

// ErrorPage renders a generic error page for failures outside htmx swaps.
func ErrorPage(role, message string) templ.Component {
	return component(messagePageTmpl, "base", MessageData{
		Page:    Page{Title: "Something went wrong", Role: role},
		Message: message,
	})
}
