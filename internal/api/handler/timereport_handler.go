package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/staffdesk/staffdesk-web/internal/api/metrics"
	"github.com/staffdesk/staffdesk-web/internal/api/middleware"
	"github.com/staffdesk/staffdesk-web/internal/core/domain"
	"github.com/staffdesk/staffdesk-web/internal/core/ports"
	"github.com/staffdesk/staffdesk-web/internal/core/service"
	"github.com/staffdesk/staffdesk-web/internal/core/validate"
	"github.com/staffdesk/staffdesk-web/internal/web/templates"
)

// TimeReportHandler serves the time-report board and the submit, approve,
// and delete actions.
type TimeReportHandler struct {
	board ports.TimeReportBoard
}

func NewTimeReportHandler(board ports.TimeReportBoard) *TimeReportHandler {
	return &TimeReportHandler{board: board}
}

// submitReportForm is the profile-page submission contract. Times arrive in
// the datetime-local format, with or without seconds.
type submitReportForm struct {
	EmployeeID int64  `form:"employee_id"`
	StartTime  string `form:"start_time"`
	EndTime    string `form:"end_time"`
}

// List handles GET /time-reports. Full-page loads and explicit refreshes
// refetch both collections from the backend; a failed refresh keeps whatever
// the board last held.
func (h *TimeReportHandler) List(c echo.Context) error {
	role := middleware.RoleFrom(c)

	var flash *templates.Flash
	var rows []ports.ReportRow
	if isHTMX(c) && c.QueryParam("refresh") == "" {
		rows = h.board.Rows()
	} else {
		var err error
		rows, err = h.board.Overview(c.Request().Context())
		if err != nil {
			flash = &templates.Flash{Level: "error", Message: "Failed to load time reports. Showing the last known list."}
		}
	}

	data := h.boardData(role, rows, flash)
	if isHTMX(c) {
		return render(c, http.StatusOK, templates.ReportBoardFragment(data))
	}
	return render(c, http.StatusOK, templates.TimeReportsPage(data))
}

// Submit handles POST /time-reports (user view only). Time-range failures
// re-render the form inline and never reach the backend.
func (h *TimeReportHandler) Submit(c echo.Context) error {
	var form submitReportForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form payload")
	}

	formData := templates.ReportFormData{
		EmployeeID: form.EmployeeID,
		StartTime:  form.StartTime,
		EndTime:    form.EndTime,
	}

	start, startErr := parseFormTimestamp(form.StartTime)
	end, endErr := parseFormTimestamp(form.EndTime)
	if startErr != nil || endErr != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionSubmitReport, metrics.OutcomeRejected).Inc()
		formData.TimeError = validate.MsgTimesRequired
		return render(c, http.StatusOK, templates.ReportFormFragment(formData))
	}
	if err := validate.TimeRange(start, end); err != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionSubmitReport, metrics.OutcomeRejected).Inc()
		formData.TimeError = err.Error()
		return render(c, http.StatusOK, templates.ReportFormFragment(formData))
	}

	_, err := h.board.Submit(c.Request().Context(), ports.CreateTimeReportInput{
		EmployeeID: form.EmployeeID,
		StartTime:  start,
		EndTime:    end,
	})
	if err != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionSubmitReport, metrics.OutcomeError).Inc()
		formData.TimeError = "Failed to submit time report."
		return render(c, http.StatusOK, templates.ReportFormFragment(formData))
	}

	metrics.ActionsTotal.WithLabelValues(metrics.ActionSubmitReport, metrics.OutcomeSuccess).Inc()
	return render(c, http.StatusOK, templates.ReportFormFragment(templates.ReportFormData{
		EmployeeID: form.EmployeeID,
		Submitted:  true,
	}))
}

// Approve handles PATCH /time-reports/approve/:id (admin only). The approved
// form value selects the target state, so the same route both approves and
// disapproves.
func (h *TimeReportHandler) Approve(c echo.Context) error {
	role := middleware.RoleFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid time report id")
	}
	approved := c.FormValue("approved") == "true"

	var flash *templates.Flash
	if err := h.board.SetApproval(c.Request().Context(), id, approved); err != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionToggleApproval, metrics.OutcomeError).Inc()
		flash = &templates.Flash{Level: "error", Message: "Failed to update time report."}
	} else {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionToggleApproval, metrics.OutcomeSuccess).Inc()
		if approved {
			flash = &templates.Flash{Level: "success", Message: "Time report approved!"}
		} else {
			flash = &templates.Flash{Level: "success", Message: "Time report disapproved."}
		}
	}

	return render(c, http.StatusOK, templates.ReportBoardFragment(h.boardData(role, h.board.Rows(), flash)))
}

// Delete handles DELETE /time-reports/:id (admin only).
func (h *TimeReportHandler) Delete(c echo.Context) error {
	role := middleware.RoleFrom(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid time report id")
	}

	var flash *templates.Flash
	if err := h.board.Delete(c.Request().Context(), id); err != nil {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionDeleteReport, metrics.OutcomeError).Inc()
		flash = &templates.Flash{Level: "error", Message: "Failed to delete time report."}
	} else {
		metrics.ActionsTotal.WithLabelValues(metrics.ActionDeleteReport, metrics.OutcomeSuccess).Inc()
		flash = &templates.Flash{Level: "success", Message: "Time report deleted."}
	}

	return render(c, http.StatusOK, templates.ReportBoardFragment(h.boardData(role, h.board.Rows(), flash)))
}

func (h *TimeReportHandler) boardData(role string, rows []ports.ReportRow, flash *templates.Flash) templates.TimeReportsData {
	approved, pending := service.PartitionByFlag(rows, func(r ports.ReportRow) bool { return r.Report.IsApproved })
	return templates.TimeReportsData{
		Page:     templates.Page{Role: role, Flash: flash},
		Approved: approved,
		Pending:  pending,
	}
}

// parseFormTimestamp accepts datetime-local values, which browsers send with
// or without a seconds component.
func parseFormTimestamp(s string) (domain.Timestamp, error) {
	if ts, err := domain.ParseTimestamp(s); err == nil {
		return ts, nil
	}
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		return domain.Timestamp{}, err
	}
	return domain.Timestamp{Time: t}, nil
}
