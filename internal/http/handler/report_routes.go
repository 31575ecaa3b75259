package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"payables/internal/contract"
	"payables/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportService interface {
	BuildFinancialReport(year int) (*contract.FinancialReportResponse, apierror.ErrorResponse)
	ExportSpreadsheet(year, month int) ([]byte, string, apierror.ErrorResponse)
}

type DefaultReportRoute struct {
	ReportService ReportService
}

func NewReportDefault(reportService ReportService) *DefaultReportRoute {
	return &DefaultReportRoute{ReportService: reportService}
}

func (h *DefaultReportRoute) GetFinancialReport(c echo.Context) error {
	year, apierr := yearParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	report, apierr := h.ReportService.BuildFinancialReport(year)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if report == nil {
		resp := contract.NoDataResponse{Message: "No data for the requested year"}
		return c.JSON(http.StatusOK, &resp)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *DefaultReportRoute) ExportReport(c echo.Context) error {
	year, apierr := yearParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	month := 0
	if raw := c.Param("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("month", "int"))
		}
		if parsed < 1 || parsed > 12 {
			outOfRange := apierror.NewParamOutOfRangeError("month", 1, 12)
			return c.JSON(outOfRange.Code(), outOfRange)
		}
		month = parsed
	}

	file, filename, apierr := h.ReportService.ExportSpreadsheet(year, month)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, file)
}

func yearParam(c echo.Context) (int, apierror.ErrorResponse) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("year", "int")
	}

	if year < 1 || year > 9999 {
		return 0, apierror.NewParamOutOfRangeError("year", 1, 9999)
	}
	return year, nil
}
