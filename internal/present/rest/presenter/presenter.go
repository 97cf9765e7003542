package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Presenter writes JSON responses and logs failures.
type Presenter struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Presenter{logger: logger}
}

// OK wraps a successful response.
func (p Presenter) OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func (p Presenter) NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func (p Presenter) NotModified(c echo.Context) error {
	return c.NoContent(http.StatusNotModified)
}

func (p Presenter) BadRequest(c echo.Context, err error) error {
	p.logger.Info("bad request", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (p Presenter) Forbidden(c echo.Context, msg string) error {
	p.logger.Info("forbidden", zap.String("path", c.Path()), zap.String("reason", msg))
	return c.JSON(http.StatusForbidden, errorResponse{Error: msg})
}

func (p Presenter) NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func (p Presenter) InternalError(c echo.Context, err error) error {
	p.logger.Error("internal error", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
