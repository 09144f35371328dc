package handler

import (
	"log/slog"
	"net/http"

	"homecafe/internal/delivery/http/response"
	"homecafe/internal/domain/service"
	"homecafe/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MenuHandlerParams holds dependencies for MenuHandler, injected by Fx.
type MenuHandlerParams struct {
	fx.In

	CatalogUC     usecase.CatalogUsecase
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// MenuHandler serves the guest-facing menu.
type MenuHandler struct {
	catalogUC     usecase.CatalogUsecase
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler
func NewMenuHandler(params MenuHandlerParams) *MenuHandler {
	return &MenuHandler{
		catalogUC:     params.CatalogUC,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

// GetMenu returns the current menu: active items grouped by category plus
// the resolved page config.
func (h *MenuHandler) GetMenu(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalogUC.Menu(), "")
}

// GetMenuQR returns a printable PNG QR code pointing at the menu page.
func (h *MenuHandler) GetMenuQR(c echo.Context) error {
	png, err := h.qrcodeService.GenerateMenuQR()
	if err != nil {
		h.logger.Error("failed to generate menu QR", slog.Any("error", err))

		return response.InternalServerError(c, "QR_GENERATION_FAILED", "Could not generate the menu QR code")
	}

	c.Response().Header().Set("Content-Disposition", `inline; filename="menu-qr.png"`)

	return c.Blob(http.StatusOK, "image/png", png)
}
