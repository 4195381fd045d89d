package http

import (
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"

	"asset-console/internal/application"
	"asset-console/internal/domain"
	"asset-console/internal/infrastructure/auth"
)

func handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotAuthenticated):
		return c.JSON(stdhttp.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSystemRole), errors.Is(err, domain.ErrPermissionDeny):
		return c.JSON(stdhttp.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(stdhttp.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(stdhttp.StatusConflict, map[string]string{"error": err.Error()})
	default:
		return c.JSON(stdhttp.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

type AssetsHandler struct {
	service *application.AssetService
}

func NewAssetsHandler(service *application.AssetService) *AssetsHandler {
	return &AssetsHandler{service: service}
}

func (h *AssetsHandler) Create(c echo.Context) error {
	var req application.AssetInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	asset, err := h.service.AddAsset(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, asset)
}

func (h *AssetsHandler) Update(c echo.Context) error {
	var req application.AssetPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	asset, err := h.service.UpdateAsset(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, asset)
}

func (h *AssetsHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAsset(c.Request().Context(), c.Param("id")); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusNoContent)
}

func (h *AssetsHandler) Get(c echo.Context) error {
	asset, err := h.service.AssetByID(c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, asset)
}

// List returns the collection, optionally filtered by ?category= or
// ?status=. Filters compose by intersection.
func (h *AssetsHandler) List(c echo.Context) error {
	assets := h.service.Assets()
	if category := c.QueryParam("category"); category != "" {
		assets = h.service.AssetsByCategory(category)
	}
	if status := c.QueryParam("status"); status != "" {
		filtered := make([]domain.Asset, 0, len(assets))
		for _, a := range assets {
			if a.Status == domain.AssetStatus(status) {
				filtered = append(filtered, a)
			}
		}
		assets = filtered
	}
	return c.JSON(stdhttp.StatusOK, assets)
}

func (h *AssetsHandler) Scan(c echo.Context) error {
	asset, err := h.service.ScanRFID(c.Request().Context(), c.Param("tag"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, asset)
}

func (h *AssetsHandler) Categories(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, h.service.Categories())
}

func (h *AssetsHandler) Export(c echo.Context) error {
	out, err := h.service.ExportCSV()
	if err != nil {
		return handleError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="assets.csv"`)
	return c.Blob(stdhttp.StatusOK, "text/csv", []byte(out))
}

func (h *AssetsHandler) Import(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	imported, err := h.service.ImportCSV(c.Request().Context(), string(body))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, map[string]int{"imported": imported})
}

type RolesHandler struct {
	service *application.RoleService
}

func NewRolesHandler(service *application.RoleService) *RolesHandler {
	return &RolesHandler{service: service}
}

func (h *RolesHandler) List(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, h.service.Roles())
}

func (h *RolesHandler) Create(c echo.Context) error {
	var req application.RoleInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.CreateRole(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusCreated, role)
}

func (h *RolesHandler) Update(c echo.Context) error {
	var req application.RolePatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteRole(c.Request().Context(), c.Param("id")); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusNoContent)
}

func (h *RolesHandler) AssignPermission(c echo.Context) error {
	var req struct {
		PermissionID string `json:"permissionId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	role, err := h.service.AssignPermission(c.Request().Context(), c.Param("id"), req.PermissionID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) RemovePermission(c echo.Context) error {
	role, err := h.service.RemovePermission(c.Request().Context(), c.Param("id"), c.Param("permission_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, role)
}

func (h *RolesHandler) Permissions(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, h.service.Permissions())
}

func (h *RolesHandler) Schema(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, h.service.Schema())
}

func (h *RolesHandler) UpdateSchema(c echo.Context) error {
	var req []domain.SchemaTable
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := h.service.UpdateSchema(c.Request().Context(), req); err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, req)
}

type AuthHandler struct {
	service *application.AuthService
	tokens  *auth.TokenIssuer
}

func NewAuthHandler(service *application.AuthService, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}
	token, err := h.tokens.Issue(user)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, map[string]any{"user": user, "token": token})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.service.Logout(c.Request().Context()); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusNoContent)
}

func (h *AuthHandler) Session(c echo.Context) error {
	user, ok := h.service.CurrentUser()
	resp := map[string]any{
		"isAuthenticated": h.service.IsAuthenticated(),
		"isSetupComplete": h.service.IsSetupComplete(),
	}
	if ok {
		resp["user"] = user
	}
	return c.JSON(stdhttp.StatusOK, resp)
}

func (h *AuthHandler) UpdateUser(c echo.Context) error {
	var req application.UserPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(stdhttp.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	user, err := h.service.UpdateUser(c.Request().Context(), req)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(stdhttp.StatusOK, user)
}

func (h *AuthHandler) CompleteSetup(c echo.Context) error {
	if err := h.service.CompleteSetup(c.Request().Context()); err != nil {
		return handleError(c, err)
	}
	return c.NoContent(stdhttp.StatusNoContent)
}
