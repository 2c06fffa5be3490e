package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/gallery/internal/logging"
	"github.com/Skotchmaster/gallery/internal/service"
	"github.com/Skotchmaster/gallery/internal/session"
	"github.com/Skotchmaster/gallery/internal/transport"
	"github.com/Skotchmaster/gallery/internal/uploads"
)

type GalleryHTTP struct {
	Svc     *service.GalleryService
	Uploads *uploads.Store
}

func (h *GalleryHTTP) GetGallery(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gallery.get_gallery")

	g, err := h.Svc.Gallery(ctx)
	if err != nil {
		return httpError(l, "get_gallery", err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GalleryHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gallery.get_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return httpError(l, "get_products", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *GalleryHTTP) GetContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "gallery.get_contact")

	contact, err := h.Svc.GetContact(ctx)
	if err != nil {
		return httpError(l, "get_contact", err)
	}
	return c.JSON(http.StatusOK, contact)
}

func (h *GalleryHTTP) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dashboard")

	g, err := h.Svc.Dashboard(ctx, currentSession(c))
	if err != nil {
		return httpError(l, "dashboard", err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GalleryHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")
	sess := currentSession(c)

	// nothing touches the upload dir for an anonymous caller
	if err := session.Authorize(sess); err != nil {
		return httpError(l, "create_product", err)
	}

	req, err := transport.ParseCreateProductForm(c.FormValue("name"), c.FormValue("price"), c.FormValue("stock"))
	if err != nil {
		return httpError(l, "create_product", err)
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		l.Warn("create_product_failed", "status", http.StatusBadRequest, "reason", "invalid image part", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid image")
	default:
		name, err := h.Uploads.Save(fh)
		if err != nil {
			l.Error("create_product_failed", "status", http.StatusInternalServerError, "reason", "cannot save image", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot save image")
		}
		req.Image = name
	}

	prod, err := h.Svc.AddProduct(ctx, sess, req)
	if err != nil {
		return httpError(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *GalleryHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		l.Warn("delete_product_failed", "status", http.StatusBadRequest, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, currentSession(c), uint(id)); err != nil {
		return httpError(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *GalleryHTTP) UpdateContact(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_contact")

	req, err := bindContact(c)
	if err != nil {
		l.Warn("update_contact_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	contact, err := h.Svc.UpdateContact(ctx, currentSession(c), req)
	if err != nil {
		return httpError(l, "update_contact", err)
	}

	l.Info("update_contact_success")
	return c.JSON(http.StatusOK, contact)
}

func (h *GalleryHTTP) UpdateCredentials(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_credentials")

	var req transport.CredentialRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_credentials_failed", "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateAdminCredential(ctx, currentSession(c), req); err != nil {
		return httpError(l, "update_credentials", err)
	}

	l.Info("update_credentials_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "credentials updated"})
}

// bindContact keeps the difference between an absent field and an empty one
// for both JSON and form bodies.
func bindContact(c echo.Context) (transport.ContactRequest, error) {
	var req transport.ContactRequest
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		err := c.Bind(&req)
		return req, err
	}

	form, err := c.FormParams()
	if err != nil {
		return req, err
	}
	field := func(key string) *string {
		vs, ok := form[key]
		if !ok || len(vs) == 0 {
			return nil
		}
		v := vs[0]
		return &v
	}
	req.Phone1 = field("phone1")
	req.Phone2 = field("phone2")
	req.Instagram = field("instagram")
	req.Email = field("email")
	return req, nil
}
