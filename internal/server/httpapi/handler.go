// Package httpapi exposes the record service over HTTP. Routes, status
// codes and error bodies follow the service's public contract: client
// faults (validation, duplicate guid, unknown guid) are 400 with a
// descriptive JSON body, store failures are a generic 500 with no
// internal detail.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/guidstore/internal/common"
	"github.com/dmitrijs2005/guidstore/internal/logging"
	"github.com/dmitrijs2005/guidstore/internal/server/models"
	"github.com/dmitrijs2005/guidstore/internal/server/validation"
)

// RecordService is the slice of the service layer the transport needs.
type RecordService interface {
	Create(ctx context.Context, guid string, patch models.RecordPatch) (*models.Record, error)
	Read(ctx context.Context, guid string) (*models.Record, error)
	Update(ctx context.Context, guid string, patch models.RecordPatch) (*models.Record, error)
	Delete(ctx context.Context, guid string) error
	List(ctx context.Context) ([]*models.Record, error)
}

// Handler translates HTTP requests into service calls.
type Handler struct {
	service RecordService
	logger  logging.Logger
}

func NewHandler(s RecordService, l logging.Logger) *Handler {
	return &Handler{service: s, logger: l.With("module", "http_handler")}
}

// Register mounts the record routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/guid", h.create)
	e.POST("/guid/:guid", h.create)
	e.GET("/guid", h.list)
	e.GET("/guid/:guid", h.read)
	e.PUT("/guid/:guid", h.update)
	e.DELETE("/guid/:guid", h.delete)
}

// createRequest also accepts a guid in the body; a guid in the path
// takes precedence.
type createRequest struct {
	GUID   *string `json:"guid"`
	User   *string `json:"user"`
	Expire *int64  `json:"expire"`
}

func (h *Handler) create(c echo.Context) error {
	req := createRequest{}
	if err := decodeBody(c.Request().Body, &req); err != nil && !errors.Is(err, io.EOF) {
		return writeDecodeError(c, err)
	}

	guid := c.Param("guid")
	if guid == "" && req.GUID != nil {
		guid = *req.GUID
	}

	rec, err := h.service.Create(c.Request().Context(), guid,
		models.RecordPatch{User: req.User, Expire: req.Expire})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) read(c echo.Context) error {
	rec, err := h.service.Read(c.Request().Context(), c.Param("guid"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) update(c echo.Context) error {
	patch := models.RecordPatch{}
	if err := decodeBody(c.Request().Body, &patch); err != nil {
		if errors.Is(err, io.EOF) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "No input data provided."})
		}
		return writeDecodeError(c, err)
	}

	rec, err := h.service.Update(c.Request().Context(), c.Param("guid"), patch)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("guid")); err != nil {
		return h.writeError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *Handler) list(c echo.Context) error {
	result, err := h.service.List(c.Request().Context())
	if err != nil {
		return h.writeError(c, err)
	}
	if result == nil {
		result = []*models.Record{}
	}
	return c.JSON(http.StatusOK, result)
}

// decodeBody strictly decodes a JSON body. io.EOF signals an empty body.
func decodeBody(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	return dec.Decode(v)
}

// writeDecodeError maps JSON type mismatches onto the same field-keyed
// shape validation errors use.
func writeDecodeError(c echo.Context, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		msg := validation.MsgNotAString
		if typeErr.Field == "expire" {
			msg = validation.MsgNotAnInteger
		}
		return c.JSON(http.StatusBadRequest, validation.Errors{typeErr.Field: {msg}})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
}

func (h *Handler) writeError(c echo.Context, err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusBadRequest, verrs)
	case errors.Is(err, common.ErrorAlreadyExists):
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Error: GUID must be unique"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "GUID not found"})
	default:
		h.logger.Error(c.Request().Context(), "request failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error."})
	}
}
