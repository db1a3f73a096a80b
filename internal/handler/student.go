package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campus-canteen-reservation/internal/model"
	"github.com/iliyamo/campus-canteen-reservation/internal/store"
)

// StudentHandler serves student registration and lookup.
type StudentHandler struct {
	Store *store.Store
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(s *store.Store) *StudentHandler {
	if s == nil {
		panic("nil store passed to NewStudentHandler")
	}
	return &StudentHandler{Store: s}
}

// Create handles POST /students. The admin flag is taken from the payload;
// vetting who may register admins is out of scope here.
func (h *StudentHandler) Create(c echo.Context) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.TrimSpace(body.Email)
	if body.Name == "" || body.Email == "" {
		return c.JSON(http.StatusTeapot, echo.Map{"error": "name and email are required"})
	}

	st, err := h.Store.CreateStudent(model.Student{Name: body.Name, Email: body.Email, IsAdmin: body.IsAdmin})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return c.JSON(http.StatusTeapot, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create student"})
	}
	return c.JSON(http.StatusCreated, st)
}

// Get handles GET /students/:id.
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	st, err := h.Store.GetStudent(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
	}
	return c.JSON(http.StatusOK, st)
}
