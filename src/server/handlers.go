package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carscout/src/repository"
	"carscout/src/workflow"
)

// CarHandler serves the listing screens. Each request gets its own workflow
// bound to the request context, so a dropped connection cancels the work the
// same way leaving a screen does.
type CarHandler struct {
	cars *repository.CarRepository
	auth repository.IdentityProvider
}

func NewCarHandler(cars *repository.CarRepository, auth repository.IdentityProvider) *CarHandler {
	return &CarHandler{cars: cars, auth: auth}
}

func (h *CarHandler) session(c *gin.Context) *workflow.CarWorkflow {
	return workflow.NewCarWorkflow(c.Request.Context(), h.cars, h.auth)
}

// GET /api/cars?manufacturer=...&min_price=...&max_price=...&owner=...
func (h *CarHandler) ListCars(c *gin.Context) {
	wf := h.session(c)
	defer wf.Close()

	if owner := c.Query("owner"); owner != "" {
		wf.FilterByOwner(owner)
	} else {
		manufacturer := c.DefaultQuery("manufacturer", workflow.ManufacturerAll)
		wf.Filter(manufacturer, priceQuery(c, "min_price"), priceQuery(c, "max_price"))
	}

	items, ok := wf.Items.Get()
	if !ok {
		respondLastStatus(c, wf.LastStatus, http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": items})
}

// GET /api/cars/:id
func (h *CarHandler) GetCar(c *gin.Context) {
	wf := h.session(c)
	defer wf.Close()

	wf.LoadOne(c.Param("id"))

	car, ok := wf.Current.Get()
	if !ok {
		respondLastStatus(c, wf.LastStatus, http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"payload":  car,
		"editable": wf.IsOwner(car.OwnerID),
	})
}

// POST /api/cars (multipart form)
func (h *CarHandler) CreateCar(c *gin.Context) {
	images, err := formImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "error", "error": err.Error()})
		return
	}

	wf := h.session(c)
	defer wf.Close()

	wf.Add(carInputFromForm(c), images)
	respondLastStatus(c, wf.LastStatus, http.StatusCreated)
}

// PUT /api/cars/:id (multipart form; existing_images carries kept URLs)
func (h *CarHandler) UpdateCar(c *gin.Context) {
	id := c.Param("id")

	existing, found, err := h.cars.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "error", "error": "listing not found"})
		return
	}

	wf := h.session(c)
	defer wf.Close()

	if !wf.IsOwner(existing.OwnerID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "error", "error": "only the owner may edit a listing"})
		return
	}

	images, err := formImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "error", "error": err.Error()})
		return
	}

	wf.Update(id, carInputFromForm(c), images)
	respondLastStatus(c, wf.LastStatus, http.StatusOK)
}

// DELETE /api/cars/:id
func (h *CarHandler) DeleteCar(c *gin.Context) {
	id := c.Param("id")

	existing, found, err := h.cars.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "error", "error": "listing not found"})
		return
	}

	wf := h.session(c)
	defer wf.Close()

	if !wf.IsOwner(existing.OwnerID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "error", "error": "only the owner may delete a listing"})
		return
	}

	wf.Delete(id)
	respondLastStatus(c, wf.LastStatus, http.StatusOK)
}

func carInputFromForm(c *gin.Context) workflow.CarInput {
	return workflow.CarInput{
		Manufacturer: c.PostForm("manufacturer"),
		Model:        c.PostForm("model"),
		Year:         c.PostForm("year"),
		Mileage:      c.PostForm("mileage"),
		Condition:    c.PostForm("condition"),
		Description:  c.PostForm("description"),
		Price:        c.PostForm("price"),
	}
}

func priceQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// respondLastStatus translates the workflow's final status into a response.
func respondLastStatus(c *gin.Context, last *workflow.Observable[workflow.Status], okCode int) {
	status, ok := last.Get()
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": "no outcome recorded"})
		return
	}
	if status.Ok {
		c.JSON(okCode, gin.H{"status": "success", "payload": status})
		return
	}
	c.JSON(statusCode(status.Kind), gin.H{"message": "error", "error": status.Message})
}

func statusCode(kind workflow.StatusKind) int {
	switch kind {
	case workflow.StatusValidation:
		return http.StatusBadRequest
	case workflow.StatusUnauthenticated:
		return http.StatusUnauthorized
	case workflow.StatusUnauthorized:
		return http.StatusForbidden
	case workflow.StatusNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
