package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carscout/src/repository"
	"carscout/src/workflow"
)

// DealershipHandler serves the dealership screens.
type DealershipHandler struct {
	dealerships *repository.DealershipRepository
	auth        repository.IdentityProvider
}

func NewDealershipHandler(dealerships *repository.DealershipRepository, auth repository.IdentityProvider) *DealershipHandler {
	return &DealershipHandler{dealerships: dealerships, auth: auth}
}

func (h *DealershipHandler) session(c *gin.Context) *workflow.DealershipWorkflow {
	return workflow.NewDealershipWorkflow(c.Request.Context(), h.dealerships, h.auth)
}

// GET /api/dealerships
func (h *DealershipHandler) ListDealerships(c *gin.Context) {
	wf := h.session(c)
	defer wf.Close()

	wf.LoadAll()

	items, ok := wf.Items.Get()
	if !ok {
		respondLastStatus(c, wf.LastStatus, http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": items})
}

// GET /api/dealerships/:id
func (h *DealershipHandler) GetDealership(c *gin.Context) {
	wf := h.session(c)
	defer wf.Close()

	wf.LoadOne(c.Param("id"))

	dealership, ok := wf.Current.Get()
	if !ok {
		respondLastStatus(c, wf.LastStatus, http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"payload":  dealership,
		"editable": wf.IsOwner(dealership.OwnerID),
	})
}

// POST /api/dealerships (multipart form; business accounts only)
func (h *DealershipHandler) CreateDealership(c *gin.Context) {
	images, err := formImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "error", "error": err.Error()})
		return
	}

	wf := h.session(c)
	defer wf.Close()

	wf.Add(dealershipInputFromForm(c), images)
	respondLastStatus(c, wf.LastStatus, http.StatusCreated)
}

// PUT /api/dealerships/:id (multipart form; business accounts only)
func (h *DealershipHandler) UpdateDealership(c *gin.Context) {
	id := c.Param("id")

	existing, found, err := h.dealerships.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "error", "error": "dealership not found"})
		return
	}

	wf := h.session(c)
	defer wf.Close()

	if !wf.IsOwner(existing.OwnerID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "error", "error": "only the owner may edit a dealership"})
		return
	}

	images, err := formImages(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "error", "error": err.Error()})
		return
	}

	wf.Update(id, dealershipInputFromForm(c), images)
	respondLastStatus(c, wf.LastStatus, http.StatusOK)
}

func dealershipInputFromForm(c *gin.Context) workflow.DealershipInput {
	return workflow.DealershipInput{
		Name:        c.PostForm("name"),
		Address:     c.PostForm("address"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Email:       c.PostForm("email"),
	}
}
