package homes

import (
	"encoding/json"
	"errors"
	"fmt"

	homesvc "homeboard-backend/internal/application/homes"
	"homeboard-backend/internal/domain"
	"homeboard-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *homesvc.Service
}

type createHomeRequest struct {
	Title         string             `json:"title"`
	Address       string             `json:"address"`
	Price         *float64           `json:"price"`
	Deposit       *float64           `json:"deposit"`
	Size          string             `json:"size"`
	ListingURL    *string            `json:"listingUrl"`
	GoogleMapsURL *string            `json:"googleMapsUrl"`
	Notes         *string            `json:"notes"`
	MediaFiles    []domain.MediaFile `json:"mediaFiles"`
}

// POST /api/homes — persist a home listing. Media files were uploaded in a
// prior request; their references come attached in the body and are not
// re-verified against the store.
func (h *Handlers) CreateHome(c *fiber.Ctx) error {
	var req createHomeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	required := []struct {
		field   string
		missing bool
	}{
		{"title", req.Title == ""},
		{"address", req.Address == ""},
		{"price", req.Price == nil},
		{"size", req.Size == ""},
	}
	for _, r := range required {
		if r.missing {
			return response.BadRequest(c, fmt.Sprintf("Missing required field: %s", r.field))
		}
	}
	if *req.Price < 0 {
		return response.BadRequest(c, "Price must be a non-negative number")
	}
	if req.MediaFiles == nil {
		req.MediaFiles = []domain.MediaFile{}
	}

	home, err := h.Service.Create(c.Context(), homesvc.CreateHomeInput{
		Title:         req.Title,
		Address:       req.Address,
		Price:         *req.Price,
		Deposit:       req.Deposit,
		Size:          req.Size,
		ListingURL:    req.ListingURL,
		GoogleMapsURL: req.GoogleMapsURL,
		Notes:         req.Notes,
		MediaFiles:    req.MediaFiles,
	})
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(home)
}

// GET /api/homes — all listings, most recent first.
func (h *Handlers) GetAllHomes(c *fiber.Ctx) error {
	homes, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(homes)
}

// GET /api/homes/:id
func (h *Handlers) GetHomeByID(c *fiber.Ctx) error {
	home, err := h.Service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrHomeNotFound) {
			return response.NotFound(c, "Home not found")
		}
		return response.ServerError(c)
	}
	return c.JSON(home)
}

// DELETE /api/homes/:id — cascades to the home's media objects before the
// record itself goes. A never-existed id is a 404 with no deletions attempted.
func (h *Handlers) DeleteHome(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrHomeNotFound) {
			return response.NotFound(c, "Home not found")
		}
		return response.ServerError(c)
	}
	return c.JSON(response.MsgBody{Msg: "Home removed"})
}
