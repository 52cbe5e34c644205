package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carhub/carhub/internal/auth"
	"github.com/carhub/carhub/internal/handler/dto"
	"github.com/carhub/carhub/internal/service"
)

// ListingHandler handles HTTP requests for listing operations.
type ListingHandler struct {
	svc           *service.ListingService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(svc *service.ListingService, logger *slog.Logger, maxUploadSize int64) *ListingHandler {
	return &ListingHandler{
		svc:           svc,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Create handles POST /api/cars/createcar (multipart form).
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price is required and must be numeric")
		return
	}

	uploads, closeFiles, err := imageUploads(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
		return
	}
	defer closeFiles()

	input := service.CreateListingInput{
		OwnerID:     auth.MustUserIDFromContext(r.Context()),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Tags:        parseTags(r.Form["tags"]),
		Images:      uploads,
	}

	listing, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("listing_created",
		"listing_id", listing.ID,
		"owner_id", listing.OwnerID,
		"image_count", len(listing.Images),
	)

	writeJSON(w, http.StatusCreated, dto.ToListingResponse(listing))
}

// UserCars handles GET /api/cars/usercars.
func (h *ListingHandler) UserCars(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListOwned(r.Context(), auth.MustUserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListingListResponse(listings))
}

// AllCars handles GET /api/cars/allcars. No authentication required.
func (h *ListingHandler) AllCars(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListingListResponse(listings))
}

// Search handles GET /api/cars/search?keyword=.
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "MISSING_KEYWORD", "Search keyword is required")
		return
	}

	listings, err := h.svc.Search(r.Context(), auth.MustUserIDFromContext(r.Context()), keyword)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListingListResponse(listings))
}

// Get handles GET /api/cars/car/{id}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.svc.Get(r.Context(), auth.MustUserIDFromContext(r.Context()), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToListingResponse(listing))
}

// Update handles PUT /api/cars/car/{id}.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	listing, err := h.svc.Update(r.Context(), auth.MustUserIDFromContext(r.Context()), id, req.ToUpdate())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("listing_updated", "listing_id", listing.ID)

	writeJSON(w, http.StatusOK, dto.ToListingResponse(listing))
}

// Delete handles DELETE /api/cars/car/{id}.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), auth.MustUserIDFromContext(r.Context()), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("listing_deleted", "listing_id", id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted successfully"})
}

// DeleteImage handles DELETE /api/cars/car/{id}/image.
func (h *ListingHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.DeleteImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE_URL", "Image URL is required")
		return
	}

	listing, err := h.svc.DeleteImage(r.Context(), auth.MustUserIDFromContext(r.Context()), id, req.ImageURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("listing_image_deleted", "listing_id", id)

	writeJSON(w, http.StatusOK, dto.ToListingResponse(listing))
}

// UploadImages handles POST /api/cars/car/{id}/upload-images (multipart form).
func (h *ListingHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	uploads, closeFiles, err := imageUploads(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file")
		return
	}
	defer closeFiles()

	listing, err := h.svc.UploadImages(r.Context(), id, uploads)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("listing_images_uploaded",
		"listing_id", id,
		"image_count", len(uploads),
	)

	writeJSON(w, http.StatusOK, dto.ToListingResponse(listing))
}

// handleServiceError maps listing service errors to HTTP responses.
// Storage and image-host failures surface the underlying message.
func (h *ListingHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Title, description, and price are required")
	case errors.Is(err, service.ErrTooManyImages):
		writeError(w, http.StatusBadRequest, "TOO_MANY_IMAGES", "Cannot add more than 10 images")
	case errors.Is(err, service.ErrNoImages):
		writeError(w, http.StatusBadRequest, "NO_FILES", "No files uploaded")
	case errors.Is(err, service.ErrListingNotFound):
		writeError(w, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// imageUploads collects the "images" files from a parsed multipart form.
// The returned closer releases the underlying file handles.
func imageUploads(r *http.Request) ([]service.ImageUpload, func(), error) {
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["images"]
	}

	files := make([]multipart.File, 0, len(headers))
	closeFiles := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]service.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeFiles()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	return uploads, closeFiles, nil
}

// parseTags flattens repeated and comma-separated tag values,
// preserving order.
func parseTags(values []string) []string {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			trimmed := strings.TrimSpace(tag)
			if trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}
	return tags
}
