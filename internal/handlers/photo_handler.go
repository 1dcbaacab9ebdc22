package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"github.com/lumilens-app/backend/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
)

// PhotoHandler handles photo CRUD HTTP requests
type PhotoHandler struct {
	photoRepository repositories.PhotoRepository
	likeRepository  repositories.LikeRepository
	objectStore     storage.ObjectStore
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoRepo repositories.PhotoRepository, likeRepo repositories.LikeRepository, objectStore storage.ObjectStore) *PhotoHandler {
	return &PhotoHandler{
		photoRepository: photoRepo,
		likeRepository:  likeRepo,
		objectStore:     objectStore,
	}
}

// RegisterPhotoRoutes registers photo routes
func (h *PhotoHandler) RegisterPhotoRoutes(g *echo.Group) {
	g.GET("/photos", h.GetMyPhotos)
	g.GET("/photos/:id", h.GetPhoto)
	g.PATCH("/photos/:id", h.UpdatePhoto)
	g.PATCH("/photos/:id/privacy", h.TogglePrivacy)
	g.DELETE("/photos/:id", h.DeletePhoto)
}

// GetMyPhotos lists the caller's photos, newest first
func (h *PhotoHandler) GetMyPhotos(c echo.Context) error {
	profileID := getProfileID(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	photos, err := h.photoRepository.GetPhotosByProfileID(c.Request().Context(), profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, photos)
}

// GetPhoto returns a photo with its like count
func (h *PhotoHandler) GetPhoto(c echo.Context) error {
	photo, err := h.photoRepository.GetPhotoByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Photo not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetLikesCountByPhotoID(photo.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"photo":      photo,
		"likesCount": count,
	})
}

// UpdatePhoto updates a photo owned by the caller
func (h *PhotoHandler) UpdatePhoto(c echo.Context) error {
	photo, err := h.ownedPhoto(c)
	if err != nil {
		return err
	}

	var req models.UpdatePhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.IsPublic != nil {
		update["is_public"] = *req.IsPublic
	}
	if err := h.photoRepository.UpdatePhoto(c.Request().Context(), photo.ID.Hex(), update); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// TogglePrivacy flips a photo's public flag
func (h *PhotoHandler) TogglePrivacy(c echo.Context) error {
	photo, err := h.ownedPhoto(c)
	if err != nil {
		return err
	}
	update := bson.M{"is_public": !photo.IsPublic}
	if err := h.photoRepository.UpdatePhoto(c.Request().Context(), photo.ID.Hex(), update); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"is_public": !photo.IsPublic})
}

// DeletePhoto deletes a photo and its likes. The database delete commits
// first; object-storage cleanup is best-effort and a failure is only logged.
func (h *PhotoHandler) DeletePhoto(c echo.Context) error {
	photo, err := h.ownedPhoto(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	photoID := photo.ID.Hex()

	if err := h.photoRepository.DeletePhoto(ctx, photoID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.likeRepository.DeleteLikesByPhotoID(photoID); err != nil {
		log.Printf("failed to remove likes for photo %s: %v", photoID, err)
	}

	keys := []string{
		h.objectStore.KeyFromURL(photo.URL),
		h.objectStore.KeyFromURL(photo.ThumbnailURL),
	}
	if err := h.objectStore.Delete(ctx, keys...); err != nil {
		log.Printf("failed to remove photo %s files from storage: %v", photoID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *PhotoHandler) ownedPhoto(c echo.Context) (*models.Photo, error) {
	profileID := getProfileID(c)
	if profileID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	photo, err := h.photoRepository.GetPhotoByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Photo not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if photo.ProfileID != profileID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Not the photo owner")
	}
	return photo, nil
}
