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

// AlbumHandler handles album CRUD HTTP requests
type AlbumHandler struct {
	albumRepository repositories.AlbumRepository
	photoRepository repositories.PhotoRepository
	likeRepository  repositories.LikeRepository
	objectStore     storage.ObjectStore
}

// NewAlbumHandler creates a new AlbumHandler
func NewAlbumHandler(
	albumRepo repositories.AlbumRepository,
	photoRepo repositories.PhotoRepository,
	likeRepo repositories.LikeRepository,
	objectStore storage.ObjectStore,
) *AlbumHandler {
	return &AlbumHandler{
		albumRepository: albumRepo,
		photoRepository: photoRepo,
		likeRepository:  likeRepo,
		objectStore:     objectStore,
	}
}

// RegisterAlbumRoutes registers album routes
func (h *AlbumHandler) RegisterAlbumRoutes(g *echo.Group) {
	g.POST("/albums", h.CreateAlbum)
	g.GET("/albums", h.GetMyAlbums)
	g.GET("/albums/:id", h.GetAlbum)
	g.PATCH("/albums/:id", h.UpdateAlbum)
	g.DELETE("/albums/:id", h.DeleteAlbum)
}

// CreateAlbum creates an album owned by the caller
func (h *AlbumHandler) CreateAlbum(c echo.Context) error {
	profileID := getProfileID(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateAlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	album := &models.Album{
		ProfileID:   profileID,
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if err := h.albumRepository.CreateAlbum(c.Request().Context(), album); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, album)
}

// GetMyAlbums lists the caller's albums with photo counts
func (h *AlbumHandler) GetMyAlbums(c echo.Context) error {
	profileID := getProfileID(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	ctx := c.Request().Context()
	albums, err := h.albumRepository.GetAlbumsByProfileID(ctx, profileID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	type albumWithCount struct {
		models.Album
		Count int64 `json:"count"`
	}
	out := make([]albumWithCount, 0, len(albums))
	for _, album := range albums {
		count, err := h.photoRepository.CountPhotosByAlbumID(ctx, album.ID.Hex())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		out = append(out, albumWithCount{Album: album, Count: count})
	}
	return c.JSON(http.StatusOK, out)
}

// GetAlbum returns an album with its photos. Non-owners only see public
// photos.
func (h *AlbumHandler) GetAlbum(c echo.Context) error {
	ctx := c.Request().Context()
	album, err := h.albumRepository.GetAlbumByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	photos, err := h.photoRepository.GetPhotosByAlbumID(ctx, album.ID.Hex())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if getProfileID(c) != album.ProfileID {
		visible := photos[:0]
		for _, p := range photos {
			if p.IsPublic {
				visible = append(visible, p)
			}
		}
		photos = visible
	}

	return c.JSON(http.StatusOK, echo.Map{
		"album":  album,
		"photos": photos,
	})
}

// UpdateAlbum updates an album owned by the caller
func (h *AlbumHandler) UpdateAlbum(c echo.Context) error {
	album, err := h.ownedAlbum(c)
	if err != nil {
		return err
	}

	var req models.UpdateAlbumRequest
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
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.IsPublic != nil {
		update["is_public"] = *req.IsPublic
	}
	if err := h.albumRepository.UpdateAlbum(c.Request().Context(), album.ID.Hex(), update); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteAlbum deletes an album, its photos and their likes. Object-storage
// cleanup runs after the primary deletes and is best-effort: a failure is
// logged, never surfaced.
func (h *AlbumHandler) DeleteAlbum(c echo.Context) error {
	album, err := h.ownedAlbum(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	albumID := album.ID.Hex()

	photos, err := h.photoRepository.GetPhotosByAlbumID(ctx, albumID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var keys []string
	for _, p := range photos {
		keys = append(keys, h.objectStore.KeyFromURL(p.URL), h.objectStore.KeyFromURL(p.ThumbnailURL))
	}

	if err := h.photoRepository.DeletePhotosByAlbumID(ctx, albumID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.albumRepository.DeleteAlbum(ctx, albumID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, p := range photos {
		if err := h.likeRepository.DeleteLikesByPhotoID(p.ID.Hex()); err != nil {
			log.Printf("failed to remove likes for photo %s: %v", p.ID.Hex(), err)
		}
	}

	if len(keys) > 0 {
		if err := h.objectStore.Delete(ctx, keys...); err != nil {
			log.Printf("failed to remove album %s files from storage: %v", albumID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AlbumHandler) ownedAlbum(c echo.Context) (*models.Album, error) {
	profileID := getProfileID(c)
	if profileID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	album, err := h.albumRepository.GetAlbumByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if album.ProfileID != profileID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Not the album owner")
	}
	return album, nil
}
