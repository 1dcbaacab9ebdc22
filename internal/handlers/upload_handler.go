package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"path"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"github.com/lumilens-app/backend/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
)

const thumbnailWidth = 400

// UploadHandler handles multipart uploads to object storage
type UploadHandler struct {
	photoRepository repositories.PhotoRepository
	albumRepository repositories.AlbumRepository
	objectStore     storage.ObjectStore
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(photoRepo repositories.PhotoRepository, albumRepo repositories.AlbumRepository, objectStore storage.ObjectStore) *UploadHandler {
	return &UploadHandler{
		photoRepository: photoRepo,
		albumRepository: albumRepo,
		objectStore:     objectStore,
	}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads/photo", h.UploadPhoto)
	g.POST("/uploads/avatar", h.UploadAvatar)
}

// UploadPhoto stores the original and a single resized thumbnail, then
// creates the photo record. The first photo of an album becomes its cover.
func (h *UploadHandler) UploadPhoto(c echo.Context) error {
	profileID := getProfileID(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	ctx := c.Request().Context()

	albumID := c.FormValue("album_id")
	if albumID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "album_id is required")
	}
	album, err := h.albumRepository.GetAlbumByID(ctx, albumID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if album.ProfileID != profileID {
		return echo.NewHTTPError(http.StatusForbidden, "Not the album owner")
	}

	original, contentType, img, err := readImageFile(c, "file")
	if err != nil {
		return err
	}

	ext := path.Ext(fileNameFromForm(c, "file"))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString()
	fileKey := fmt.Sprintf("%s/%s%s", profileID, name, ext)
	thumbKey := fmt.Sprintf("%s/thumb_%s.jpg", profileID, name)

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	url, err := h.objectStore.Upload(ctx, fileKey, contentType, bytes.NewReader(original))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	thumbURL, err := h.objectStore.Upload(ctx, thumbKey, "image/jpeg", &thumbBuf)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	metadata := map[string]any{}
	if raw := c.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			log.Printf("ignoring unparsable photo metadata: %v", err)
			metadata = map[string]any{}
		}
	}

	title := c.FormValue("title")
	if title == "" {
		title = "Untitled"
	}
	bounds := img.Bounds()
	photo := &models.Photo{
		ProfileID:    profileID,
		AlbumID:      albumID,
		Title:        title,
		URL:          url,
		ThumbnailURL: thumbURL,
		IsPublic:     c.FormValue("is_public") == "true",
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Metadata:     metadata,
	}
	if err := h.photoRepository.CreatePhoto(ctx, photo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.photoRepository.CountPhotosByAlbumID(ctx, albumID)
	if err == nil && count == 1 {
		if err := h.albumRepository.UpdateAlbum(ctx, albumID, bson.M{"cover_url": url}); err != nil {
			log.Printf("failed to set album %s cover: %v", albumID, err)
		}
	}

	return c.JSON(http.StatusCreated, photo)
}

// UploadAvatar stores a single square-resized avatar and returns its URL
func (h *UploadHandler) UploadAvatar(c echo.Context) error {
	profileID := getProfileID(c)
	if profileID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	_, _, img, err := readImageFile(c, "file")
	if err != nil {
		return err
	}

	avatar := imaging.Fill(img, 200, 200, imaging.Center, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, avatar, imaging.JPEG); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	key := fmt.Sprintf("avatars/%s_%s.jpg", profileID, uuid.NewString()[:8])
	url, err := h.objectStore.Upload(c.Request().Context(), key, "image/jpeg", &buf)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"url": url})
}

func readImageFile(c echo.Context, field string) ([]byte, string, image.Image, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", nil, echo.NewHTTPError(http.StatusBadRequest, "unsupported image format")
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return raw, contentType, img, nil
}

func fileNameFromForm(c echo.Context, field string) string {
	fh, err := c.FormFile(field)
	if err != nil {
		return ""
	}
	return fh.Filename
}
