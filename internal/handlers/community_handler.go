package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lumilens-app/backend/internal/models"
	"github.com/lumilens-app/backend/internal/repositories"
	"github.com/lumilens-app/backend/internal/service"
)

// CommunityHandler handles the public feed and like HTTP requests
type CommunityHandler struct {
	engagementService *service.EngagementService
	photoRepository   repositories.PhotoRepository
	albumRepository   repositories.AlbumRepository
	profileRepository repositories.ProfileRepository
	likeRepository    repositories.LikeRepository
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(
	engagementService *service.EngagementService,
	photoRepo repositories.PhotoRepository,
	albumRepo repositories.AlbumRepository,
	profileRepo repositories.ProfileRepository,
	likeRepo repositories.LikeRepository,
) *CommunityHandler {
	return &CommunityHandler{
		engagementService: engagementService,
		photoRepository:   photoRepo,
		albumRepository:   albumRepo,
		profileRepository: profileRepo,
		likeRepository:    likeRepo,
	}
}

// RegisterCommunityRoutes registers routes requiring authentication
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/community/:photo_id/like", h.ToggleLike)
}

// RegisterPublicCommunityRoutes registers anonymous-friendly routes
func (h *CommunityHandler) RegisterPublicCommunityRoutes(g *echo.Group) {
	g.GET("/community/feed", h.GetFeed)
	g.GET("/community/:photo_id/likes", h.GetLikers)
}

// ToggleLike flips the caller's like state on a photo
func (h *CommunityHandler) ToggleLike(c echo.Context) error {
	result, err := h.engagementService.ToggleLike(c.Request().Context(), getProfileID(c), c.Param("photo_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetLikers lists the profiles that liked a photo, most recent first
func (h *CommunityHandler) GetLikers(c echo.Context) error {
	likers, err := h.engagementService.GetLikers(c.Request().Context(), c.Param("photo_id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, likers)
}

// GetFeed returns paginated public photos annotated with author, album and
// the caller's like state. Works anonymously; liked is always false then.
func (h *CommunityHandler) GetFeed(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	viewerID := getProfileID(c)

	ctx := c.Request().Context()
	photos, err := h.photoRepository.GetPublicPhotos(ctx, int64((page-1)*limit), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	photoIDs := make([]string, 0, len(photos))
	authorIDs := make([]string, 0, len(photos))
	for _, p := range photos {
		photoIDs = append(photoIDs, p.ID.Hex())
		authorIDs = append(authorIDs, p.ProfileID)
	}

	authors, err := h.profileRepository.GetProfilesByIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	liked, err := h.likeRepository.GetLikedPhotoIDs(viewerID, photoIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	likeCounts, err := h.likeRepository.GetLikesCountByPhotoIDs(photoIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	albumCache := make(map[string]*models.Album)
	items := make([]models.FeedItem, 0, len(photos))
	for _, p := range photos {
		id := p.ID.Hex()
		item := models.FeedItem{
			ID:         id,
			Title:      p.Title,
			Src:        p.URL,
			Thumbnail:  p.ThumbnailURL,
			Liked:      liked[id],
			LikesCount: likeCounts[id],
			Meta:       p.Metadata,
			IsUserPost: viewerID != "" && viewerID == p.ProfileID,
		}
		if item.Title == "" {
			item.Title = "Untitled"
		}
		if author, ok := authors[p.ProfileID]; ok {
			item.Author = author.Username
			item.AuthorID = author.ID
			item.Avatar = author.AvatarURL
		}
		if album := h.albumFor(c, albumCache, p.AlbumID); album != nil {
			item.Album = album.Title
			item.Category = categoryLabel(album.Type)
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CommunityHandler) albumFor(c echo.Context, cache map[string]*models.Album, albumID string) *models.Album {
	if albumID == "" {
		return nil
	}
	if album, ok := cache[albumID]; ok {
		return album
	}
	album, err := h.albumRepository.GetAlbumByID(c.Request().Context(), albumID)
	if err != nil {
		album = nil
	}
	cache[albumID] = album
	return album
}

func categoryLabel(albumType string) string {
	switch albumType {
	case "photo":
		return "Photography"
	case "ai":
		return "AI Art"
	case "paint":
		return "Painting"
	default:
		return albumType
	}
}
