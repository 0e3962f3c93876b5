package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-city-globe/internal/broadcast"
	"github.com/mr1hm/go-city-globe/internal/catalog"
	"github.com/mr1hm/go-city-globe/internal/models"
	"github.com/mr1hm/go-city-globe/internal/news"
	"github.com/mr1hm/go-city-globe/internal/search"
	"github.com/mr1hm/go-city-globe/internal/session"
	"github.com/mr1hm/go-city-globe/internal/store"
	"github.com/mr1hm/go-city-globe/internal/theme"
)

// NewsService is what the news handler needs from the proxy client.
type NewsService interface {
	Fetch(ctx context.Context, cityName, countryName string) ([]models.Article, error)
	Enabled() bool
}

// PreferenceStore persists per-client theme choices.
type PreferenceStore interface {
	GetThemePreference(ctx context.Context, clientID string) (*store.ThemePreference, bool)
	PutThemePreference(ctx context.Context, clientID string, isNightMode bool) error
}

type Handler struct {
	repo        catalog.CityRepository
	news        NewsService
	prefs       PreferenceStore
	sessions    *session.Registry
	broadcaster *broadcast.Broadcaster
}

func NewHandler(repo catalog.CityRepository, newsSvc NewsService, prefs PreferenceStore, sessions *session.Registry, broadcaster *broadcast.Broadcaster) *Handler {
	return &Handler{
		repo:        repo,
		news:        newsSvc,
		prefs:       prefs,
		sessions:    sessions,
		broadcaster: broadcaster,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	r.GET("/api/cities", h.getCities)
	r.GET("/api/cities/:id", h.getCity)
	r.GET("/api/search", h.searchCities)
	r.GET("/api/news", h.getNews)

	r.GET("/api/theme", h.getTheme)
	r.GET("/api/theme/preference/:clientID", h.getThemePreference)
	r.PUT("/api/theme/preference/:clientID", h.putThemePreference)

	r.POST("/api/sessions", h.createSession)
	r.GET("/api/sessions/:id", h.getSession)
	r.POST("/api/sessions/:id/events", h.postSessionEvent)
	r.DELETE("/api/sessions/:id", h.deleteSession)
	r.GET("/api/sessions/:id/stream", h.streamSession)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getCities(c *gin.Context) {
	cities := h.repo.Cities()
	if cities == nil {
		cities = []models.City{}
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *Handler) getCity(c *gin.Context) {
	city, ok := h.repo.CityByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown city"})
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *Handler) searchCities(c *gin.Context) {
	results := search.Query(h.repo.Cities(), c.Query("q"))
	if results == nil {
		results = []search.Result{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) getNews(c *gin.Context) {
	cityName := c.Query("city")
	countryName := c.Query("country")

	if cityName == "" || countryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city and country parameters are required"})
		return
	}

	articles, err := h.news.Fetch(c.Request.Context(), cityName, countryName)
	if err != nil {
		if errors.Is(err, news.ErrNoKeys) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no API keys configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch news"})
		return
	}

	if articles == nil {
		articles = []models.Article{}
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (h *Handler) getTheme(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng parameters are required"})
		return
	}

	now := time.Now()
	st := theme.Compute(lat, lng, now)

	resp := gin.H{
		"isNightMode": theme.IsNight(lat, lng, now),
		"polarDay":    st.PolarDay,
		"polarNight":  st.PolarNight,
	}
	if !st.PolarDay && !st.PolarNight {
		resp["sunrise"] = st.Sunrise.UTC().Format(time.RFC3339)
		resp["sunset"] = st.Sunset.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getThemePreference(c *gin.Context) {
	pref, ok := h.prefs.GetThemePreference(c.Request.Context(), c.Param("clientID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stored preference"})
		return
	}
	c.JSON(http.StatusOK, pref)
}

func (h *Handler) putThemePreference(c *gin.Context) {
	var req struct {
		IsNightMode bool `json:"isNightMode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := h.prefs.PutThemePreference(c.Request.Context(), c.Param("clientID"), req.IsNightMode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store preference"})
		return
	}
	c.Status(http.StatusNoContent)
}
