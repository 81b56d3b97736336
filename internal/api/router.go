package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/baszoetekouw/SurfChange/internal/mw"
)

// RouterOptions bundles the knobs the router needs beyond the handler's
// own dependencies.
type RouterOptions struct {
	RateLimit     rate.Limit
	RateBurst     int
	CacheTTL      time.Duration
	TemplatesGlob string
}

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	r := gin.Default()

	if opts.TemplatesGlob != "" {
		r.LoadHTMLGlob(opts.TemplatesGlob)
	}

	r.Use(mw.RequestID())
	r.Use(mw.RateLimiter(opts.RateLimit, opts.RateBurst))

	// The room directory changes rarely; its responses are additionally
	// cached at the HTTP layer. Agenda and availability answers are always
	// computed fresh.
	cacheStore := cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	caching := mw.Cache(cacheStore, opts.CacheTTL)

	r.GET("/agenda/:email", handler.GetAgenda)
	r.GET("/agenda/:email/:date", handler.GetAgenda)

	r.GET("/available/:email", handler.GetAvailability)
	r.GET("/issievrij/:email", handler.GetAvailability)

	r.GET("/rooms", caching, handler.GetRooms)
	r.GET("/kamer", caching, handler.GetRooms)
	r.GET("/rooms/all/agenda", handler.GetAllRoomAgendas)

	return r
}
