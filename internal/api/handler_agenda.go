package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baszoetekouw/SurfChange/internal/agenda"
	"github.com/baszoetekouw/SurfChange/internal/dateparse"
	"github.com/baszoetekouw/SurfChange/internal/graph"
)

// abortForError translates upstream failures into HTTP responses. An
// unresolvable mailbox is a 404, never an empty agenda; malformed provider
// data is a 502; anything else is a 500.
func abortForError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, graph.ErrMailboxNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "msg": err.Error()})
	case errors.Is(err, errBadUpstreamData):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"status": http.StatusBadGateway, "msg": err.Error()})
	default:
		log.Printf("Error handling %s: %v", c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "upstream request failed"})
	}
}

// GetAgenda handles GET /agenda/:email and GET /agenda/:email/:date.
func (h *Handler) GetAgenda(c *gin.Context) {
	email := h.qualifyEmail(c.Param("email"))

	date, err := dateparse.Parse(c.Param("date"), h.now(), h.loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meetings, err := h.dayAgenda(c.Request.Context(), email, date)
	if err != nil {
		abortForError(c, err)
		return
	}

	if wantsHTML(c) {
		c.HTML(http.StatusOK, "agenda.html", gin.H{
			"email":  email,
			"date":   date.Format("2006-01-02"),
			"agenda": meetings,
		})
		return
	}
	c.JSON(http.StatusOK, meetings)
}

// GetAvailability handles GET /available/:email. The verdict is computed
// against the handler's clock; it is never cached.
func (h *Handler) GetAvailability(c *gin.Context) {
	email := h.qualifyEmail(c.Param("email"))
	now := h.now().In(h.loc)

	meetings, err := h.dayAgenda(c.Request.Context(), email, h.startOfDay(now))
	if err != nil {
		abortForError(c, err)
		return
	}

	status := agenda.Availability(meetings, now, h.gap)
	c.JSON(http.StatusOK, status)
}
