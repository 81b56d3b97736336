package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baszoetekouw/SurfChange/internal/agenda"
	"github.com/baszoetekouw/SurfChange/internal/rooms"
)

// GetRooms handles GET /rooms: the directory listing, sorted by floor.
func (h *Handler) GetRooms(c *gin.Context) {
	all, err := h.directory.GetOrRefresh(c.Request.Context())
	if err != nil {
		abortForError(c, err)
		return
	}

	if wantsHTML(c) {
		c.HTML(http.StatusOK, "rooms.html", gin.H{"rooms": rooms.Sorted(all)})
		return
	}
	c.JSON(http.StatusOK, all)
}

// GetAllRoomAgendas handles GET /rooms/all/agenda: today's agenda of every
// room, keyed by room number. The fetches run sequentially; one failing
// room fails the request.
func (h *Handler) GetAllRoomAgendas(c *gin.Context) {
	all, err := h.directory.GetOrRefresh(c.Request.Context())
	if err != nil {
		abortForError(c, err)
		return
	}

	today := h.startOfDay(h.now())
	agendas := make(map[string][]agenda.Meeting, len(all))
	for number, room := range all {
		meetings, err := h.dayAgenda(c.Request.Context(), room.Email, today)
		if err != nil {
			abortForError(c, err)
			return
		}
		agendas[number] = meetings
	}

	c.JSON(http.StatusOK, agendas)
}
