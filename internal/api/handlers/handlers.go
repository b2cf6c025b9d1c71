package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/api/middleware"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/apperr"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Member   *MemberHandler
	Schedule *ScheduleHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Member:   &MemberHandler{memberService: services.Member},
		Schedule: &ScheduleHandler{scheduleService: services.Schedule},
	}
}

// RegisterRoutes mounts the member and schedule routes on r.
func RegisterRoutes(r gin.IRouter, h *Handlers) {
	members := r.Group("/members")
	{
		members.GET("", h.Member.FindAll)
		members.POST("", h.Member.Create)
		members.POST("/", h.Member.Create)
		members.GET("/userId", h.Member.FindByUserID)
		members.GET("/name", h.Member.FindByName)
		members.GET("/:id", h.Member.FindByID)
		members.PUT("/:id", h.Member.Update)
		members.DELETE("/:id", h.Member.Delete)
	}

	schedules := r.Group("/schedules")
	{
		schedules.POST("", h.Schedule.Create)
		schedules.POST("/", h.Schedule.Create)
		schedules.GET("/search", h.Schedule.Search)
		schedules.GET("/date", h.Schedule.FindByDate)
		schedules.GET("/dateDesc", h.Schedule.FindByUpdatedDateDesc)
		schedules.GET("/date/:scheduleId", h.Schedule.FindDateByID)
		schedules.GET("/:id", h.Schedule.FindByID)
		schedules.PUT("/:id", h.Schedule.Update)
		schedules.DELETE("/:id", h.Schedule.Delete)

		// :id is the member id below
		schedules.GET("/:id/:scheduleId", h.Schedule.FindSchedulesByMemberID)
		schedules.GET("/:id/schedules/:scheduleId", h.Schedule.FindScheduleByMemberID)
	}
}

// ============================================
// Error Mapping
// ============================================

// respondError writes the { message, status } body for err and logs the cause.
func respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	status := e.Status()

	if e.Kind == apperr.KindInternal {
		log.Printf("❌ [HTTP] %s %s request_id=%s: %v", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), err)
	} else {
		log.Printf("[HTTP] %s %s request_id=%s -> %d %s", c.Request.Method, c.Request.URL.Path, middleware.GetRequestID(c), status, e.Code)
	}

	message := e.Message
	if e.Kind == apperr.KindInternal {
		message = apperr.ErrInternal.Message
	}
	c.JSON(status, models.ErrorResponse{Message: message, Status: status, Code: e.Code})
}

func respondBindError(c *gin.Context, err error) {
	respondError(c, apperr.BadRequest(err.Error()))
}

// paramID parses a path parameter as int64, answering 400 on failure.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, apperr.BadRequest("invalid "+name+": "+c.Param(name)))
		return 0, false
	}
	return id, true
}

func respondDeleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted successfully", "status": http.StatusOK})
}
