package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/pagination"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/service"
)

// ============================================
// Schedule Handler
// ============================================

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	schedule, err := h.scheduleService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

func (h *ScheduleHandler) FindByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// Search handles GET /schedules/search?updatedAt=&author=&page=&pageSize=
func (h *ScheduleHandler) Search(c *gin.Context) {
	var query models.ScheduleSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.scheduleService.FindByUpdatedDateAndAuthor(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ScheduleHandler) FindByDate(c *gin.Context) {
	var query models.ScheduleSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.scheduleService.FindByDate(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *ScheduleHandler) FindByUpdatedDateDesc(c *gin.Context) {
	var req pagination.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.scheduleService.FindByUpdatedDateDesc(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// FindDateByID handles GET /schedules/date/:scheduleId?field=&date=
func (h *ScheduleHandler) FindDateByID(c *gin.Context) {
	id, ok := paramID(c, "scheduleId")
	if !ok {
		return
	}

	var query models.DateFieldQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.scheduleService.FindDateByID(c.Request.Context(), id, query.Field, query.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	schedule, err := h.scheduleService.UpdateTitleAndAuthor(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.scheduleService.DeleteByID(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}

	respondDeleted(c, "Schedule")
}

// FindSchedulesByMemberID handles GET /schedules/:memberId/:scheduleId
func (h *ScheduleHandler) FindSchedulesByMemberID(c *gin.Context) {
	memberID, ok := paramID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := paramID(c, "scheduleId")
	if !ok {
		return
	}

	var req pagination.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.scheduleService.FindSchedulesByMemberID(c.Request.Context(), memberID, scheduleID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// FindScheduleByMemberID handles GET /schedules/:memberId/schedules/:scheduleId
func (h *ScheduleHandler) FindScheduleByMemberID(c *gin.Context) {
	memberID, ok := paramID(c, "id")
	if !ok {
		return
	}
	scheduleID, ok := paramID(c, "scheduleId")
	if !ok {
		return
	}

	schedule, err := h.scheduleService.FindScheduleByMemberID(c.Request.Context(), memberID, scheduleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}
