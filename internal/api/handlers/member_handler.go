package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/models"
	"github.com/Marga-Ghale/daily-schedule-backend/internal/service"
)

// ============================================
// Member Handler
// ============================================

type MemberHandler struct {
	memberService service.MemberService
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

func (h *MemberHandler) FindByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// FindByUserID handles GET /members/userId?userId=
func (h *MemberHandler) FindByUserID(c *gin.Context) {
	member, err := h.memberService.FindByUserID(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) FindByName(c *gin.Context) {
	member, err := h.memberService.FindByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) FindAll(c *gin.Context) {
	members, err := h.memberService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.DeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id, req.Password); err != nil {
		respondError(c, err)
		return
	}

	respondDeleted(c, "Member")
}
