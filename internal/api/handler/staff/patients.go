package staff

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"arogya/queue-service/internal/api/httpstatus"
	"arogya/queue-service/internal/api/middleware"
	"arogya/queue-service/internal/api/request"
)

func (h *StaffHandler) Patients(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	board, err := h.ledger.Patients(c, actor)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "success",
		"patients": board,
	})
}

// CallPatient godoc
// @Summary      Call a patient to a doctor
// @Description  Move a waiting token into consultation with the given doctor
// @Tags         Staff
// @Accept       json
// @Produce      json
// @Param        id path int true "Token ID"
// @Param        request body request.CallToDoctorRequest true "Doctor assignment"
// @Success      200 {object} map[string]interface{} "Called token detail"
// @Failure      400 {object} map[string]string "Token is not waiting"
// @Failure      404 {object} map[string]string "Unknown token"
// @Router       /v1/staff/patients/{id}/call [put]
// @Security     ApiKeyAuth
func (h *StaffHandler) CallPatient(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	tokenID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token id"})
		return
	}

	var req request.CallToDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// no body means the caller is the doctor
		req.DoctorID = actor.UserID
	}

	called, err := h.ledger.CallToDoctor(c, actor, tokenID, req.DoctorID)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "patient called",
		"token":   called,
	})
}

func (h *StaffHandler) AddSuggestion(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req request.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.ledger.AttachSuggestion(c, actor, req.TokenID, req.SuggestionText, req.Medicines, req.Notes)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "suggestion added",
		"suggestion_id": id,
	})
}

func (h *StaffHandler) CompletePatient(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	tokenID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token id"})
		return
	}

	completed, err := h.ledger.CompleteToken(c, actor, tokenID)
	if err != nil {
		c.JSON(httpstatus.Of(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "consultation completed",
		"token":   completed,
	})
}
