package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cogniwise/cogniwise/internal/advice"
	"github.com/cogniwise/cogniwise/internal/apperr"
	"github.com/cogniwise/cogniwise/internal/assessment"
	"github.com/cogniwise/cogniwise/internal/auth"
	"github.com/cogniwise/cogniwise/internal/chat"
	"github.com/cogniwise/cogniwise/internal/report"
)

type handlers struct {
	Deps
}

func (h *handlers) health(c *gin.Context) {
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
}

// bindJSON decodes the body and answers 400 on malformed JSON.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *handlers) submitLevel1(c *gin.Context) {
	var sub assessment.Level1Submission
	if !bindJSON(c, &sub) {
		return
	}
	res, err := h.Assessments.SubmitLevel1(c.Request.Context(), sub)
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) && vErr.Field == "condition" {
		respondError(c, http.StatusBadRequest, "validation_error", "Invalid or missing condition")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) level1Results(c *gin.Context) {
	recs, err := h.Assessments.Level1Results(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *handlers) progress(c *gin.Context) {
	p, err := h.Assessments.Progress(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type progressEventView struct {
	Sequence  int64  `json:"sequence"`
	Timestamp string `json:"timestamp"`
	Trigger   string `json:"trigger"`
	Flag      string `json:"flag"`
	Condition string `json:"condition,omitempty"`
}

func (h *handlers) progressHistory(c *gin.Context) {
	events, err := h.Assessments.ProgressHistory(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]progressEventView, 0, len(events))
	for _, e := range events {
		out = append(out, progressEventView{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			Trigger:   e.Trigger,
			Flag:      e.Flag,
			Condition: e.Condition,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) submitLevel2(c *gin.Context) {
	var sub assessment.Level2Submission
	if !bindJSON(c, &sub) {
		return
	}
	out, err := h.Assessments.SubmitLevel2(c.Request.Context(), sub)
	if isMissing(err) {
		respondError(c, http.StatusBadRequest, "validation_error", "Missing user_id or age_group")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *handlers) level2Results(c *gin.Context) {
	recs, err := h.Assessments.Level2Results(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *handlers) level3Summary(c *gin.Context) {
	sum, err := h.Assessments.Level3Summary(c.Request.Context(), c.Param("user_id"))
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		respondError(c, http.StatusNotFound, "not_found", "No Level-2 data found")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *handlers) findDoctors(c *gin.Context) {
	c.JSON(http.StatusOK, advice.Doctors())
}

func (h *handlers) findHospitals(c *gin.Context) {
	c.JSON(http.StatusOK, advice.Hospitals())
}

func (h *handlers) downloadReport(c *gin.Context) {
	kind, err := report.ParseKind(c.Param("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "Invalid report id")
		return
	}

	rep, err := report.Build(c.Request.Context(), h.Assessments, kind, id)
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := rep.XLSX()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "report_error", "Failed to generate report: "+err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename(kind, id)))
	c.Data(http.StatusOK, report.ContentType, data)
}

func (h *handlers) chatHistory(c *gin.Context) {
	msgs, err := h.Chat.History(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *handlers) chatSend(c *gin.Context) {
	var req chat.SendRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.Chat.Send(c.Request.Context(), req)
	if isMissing(err) {
		respondError(c, http.StatusBadRequest, "validation_error", "Missing required fields")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (h *handlers) chatUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, chat.MaxUploadSize)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "too_large", "File too large")
			return
		}
		respondError(c, http.StatusBadRequest, "bad_request", "No file part")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "Unreadable file: "+err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "Unreadable file: "+err.Error())
		return
	}

	res, err := h.Chat.Upload(c.Request.Context(), chat.UploadRequest{
		UserID:   c.PostForm("user_id"),
		Filename: fh.Filename,
		Data:     data,
	})
	if isMissing(err) {
		respondError(c, http.StatusBadRequest, "validation_error", "Missing required fields")
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) adminLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.Auth.Login(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "unauthorized", msgBadCredentials)
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	h.Log.Info("admin login", "email", strings.ToLower(strings.TrimSpace(req.Email)))
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       auth.RoleAdmin,
		"expires_in": int(h.Auth.TTL().Seconds()),
	})
}

func (h *handlers) adminUsers(c *gin.Context) {
	users, err := h.Assessments.AdminUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *handlers) adminUserAssessments(c *gin.Context) {
	recs, err := h.Assessments.UserAssessments(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

type suggestionRequest struct {
	Notes string `json:"notes"`
}

func (h *handlers) adminSaveSuggestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, "not_found", "Assessment not found")
		return
	}
	var req suggestionRequest
	if !bindJSON(c, &req) {
		return
	}
	rec, err := h.Assessments.SaveSuggestion(c.Request.Context(), id, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Suggestion saved", "assessment": rec})
}
