package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/attendance_verification_system/internal/classifier"
	"github.com/shenikar/attendance_verification_system/internal/config"
	"github.com/shenikar/attendance_verification_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	verificationService service.VerificationService
	zoneService         service.ZoneService
	logger              *logrus.Logger
	validate            *validator.Validate
	cfg                 *config.Config
}

func NewHandler(verificationService service.VerificationService, zoneService service.ZoneService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		verificationService: verificationService,
		zoneService:         zoneService,
		logger:              logger,
		validate:            validator.New(),
		cfg:                 cfg,
	}
}

// @Summary Submit an attendance attempt
// @Description Run a full attendance verification: geofence, liveness, identity, challenge and fraud checks. A rejected attempt still returns 200 with passed=false and a rejection reason. Requires API key.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attempt body SubmitAttendanceRequest true "Attendance attempt"
// @Success 200 {object} VerificationOutcomeResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Zone not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /attendance/submit [post]
func (h *Handler) submitAttendance(c *gin.Context) {
	var input SubmitAttendanceRequest
	log := h.logger.WithField("method", "submitAttendance")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attempt, err := DTOToAttendanceAttempt(input)
	if err != nil {
		log.WithError(err).Warn("Failed to map attendance attempt")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.verificationService.SubmitAttempt(c.Request.Context(), attempt)
	if err != nil {
		if errors.Is(err, service.ErrZoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
			return
		}
		log.WithError(err).Error("Failed to verify attendance attempt")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, OutcomeToResponse(outcome))
}

// @Summary Issue a liveness challenge
// @Description Issue a random challenge the client must perform before submitting an attempt. Requires API key.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ChallengeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /attendance/challenge [get]
func (h *Handler) getChallenge(c *gin.Context) {
	c.JSON(http.StatusOK, ChallengeToResponse(h.verificationService.IssueChallenge()))
}

// @Summary Get offline queue status
// @Description Get the number of attendance records waiting for sync and the age of the oldest one. Requires API key.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} QueueStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /attendance/queue/status [get]
func (h *Handler) getQueueStatus(c *gin.Context) {
	log := h.logger.WithField("method", "getQueueStatus")

	status, err := h.verificationService.GetQueueStatus(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get queue status from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, QueueStatusToResponse(status))
}

// @Summary Get attendance statistics
// @Description Get the count of distinct subjects marked within the stats window. Requires API key.
// @Tags Attendance
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /attendance/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	subjectCount, err := h.verificationService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{SubjectCount: subjectCount})
}

// @Summary Enroll a subject face
// @Description Register a subject reference face for identity matching. Requires API key.
// @Tags Subjects
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param enrollment body EnrollSubjectRequest true "Subject enrollment request"
// @Success 201 "Created"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Face already enrolled for another subject"
// @Failure 422 {object} map[string]string "No usable face in image"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /subjects/enroll [post]
func (h *Handler) enrollSubject(c *gin.Context) {
	var input EnrollSubjectRequest
	log := h.logger.WithField("method", "enrollSubject")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, err := base64Decode(input.Image)
	if err != nil {
		log.WithError(err).Warn("Failed to decode enrollment image")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image encoding"})
		return
	}

	err = h.verificationService.EnrollSubject(c.Request.Context(), input.SubjectID, input.Name, image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFaceAlreadyEnrolled):
			c.JSON(http.StatusConflict, gin.H{"error": "face already enrolled for another subject"})
		case errors.Is(err, classifier.ErrExtractionFailed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no usable face in image"})
		default:
			log.WithError(err).Error("Failed to enroll subject in service")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.Status(http.StatusCreated)
}

// @Summary Create a new zone
// @Description Create a new attendance zone. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param zone body CreateZoneRequest true "Zone creation request"
// @Success 201 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [post]
func (h *Handler) createZone(c *gin.Context) {
	var input CreateZoneRequest
	log := h.logger.WithField("method", "createZone")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToZoneModel(input)
	if err := h.zoneService.CreateZone(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create zone in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToZoneResponse(model))
}

// @Summary Get a list of zones
// @Description Get a paginated list of all zones. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} ZoneResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	log := h.logger.WithField("method", "listZones")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	zones, err := h.zoneService.ListZones(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list zones from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToZoneResponses(zones))
}

// @Summary Get zone by ID
// @Description Get a single zone by its ID. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid zone ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Zone not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id} [get]
func (h *Handler) getZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "getZone").WithField("id", id)

	zone, err := h.zoneService.GetZone(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get zone from service")
		c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(zone))
}

// @Summary Update an existing zone
// @Description Update an existing zone by ID. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Param zone body UpdateZoneRequest true "Zone update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid zone ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id} [put]
func (h *Handler) updateZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "updateZone").WithField("id", id)

	var input UpdateZoneRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToZoneModel(input)
	model.ID = id

	if err := h.zoneService.UpdateZone(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to update zone in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update zone in service"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Deactivate a zone
// @Description Deactivate a zone by its ID. This marks the zone as inactive. Requires API key.
// @Tags Zones
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid zone ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id} [delete]
func (h *Handler) deleteZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "deleteZone").WithField("id", id)

	if err := h.zoneService.DeactivateZone(c.Request.Context(), id); err != nil {
		log.WithError(err).Error("Failed to deactivate zone in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate zone"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
