package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lifeguard-ai/lifeguard-backend/internal/alerting"
	"github.com/lifeguard-ai/lifeguard-backend/internal/allocation"
	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
	"github.com/lifeguard-ai/lifeguard-backend/internal/notify"
	"github.com/lifeguard-ai/lifeguard-backend/internal/prediction"
	"github.com/lifeguard-ai/lifeguard-backend/internal/repository"
	"github.com/lifeguard-ai/lifeguard-backend/internal/validate"
)

// Store is the read surface the handlers need from the repository.
type Store interface {
	repository.PredictionRepository
	repository.ResourceRepository
	repository.DeploymentRepository
	repository.AlertRepository
	repository.HospitalRepository
}

type Handler struct {
	store      Store
	engine     *allocation.Engine
	dispatcher *alerting.Dispatcher
	sms        *notify.Service
}

func NewHandler(store Store, engine *allocation.Engine, dispatcher *alerting.Dispatcher, sms *notify.Service) *Handler {
	return &Handler{
		store:      store,
		engine:     engine,
		dispatcher: dispatcher,
		sms:        sms,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/dashboard", h.dashboard)
	r.GET("/api/predictions", h.predictions)
	r.GET("/api/resources", h.resources)
	r.GET("/api/regions", h.regions)
	r.GET("/api/alerts", h.alerts)
	r.POST("/api/deploy", h.deploy)
	r.POST("/api/alerts/sms", h.sendBulk)
	r.GET("/api/sms/:id/status", h.smsStatus)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	preds, err := h.store.ListPredictions(ctx, repository.PredictionFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions"})
		return
	}
	resources, err := h.store.ListResources(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch resources"})
		return
	}
	deployments, err := h.store.ListRecentDeployments(ctx, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch deployments"})
		return
	}
	alerts, err := h.store.ListRecentAlerts(ctx, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	hospitals, err := h.store.ListHospitals(ctx, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hospitals"})
		return
	}

	critical := 0
	atRisk := 0
	predictionList := make([]gin.H, 0, len(preds))
	for _, p := range preds {
		if p.Critical() {
			critical++
		}
		atRisk += p.AffectedPopulation
		predictionList = append(predictionList, predictionJSON(&p))
	}

	resourceMap := make(gin.H, len(resources))
	for _, r := range resources {
		resourceMap[string(r.Type)] = gin.H{"total": r.Total, "available": r.Available}
	}

	deploymentList := make([]gin.H, 0, len(deployments))
	for _, d := range deployments {
		deploymentList = append(deploymentList, gin.H{
			"id":            d.ID,
			"prediction_id": d.PredictionID,
			"resource":      string(d.ResourceType),
			"quantity":      d.Quantity,
			"target_region": d.TargetRegion,
			"status":        string(d.Status),
			"eta_hours":     d.ETAHours,
			"priority":      string(d.Priority),
		})
	}

	alertList := make([]gin.H, 0, len(alerts))
	for _, a := range alerts {
		alertList = append(alertList, gin.H{
			"id":       a.ID,
			"type":     string(a.Type),
			"message":  a.Message,
			"language": a.Language,
			"status":   a.Status,
			"issued":   a.CreatedAt,
		})
	}

	readiness := make([]gin.H, 0, len(hospitals))
	for _, hosp := range hospitals {
		readiness = append(readiness, gin.H{
			"name":            hosp.Name,
			"region":          hosp.Region,
			"available_beds":  hosp.AvailableBeds,
			"available_icu":   hosp.AvailableICU,
			"readiness_score": hosp.ReadinessScore() * 100,
			"status":          hosp.ReadinessStatus(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": predictionList,
		"resources":   resourceMap,
		"deployments": deploymentList,
		"alerts":      alertList,
		"statistics": gin.H{
			"total_predictions":    len(preds),
			"critical_predictions": critical,
			"population_at_risk":   atRisk,
			"hospital_readiness":   readiness,
		},
	})
}

func (h *Handler) predictions(c *gin.Context) {
	filter := repository.PredictionFilter{}
	if t := c.Query("type"); t != "" {
		if dt, ok := models.ParseDisasterType(t); ok {
			filter.Type = &dt
		}
	}
	if r := c.Query("region"); r != "" {
		filter.Region = &r
	}

	preds, err := h.store.ListPredictions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions"})
		return
	}

	out := make([]gin.H, 0, len(preds))
	for _, p := range preds {
		out = append(out, predictionJSON(&p))
	}
	c.JSON(http.StatusOK, out)
}

func predictionJSON(p *models.Prediction) gin.H {
	return gin.H{
		"id":                  p.ID,
		"disaster_type":       string(p.DisasterType),
		"region":              p.Region,
		"severity":            p.Severity,
		"confidence":          p.Confidence * 100,
		"lat":                 p.Latitude,
		"lng":                 p.Longitude,
		"affected_population": p.AffectedPopulation,
		"predicted_time":      p.PredictedOnset.Format("2006-01-02 15:04"),
		"recommendations":     prediction.Recommendations(p.DisasterType),
	}
}

func (h *Handler) resources(c *gin.Context) {
	resources, err := h.store.ListResources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch resources"})
		return
	}

	out := make(gin.H, len(resources))
	for _, r := range resources {
		out[string(r.Type)] = gin.H{"total": r.Total, "available": r.Available}
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) regions(c *gin.Context) {
	c.JSON(http.StatusOK, prediction.Regions)
}

func (h *Handler) alerts(c *gin.Context) {
	alerts, err := h.store.ListRecentAlerts(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alerts"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

type deployRequest struct {
	PredictionID string `json:"prediction_id" validate:"required_without=Region"`
	Region       string `json:"region" validate:"required_without=PredictionID"`
}

// deploy runs the allocation engine for a prediction and queues alerts
// for the target region. Accepts either an explicit prediction id or a
// region, in which case the most imminent prediction there is used.
func (h *Handler) deploy(c *gin.Context) {
	var req deployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prediction_id or region is required"})
		return
	}

	ctx := c.Request.Context()
	predictionID := req.PredictionID
	if predictionID == "" {
		preds, err := h.store.ListPredictions(ctx, repository.PredictionFilter{Region: &req.Region, Limit: 1})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch predictions"})
			return
		}
		if len(preds) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no prediction for region " + req.Region})
			return
		}
		predictionID = preds[0].ID
	}

	deployments, err := h.engine.Allocate(ctx, predictionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prediction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "allocation failed"})
		return
	}

	queued := 0
	if p, err := h.store.GetPrediction(ctx, predictionID); err == nil {
		if n, err := h.dispatcher.NotifyPrediction(ctx, p); err == nil {
			queued = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"prediction_id": predictionID,
		"deployments":   deployments,
		"alerts_queued": queued,
	})
}

type bulkSMSRequest struct {
	Phones   []string          `json:"phones" validate:"required,min=1,dive,required"`
	Category string            `json:"category" validate:"required"`
	Language string            `json:"language"`
	Vars     map[string]string `json:"vars"`
}

func (h *Handler) sendBulk(c *gin.Context) {
	var req bulkSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phones and category are required"})
		return
	}

	summary := h.sms.SendBulk(c.Request.Context(), req.Phones, req.Category, req.Language, req.Vars)
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) smsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.sms.Status(c.Request.Context(), c.Param("id")))
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
