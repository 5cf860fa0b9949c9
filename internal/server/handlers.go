package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yahyarisas/spark-app/internal/assessment"
	"github.com/yahyarisas/spark-app/internal/lookup"
	"github.com/yahyarisas/spark-app/internal/prediction"
)

type createRequest struct {
	Variant string `json:"variant" binding:"required"`
}

type actionRequest struct {
	Type           string                `json:"type" binding:"required"`
	BasicInfo      *basicInfoPayload     `json:"basic_info"`
	Consent        *bool                 `json:"consent"`
	HealthHistory  *healthHistoryPayload `json:"health_history"`
	MotionUploaded *bool                 `json:"motion_uploaded"`
	QuestionID     string                `json:"question_id"`
	Answer         *bool                 `json:"answer"`
	RowIndex       *int                  `json:"row_index"`
}

type basicInfoPayload struct {
	Age            int     `json:"age" binding:"required,gte=18,lte=120"`
	AgeAtDiagnosis int     `json:"age_at_diagnosis" binding:"gte=0,lte=120"`
	HeightCM       float64 `json:"height_cm" binding:"omitempty,gte=100,lte=250"`
	WeightKG       float64 `json:"weight_kg" binding:"omitempty,gte=30,lte=300"`
	Gender         string  `json:"gender" binding:"required"`
	Handedness     string  `json:"handedness"`
	FamilyHistory  string  `json:"family_history" binding:"required"`
	SubjectID      int     `json:"subject_id" binding:"gte=0"`
}

type healthHistoryPayload struct {
	HasConditions bool     `json:"has_conditions"`
	Conditions    []string `json:"conditions"`
}

type subjectPredictRequest struct {
	SubjectID string `json:"subject_id" binding:"required"`
}

func (s *Server) handleVariants(c *gin.Context) {
	type variantMeta struct {
		Name      string   `json:"name"`
		Title     string   `json:"title"`
		Steps     []string `json:"steps"`
		Questions int      `json:"questions"`
	}

	out := make([]variantMeta, 0, len(s.variants))
	for _, name := range []string{"clinical", "motion", "screening"} {
		v := s.variants[name]
		steps := make([]string, len(v.Steps))
		for i, st := range v.Steps {
			steps[i] = st.String()
		}
		out = append(out, variantMeta{
			Name:      v.Name,
			Title:     v.Title,
			Steps:     steps,
			Questions: v.Bank.Len(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"variants": out})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	variant, ok := s.variants[req.Variant]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_variant"})
		return
	}

	id, item, err := s.store.Create(variant)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create assessment"})
		return
	}

	s.log.Info().Str("assessment_id", id).Str("variant", variant.Name).Msg("assessment started")
	c.JSON(http.StatusCreated, gin.H{
		"assessment_id": id,
		"view":          buildView(variant, item.session, nil),
	})
}

func (s *Server) handleGet(c *gin.Context) {
	item, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	item.mu.Lock()
	view := buildView(item.variant, item.session, item.outcome)
	item.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"view": view})
}

func (s *Server) handleAction(c *gin.Context) {
	item, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	item.mu.Lock()
	defer item.mu.Unlock()

	action, err := s.buildAction(c, item, req)
	if err != nil {
		return // buildAction already wrote the response
	}

	next, err := assessment.Apply(item.variant, item.session, action)
	if err != nil {
		var refused *assessment.RefusedError
		if errors.As(err, &refused) {
			resp := gin.H{
				"error":   "validation_failed",
				"message": refused.Error(),
				"view":    buildView(item.variant, item.session, item.outcome),
			}
			if refused.Total > 0 {
				resp["answered"] = refused.Answered
				resp["total"] = refused.Total
			}
			c.JSON(http.StatusUnprocessableEntity, resp)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_action", "detail": err.Error()})
		return
	}

	// Entering the results step triggers the one outbound prediction
	// call. It happens before the session advances for real: when the
	// collaborator is unreachable the stored session stays on the
	// questionnaire step.
	if _, isNext := action.(assessment.Next); isNext &&
		item.variant.CurrentStep(next) == assessment.StepResults {
		outcome, err := s.predict(c, item.variant, next)
		if err != nil {
			s.log.Warn().Err(err).Str("variant", item.variant.Name).Msg("prediction unavailable")
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "service_unavailable",
				"view":  buildView(item.variant, item.session, item.outcome),
			})
			return
		}
		item.outcome = &outcome
	}

	if _, isRestart := action.(assessment.Restart); isRestart {
		item.outcome = nil
	}

	item.session = next
	c.JSON(http.StatusOK, gin.H{"view": buildView(item.variant, item.session, item.outcome)})
}

// buildAction translates the wire request into a wizard action. Lookup
// is resolved here so the controller itself stays free of I/O; a miss
// or a source failure is reported without touching the session.
func (s *Server) buildAction(c *gin.Context, item *stored, req actionRequest) (assessment.Action, error) {
	switch req.Type {
	case "next":
		return assessment.Next{}, nil
	case "back":
		return assessment.Back{}, nil
	case "skip_motion":
		return assessment.SkipMotion{}, nil
	case "restart":
		return assessment.Restart{}, nil
	case "basic_info":
		if req.BasicInfo == nil {
			return nil, s.badRequest(c, "basic_info payload required")
		}
		return assessment.SetBasicInfo{Info: assessment.BasicInfo{
			Age:            req.BasicInfo.Age,
			AgeAtDiagnosis: req.BasicInfo.AgeAtDiagnosis,
			HeightCM:       req.BasicInfo.HeightCM,
			WeightKG:       req.BasicInfo.WeightKG,
			Gender:         req.BasicInfo.Gender,
			Handedness:     req.BasicInfo.Handedness,
			FamilyHistory:  req.BasicInfo.FamilyHistory,
			SubjectID:      req.BasicInfo.SubjectID,
		}}, nil
	case "consent":
		if req.Consent == nil {
			return nil, s.badRequest(c, "consent payload required")
		}
		return assessment.SetConsent{Given: *req.Consent}, nil
	case "health_history":
		if req.HealthHistory == nil {
			return nil, s.badRequest(c, "health_history payload required")
		}
		return assessment.SetHealthHistory{History: assessment.HealthHistory{
			HasConditions: req.HealthHistory.HasConditions,
			Conditions:    req.HealthHistory.Conditions,
		}}, nil
	case "motion_uploaded":
		if req.MotionUploaded == nil {
			return nil, s.badRequest(c, "motion_uploaded payload required")
		}
		return assessment.SetMotionUploaded{Uploaded: *req.MotionUploaded}, nil
	case "answer":
		if req.QuestionID == "" || req.Answer == nil {
			return nil, s.badRequest(c, "question_id and answer required")
		}
		return assessment.Answer{ID: assessment.QuestionID(req.QuestionID), Yes: *req.Answer}, nil
	case "lookup":
		return s.resolveLookup(c, item, req)
	default:
		return nil, s.badRequest(c, fmt.Sprintf("unknown action type %q", req.Type))
	}
}

func (s *Server) resolveLookup(c *gin.Context, item *stored, req actionRequest) (assessment.Action, error) {
	if !item.variant.AllowLookup {
		return nil, s.badRequest(c, "this assessment does not support lookup")
	}
	if req.RowIndex == nil {
		return nil, s.badRequest(c, "row_index required")
	}
	if s.source == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "service_unavailable"})
		return nil, errors.New("no lookup source configured")
	}

	record, err := s.source.FindByIndex(c.Request.Context(), *req.RowIndex)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "not_found",
				"view":  buildView(item.variant, item.session, item.outcome),
			})
			return nil, err
		}
		s.log.Warn().Err(err).Int("row_index", *req.RowIndex).Msg("lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "service_unavailable"})
		return nil, err
	}

	answers := make(map[assessment.QuestionID]bool, len(record.Answers))
	for id, v := range record.Answers {
		answers[assessment.QuestionID(id)] = v
	}
	return assessment.MergeDefaults{Answers: answers}, nil
}

func (s *Server) predict(c *gin.Context, v *assessment.Variant, sess assessment.Session) (prediction.Outcome, error) {
	ctx := c.Request.Context()
	switch v.Name {
	case "clinical":
		payload, err := prediction.AssembleClinical(v, sess)
		if err != nil {
			return prediction.Outcome{}, err
		}
		return s.predictor.PredictRisk(ctx, payload)
	case "motion":
		payload, err := prediction.AssembleMotion(v, sess)
		if err != nil {
			return prediction.Outcome{}, err
		}
		return s.predictor.PredictRisk(ctx, payload)
	case "screening":
		payload, err := prediction.AssembleScreening(v, sess)
		if err != nil {
			return prediction.Outcome{}, err
		}
		return s.predictor.PredictClass(ctx, payload)
	default:
		return prediction.Outcome{}, fmt.Errorf("no prediction route for variant %q", v.Name)
	}
}

func (s *Server) handlePredictSubject(c *gin.Context) {
	var req subjectPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	outcome, err := s.predictor.PredictClassBySubject(c.Request.Context(), req.SubjectID)
	if err != nil {
		s.log.Warn().Err(err).Msg("subject prediction unavailable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "service_unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

func (s *Server) badRequest(c *gin.Context, msg string) error {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_action", "detail": msg})
	return errors.New(msg)
}
