package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"loanwise/internal/advisor"
	"loanwise/internal/config"
	"loanwise/internal/documents"
	"loanwise/internal/observability"
	"loanwise/internal/providers"
	"loanwise/internal/util"
)

const (
	eligibilityMaxTokens     = 500
	recommendationsMaxTokens = 800

	maxJSONBodyBytes  = 1 << 20
	multipartOverhead = 64 << 10
	maxErrorChars     = 300

	serviceOpenAI = "openai"
	serviceDocs   = "document-intelligence"
)

type Server struct {
	cfg       config.Config
	providers *providers.Manager
	metrics   *observability.Metrics
	logger    *slog.Logger
}

type healthResponse struct {
	Status        string                  `json:"status"`
	Message       string                  `json:"message"`
	AzureServices providers.ServiceStatus `json:"azureServices"`
}

type eligibilityResponse struct {
	Success   bool                        `json:"success"`
	Analysis  advisor.EligibilityAnalysis `json:"analysis"`
	AIPowered bool                        `json:"aiPowered"`
	Error     string                      `json:"error,omitempty"`
}

type documentResponse struct {
	Success   bool                 `json:"success"`
	Data      documents.Extraction `json:"data"`
	AIPowered bool                 `json:"aiPowered"`
	Error     string               `json:"error,omitempty"`
}

type recommendationsResponse struct {
	Success         bool                         `json:"success"`
	Recommendations []advisor.LoanRecommendation `json:"recommendations"`
	Narrative       string                       `json:"narrative,omitempty"`
	AIPowered       bool                         `json:"aiPowered"`
	Error           string                       `json:"error,omitempty"`
}

func NewServer(cfg config.Config, pm *providers.Manager, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		providers: pm,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/check-eligibility", s.handleCheckEligibility)
	mux.HandleFunc("/api/analyze-document", s.handleAnalyzeDocument)
	mux.HandleFunc("/api/loan-recommendations", s.handleLoanRecommendations)
	mux.HandleFunc("/api/", s.handleNotFound)
	mux.Handle("/metrics", s.metrics.Handler())
	if s.cfg.ServeStatic {
		mux.Handle("/", newSPAHandler(s.cfg.StaticDir))
	} else {
		mux.HandleFunc("/", s.handleNotFound)
	}
	return withRequestLogging(s.logger, s.metrics, withCORS(mux))
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeErr(w, http.StatusNotFound, errNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Message:       "LoanWise API is running",
		AzureServices: s.providers.Status(),
	})
}

func (s *Server) handleCheckEligibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var payload advisor.EligibilityPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	req, err := payload.Validate()
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return
	}

	start := time.Now()
	resp, info, err := s.providers.Chat().Complete(r.Context(), providers.ChatRequest{
		Operation:   "check_eligibility",
		System:      advisor.SystemPrompt,
		Prompt:      advisor.BuildEligibilityPrompt(req),
		MaxTokens:   eligibilityMaxTokens,
		Temperature: s.cfg.OpenAITemperature,
	})
	s.observeUpstream(serviceOpenAI, start, err)
	if err != nil {
		writeJSON(w, http.StatusOK, eligibilityResponse{
			Success:   true,
			Analysis:  advisor.FallbackAnalysis(req, advisor.HeuristicAdvice(req)),
			AIPowered: false,
			Error:     s.degrade(r, "check-eligibility", err),
		})
		return
	}

	analysis, err := advisor.ParseAnalysis(resp.Text, req)
	if err != nil {
		s.metrics.IncFallback("check-eligibility", "malformed")
		s.logger.WarnContext(r.Context(), "chat reply not structured, using heuristic",
			"request_id", requestIDFrom(r.Context()),
			"model", info.Model,
			"error", err,
			"reply", util.DisplaySnippet(resp.Text, 0),
		)
	}
	writeJSON(w, http.StatusOK, eligibilityResponse{
		Success:   true,
		Analysis:  analysis,
		AIPowered: true,
	})
}

func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	limit := s.cfg.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		if isTooLarge(err) {
			writeErr(w, http.StatusRequestEntityTooLarge, errPayloadTooLarge)
			return
		}
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, errNoDocument))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("document")
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, errNoDocument))
		return
	}
	defer file.Close()
	if header.Size > limit {
		writeErr(w, http.StatusRequestEntityTooLarge, errPayloadTooLarge)
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: read upload: %w", ErrInvalidRequest, err))
		return
	}
	mimeType := strings.TrimSpace(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	s.logger.InfoContext(r.Context(), "document received",
		"request_id", requestIDFrom(r.Context()),
		"mime_type", mimeType,
		"bytes", len(data),
		"sha256", util.ContentDigest(data),
	)

	start := time.Now()
	result, _, err := s.providers.Documents().Analyze(r.Context(), providers.AnalyzeRequest{
		Data:        data,
		ContentType: mimeType,
	})
	s.observeUpstream(serviceDocs, start, err)
	if err != nil {
		writeJSON(w, http.StatusOK, documentResponse{
			Success:   true,
			Data:      documents.Degraded(data, mimeType),
			AIPowered: false,
			Error:     s.degrade(r, "analyze-document", err),
		})
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{
		Success:   true,
		Data:      documents.Extract(result, mimeType),
		AIPowered: true,
	})
}

func (s *Server) handleLoanRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	var payload advisor.RecommendationPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	req, err := payload.Validate()
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return
	}

	start := time.Now()
	resp, _, err := s.providers.Chat().Complete(r.Context(), providers.ChatRequest{
		Operation:   "loan_recommendations",
		System:      advisor.SystemPrompt,
		Prompt:      advisor.BuildRecommendationPrompt(req),
		MaxTokens:   recommendationsMaxTokens,
		Temperature: s.cfg.OpenAITemperature,
	})
	s.observeUpstream(serviceOpenAI, start, err)
	if err != nil {
		writeJSON(w, http.StatusOK, recommendationsResponse{
			Success:         true,
			Recommendations: advisor.FallbackRecommendations(req),
			AIPowered:       false,
			Error:           s.degrade(r, "loan-recommendations", err),
		})
		return
	}

	recs, err := advisor.ParseRecommendations(resp.Text)
	if err != nil {
		s.metrics.IncFallback("loan-recommendations", "malformed")
		s.logger.WarnContext(r.Context(), "chat reply not a recommendation list, using catalog",
			"request_id", requestIDFrom(r.Context()),
			"error", err,
			"reply", util.DisplaySnippet(resp.Text, 0),
		)
		recs = advisor.FallbackRecommendations(req)
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{
		Success:         true,
		Recommendations: recs,
		Narrative:       resp.Text,
		AIPowered:       true,
	})
}

// degrade records an AI-path failure and returns the diagnostic carried in the
// response's error field.
func (s *Server) degrade(r *http.Request, operation string, err error) string {
	class := providers.ClassifyError(err)
	s.metrics.IncFallback(operation, string(class))
	s.logger.WarnContext(r.Context(), "ai path degraded, serving local fallback",
		"request_id", requestIDFrom(r.Context()),
		"operation", operation,
		"error_type", class,
		"error", err,
	)
	return util.TruncateRunes(err.Error(), maxErrorChars)
}

func (s *Server) observeUpstream(service string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(providers.ClassifyError(err))
	}
	s.metrics.ObserveUpstream(service, outcome, time.Since(start))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %w", ErrInvalidRequest, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid json: trailing data after body", ErrInvalidRequest)
	}
	return nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
