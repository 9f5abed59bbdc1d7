package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tradcv/internal/ai"
	"tradcv/internal/cv"
	"tradcv/internal/extract"
	"tradcv/internal/observability"
	"tradcv/internal/parser"
	"tradcv/internal/render"
	"tradcv/internal/session"
	"tradcv/internal/tailor"

	"go.opentelemetry.io/otel/attribute"
)

// createUploadHandler handles CV uploads: extract text, parse it into a
// structured record and open a new session around the result.
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("tradcv.api")
		ctx, span := tracer.Start(ctx, "api.upload")
		defer span.End()

		if err := r.ParseMultipartForm(s.MaxUploadSize); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid multipart request", err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing file", "multipart field 'file' is required", http.StatusBadRequest)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				s.Logger.Debug("Failed to close uploaded file", "error", err)
			}
		}()

		mimeType := header.Header.Get("Content-Type")
		if declared := r.FormValue("format"); declared != "" {
			// A declared format wins over the sniffed content type
			mimeType = declared
		}

		format, err := extract.DetectFormat(header.Filename, mimeType)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeAppError(w, err)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read upload", err.Error(), http.StatusBadRequest)
			return
		}

		rawText, err := extract.Text(data, format)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			writeAppError(w, err)
			return
		}

		span.SetAttributes(
			attribute.String("upload.format", string(format)),
			attribute.Int("upload.size_bytes", len(data)),
			attribute.Int("upload.text_length", len(rawText)),
			attribute.String("operation", "upload"),
		)

		parseConfig := s.AppConfig.GetParseConfig()
		aiService, err := ai.NewService(&parseConfig, ai.OperationParse, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		cvParser := parser.New(aiService.Provider, s.Logger)

		metrics := om.GetMetrics()
		var record cv.Record
		err = metrics.TrackAIOperationWithTokens(ctx, ai.OperationParse, func(ctx context.Context) *observability.AIOperationResult {
			parsed, tokenUsage, parseErr := cvParser.Parse(ctx, rawText)
			record = parsed
			return &observability.AIOperationResult{
				Error:      parseErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "cv_parsed", false, om,
				attribute.String("error", err.Error()))
			writeAppError(w, err)
			return
		}

		sess := s.Sessions.Create(record)

		metrics.RecordBusinessMetric(ctx, "cv_parsed", true, om,
			attribute.Int("record.history_roles", len(record.ProfessionalHistory)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("session.id", sess.ID),
		)

		writeJSON(w, http.StatusCreated, SessionResponse{
			SessionID: sess.ID,
			Record:    sess.GetRecord(),
		})
	}
}

// getSessionHandler returns the current record for a session
func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID,
		Record:    sess.GetRecord(),
	})
}

// updateRecordHandler replaces a session's record with an edited one
func (s *Server) updateRecordHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	var record cv.Record
	if err := parseJSONRequest(r, &record); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(record.CandidateName) == "" {
		writeErrorResponse(w, "Missing candidate name", "candidate_name field is required", http.StatusBadRequest)
		return
	}

	sess.SetRecord(record)

	writeJSON(w, http.StatusOK, SessionResponse{
		SessionID: sess.ID,
		Record:    sess.GetRecord(),
	})
}

// createForgeHandler tailors a session's record against a job description.
// The stored record is only replaced after the whole forge pass succeeds.
func (s *Server) createForgeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("tradcv.api")
		ctx, span := tracer.Start(ctx, "api.forge")
		defer span.End()

		sess, err := s.Sessions.Get(r.PathValue("id"))
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		var req ForgeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("session.id", sess.ID),
			attribute.String("operation", "forge"),
		)

		forgeConfig := s.AppConfig.GetForgeConfig()
		aiService, err := ai.NewService(&forgeConfig, ai.OperationForge, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		engine := tailor.New(aiService.Provider, s.Logger)
		source := sess.GetRecord()

		metrics := om.GetMetrics()
		var forged cv.Record
		err = metrics.TrackAIOperationWithTokens(ctx, ai.OperationForge, func(ctx context.Context) *observability.AIOperationResult {
			result, tokenUsage, forgeErr := engine.Forge(ctx, source, req.JobDescription)
			forged = result
			return &observability.AIOperationResult{
				Error:      forgeErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "cv_forged", false, om,
				attribute.String("error", err.Error()))
			writeAppError(w, err)
			return
		}

		sess.SetRecord(forged)

		metrics.RecordBusinessMetric(ctx, "cv_forged", true, om,
			attribute.Int("record.history_roles", len(forged.ProfessionalHistory)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.history_roles", len(forged.ProfessionalHistory)),
		)

		writeJSON(w, http.StatusOK, SessionResponse{
			SessionID: sess.ID,
			Record:    sess.GetRecord(),
		})
	}
}

// createPDFHandler renders a session's record to an A4 PDF attachment
func (s *Server) createPDFHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("tradcv.api")
		ctx, span := tracer.Start(ctx, "api.pdf")
		defer span.End()

		sess, err := s.Sessions.Get(r.PathValue("id"))
		if err != nil {
			span.RecordError(err)
			writeAppError(w, err)
			return
		}

		record := sess.GetRecord()
		span.SetAttributes(
			attribute.String("session.id", sess.ID),
			attribute.String("operation", "render"),
		)

		pdf, err := s.Renderer.RenderPDF(ctx, record)
		metrics := om.GetMetrics()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "render"))
			metrics.RecordBusinessMetric(ctx, "cv_rendered", false, om,
				attribute.String("error", err.Error()))
			writeAppError(w, err)
			return
		}

		metrics.RecordBusinessMetric(ctx, "cv_rendered", true, om,
			attribute.Int("pdf.size_bytes", len(pdf)))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("pdf.size_bytes", len(pdf)),
		)

		filename := render.Filename(record.CandidateName)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(pdf); err != nil {
			s.Logger.Debug("Failed to write PDF response", "error", err)
		}
	}
}

// deleteSessionHandler discards a session
func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.Sessions.Delete(id) {
		writeAppError(w, session.NotFoundError(id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter so rate limited responses can be detected
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
