package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rushteam/postrec/core"
	"github.com/rushteam/postrec/engine"
)

type updateModelRequest struct {
	Text     string `json:"text"`
	PostedBy string `json:"posted_by"`
}

type recommendRequest struct {
	UserID string `json:"user_id"`
	TopN   int    `json:"top_n"`
}

type recommendResponse struct {
	Recommendations []engine.Recommendation `json:"recommendations"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}

func (s *Server) handleUpdateModel(w http.ResponseWriter, r *http.Request) {
	var req updateModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", core.ErrorCodeInvalidInput)
		return
	}
	if req.Text == "" || req.PostedBy == "" {
		s.writeError(w, http.StatusBadRequest, "text and posted_by are required", core.ErrorCodeInvalidInput)
		return
	}

	post, err := s.engine.Ingest(r.Context(), req.Text, req.PostedBy)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.logger.Info("model updated", "post_id", post.ID, "author_id", post.AuthorID)
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "Model updated successfully."})
}

func (s *Server) handleRecommendPosts(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body", core.ErrorCodeInvalidInput)
		return
	}
	if req.UserID == "" {
		s.writeError(w, http.StatusBadRequest, "user_id is required", core.ErrorCodeInvalidInput)
		return
	}
	if req.TopN <= 0 {
		req.TopN = s.cfg.DefaultTopN
	}

	recs, err := s.engine.Recommend(r.Context(), req.UserID, req.TopN)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if recs == nil {
		recs = []engine.Recommendation{}
	}
	s.writeJSON(w, http.StatusOK, recommendResponse{Recommendations: recs})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "post_id")
	if postID == "" {
		s.writeError(w, http.StatusBadRequest, "post_id is required", core.ErrorCodeInvalidInput)
		return
	}

	if err := s.engine.DeletePost(r.Context(), postID); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "Post deleted successfully."})
}

// writeDomainError 把领域错误映射为 HTTP 状态码：
// not-found/empty-input 类 → 4xx，存储/模型基础设施失败 → 5xx。
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	domainErr := core.GetDomainError(err)
	if domainErr == nil {
		s.logger.Error("internal error", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error", "")
		return
	}

	status := http.StatusInternalServerError
	switch domainErr.Code {
	case core.ErrorCodeUserNotFound,
		core.ErrorCodeNoUserContent,
		core.ErrorCodeNoContentAvailable,
		core.ErrorCodeNotFound:
		status = http.StatusNotFound
	case core.ErrorCodeInvalidInput:
		status = http.StatusBadRequest
	case core.ErrorCodeEmptyCorpus:
		status = http.StatusUnprocessableEntity
	case core.ErrorCodeModelNotLoaded,
		core.ErrorCodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= 500 {
		s.logger.Error("request failed", "code", domainErr.Code, "err", err)
	}
	s.writeError(w, status, domainErr.Message, domainErr.Code)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, code string) {
	s.writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}
