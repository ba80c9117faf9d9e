package service

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tripflow/tripflow/internal/app/agent"
	"github.com/tripflow/tripflow/internal/app/dto"
	"github.com/tripflow/tripflow/internal/core/reduce"
)

// newThreadID mints a fresh conversation id for requests without one.
func newThreadID() string {
	return "session-" + uuid.NewString()[:12]
}

// chat runs one conversation turn and retains the turn's full payloads
// for the data endpoints.
func (s *Server) chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "malformed request body"})
	}
	if err := s.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "message is required"})
	}

	threadID := req.ThreadID
	if threadID == "" {
		threadID = newThreadID()
	}

	s.log.Info().Str("thread_id", threadID).Msg("chat request")

	res, err := s.runner.Run(c.Request().Context(), threadID, req.Message)
	if err != nil {
		if errors.Is(err, agent.ErrEmptyMessage) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: err.Error()})
		}
		s.log.Error().Err(err).Str("thread_id", threadID).Msg("chat request failed")
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "error processing chat request"})
	}

	s.mu.Lock()
	s.data = res.Data
	s.mu.Unlock()

	return c.JSON(http.StatusOK, dto.ChatResponse{
		Response:  res.Response,
		ThreadID:  res.ThreadID,
		DataStore: res.Data,
	})
}

// history returns a thread's conversation; an unseen thread yields an
// empty message list, not an error.
func (s *Server) history(c echo.Context) error {
	threadID := c.Param("thread_id")

	messages, err := s.runner.History(c.Request().Context(), threadID)
	if err != nil {
		s.log.Error().Err(err).Str("thread_id", threadID).Msg("history lookup failed")
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "error retrieving conversation history"})
	}

	return c.JSON(http.StatusOK, dto.HistoryResponse{
		ThreadID: threadID,
		Messages: messages,
	})
}

// getData returns the full payload deposited under (data_type, key) by
// the most recent chat turn.
func (s *Server) getData(c echo.Context) error {
	dataType := c.Param("data_type")
	if !reduce.DataType(dataType).Valid() {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "data_type must be one of flights, hotels, news"})
	}

	key := c.Param("key")
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}

	s.mu.RLock()
	payload, ok := s.data[dataType][key]
	s.mu.RUnlock()

	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "no data found for " + dataType + " with key: " + key})
	}

	return c.JSON(http.StatusOK, dto.DataResponse{
		DataType: dataType,
		Key:      key,
		Data:     payload,
	})
}

// listKeys lists the deposit keys currently held for one data type.
func (s *Server) listKeys(c echo.Context) error {
	dataType := c.Param("data_type")
	if !reduce.DataType(dataType).Valid() {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: "data_type must be one of flights, hotels, news"})
	}

	s.mu.RLock()
	keys := make([]string, 0, len(s.data[dataType]))
	for k := range s.data[dataType] {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	return c.JSON(http.StatusOK, dto.KeysResponse{
		DataType: dataType,
		Keys:     keys,
		Count:    len(keys),
	})
}

// clearData resets the retained payloads.
func (s *Server) clearData(c echo.Context) error {
	s.mu.Lock()
	s.data = emptyData()
	s.mu.Unlock()

	return c.JSON(http.StatusOK, dto.StatusResponse{
		Status:  "success",
		Message: "Data store cleared",
	})
}
