package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caritahub_games/internal/domain"
)

// StartSessionRequest - запрос на старт партии; поля именуются как в
// контракте данных встраивающего хоста
type StartSessionRequest struct {
	MemberID    string `json:"memberId" binding:"required"`
	GameID      string `json:"gameId" binding:"required"`
	Difficulty  string `json:"difficulty"`
	CallbackURL string `json:"callbackUrl"`
}

// Запуск новой игровой сессии
func (h *Handler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	res, err := h.Sessions.StartSession(
		req.MemberID,
		domain.GameID(req.GameID),
		domain.ParseDifficulty(req.Difficulty),
		req.CallbackURL,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Снимок состояния сессии
func (h *Handler) GetSession(c *gin.Context) {
	state, err := h.Sessions.State(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Живой счёт от клиента (декларативные игры)
func (h *Handler) ReportScore(c *gin.Context) {
	var req struct {
		Score float64 `json:"score"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Sessions.ReportScore(c.Param("id"), req.Score); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Завершение сессии по сигналу клиента. Поля принимаются как есть -
// приведение типов выполняет строитель payload'а
func (h *Handler) CompleteSession(c *gin.Context) {
	var req struct {
		Score      any `json:"score"`
		FinalScore any `json:"finalScore"`
		MaxScore   any `json:"maxScore"`
		Completed  any `json:"completed"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	score := req.Score
	if score == nil {
		score = req.FinalScore
	}
	completed := req.Completed
	if completed == nil {
		completed = true
	}

	id := c.Param("id")
	if err := h.Sessions.Complete(id, score, req.MaxScore, completed); err != nil {
		respondError(c, err)
		return
	}

	state, err := h.Sessions.State(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Переигровка: завершённая сессия сбрасывается и стартует новая партия
func (h *Handler) ReplaySession(c *gin.Context) {
	res, err := h.Sessions.Replay(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Ответ на текущий вопрос устного счёта
func (h *Handler) ArithmeticAnswer(c *gin.Context) {
	var req struct {
		Answer int `json:"answer"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	correct, index, err := h.Sessions.SubmitArithmetic(c.Param("id"), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"correct": correct, "index": index})
}

// Попытка вспомнить слово
func (h *Handler) RecallWord(c *gin.Context) {
	var req struct {
		Word string `json:"word"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	result, err := h.Sessions.SubmitRecallWord(c.Param("id"), req.Word)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// Переключение фазы игры запоминания (study -> recall)
func (h *Handler) RecallPhase(c *gin.Context) {
	var req struct {
		Phase string `json:"phase"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Sessions.SetRecallPhase(c.Param("id"), req.Phase); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"phase": req.Phase})
}
