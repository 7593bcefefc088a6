package gateway

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibeworks/vibe-orchestrator/internal/auth"
	"github.com/vibeworks/vibe-orchestrator/internal/command"
	"github.com/vibeworks/vibe-orchestrator/internal/models"
)

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	registry   *command.Registry
	services   *command.Services
	jwtManager *auth.JWTManager
	pool       *pgxpool.Pool
}

// NewHandler creates a new gateway handler
func NewHandler(registry *command.Registry, services *command.Services, jwtManager *auth.JWTManager, pool *pgxpool.Pool) *Handler {
	return &Handler{
		registry:   registry,
		services:   services,
		jwtManager: jwtManager,
		pool:       pool,
	}
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Code: models.ErrCodeInvalidRequest})
		return
	}

	var user models.User
	err := h.pool.QueryRow(c.Request.Context(),
		`SELECT id, name, email, hashed_password, created_at FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt)

	if err != nil {
		log.Printf(`{"level":"warn","message":"User not found","email":"%s"}`, req.Email)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password", Code: models.ErrCodeUnauthorized})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		log.Printf(`{"level":"warn","message":"Invalid password","email":"%s"}`, req.Email)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password", Code: models.ErrCodeUnauthorized})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token, err := h.jwtManager.GenerateToken(
		c.Request.Context(),
		user.ID,
		user.Email,
		[]string{"user"},
		24*time.Hour,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token", Code: models.ErrCodeInternalError})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.ToUserInfo(),
	})
}

// ExecuteCommandRequest represents a command execution request
type ExecuteCommandRequest struct {
	Input       string `json:"input"`
	OperationID string `json:"operation_id"`
}

// ExecuteCommand godoc
// @Summary Execute command
// @Description Dispatch a command by its name or alias
// @Tags commands
// @Accept json
// @Produce json
// @Param alias path string true "Command name or alias"
// @Param request body ExecuteCommandRequest false "Command input"
// @Success 200 {object} command.Result
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/commands/{alias} [post]
func (h *Handler) ExecuteCommand(c *gin.Context) {
	alias := c.Param("alias")
	cmd, ok := h.registry.Dispatch(alias)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: "Unknown command: " + alias,
			Code:  models.ErrCodeCommandNotFound,
		})
		return
	}

	// An empty body is fine; commands that need input validate it themselves.
	var req ExecuteCommandRequest
	_ = c.ShouldBindJSON(&req)

	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "User not authenticated", Code: models.ErrCodeUnauthorized})
		return
	}
	userID := userIDVal.(string)

	operationID := req.OperationID
	if operationID == "" {
		operationID = uuid.New().String()
	}

	execCtx := &command.Context{
		UserID:      userID,
		OperationID: operationID,
	}

	result, err := cmd.Execute(c.Request.Context(), req.Input, execCtx, h.services)
	if err != nil {
		h.respondCommandError(c, cmd.Name(), operationID, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondCommandError maps the command error taxonomy onto HTTP statuses.
func (h *Handler) respondCommandError(c *gin.Context, commandName, operationID string, err error) {
	log.Printf(`{"level":"error","message":"Command failed","command":"%s","operation_id":"%s","error":"%v"}`,
		commandName, operationID, err)

	var missing *command.MissingDependencyError
	var specialist *command.SpecialistError

	switch {
	case errors.Is(err, command.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: err.Error(),
			Code:  models.ErrCodeInvalidVibe,
		})
	case errors.As(err, &missing):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   err.Error(),
			Code:    models.ErrCodeMissingDependency,
			Details: map[string]string{"dependency": missing.Dependency},
		})
	case errors.As(err, &specialist):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: err.Error(),
			Code:  models.ErrCodeSpecialistFailed,
			Details: map[string]string{
				"specialist":   specialist.Specialist,
				"operation_id": operationID,
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Command execution failed",
			Code:  models.ErrCodeInternalError,
		})
	}
}

// ListCommands godoc
// @Summary List commands
// @Description List registered commands with their aliases
// @Tags commands
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/commands [get]
func (h *Handler) ListCommands(c *gin.Context) {
	cmds := h.registry.All()
	out := make([]gin.H, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, gin.H{
			"name":        cmd.Name(),
			"description": cmd.Description(),
			"aliases":     cmd.Aliases(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"commands": out})
}

// ListOperations godoc
// @Summary List operations
// @Description Show active operations, recent completions and stats
// @Tags operations
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/operations [get]
func (h *Handler) ListOperations(c *gin.Context) {
	tracker := h.services.Progress
	if tracker == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Progress tracking unavailable", Code: models.ErrCodeMissingDependency})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"active": tracker.ActiveOperations(),
		"recent": tracker.CompletedOperations(10),
		"stats":  tracker.GetStats(),
	})
}

// GetOperation godoc
// @Summary Get operation
// @Description Fetch the live view of one tracked operation
// @Tags operations
// @Produce json
// @Param id path string true "Operation ID"
// @Success 200 {object} progress.Operation
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/operations/{id} [get]
func (h *Handler) GetOperation(c *gin.Context) {
	tracker := h.services.Progress
	if tracker == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Progress tracking unavailable", Code: models.ErrCodeMissingDependency})
		return
	}

	if op, ok := tracker.GetOperation(c.Request.Context(), c.Param("id")); ok {
		c.JSON(http.StatusOK, op)
		return
	}

	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Operation not found", Code: models.ErrCodeNotFound})
}

// ListComponents godoc
// @Summary List UI components
// @Description List the static component library, optionally filtered by category tag
// @Tags library
// @Produce json
// @Param category query string false "Category tag filter"
// @Success 200 {object} map[string]interface{}
// @Router /api/library/components [get]
func (h *Handler) ListComponents(c *gin.Context) {
	lib := h.services.Components
	if lib == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Component library unavailable", Code: models.ErrCodeMissingDependency})
		return
	}

	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"components": lib.FindByCategory(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"components": lib.All()})
}

// GetComponent godoc
// @Summary Get UI component
// @Description Fetch one component by name
// @Tags library
// @Produce json
// @Param name path string true "Component name"
// @Success 200 {object} library.Component
// @Failure 404 {object} models.ErrorResponse
// @Router /api/library/components/{name} [get]
func (h *Handler) GetComponent(c *gin.Context) {
	lib := h.services.Components
	if lib == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Component library unavailable", Code: models.ErrCodeMissingDependency})
		return
	}

	component, ok := lib.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Component not found", Code: models.ErrCodeNotFound})
		return
	}
	c.JSON(http.StatusOK, component)
}

// ListPatterns godoc
// @Summary List design patterns
// @Description List design patterns, or recommendations for a context string
// @Tags library
// @Produce json
// @Param context query string false "Free text context for recommendations"
// @Success 200 {object} map[string]interface{}
// @Router /api/library/patterns [get]
func (h *Handler) ListPatterns(c *gin.Context) {
	lib := h.services.Patterns
	if lib == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "Pattern library unavailable", Code: models.ErrCodeMissingDependency})
		return
	}

	if context := c.Query("context"); context != "" {
		c.JSON(http.StatusOK, gin.H{"patterns": lib.Recommendations(context)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patterns": lib.All()})
}

// Dashboard godoc
// @Summary Intelligence dashboard
// @Description Routing, token budget and failure summaries
// @Tags operations
// @Produce json
// @Success 200 {object} command.Result
// @Security BearerAuth
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	cmd, ok := h.registry.Dispatch("dashboard")
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Dashboard command not registered", Code: models.ErrCodeCommandNotFound})
		return
	}

	result, err := cmd.Execute(c.Request.Context(), "", &command.Context{}, h.services)
	if err != nil {
		h.respondCommandError(c, cmd.Name(), "", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Health godoc
// @Summary Health check
// @Description Reports gateway and agent pool health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	agentPoolHealthy := false
	if h.services != nil && h.services.AgentPool != nil {
		agentPoolHealthy = h.services.AgentPool.IsHealthy(c.Request.Context())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"agent_pool": agentPoolHealthy,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
