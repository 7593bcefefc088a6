package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vibeworks/vibe-orchestrator/internal/agentpool"
	"github.com/vibeworks/vibe-orchestrator/internal/auth"
	"github.com/vibeworks/vibe-orchestrator/internal/progress"
)

// OperationStreamProxy bridges client WebSocket connections to the
// agent-pool event stream for one operation.
type OperationStreamProxy struct {
	store      *progress.Store
	agentPool  agentpool.ClientInterface
	jwtManager *auth.JWTManager
	tracer     trace.Tracer
	upgrader   websocket.Upgrader
}

// NewOperationStreamProxy creates a new agent-pool WebSocket proxy
func NewOperationStreamProxy(store *progress.Store, agentPool agentpool.ClientInterface, jwtManager *auth.JWTManager) *OperationStreamProxy {
	return &OperationStreamProxy{
		store:      store,
		agentPool:  agentPool,
		jwtManager: jwtManager,
		tracer:     otel.Tracer("operation-stream-proxy"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origins once the frontend domain is final
				origin := r.Header.Get("Origin")
				log.Printf("WebSocket connection from origin: %s", origin)
				return true
			},
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// StreamOperation handles WebSocket /api/operations/:id/stream
// @Summary Stream operation progress
// @Description WebSocket endpoint streaming real-time agent-pool events for an operation
// @Tags operations
// @Param id path string true "Operation ID"
// @Param token query string false "JWT for browsers that cannot set headers"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /api/operations/{id}/stream [get]
func (p *OperationStreamProxy) StreamOperation(c *gin.Context) {
	ctx, span := p.tracer.Start(c.Request.Context(), "operation_stream_proxy.stream_operation")
	defer span.End()

	operationID := c.Param("id")
	span.SetAttributes(attribute.String("operation_id", operationID))

	userID, err := p.authenticate(c)
	if err != nil {
		span.RecordError(err)
		log.Printf(`{"level":"warn","message":"Stream auth failed","operation_id":"%s","error":"%v"}`, operationID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	span.SetAttributes(attribute.String("user_id", userID))

	if !p.canAccessOperation(ctx, userID, operationID) {
		span.SetAttributes(attribute.Bool("access_denied", true))
		log.Printf(`{"level":"warn","message":"Stream access denied","operation_id":"%s","user_id":"%s"}`, operationID, userID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	clientConn, err := p.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		span.RecordError(err)
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer clientConn.Close()

	poolConn, err := p.agentPool.StreamWebSocket(ctx, operationID)
	if err != nil {
		span.RecordError(err)
		log.Printf("Failed to connect to agent-pool WebSocket: %v", err)
		p.sendErrorToClient(clientConn, "Failed to connect to agent pool")
		return
	}
	defer poolConn.Close()

	p.proxy(ctx, clientConn, poolConn, operationID)
}

// authenticate validates the JWT and returns the caller's user ID.
func (p *OperationStreamProxy) authenticate(c *gin.Context) (string, error) {
	token := auth.TokenFromRequest(c.Request)
	if token == "" {
		return "", fmt.Errorf("missing JWT token")
	}

	claims, err := p.jwtManager.ValidateToken(c.Request.Context(), token)
	if err != nil {
		return "", fmt.Errorf("invalid JWT: %w", err)
	}

	return claims.UserID, nil
}

// canAccessOperation checks operation ownership against the store. Without a
// store there is no ownership record, so access is denied.
func (p *OperationStreamProxy) canAccessOperation(ctx context.Context, userID, operationID string) bool {
	if p.store == nil {
		log.Printf("Store is nil, denying stream access for operation: %s", operationID)
		return false
	}
	return p.store.IsOwnedBy(ctx, operationID, userID)
}

// proxy runs bidirectional forwarding between the client and the agent pool
// until either side closes or the pool emits its terminal event.
func (p *OperationStreamProxy) proxy(ctx context.Context, clientConn, poolConn *websocket.Conn, operationID string) {
	var span trace.Span
	if p.tracer != nil {
		ctx, span = p.tracer.Start(ctx, "operation_stream_proxy.proxy")
		defer span.End()
		span.SetAttributes(attribute.String("operation_id", operationID))
	}

	errChan := make(chan error, 2)

	// Client -> agent pool (forward client messages)
	go func() {
		for {
			messageType, message, err := clientConn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("Client connection closed normally for operation: %s", operationID)
				} else {
					log.Printf("Client connection read error for operation %s: %v", operationID, err)
				}
				errChan <- err
				return
			}

			if err := poolConn.WriteMessage(messageType, message); err != nil {
				log.Printf("Failed to forward message to agent pool for operation %s: %v", operationID, err)
				errChan <- err
				return
			}
		}
	}()

	// Agent pool -> client (forward events, watch for the terminal event)
	go func() {
		for {
			var event agentpool.StreamEvent
			if err := poolConn.ReadJSON(&event); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("Agent pool connection closed normally for operation: %s", operationID)
				} else {
					log.Printf("Agent pool connection read error for operation %s: %v", operationID, err)
				}
				errChan <- err
				return
			}

			if err := clientConn.WriteJSON(event); err != nil {
				log.Printf("Failed to forward event to client for operation %s: %v", operationID, err)
				errChan <- err
				return
			}

			if event.EventType == "end" {
				log.Printf("Received end event for operation: %s", operationID)
				errChan <- fmt.Errorf("stream completed")
				return
			}
		}
	}()

	err := <-errChan
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		if err.Error() != "stream completed" {
			if span != nil {
				span.RecordError(err)
			}
			log.Printf("WebSocket proxy error for operation %s: %v", operationID, err)
		}
	}

	log.Printf("WebSocket proxy session ended for operation: %s", operationID)
}

// sendErrorToClient sends an error event to the WebSocket client
func (p *OperationStreamProxy) sendErrorToClient(conn *websocket.Conn, message string) {
	errorEvent := agentpool.StreamEvent{
		EventType: "error",
		Data:      map[string]interface{}{"error": message},
	}

	if err := conn.WriteJSON(errorEvent); err != nil {
		log.Printf("Failed to send error to client: %v", err)
	}
}
