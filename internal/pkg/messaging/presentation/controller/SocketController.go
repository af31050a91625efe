package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/1mmey/SecurityChat/internal/infrastructure/auth"
	"github.com/1mmey/SecurityChat/internal/infrastructure/realtime"
	"github.com/1mmey/SecurityChat/internal/pkg/messaging/application/usecase"
	"github.com/1mmey/SecurityChat/internal/pkg/presence"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when needed.
		return true
	},
}

const defaultReadTimeout = 60 * time.Second

// SocketController is the realtime endpoint. On connect it registers the
// session (evicting any previous one), marks the user online and pushes the
// stored offline backlog; it then relays message and typing frames until
// the client disconnects.
type SocketController struct {
	tracker         *presence.Tracker
	sendUC          *usecase.SendMessageUseCase
	offlineUC       *usecase.FetchOfflineUseCase
	inflightTimeout time.Duration
}

func NewSocketController(tracker *presence.Tracker, sendUC *usecase.SendMessageUseCase, offlineUC *usecase.FetchOfflineUseCase) *SocketController {
	return &SocketController{
		tracker:         tracker,
		sendUC:          sendUC,
		offlineUC:       offlineUC,
		inflightTimeout: 5 * time.Second,
	}
}

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *SocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			logrus.WithError(err).Debug("websocket upgrade failed")
			return
		}

		conn := realtime.NewConnection(userID, ws)
		conn.Start()

		if _, err := ctl.tracker.OnConnect(c.Request.Context(), userID, conn); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("presence update failed on connect")
		}
		defer func() {
			// The request context may already be canceled once the read
			// loop exits, so the disconnect gets its own deadline.
			ctx, cancel := context.WithTimeout(context.Background(), ctl.inflightTimeout)
			defer cancel()
			if err := ctl.tracker.OnDisconnect(ctx, userID, conn); err != nil {
				logrus.WithError(err).WithField("user_id", userID).Error("presence update failed on disconnect")
			}
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(ackFrame{Type: "connected", Delivered: true}); err == nil {
			_ = conn.Send(payload)
		}

		ctl.pushBacklog(c, conn, userID)

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "message":
				ctl.handleMessage(c, conn, userID, frame)
			case "typing":
				ctl.handleTyping(userID, frame)
			case "heartbeat":
				ctl.handleHeartbeat(c, conn, userID)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

// pushBacklog drains and delivers messages stored while the user was away.
func (ctl *SocketController) pushBacklog(c *gin.Context, conn *realtime.Connection, userID int64) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	msgs, err := ctl.offlineUC.Execute(ctx, usecase.FetchOfflineInput{UserID: userID})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("offline drain failed")
		ctl.replyError(conn, "internal_error", "failed to fetch stored messages")
		return
	}
	for _, m := range msgs {
		if payload, err := json.Marshal(outboundMessage{Type: "message", Message: m}); err == nil {
			_ = conn.Send(payload)
		}
	}
}

func (ctl *SocketController) handleMessage(c *gin.Context, conn *realtime.Connection, userID int64, frame inboundFrame) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendUC.Execute(ctx, usecase.SendMessageInput{
		SenderID:    userID,
		RecipientID: frame.RecipientID,
		Payload:     frame.Payload,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	if payload, err := json.Marshal(ackFrame{Type: "sent", MessageID: msg.ID, Delivered: msg.Delivered}); err == nil {
		_ = conn.Send(payload)
	}
}

// handleTyping relays a typing notification, live only: there is no stored
// fallback for ephemeral state.
func (ctl *SocketController) handleTyping(userID int64, frame inboundFrame) {
	if frame.RecipientID == 0 {
		return
	}
	payload, err := json.Marshal(typingFrame{Type: "typing", FromID: userID})
	if err != nil {
		return
	}
	ctl.tracker.Registry().Send(frame.RecipientID, payload)
}

func (ctl *SocketController) handleHeartbeat(c *gin.Context, conn *realtime.Connection, userID int64) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()
	if err := ctl.tracker.OnHeartbeat(ctx, userID); err != nil {
		ctl.replyError(conn, "internal_error", "failed to record heartbeat")
		return
	}
	if payload, err := json.Marshal(ackFrame{Type: "heartbeat_ack", Delivered: true}); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *SocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
}

func (ctl *SocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{
		Type:  "error",
		Code:  code,
		Error: message,
	}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
