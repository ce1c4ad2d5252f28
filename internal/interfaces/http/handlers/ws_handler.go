package handlers

import (
	"context"
	"encoding/json"
	"time"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/olahol/melody"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	wsEventKey            = "event_id"
	DepositRecordedSignal = "deposit_recorded"
)

// DepositSignal is pushed to every client watching the deposit's event
type DepositSignal struct {
	Type            string          `json:"type"`
	EventID         uuid.UUID       `json:"eventId"`
	UserID          uuid.UUID       `json:"userId"`
	Amount          decimal.Decimal `json:"amount"`
	TotalSaved      decimal.Decimal `json:"totalSaved"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
	NewBadges       []string        `json:"newBadges"`
}

// DepositFeed is the websocket hub for live event progress
type DepositFeed struct {
	M *melody.Melody
}

// NewDepositFeed creates the hub with keep-alive settings
func NewDepositFeed() *DepositFeed {
	m := melody.New()
	m.Config.MaxMessageSize = 1024
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		eventID, _ := s.Get(wsEventKey)
		logger.Debug(context.Background(), "Websocket client connected", zap.Any("eventId", eventID))
	})
	m.HandleDisconnect(func(s *melody.Session) {
		eventID, _ := s.Get(wsEventKey)
		logger.Debug(context.Background(), "Websocket client disconnected", zap.Any("eventId", eventID))
	})
	m.HandleError(func(s *melody.Session, err error) {
		logger.Warn(context.Background(), "Websocket error", zap.Error(err))
	})

	return &DepositFeed{M: m}
}

// HandleWS upgrades the request and subscribes it to one event
// GET /ws/events/:eventId
func (f *DepositFeed) HandleWS(c *gin.Context) {
	eventID, ok := pathUUID(c, "eventId", "event")
	if !ok {
		return
	}

	keys := map[string]interface{}{wsEventKey: eventID.String()}
	if err := f.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		logger.Warn(c.Request.Context(), "Failed to upgrade websocket", zap.Error(err))
	}
}

// DepositRecorded broadcasts a recorded deposit to the event's subscribers
func (f *DepositFeed) DepositRecorded(ctx context.Context, result *entities.DepositResult) {
	if result == nil || result.Deposit == nil {
		return
	}

	msg, err := json.Marshal(depositSignal(result))
	if err != nil {
		logger.Warn(ctx, "Failed to encode deposit signal", zap.Error(err))
		return
	}

	eventID := result.Deposit.EventID.String()
	err = f.M.BroadcastFilter(msg, func(s *melody.Session) bool {
		id, exists := s.Get(wsEventKey)
		return exists && id == eventID
	})
	if err != nil {
		logger.Warn(ctx, "Failed to broadcast deposit", zap.String("eventId", eventID), zap.Error(err))
	}
}

func depositSignal(result *entities.DepositResult) DepositSignal {
	signal := DepositSignal{
		Type:       DepositRecordedSignal,
		EventID:    result.Deposit.EventID,
		UserID:     result.Deposit.UserID,
		Amount:     result.Deposit.Amount,
		TotalSaved: result.TotalSaved,
		NewBadges:  make([]string, 0, len(result.NewBadges)),
	}
	if result.Progress != nil {
		signal.ProgressPercent = result.Progress.ProgressPercent
	}
	for _, b := range result.NewBadges {
		signal.NewBadges = append(signal.NewBadges, b.ID)
	}
	return signal
}
