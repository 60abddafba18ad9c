package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("share card not found")
	ErrValidation = errors.New("validation error")
)

const (
	KindPrediction = "prediction"
	KindAnalysis   = "analysis"

	defaultCardTTL = 7 * 24 * time.Hour
)

type Store interface {
	Save(ctx context.Context, id string, payload []byte, ttl time.Duration) error
	Get(ctx context.Context, id string) ([]byte, error)
}

// Card is a snapshot of one result, frozen at share time. The payload keeps
// whatever the result endpoint returned, so old cards survive schema drift.
type Card struct {
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type Service struct {
	store Store
	ttl   time.Duration
	newID func() string
	now   func() time.Time
}

func NewService(store Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultCardTTL
	}

	return &Service{
		store: store,
		ttl:   ttl,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Create freezes a result into a share card and returns its id.
func (s *Service) Create(ctx context.Context, kind string, payload json.RawMessage) (string, error) {
	if kind != KindPrediction && kind != KindAnalysis {
		return "", ErrValidation
	}
	if len(payload) == 0 || !json.Valid(payload) {
		return "", ErrValidation
	}
	if s.store == nil {
		return "", fmt.Errorf("share store is not configured")
	}

	card := Card{
		Kind:      kind,
		Payload:   payload,
		CreatedAt: s.now().UTC(),
	}
	raw, err := json.Marshal(card)
	if err != nil {
		return "", fmt.Errorf("marshal share card: %w", err)
	}

	id := s.newID()
	if err := s.store.Save(ctx, id, raw, s.ttl); err != nil {
		return "", fmt.Errorf("save share card: %w", err)
	}

	return id, nil
}

func (s *Service) Fetch(ctx context.Context, id string) (Card, error) {
	if id == "" {
		return Card{}, ErrValidation
	}
	if s.store == nil {
		return Card{}, fmt.Errorf("share store is not configured")
	}

	raw, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("get share card: %w", err)
	}

	var card Card
	if err := json.Unmarshal(raw, &card); err != nil {
		return Card{}, fmt.Errorf("unmarshal share card: %w", err)
	}

	return card, nil
}
