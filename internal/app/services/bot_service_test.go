package services

import (
	"context"
	"errors"
	"testing"

	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/genai"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) GenerateContent(context.Context, string) (string, error) {
	return f.reply, f.err
}

type fakeExchangeStore struct {
	exchanges []*models.BotExchange
	insertErr error
}

func (f *fakeExchangeStore) Insert(_ context.Context, e *models.BotExchange) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.exchanges = append(f.exchanges, e)
	return nil
}

func (f *fakeExchangeStore) ListByUser(_ context.Context, userID string) ([]*models.BotExchange, error) {
	var out []*models.BotExchange
	for _, e := range f.exchanges {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAskStoresReply(t *testing.T) {
	store := &fakeExchangeStore{}
	svc := NewBotService(&fakeGenerator{reply: "advice"}, store)

	exchange, err := svc.Ask(context.Background(), "u1", "how do I pitch?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	if exchange.Response != "advice" {
		t.Errorf("response = %q, want %q", exchange.Response, "advice")
	}
	if exchange.Ts == 0 {
		t.Error("exchange should carry a timestamp")
	}
	if len(store.exchanges) != 1 {
		t.Errorf("expected exchange to be persisted, got %d", len(store.exchanges))
	}
}

func TestAskFallbackTexts(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network failure", genai.ErrRequestFailed, "Failed to get response"},
		{"empty body", genai.ErrEmptyBody, "Empty response"},
		{"malformed body", genai.ErrMalformedResponse, "Failed to parse response"},
		{"no candidates", genai.ErrNoCandidates, "No candidates found"},
		{"no parts", genai.ErrNoParts, "No parts found"},
		{"unrecognized error", errors.New("boom"), "Failed to get response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeExchangeStore{}
			svc := NewBotService(&fakeGenerator{err: tt.err}, store)

			exchange, err := svc.Ask(context.Background(), "u1", "hello")
			if err != nil {
				t.Fatalf("ask should fold generation failures into the reply, got %v", err)
			}
			if exchange.Response != tt.want {
				t.Errorf("response = %q, want %q", exchange.Response, tt.want)
			}
			// Fallback replies are part of the conversation and persisted
			// like any other.
			if len(store.exchanges) != 1 {
				t.Errorf("fallback exchange should be persisted, got %d", len(store.exchanges))
			}
		})
	}
}

func TestAskPropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("insert failed")
	svc := NewBotService(&fakeGenerator{reply: "ok"}, &fakeExchangeStore{insertErr: storeErr})

	_, err := svc.Ask(context.Background(), "u1", "hello")
	if !errors.Is(err, storeErr) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestHistoryScopedToUser(t *testing.T) {
	store := &fakeExchangeStore{}
	svc := NewBotService(&fakeGenerator{reply: "ok"}, store)

	if _, err := svc.Ask(context.Background(), "u1", "one"); err != nil {
		t.Fatalf("ask: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "u2", "two"); err != nil {
		t.Fatalf("ask: %v", err)
	}

	history, err := svc.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Prompt != "one" {
		t.Errorf("history = %+v, want only u1's exchange", history)
	}
}
