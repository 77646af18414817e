package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/rentbook/internal/settings"
)

const settingsKey = "rentbook:settings:current"

type entry struct {
	ElecUnitPrice  int64      `json:"elec_unit_price"`
	WaterUnitPrice int64      `json:"water_unit_price"`
	TrashFee       int64      `json:"trash_fee"`
	WifiFee        int64      `json:"wifi_fee"`
	OtherFee       int64      `json:"other_fee"`
	Version        int64      `json:"version"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Store is a read-through cache in front of a settings.Repository. Cache
// failures are logged and fall back to the wrapped repository.
type Store struct {
	next settings.Repository
	kv   KVStore
	ttl  time.Duration
}

func New(next settings.Repository, kv KVStore, ttl time.Duration) *Store {
	return &Store{next: next, kv: kv, ttl: ttl}
}

func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	raw, err := s.kv.Get(ctx, settingsKey)
	if err == nil {
		var e entry
		if jsonErr := json.Unmarshal([]byte(raw), &e); jsonErr == nil {
			return e.toSettings(), nil
		}

		slog.WarnContext(ctx, "discarding unreadable cached settings", "key", settingsKey)
	} else if !errors.Is(err, ErrCacheMiss) {
		slog.WarnContext(ctx, "settings cache read failed", "error", err)
	}

	current, err := s.next.GetSettings(ctx)
	if err != nil {
		// Absence is not cached.
		return nil, err
	}

	s.put(ctx, current)

	return current, nil
}

func (s *Store) UpsertSettings(ctx context.Context, in *settings.Settings) error {
	if err := s.next.UpsertSettings(ctx, in); err != nil {
		return err
	}

	if err := s.kv.Del(ctx, settingsKey); err != nil {
		slog.WarnContext(ctx, "settings cache invalidation failed", "error", err)
	}

	return nil
}

func (s *Store) put(ctx context.Context, in *settings.Settings) {
	raw, err := json.Marshal(fromSettings(in))
	if err != nil {
		return
	}

	if err := s.kv.Set(ctx, settingsKey, string(raw), s.ttl); err != nil {
		slog.WarnContext(ctx, "settings cache write failed", "error", err)
	}
}

func fromSettings(in *settings.Settings) entry {
	return entry{
		ElecUnitPrice:  in.ElecUnitPrice,
		WaterUnitPrice: in.WaterUnitPrice,
		TrashFee:       in.TrashFee,
		WifiFee:        in.WifiFee,
		OtherFee:       in.OtherFee,
		Version:        in.Version,
		UpdatedAt:      in.UpdatedAt,
	}
}

func (e entry) toSettings() *settings.Settings {
	return &settings.Settings{
		ElecUnitPrice:  e.ElecUnitPrice,
		WaterUnitPrice: e.WaterUnitPrice,
		TrashFee:       e.TrashFee,
		WifiFee:        e.WifiFee,
		OtherFee:       e.OtherFee,
		Version:        e.Version,
		UpdatedAt:      e.UpdatedAt,
	}
}
