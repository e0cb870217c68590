package telemetry

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/aquarium/config"
)

// RunInfo identifies one simulation run. The config hash plus seed is enough
// to reproduce a headless run.
type RunInfo struct {
	ID         uuid.UUID `yaml:"id"`
	Seed       int64     `yaml:"seed"`
	ConfigHash string    `yaml:"config_hash"`
	Started    time.Time `yaml:"started"`
	Headless   bool      `yaml:"headless"`
}

// NewRunInfo stamps a fresh run ID and fingerprints cfg.
func NewRunInfo(cfg *config.Config, seed int64, headless bool) (RunInfo, error) {
	hash, err := cfg.Fingerprint()
	if err != nil {
		return RunInfo{}, fmt.Errorf("fingerprinting config: %w", err)
	}
	return RunInfo{
		ID:         uuid.New(),
		Seed:       seed,
		ConfigHash: fmt.Sprintf("%016x", hash),
		Started:    time.Now().UTC(),
		Headless:   headless,
	}, nil
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", r.ID.String()),
		slog.Int64("seed", r.Seed),
		slog.String("config_hash", r.ConfigHash),
		slog.Bool("headless", r.Headless),
	)
}
