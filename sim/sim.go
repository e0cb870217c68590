// Package sim owns the school, the camera and the per-frame threat, and runs
// one frame-synchronous update at a time.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aquarium/camera"
	"github.com/pthm-cable/aquarium/components"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/systems"
	"github.com/pthm-cable/aquarium/telemetry"
)

// StepStats summarizes one tick.
type StepStats struct {
	Tick      int32
	Agents    int
	Fleeing   int
	Bounced   int
	Respawned int
}

// Agent is a read-only snapshot of one fish, passed to EachAgent callbacks.
type Agent struct {
	ID          uint32
	Position    mgl32.Vec3
	Velocity    mgl32.Vec3
	Size        float32
	CruiseSpeed float32
}

// Sim holds the complete aquarium state.
type Sim struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	schoolMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Swim,
	]
	schoolFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Swim,
	]

	bounds systems.Bounds
	params systems.SteeringParams
	wander *systems.Wander // nil when disabled

	camera *camera.Camera
	threat systems.Threat

	perf *telemetry.PerfCollector // optional

	// State
	tick       int32
	time       float64 // simulated seconds
	paused     bool
	wasFocused bool
	count      int
	nextID     uint32
}

// New builds the tank, camera and school from cfg. The seed drives spawn
// positions, cruise speeds, degenerate-velocity replacement and wander noise.
func New(cfg *config.Config, seed int64) (*Sim, error) {
	bounds, err := systems.NewBounds(cfg.Derived.TankMin, cfg.Derived.TankMax)
	if err != nil {
		return nil, fmt.Errorf("creating tank bounds: %w", err)
	}

	world := ecs.NewWorld()

	s := &Sim{
		cfg:    cfg,
		world:  world,
		rng:    rand.New(rand.NewSource(seed)),
		bounds: bounds,
		params: systems.SteeringParamsFromConfig(cfg),
		schoolMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Swim,
		](world),
		schoolFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Swim,
		](world),
		camera: camera.New(cfg.Derived.CameraPos, cfg.Derived.Aspect, camera.OptionsFromConfig(cfg)),
		threat: systems.InactiveThreat(),
	}

	if cfg.Wander.Enabled {
		s.wander = systems.NewWander(seed, cfg.Wander.TurnRate, cfg.Wander.Frequency, cfg.Derived.Epsilon32)
	}

	s.spawnSchool(cfg.School.Count)
	return s, nil
}

// spawnSchool creates n agents at random positions heading in random directions.
func (s *Sim) spawnSchool(n int) {
	minSpeed := float32(s.cfg.School.MinSpeed)
	span := float32(s.cfg.School.MaxSpeed) - minSpeed
	size := float32(s.cfg.School.Size)

	for i := 0; i < n; i++ {
		cruise := minSpeed + s.rng.Float32()*span
		pos := components.Position{Vec3: s.bounds.RandomPoint(s.rng)}
		vel := components.Velocity{Vec3: systems.RandomUnitVector(s.rng).Mul(cruise)}
		body := components.Body{Size: size}
		swim := components.Swim{ID: s.nextID, CruiseSpeed: cruise}
		s.nextID++

		s.schoolMapper.NewEntity(&pos, &vel, &body, &swim)
		s.count++
	}
}

// SetPerf attaches a collector that receives camera, threat and steering phases.
func (s *Sim) SetPerf(p *telemetry.PerfCollector) {
	s.perf = p
}

func (s *Sim) startPhase(ph telemetry.Phase) {
	if s.perf != nil {
		s.perf.StartPhase(ph)
	}
}

// Update handles one frame of input, then steps the school unless paused.
// In FreeLook the camera moves and rotates; in Fixed the pointer casts the
// threat ray. The ray is cast at most once per frame.
func (s *Sim) Update(dt float32, in Input) StepStats {
	s.startPhase(telemetry.PhaseCamera)

	if in.IsKeyPressed(KeyPause) {
		s.paused = !s.paused
	}

	pointer := in.PointerPosition()
	focused := in.Focused()
	if focused && !s.wasFocused {
		// The pointer may have travelled anywhere while the window was away
		s.camera.ResetPointerTracking(pointer)
	}
	s.wasFocused = focused

	if in.IsKeyPressed(KeyToggleCamera) {
		s.camera.Toggle(pointer)
	}

	threat := systems.InactiveThreat()
	switch s.camera.Mode {
	case camera.FreeLook:
		if focused && !s.paused {
			s.camera.Move(camera.Movement{
				Forward: in.IsKeyDown(KeyForward),
				Back:    in.IsKeyDown(KeyBack),
				Left:    in.IsKeyDown(KeyLeft),
				Right:   in.IsKeyDown(KeyRight),
				Up:      in.IsKeyDown(KeyUp),
				Down:    in.IsKeyDown(KeyDown),
			}, dt)
		}
		if focused {
			s.camera.Look(pointer)
		}
	case camera.Fixed:
		s.startPhase(telemetry.PhaseThreat)
		if focused {
			if origin, dir, ok := s.camera.Ray(pointer, in.ViewportSize()); ok {
				threat = systems.NewThreat(origin, dir, s.cfg.Derived.Epsilon32)
			}
		}
	}

	if s.paused {
		s.threat = threat
		return StepStats{Tick: s.tick, Agents: s.count}
	}
	return s.Step(dt, threat)
}

// Step advances every agent by dt against the same threat.
func (s *Sim) Step(dt float32, threat systems.Threat) StepStats {
	s.startPhase(telemetry.PhaseSteering)

	s.threat = threat
	frame := systems.Frame{
		DT:     dt,
		Time:   s.time,
		Bounds: s.bounds,
		Threat: threat,
	}

	stats := StepStats{Agents: s.count}
	query := s.schoolFilter.Query()
	for query.Next() {
		pos, vel, _, swim := query.Get()
		res := systems.Steer(pos, vel, *swim, frame, s.params, s.wander, s.rng)
		if res.Fleeing {
			stats.Fleeing++
		}
		if res.Bounced {
			stats.Bounced++
		}
		if res.Respawned {
			stats.Respawned++
		}
	}

	s.tick++
	s.time += float64(dt)
	stats.Tick = s.tick
	return stats
}

// EachAgent calls fn for every agent in storage order.
func (s *Sim) EachAgent(fn func(a Agent)) {
	query := s.schoolFilter.Query()
	for query.Next() {
		pos, vel, body, swim := query.Get()
		fn(Agent{
			ID:          swim.ID,
			Position:    pos.Vec3,
			Velocity:    vel.Vec3,
			Size:        body.Size,
			CruiseSpeed: swim.CruiseSpeed,
		})
	}
}

// Camera returns the controller; callers may resize it.
func (s *Sim) Camera() *camera.Camera { return s.camera }

// Bounds returns the tank volume.
func (s *Sim) Bounds() systems.Bounds { return s.bounds }

// Threat returns the threat applied on the most recent frame.
func (s *Sim) Threat() systems.Threat { return s.threat }

// Mode returns the current camera mode.
func (s *Sim) Mode() camera.Mode { return s.camera.Mode }

// Tick returns the number of completed steps.
func (s *Sim) Tick() int32 { return s.tick }

// Time returns the simulated seconds elapsed.
func (s *Sim) Time() float64 { return s.time }

// Paused reports whether Update skips stepping.
func (s *Sim) Paused() bool { return s.paused }

// SetPaused overrides the pause state.
func (s *Sim) SetPaused(p bool) { s.paused = p }

// Count returns the number of agents.
func (s *Sim) Count() int { return s.count }

// Params returns the current steering parameters.
func (s *Sim) Params() systems.SteeringParams { return s.params }

// SetParams replaces the steering parameters from the next step on.
func (s *Sim) SetParams(p systems.SteeringParams) { s.params = p }

// Config returns the configuration the sim was built from.
func (s *Sim) Config() *config.Config { return s.cfg }

// Sample snapshots per-agent speeds and, while the threat is active, each
// agent's distance to the ray. radius is the clearance the near-ray fraction
// is measured against.
func (s *Sim) Sample(radius float64) telemetry.Sample {
	out := telemetry.Sample{
		Mode:       s.camera.Mode.String(),
		Agents:     s.count,
		Speeds:     make([]float64, 0, s.count),
		FleeRadius: radius,
	}
	active := s.threat.Active
	if active {
		out.RayDists = make([]float64, 0, s.count)
	}

	query := s.schoolFilter.Query()
	for query.Next() {
		pos, vel, _, _ := query.Get()
		out.Speeds = append(out.Speeds, float64(vel.Len()))
		if active {
			out.RayDists = append(out.RayDists, float64(s.threat.Distance(pos.Vec3)))
		}
	}
	return out
}
