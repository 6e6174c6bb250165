package loop

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/object"
)

type fakeSurface struct {
	live      map[object.ID]*object.Participant
	legend    string
	refreshes int
}

func (s *fakeSurface) AddParticipant(p *object.Participant)    { s.live[p.ID] = p }
func (s *fakeSurface) RemoveParticipant(p *object.Participant) { delete(s.live, p.ID) }
func (s *fakeSurface) SetLegend(text string)                   { s.legend = text }
func (s *fakeSurface) Refresh()                                { s.refreshes++ }

type fakeDisplay struct {
	lives, score int
}

func (d *fakeDisplay) SetLives(n int) { d.lives = n }
func (d *fakeDisplay) SetScore(n int) { d.score = n }

type fakeCues struct {
	played []string
}

func (c *fakeCues) Play(name string) { c.played = append(c.played, name) }

type harness struct {
	*Controller

	surface *fakeSurface
	display *fakeDisplay
	cues    *fakeCues
	results []Result
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		surface: &fakeSurface{live: make(map[object.ID]*object.Participant)},
		display: &fakeDisplay{},
		cues:    &fakeCues{},
	}
	h.Controller = NewController(Options{
		Rand:     rand.New(rand.NewSource(1)),
		Surface:  h.surface,
		Display:  h.display,
		Cues:     h.cues,
		Recorder: RecorderFunc(func(r Result) { h.results = append(h.results, r) }),
	})
	return h
}

// advance ticks until at least d of simulated time has passed.
func (h *harness) advance(d time.Duration) {
	target := h.Now() + d
	for h.Now() < target {
		h.Tick()
	}
}

// clearAsteroids empties the board so ticks cannot collide by accident.
func (h *harness) clearAsteroids() {
	for _, a := range h.Registry().OfKind(object.KindAsteroid) {
		h.remove(a.ID)
	}
}

// shoot fires and reports the new bullet as hitting target.
func (h *harness) shoot(t *testing.T, target *object.Participant) {
	t.Helper()
	h.Fire()
	bullets := h.Registry().OfKind(object.KindBullet)
	require.NotEmpty(t, bullets)
	h.CollidedWith(target, bullets[len(bullets)-1])
}

func (h *harness) ship(t *testing.T) *object.Participant {
	t.Helper()
	ship, ok := h.Ship()
	require.True(t, ok, "expected a ship")
	return ship
}

func asteroidsOfSize(r *object.Registry, size int) []*object.Participant {
	var out []*object.Participant
	for _, a := range r.OfKind(object.KindAsteroid) {
		if a.Size == size {
			out = append(out, a)
		}
	}
	return out
}

func TestNewControllerShowsSplash(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, StateSplash, h.State())
	assert.Equal(t, config.LegendSplash, h.surface.legend)
	assert.Equal(t, config.AsteroidsPerBoard, h.Registry().Count(object.KindAsteroid))
	_, ok := h.Ship()
	assert.False(t, ok)

	asteroids := h.Registry().OfKind(object.KindAsteroid)
	h.CollidedWith(asteroids[0], asteroids[1])
	h.advance(time.Second)
	assert.Equal(t, config.AsteroidsPerBoard, h.Registry().Count(object.KindAsteroid))
	assert.Len(t, h.surface.live, h.Registry().Len())
}

func TestStartPlacesBoardAndShip(t *testing.T) {
	h := newHarness(t)
	before := h.Stats().Generation

	h.Start()

	stats := h.Stats()
	assert.Equal(t, StateActive, h.State())
	assert.Equal(t, before+1, stats.Generation)
	assert.Equal(t, config.InitialLives, stats.Lives)
	assert.Zero(t, stats.Score)
	assert.Zero(t, stats.Level)
	assert.Zero(t, stats.Bullets)
	assert.Equal(t, 1, h.Registry().Count(object.KindShip))
	assert.Len(t, asteroidsOfSize(h.Registry(), config.AsteroidMaxSize), config.AsteroidsPerBoard)
	assert.Equal(t, 1+config.AsteroidsPerBoard, h.Registry().Len())
	assert.Equal(t, "", h.surface.legend)
	assert.Equal(t, config.InitialLives, h.display.lives)

	ship := h.ship(t)
	cx, cy := h.arena.Center()
	assert.Equal(t, cx, ship.X)
	assert.Equal(t, cy, ship.Y)
	assert.Zero(t, ship.Speed())
}

func TestStartClearsPreviousGame(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.Fire()
	h.shoot(t, h.Registry().OfKind(object.KindAsteroid)[0])
	require.NotZero(t, h.Stats().Score)

	h.Start()

	stats := h.Stats()
	assert.Zero(t, stats.Score)
	assert.Zero(t, stats.Bullets)
	assert.Zero(t, stats.Destroyed)
	assert.Zero(t, h.Registry().Count(object.KindDebris))
	assert.Zero(t, h.Registry().Count(object.KindBullet))
	assert.Equal(t, 1+config.AsteroidsPerBoard, h.Registry().Len())
	assert.Len(t, h.surface.live, h.Registry().Len())
}

func TestBulletSplitsLargeAsteroid(t *testing.T) {
	h := newHarness(t)
	h.Start()
	target := h.Registry().OfKind(object.KindAsteroid)[0]
	x, y := target.X, target.Y

	h.shoot(t, target)

	stats := h.Stats()
	assert.Equal(t, 3*config.ScoreModifier, stats.Score)
	assert.Equal(t, stats.Score, h.display.score)
	assert.Zero(t, stats.Bullets)
	assert.Equal(t, 1, stats.Destroyed)
	assert.False(t, h.Registry().Contains(target.ID))
	assert.Zero(t, h.Registry().Count(object.KindBullet))
	assert.Equal(t, config.DebrisPerAsteroid, h.Registry().Count(object.KindDebris))

	children := asteroidsOfSize(h.Registry(), 1)
	require.Len(t, children, 2)
	for _, child := range children {
		assert.Equal(t, x, child.X)
		assert.Equal(t, y, child.Y)
		assert.InDelta(t, config.AsteroidChildSpeed, child.Speed(), 1e-9)
	}
	for _, d := range h.Registry().OfKind(object.KindDebris) {
		assert.Equal(t, x, d.X)
		assert.Equal(t, y, d.Y)
		assert.InDelta(t, config.DebrisSpeed, d.Speed(), 1e-9)
	}
	assert.Contains(t, h.cues.played, CueShoot)
	assert.Contains(t, h.cues.played, CueExplosion)
}

func TestBulletOrderDoesNotMatter(t *testing.T) {
	h := newHarness(t)
	h.Start()
	target := h.Registry().OfKind(object.KindAsteroid)[0]
	h.Fire()
	bullet := h.Registry().OfKind(object.KindBullet)[0]

	h.CollidedWith(bullet, target)

	assert.False(t, h.Registry().Contains(target.ID))
	assert.False(t, h.Registry().Contains(bullet.ID))
	assert.Equal(t, 3*config.ScoreModifier, h.Stats().Score)
}

func TestSmallestAsteroidsDoNotSplit(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.shoot(t, h.Registry().OfKind(object.KindAsteroid)[0])

	for _, mid := range asteroidsOfSize(h.Registry(), 1) {
		h.shoot(t, mid)
	}
	smalls := asteroidsOfSize(h.Registry(), 0)
	require.Len(t, smalls, 4)

	for _, small := range smalls {
		h.shoot(t, small)
	}
	assert.Empty(t, asteroidsOfSize(h.Registry(), 0))
	assert.Empty(t, asteroidsOfSize(h.Registry(), 1))
	assert.Equal(t, 7, h.Stats().Destroyed)
	assert.Equal(t, 3*20+2*2*20+4*1*20, h.Stats().Score)
}

func TestFireRespectsBulletCap(t *testing.T) {
	h := newHarness(t)
	h.Start()

	for range config.MaxBullets + 3 {
		h.Fire()
	}

	assert.Equal(t, config.MaxBullets, h.Stats().Bullets)
	assert.Equal(t, config.MaxBullets, h.Registry().Count(object.KindBullet))
}

func TestBulletLeavesFromNose(t *testing.T) {
	h := newHarness(t)
	h.Start()
	ship := h.ship(t)
	nx, ny := ship.Nose()

	h.Fire()

	bullet := h.Registry().OfKind(object.KindBullet)[0]
	assert.Equal(t, nx, bullet.X)
	assert.Equal(t, ny, bullet.Y)
	assert.InDelta(t, ship.Rotation, bullet.Heading(), 1e-9)
	assert.InDelta(t, config.BulletSpeed, bullet.Speed(), 1e-9)
}

func TestBulletExpires(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.clearAsteroids()

	h.Fire()
	require.Equal(t, 1, h.Stats().Bullets)

	h.advance(config.BulletDuration)

	assert.Zero(t, h.Stats().Bullets)
	assert.Zero(t, h.Registry().Count(object.KindBullet))
}

func TestExpiredBulletAlreadyRemoved(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.Fire()
	bullet := h.Registry().OfKind(object.KindBullet)[0]
	h.CollidedWith(h.Registry().OfKind(object.KindAsteroid)[0], bullet)
	require.Zero(t, h.Stats().Bullets)

	h.TimeExpired(Timeout{Action: ActionExpireBullet, Target: bullet.ID}, h.Stats().Generation)

	assert.Zero(t, h.Stats().Bullets)
}

func TestBulletCountSurvivesRespawn(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.Fire()
	h.Fire()
	h.CollidedWith(h.ship(t), h.Registry().OfKind(object.KindAsteroid)[0])

	h.advance(config.EndDelay)

	// Bullets still in flight expire normally and the count returns to zero.
	assert.Zero(t, h.Stats().Bullets)
	assert.Zero(t, h.Registry().Count(object.KindBullet))
}

func TestDebrisExpires(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.shoot(t, h.Registry().OfKind(object.KindAsteroid)[0])
	h.clearAsteroids()
	require.Equal(t, config.DebrisPerAsteroid, h.Registry().Count(object.KindDebris))

	h.advance(config.DebrisMinDuration - config.TickInterval)
	assert.Equal(t, config.DebrisPerAsteroid, h.Registry().Count(object.KindDebris))

	h.advance(config.DebrisJitter + config.TickInterval)
	assert.Zero(t, h.Registry().Count(object.KindDebris))
}

func TestShipAsteroidCollision(t *testing.T) {
	h := newHarness(t)
	h.Start()
	ship := h.ship(t)
	gen := h.Stats().Generation

	h.CollidedWith(ship, h.Registry().OfKind(object.KindAsteroid)[0])

	stats := h.Stats()
	assert.Equal(t, StateShipPending, h.State())
	assert.Equal(t, config.InitialLives-1, stats.Lives)
	assert.Equal(t, config.InitialLives-1, h.display.lives)
	assert.Zero(t, stats.Score)
	assert.Equal(t, 1, stats.Destroyed)
	assert.Equal(t, gen+1, stats.Generation)
	assert.Equal(t, config.LegendCollision, h.surface.legend)
	assert.Len(t, asteroidsOfSize(h.Registry(), 1), 2)
	_, ok := h.Ship()
	assert.False(t, ok)

	h.clearAsteroids()
	h.advance(config.LegendDuration)
	assert.Equal(t, "", h.surface.legend)
	assert.Equal(t, StateShipPending, h.State())

	h.advance(config.EndDelay - config.LegendDuration)
	assert.Equal(t, StateActive, h.State())
	respawned := h.ship(t)
	assert.NotEqual(t, ship.ID, respawned.ID)
	cx, cy := h.arena.Center()
	assert.Equal(t, cx, respawned.X)
	assert.Equal(t, cy, respawned.Y)
	assert.Equal(t, gen+2, h.Stats().Generation)
}

func TestCollisionOrderDoesNotMatter(t *testing.T) {
	h := newHarness(t)
	h.Start()

	h.CollidedWith(h.Registry().OfKind(object.KindAsteroid)[0], h.ship(t))

	assert.Equal(t, StateShipPending, h.State())
	assert.Equal(t, config.InitialLives-1, h.Stats().Lives)
}

func TestRemovedParticipantNotResolvedTwice(t *testing.T) {
	h := newHarness(t)
	h.Start()
	ship := h.ship(t)
	asteroids := h.Registry().OfKind(object.KindAsteroid)

	h.CollidedWith(ship, asteroids[0])
	h.CollidedWith(ship, asteroids[1])

	assert.Equal(t, config.InitialLives-1, h.Stats().Lives)
	assert.True(t, h.Registry().Contains(asteroids[1].ID))
}

func TestUninteractingPairsDoNothing(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.shoot(t, h.Registry().OfKind(object.KindAsteroid)[0])
	h.Fire()
	ship := h.ship(t)
	bullet := h.Registry().OfKind(object.KindBullet)[0]
	debris := h.Registry().OfKind(object.KindDebris)[0]
	asteroids := h.Registry().OfKind(object.KindAsteroid)
	before := h.Stats()
	count := h.Registry().Len()

	h.CollidedWith(ship, bullet)
	h.CollidedWith(ship, debris)
	h.CollidedWith(debris, asteroids[0])
	h.CollidedWith(bullet, debris)
	h.CollidedWith(asteroids[0], asteroids[1])
	h.CollidedWith(ship, ship)

	assert.Equal(t, before, h.Stats())
	assert.Equal(t, count, h.Registry().Len())
	assert.Equal(t, StateActive, h.State())
}

func TestLastLifeEndsGame(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.shoot(t, h.Registry().OfKind(object.KindAsteroid)[0])

	for range config.InitialLives {
		require.Equal(t, StateActive, h.State())
		h.CollidedWith(h.ship(t), h.Registry().OfKind(object.KindAsteroid)[0])
		h.advance(config.EndDelay)
	}

	assert.Equal(t, StateGameOver, h.State())
	assert.Equal(t, config.LegendGameOver, h.surface.legend)
	assert.Zero(t, h.Stats().Lives)
	_, ok := h.Ship()
	assert.False(t, ok)

	require.Len(t, h.results, 1)
	assert.Equal(t, 3*config.ScoreModifier, h.results[0].Score)
	assert.True(t, h.results[0].Duration > 0)

	// Input is detached.
	h.Fire()
	h.Teleport()
	h.SetKey(KeyThrust, true)
	assert.Zero(t, h.Registry().Count(object.KindShip))
	assert.Zero(t, h.Registry().Count(object.KindBullet))

	// The board keeps drifting without collisions.
	h.advance(time.Second)
	assert.Equal(t, StateGameOver, h.State())
	require.Len(t, h.results, 1)

	h.Start()
	assert.Equal(t, StateActive, h.State())
	assert.Equal(t, config.InitialLives, h.Stats().Lives)
}

func TestStaleResolveIgnored(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.CollidedWith(h.ship(t), h.Registry().OfKind(object.KindAsteroid)[0])
	stale := h.Stats().Generation

	h.Start()
	h.clearAsteroids()
	ship := h.ship(t)
	gen := h.Stats().Generation
	require.Greater(t, gen, stale)

	h.advance(config.EndDelay)

	assert.Equal(t, StateActive, h.State())
	assert.Equal(t, config.InitialLives, h.Stats().Lives)
	assert.Equal(t, gen, h.Stats().Generation)
	assert.Equal(t, 1, h.Registry().Count(object.KindShip))
	assert.Equal(t, ship.ID, h.ship(t).ID)
}

func TestStaleTimeoutsDirectly(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.CollidedWith(h.ship(t), h.Registry().OfKind(object.KindAsteroid)[0])
	stale := h.Stats().Generation
	h.advance(config.EndDelay)
	require.Equal(t, StateActive, h.State())
	h.surface.legend = "kept"
	before := h.Stats()

	h.TimeExpired(Timeout{Action: ActionResolve}, stale)
	h.TimeExpired(Timeout{Action: ActionClearLegend}, stale)

	assert.Equal(t, before, h.Stats())
	assert.Equal(t, "kept", h.surface.legend)
	assert.Equal(t, 1, h.Registry().Count(object.KindShip))
}

func TestRepopulateAfterFullBoard(t *testing.T) {
	h := newHarness(t)
	h.Start()

	for range config.RepopulateThreshold {
		h.shoot(t, h.Registry().OfKind(object.KindAsteroid)[0])
	}

	stats := h.Stats()
	assert.Equal(t, 1, stats.Level)
	assert.Zero(t, stats.Destroyed)
	asteroids := h.Registry().OfKind(object.KindAsteroid)
	require.Len(t, asteroids, config.AsteroidsPerBoard)
	for _, a := range asteroids {
		assert.Equal(t, config.AsteroidMaxSize, a.Size)
		assert.InDelta(t, config.AsteroidBaseSpeed+1, a.Speed(), 1e-9)
	}

	// 4×60 + 8×40 + 16×20 passes 500 without landing on it.
	assert.Equal(t, 880, stats.Score)
	assert.Equal(t, config.InitialLives, stats.Lives)
}

func TestTeleportReplacesShip(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.Fire()
	old := h.ship(t)
	old.Rotate(1)
	old.SetVelocity(5, 0)

	h.Teleport()

	ship := h.ship(t)
	assert.NotEqual(t, old.ID, ship.ID)
	assert.False(t, h.Registry().Contains(old.ID))
	assert.Equal(t, 1, h.Registry().Count(object.KindShip))
	assert.Zero(t, ship.Speed())
	assert.Equal(t, config.ShipStartFacing, ship.Rotation)
	assert.Equal(t, 1, h.Stats().Bullets)
	assert.Equal(t, config.InitialLives, h.Stats().Lives)
	assert.True(t, ship.X >= 0 && ship.X < config.ArenaSize)
	assert.True(t, ship.Y >= 0 && ship.Y < config.ArenaSize)
}

func TestHeldKeysSteerShip(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.clearAsteroids()
	ship := h.ship(t)

	h.SetKey(KeyRotateRight, true)
	h.Tick()
	assert.InDelta(t, config.ShipStartFacing+config.ShipRotateStep, ship.Rotation, 1e-9)

	h.SetKey(KeyRotateRight, false)
	h.SetKey(KeyRotateLeft, true)
	h.Tick()
	h.SetKey(KeyRotateLeft, false)
	assert.InDelta(t, config.ShipStartFacing, ship.Rotation, 1e-9)

	h.SetKey(KeyThrust, true)
	h.Tick()
	h.SetKey(KeyThrust, false)
	assert.InDelta(t, config.ShipAcceleration*(1-config.ShipFriction), ship.Speed(), 1e-9)
	assert.InDelta(t, config.ShipStartFacing, ship.Heading(), 1e-9)
	assert.Contains(t, h.cues.played, CueThrust)

	h.SetKey(KeyBrake, true)
	speed := ship.Speed()
	h.Tick()
	want := speed * math.Pow(1-config.ShipFriction, config.BrakeFrictionMul+1)
	assert.InDelta(t, want, ship.Speed(), 1e-9)
}

func TestThrustIsCapped(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.clearAsteroids()

	h.SetKey(KeyThrust, true)
	for range 100 {
		h.Tick()
	}

	assert.LessOrEqual(t, h.ship(t).Speed(), config.ShipSpeedLimit)
}

func TestKeyPressIgnoredWithoutShip(t *testing.T) {
	h := newHarness(t)
	h.Start()
	h.CollidedWith(h.ship(t), h.Registry().OfKind(object.KindAsteroid)[0])

	h.SetKey(KeyThrust, true)
	h.clearAsteroids()
	h.advance(config.EndDelay)

	assert.Zero(t, h.ship(t).Speed())
}

func TestTickCollidesOverlappingParticipants(t *testing.T) {
	h := newHarness(t)
	h.Start()
	ship := h.ship(t)
	target := h.Registry().OfKind(object.KindAsteroid)[0]
	target.X, target.Y = ship.X, ship.Y
	target.SetVelocity(0, 0)

	h.Tick()

	assert.Equal(t, StateShipPending, h.State())
	assert.False(t, h.Registry().Contains(target.ID))
	assert.Positive(t, h.surface.refreshes)
}
