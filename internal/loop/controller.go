// Package loop runs the game: the controller state machine that owns the
// participants, and the real-time terminal driver around it.
package loop

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/timer"
)

// Action is what a scheduled timeout does when it fires.
type Action int

const (
	ActionExpireBullet Action = iota
	ActionExpireDebris
	ActionClearLegend
	ActionResolve // Respawn or game over after a ship destruction
)

// Timeout is the payload of a scheduled callback.
type Timeout struct {
	Action Action
	Target object.ID // Participant for the expire actions
}

// Options configures a Controller. Nil collaborators are replaced by no-ops.
type Options struct {
	Arena    object.Arena
	Rand     *rand.Rand
	Surface  Surface
	Display  Display
	Cues     Cues
	Recorder Recorder
	Logger   *log.Logger
}

// Controller is the game state machine. It owns the registry, dispatches
// collisions and timeouts and notifies the collaborators.
//
// Controller is not safe for concurrent use.
type Controller struct {
	arena    object.Arena
	rng      *rand.Rand
	registry *object.Registry
	world    *CollisionWorld
	timers   *timer.Scheduler[Timeout]
	session  session
	state    State

	surface  Surface
	display  Display
	cues     Cues
	recorder Recorder
	logger   *log.Logger
}

// NewController creates a controller showing the splash board.
func NewController(opts Options) *Controller {
	if opts.Arena.Width <= 0 || opts.Arena.Height <= 0 {
		opts.Arena = object.NewArena(config.ArenaSize)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Surface == nil {
		opts.Surface = nopSurface{}
	}
	if opts.Display == nil {
		opts.Display = nopDisplay{}
	}
	if opts.Cues == nil {
		opts.Cues = nopCues{}
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	c := &Controller{
		arena:    opts.Arena,
		rng:      opts.Rand,
		registry: object.NewRegistry(),
		world:    NewCollisionWorld(opts.Arena, resolvable),
		timers:   timer.NewScheduler[Timeout](),
		session:  newSession(),
		surface:  opts.Surface,
		display:  opts.Display,
		cues:     opts.Cues,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
	c.splash()
	return c
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Stats returns a snapshot of the session counters.
func (c *Controller) Stats() Stats {
	return c.session.stats()
}

// Registry exposes the live participants. Callers must not mutate it.
func (c *Controller) Registry() *object.Registry {
	return c.registry
}

// Ship returns the current ship, if there is one.
func (c *Controller) Ship() (*object.Participant, bool) {
	if c.session.ship == object.NoID {
		return nil, false
	}
	p, ok := c.registry.Get(c.session.ship)
	if !ok {
		c.session.ship = object.NoID
	}
	return p, ok
}

// Now returns the simulated time elapsed since the controller was created.
func (c *Controller) Now() time.Duration {
	return c.timers.Now()
}

// Tick advances the simulation by one fixed interval: held controls, motion,
// collisions, then due timeouts. The surface is refreshed last.
func (c *Controller) Tick() {
	c.applyControls()

	for _, p := range c.registry.All() {
		p.Update(c.arena)
	}

	if c.state.playing() {
		for _, pair := range c.world.Scan(c.registry.All()) {
			c.CollidedWith(pair.A, pair.B)
		}
	}

	for _, e := range c.timers.Advance(config.TickInterval) {
		c.TimeExpired(e.Payload, e.Generation)
	}

	c.surface.Refresh()
}

// Start begins a new game from any state.
func (c *Controller) Start() {
	c.session.generation++
	c.clearBoard()
	c.session.reset(c.timers.Now())
	c.populate()
	c.placeShip(c.arena.Center())
	c.state = StateActive
	c.surface.SetLegend("")
	c.updateDisplay()
	c.logger.Info("game started", "generation", c.session.generation)
}

// Fire launches a bullet from the ship's nose unless the bullet cap is reached.
func (c *Controller) Fire() {
	if !c.state.playing() {
		return
	}
	ship, ok := c.Ship()
	if !ok || c.session.bullets >= config.MaxBullets {
		return
	}

	x, y := ship.Nose()
	id := c.add(object.NewBullet(x, y, ship.Rotation))
	c.session.bullets++
	c.timers.After(config.BulletDuration, Timeout{Action: ActionExpireBullet, Target: id}, c.session.generation)
	c.cues.Play(CueShoot)
}

// Teleport replaces the ship with a fresh one at a random position.
func (c *Controller) Teleport() {
	if !c.state.playing() {
		return
	}
	ship, ok := c.Ship()
	if !ok {
		return
	}
	c.remove(ship.ID)
	c.session.ship = object.NoID
	c.placeShip(c.rng.Float64()*c.arena.Width, c.rng.Float64()*c.arena.Height)
	c.logger.Debug("ship teleported")
}

// SetKey records a control key going down or up. Presses without a ship
// are ignored; releases always apply.
func (c *Controller) SetKey(key Key, down bool) {
	if key < 0 || key >= keyCount || !c.state.playing() {
		return
	}
	if down {
		if _, ok := c.Ship(); !ok {
			return
		}
		if key == KeyThrust && !c.session.keys[key] {
			c.cues.Play(CueThrust)
		}
	}
	c.session.keys[key] = down
}

// CollidedWith resolves a collision between two participants. Pairs whose
// members are no longer live are ignored.
func (c *Controller) CollidedWith(a, b *object.Participant) {
	if a == nil || b == nil || a.ID == b.ID || !c.state.playing() {
		return
	}
	if !c.registry.Contains(a.ID) || !c.registry.Contains(b.ID) {
		return
	}
	if a.Kind > b.Kind {
		a, b = b, a
	}

	switch (kindPair{a.Kind, b.Kind}) {
	case kindPair{object.KindShip, object.KindAsteroid}:
		c.destroyAsteroid(b)
		c.destroyShip(a)
	case kindPair{object.KindAsteroid, object.KindBullet}:
		c.removeBullet(b.ID)
		c.destroyAsteroid(a)
		points, granted := c.session.tracker.AwardAsteroid(a.Size)
		if granted {
			c.logger.Debug("extra life", "score", c.session.tracker.Score())
		}
		c.logger.Debug("asteroid hit", "size", a.Size, "points", points)
		c.updateDisplay()
	default:
		// Debris never interacts, and a ship cannot hit its own bullets.
	}
}

// TimeExpired handles a fired timeout. The generation is the one that was
// current when the timeout was scheduled.
func (c *Controller) TimeExpired(t Timeout, generation uint64) {
	switch t.Action {
	case ActionExpireBullet:
		c.removeBullet(t.Target)
	case ActionExpireDebris:
		c.remove(t.Target)
	case ActionClearLegend:
		if generation == c.session.generation {
			c.surface.SetLegend("")
		}
	case ActionResolve:
		if generation != c.session.generation {
			c.logger.Debug("stale transition ignored", "generation", generation, "current", c.session.generation)
			return
		}
		c.resolve()
	}
}

type kindPair struct {
	a, b object.Kind
}

// resolvable reports whether a kind pair has a collision rule.
func resolvable(a, b object.Kind) bool {
	if a > b {
		a, b = b, a
	}
	switch (kindPair{a, b}) {
	case kindPair{object.KindShip, object.KindAsteroid},
		kindPair{object.KindAsteroid, object.KindBullet}:
		return true
	}
	return false
}

func (c *Controller) splash() {
	c.clearBoard()
	c.session.level = 0
	c.populate()
	c.state = StateSplash
	c.surface.SetLegend(config.LegendSplash)
	c.updateDisplay()
}

func (c *Controller) applyControls() {
	ship, ok := c.Ship()
	if !ok {
		return
	}
	keys := c.session.keys
	if keys[KeyRotateLeft] {
		ship.Rotate(-config.ShipRotateStep)
	}
	if keys[KeyRotateRight] {
		ship.Rotate(config.ShipRotateStep)
	}
	if keys[KeyThrust] {
		ship.Accelerate(config.ShipAcceleration, config.ShipSpeedLimit)
	}
	if keys[KeyBrake] {
		for range config.BrakeFrictionMul {
			ship.Friction(config.ShipFriction)
		}
	}
}

func (c *Controller) destroyShip(ship *object.Participant) {
	c.remove(ship.ID)
	c.session.ship = object.NoID
	c.session.keys = [keyCount]bool{}
	lives := c.session.tracker.LoseLife()
	c.session.generation++
	c.state = StateShipPending

	c.surface.SetLegend(config.LegendCollision)
	c.timers.After(config.LegendDuration, Timeout{Action: ActionClearLegend}, c.session.generation)
	c.timers.After(config.EndDelay, Timeout{Action: ActionResolve}, c.session.generation)
	c.updateDisplay()
	c.logger.Info("ship destroyed", "lives", lives, "generation", c.session.generation)
}

func (c *Controller) resolve() {
	c.session.generation++
	if c.session.tracker.Out() {
		c.gameOver()
		return
	}
	c.placeShip(c.arena.Center())
	c.state = StateActive
	c.surface.SetLegend("")
}

func (c *Controller) gameOver() {
	c.state = StateGameOver
	c.session.keys = [keyCount]bool{}
	c.surface.SetLegend(config.LegendGameOver)

	res := Result{
		Score:    c.session.tracker.Score(),
		Level:    c.session.level,
		Duration: c.timers.Now() - c.session.startedAt,
	}
	c.logger.Info("game over", "score", res.Score, "level", res.Level, "duration", res.Duration)
	c.recorder.Record(res)
}

// destroyAsteroid removes an asteroid and spawns its children and debris.
func (c *Controller) destroyAsteroid(a *object.Participant) {
	c.remove(a.ID)
	c.cues.Play(CueExplosion)

	if a.Size > 0 {
		for range 2 {
			child := object.NewAsteroid(c.rng.Intn(config.AsteroidVariants), a.Size-1, a.X, a.Y)
			c.launch(child, config.AsteroidChildSpeed)
			c.add(child)
		}
	}

	for range config.DebrisPerAsteroid {
		d := object.NewDebris(a.X, a.Y)
		d.SetVelocity(config.DebrisSpeed, c.randomAngle())
		id := c.add(d)
		ttl := config.DebrisMinDuration + time.Duration(c.rng.Int63n(int64(config.DebrisJitter)))
		c.timers.After(ttl, Timeout{Action: ActionExpireDebris, Target: id}, c.session.generation)
	}

	c.session.destroyed++
	if c.session.destroyed >= config.RepopulateThreshold {
		c.session.destroyed = 0
		c.session.level++
		c.populate()
		c.logger.Info("board repopulated", "level", c.session.level)
	}
}

// removeBullet removes a live bullet and returns its slot.
func (c *Controller) removeBullet(id object.ID) {
	if _, ok := c.remove(id); !ok {
		return
	}
	if c.session.bullets > 0 {
		c.session.bullets--
	}
}

// populate places a full board of large asteroids near the corners.
func (c *Controller) populate() {
	w, h := c.arena.Width, c.arena.Height
	corners := [config.AsteroidsPerBoard][2]float64{
		{config.EdgeOffset, config.EdgeOffset},
		{w - config.EdgeOffset, config.EdgeOffset},
		{config.EdgeOffset, h - config.EdgeOffset},
		{w - config.EdgeOffset, h - config.EdgeOffset},
	}
	speed := config.AsteroidBaseSpeed + float64(c.session.level)
	for i, pos := range corners {
		a := object.NewAsteroid(i%config.AsteroidVariants, config.AsteroidMaxSize, pos[0], pos[1])
		c.launch(a, speed)
		c.add(a)
	}
}

func (c *Controller) placeShip(x, y float64) {
	c.session.ship = c.add(object.NewShip(x, y))
}

func (c *Controller) launch(p *object.Participant, speed float64) {
	p.SetVelocity(speed, c.randomAngle())
	p.Rotation = c.randomAngle()
}

func (c *Controller) randomAngle() float64 {
	return c.rng.Float64() * 2 * math.Pi
}

func (c *Controller) add(p *object.Participant) object.ID {
	id := c.registry.Add(p)
	c.surface.AddParticipant(p)
	return id
}

func (c *Controller) remove(id object.ID) (*object.Participant, bool) {
	p, ok := c.registry.Remove(id)
	if ok {
		c.surface.RemoveParticipant(p)
	}
	return p, ok
}

func (c *Controller) clearBoard() {
	for _, p := range c.registry.Clear() {
		c.surface.RemoveParticipant(p)
	}
	c.session.ship = object.NoID
}

func (c *Controller) updateDisplay() {
	c.display.SetLives(c.session.tracker.Lives())
	c.display.SetScore(c.session.tracker.Score())
}
