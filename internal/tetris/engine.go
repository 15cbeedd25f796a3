package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// State is the engine's lifecycle phase.
type State int

const (
	StateSpawning State = iota
	StateFalling
	StateLockPending
	StateLocking
	StateClearing
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateFalling:
		return "falling"
	case StateLockPending:
		return "lock-pending"
	case StateLocking:
		return "locking"
	case StateClearing:
		return "clearing"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// garbageSalt keeps the hole sequence independent of the piece sequence
// when both derive from one seed.
const garbageSalt = 0x5DEECE66D

// timer is a one-shot deadline on the engine's virtual clock. serial ties it
// to the piece that armed it so a callback never acts on a later piece.
type timer struct {
	at     time.Duration
	armed  bool
	serial uint64
}

func (t *timer) arm(at time.Duration, serial uint64) {
	t.at = at
	t.armed = true
	t.serial = serial
}

func (t *timer) cancel() { t.armed = false }

// Engine is a single-player game. It is driven entirely by commands and
// Advance; it never reads the wall clock and is not safe for concurrent use.
type Engine struct {
	cfg    Config
	logger *log.Logger
	seed   int64

	bag   *Bag
	holes *rand.Rand
	board *Board

	piece    Piece
	pos      Position
	hasPiece bool
	held     Piece
	hasHeld  bool
	canHold  bool
	queue    []Piece

	score   int
	level   int
	lines   int
	placed  int
	sent    int
	pending int

	state    State
	paused   bool
	softDrop bool
	clearing []int

	now        time.Duration
	fall       timer
	lockTimer  timer
	clearTimer timer
	locking    bool
	movesLeft  int
	lastRotate time.Duration
	rotated    bool
	serial     uint64
	spawning   bool

	attack func(lines int)
}

// NewEngine creates an engine waiting for its first spawn. A zero seed picks
// a time-based one; any other seed makes the piece and garbage sequences
// reproducible.
func NewEngine(cfg Config, seed int64) *Engine {
	e := &Engine{
		cfg:    cfg.withDefaults(),
		logger: log.New(io.Discard),
	}
	e.ResetSeed(seed)
	return e
}

// SetLogger routes engine debug events to l. A nil logger silences them.
func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	e.logger = l
}

// SetAttackSink registers the callback invoked with the garbage rows each
// multi-line clear sends.
func (e *Engine) SetAttackSink(fn func(lines int)) {
	e.attack = fn
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Seed returns the seed of the current run, 0 when unseeded.
func (e *Engine) Seed() int64 { return e.seed }

// Reset starts a new game with the same seed.
func (e *Engine) Reset() {
	e.ResetSeed(e.seed)
}

// ResetSeed starts a new game with the given seed. It is honored in any
// state, including paused and game over.
func (e *Engine) ResetSeed(seed int64) {
	e.cancelTimers()
	e.seed = seed
	e.bag = NewBag(seed)
	holeSeed := seed ^ garbageSalt
	if seed == 0 {
		holeSeed = time.Now().UnixNano()
	}
	e.holes = rand.New(rand.NewSource(holeSeed))
	e.board = NewBoard(e.cfg.Width, e.cfg.Height)

	e.hasPiece = false
	e.hasHeld = false
	e.canHold = true
	e.queue = e.queue[:0]
	for range e.cfg.PreviewCount {
		e.queue = append(e.queue, e.bag.Next())
	}

	e.score = 0
	e.level = e.cfg.StartLevel
	e.lines = 0
	e.placed = 0
	e.sent = 0
	e.pending = 0

	e.state = StateSpawning
	e.paused = false
	e.softDrop = false
	e.clearing = nil
	e.locking = false
	e.movesLeft = e.cfg.LockMoves
	e.rotated = false
	e.serial++

	e.logger.Debug("reset", "seed", seed)
}

// Start spawns the first piece. Advance does the same implicitly.
func (e *Engine) Start() {
	if e.state == StateSpawning && !e.hasPiece {
		e.spawn()
	}
}

// Advance moves the virtual clock forward by dt, firing every due timer in
// deadline order. It does nothing while paused or after game over.
func (e *Engine) Advance(dt time.Duration) {
	if e.paused || e.state == StateGameOver {
		return
	}
	e.Start()
	if dt <= 0 {
		return
	}
	target := e.now + dt
	for {
		t := e.nextDue(target)
		if t == nil {
			break
		}
		e.now = t.at
		t.armed = false
		e.fire(t)
		if e.state == StateGameOver {
			break
		}
	}
	e.now = target
}

// nextDue returns the earliest armed timer due by target. On ties the clear
// animation wins over lock delay, which wins over gravity.
func (e *Engine) nextDue(target time.Duration) *timer {
	var due *timer
	for _, t := range []*timer{&e.clearTimer, &e.lockTimer, &e.fall} {
		if !t.armed || t.at > target {
			continue
		}
		if due == nil || t.at < due.at {
			due = t
		}
	}
	return due
}

func (e *Engine) fire(t *timer) {
	switch t {
	case &e.clearTimer:
		e.finishClear()
	case &e.lockTimer:
		e.onLockTimeout(t.serial)
	case &e.fall:
		e.onFall(t.serial)
	}
}

func (e *Engine) cancelTimers() {
	e.fall.cancel()
	e.lockTimer.cancel()
	e.clearTimer.cancel()
}

// fallInterval is the gravity period for the current level and soft-drop
// state.
func (e *Engine) fallInterval() time.Duration {
	level := max(e.level, 1)
	d := e.cfg.BaseInterval / time.Duration(level)
	if e.softDrop {
		d /= time.Duration(e.cfg.SoftDropFactor)
	}
	return max(d, time.Millisecond)
}

func (e *Engine) armFall() {
	e.fall.arm(e.now+e.fallInterval(), e.serial)
}

func (e *Engine) onFall(serial uint64) {
	if serial != e.serial || !e.hasPiece {
		return
	}
	if !e.shift(1, 0) && e.pos.Row < 0 {
		// No lock delay above the board, so gravity locks it here.
		e.lock()
		return
	}
	if e.hasPiece && e.state != StateGameOver {
		e.armFall()
	}
}

// acceptsInput reports whether piece commands currently have an effect.
func (e *Engine) acceptsInput() bool {
	return e.hasPiece && !e.paused &&
		(e.state == StateFalling || e.state == StateLockPending)
}

func (e *Engine) grounded() bool {
	return !e.board.IsValid(Position{Row: e.pos.Row + 1, Col: e.pos.Col}, e.piece.Shape())
}

// shift moves the active piece by (dr, dc) when the target is valid.
func (e *Engine) shift(dr, dc int) bool {
	next := Position{Row: e.pos.Row + dr, Col: e.pos.Col + dc}
	if !e.board.IsValid(next, e.piece.Shape()) {
		if dr > 0 {
			e.startLockDelay()
		}
		return false
	}
	e.pos = next
	if dr > 0 {
		e.clearLockDelay()
		e.movesLeft = e.cfg.LockMoves
		return true
	}
	e.afterManipulation()
	return true
}

// afterManipulation runs after a successful sideways move or rotation. While
// lock delay is active each one spends a move; the last one locks at once.
func (e *Engine) afterManipulation() {
	if e.locking {
		e.movesLeft--
		if e.movesLeft <= 0 {
			e.lock()
			return
		}
	}
	switch {
	case !e.grounded():
		e.clearLockDelay()
	case e.pos.Row >= 0:
		e.armLockDelay()
	}
}

// startLockDelay begins the grace period after a failed downward step. An
// already running delay continues, and a piece still partly above the board
// never starts one.
func (e *Engine) startLockDelay() {
	if e.locking || e.pos.Row < 0 {
		return
	}
	e.armLockDelay()
}

func (e *Engine) armLockDelay() {
	e.locking = true
	e.state = StateLockPending
	e.lockTimer.arm(e.now+e.cfg.LockDelay, e.serial)
}

func (e *Engine) clearLockDelay() {
	e.locking = false
	e.lockTimer.cancel()
	if e.state == StateLockPending {
		e.state = StateFalling
	}
}

func (e *Engine) onLockTimeout(serial uint64) {
	if serial != e.serial || !e.hasPiece || !e.locking {
		return
	}
	if !e.grounded() {
		e.clearLockDelay()
		return
	}
	e.lock()
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft() bool {
	if !e.acceptsInput() {
		return false
	}
	return e.shift(0, -1)
}

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight() bool {
	if !e.acceptsInput() {
		return false
	}
	return e.shift(0, 1)
}

// MoveDown performs one soft-drop step. A blocked step starts lock delay.
func (e *Engine) MoveDown() bool {
	if !e.acceptsInput() {
		return false
	}
	moved := e.shift(1, 0)
	if moved {
		e.armFall()
	}
	return moved
}

// SoftDrop switches the accelerated fall on or off and retimes gravity.
// Releasing is accepted while paused.
func (e *Engine) SoftDrop(on bool) {
	if (e.paused && on) || e.state == StateGameOver || e.softDrop == on {
		return
	}
	e.softDrop = on
	if e.hasPiece && e.fall.armed {
		e.armFall()
	}
}

// SoftDropping reports whether soft drop is held.
func (e *Engine) SoftDropping() bool { return e.softDrop }

// RotateClockwise turns the active piece a quarter turn clockwise.
func (e *Engine) RotateClockwise() bool { return e.rotate(RotateCW) }

// RotateCounterClockwise turns the active piece a quarter turn counter-clockwise.
func (e *Engine) RotateCounterClockwise() bool { return e.rotate(RotateCCW) }

// Rotate180 turns the active piece half way round.
func (e *Engine) Rotate180() bool { return e.rotate(Rotate180) }

func (e *Engine) rotate(dir Rotation) bool {
	if !e.acceptsInput() {
		return false
	}
	if e.rotated && e.now-e.lastRotate < e.cfg.RotateCooldown {
		return false
	}
	e.rotated = true
	e.lastRotate = e.now
	for _, cand := range RotationCandidates(e.piece, dir) {
		next := Position{Row: e.pos.Row + cand.Offset.Row, Col: e.pos.Col + cand.Offset.Col}
		if !e.board.IsValid(next, cand.Piece.Shape()) {
			continue
		}
		e.piece = cand.Piece
		e.pos = next
		e.afterManipulation()
		return true
	}
	return false
}

// HardDrop drops the active piece to its landing row and locks it at once.
func (e *Engine) HardDrop() {
	if !e.acceptsInput() {
		return
	}
	e.pos.Row = e.board.DropRow(e.pos, e.piece.Shape())
	e.lock()
}

// Hold stashes the active piece, once per spawn. The first hold pulls the
// next queued piece; later holds swap with the stored one.
func (e *Engine) Hold() bool {
	if !e.acceptsInput() || !e.canHold {
		return false
	}
	current := NewPiece(e.piece.Kind)
	e.clearLockDelay()
	if e.hasHeld {
		swapped := e.held
		e.held = current
		e.place(swapped)
		if !e.board.IsValid(e.pos, e.piece.Shape()) {
			e.topOut("held piece blocked")
			return true
		}
	} else {
		e.held = current
		e.hasHeld = true
		e.hasPiece = false
		e.spawn()
		if e.state == StateGameOver {
			return true
		}
	}
	e.canHold = false
	e.logger.Debug("hold", "held", current.Kind, "active", e.piece.Kind)
	return true
}

// PauseToggle freezes or resumes the game. It is ignored after game over.
func (e *Engine) PauseToggle() {
	if e.state == StateGameOver {
		return
	}
	e.paused = !e.paused
	e.logger.Debug("pause", "paused", e.paused)
}

// ReceiveGarbage queues n garbage rows to be inserted at the next spawn.
func (e *Engine) ReceiveGarbage(n int) {
	if n <= 0 || e.state == StateGameOver {
		return
	}
	e.pending += n
	e.logger.Debug("garbage received", "rows", n, "pending", e.pending)
}

// place makes p the active piece at the spawn position and restarts gravity.
func (e *Engine) place(p Piece) {
	e.piece = p
	e.pos = Position{Row: 0, Col: (e.board.Width() - p.Shape().Size) / 2}
	e.hasPiece = true
	e.serial++
	e.locking = false
	e.lockTimer.cancel()
	e.movesLeft = e.cfg.LockMoves
	e.state = StateFalling
	e.armFall()
}

// spawn applies pending garbage and brings in the next queued piece.
func (e *Engine) spawn() {
	if e.state == StateGameOver || e.spawning {
		return
	}
	e.spawning = true
	defer func() { e.spawning = false }()

	e.state = StateSpawning
	e.clearing = nil
	if e.pending > 0 {
		n := e.pending
		e.pending = 0
		if e.board.InjectGarbage(n, e.holes.Intn) {
			e.topOut("garbage overflow")
			return
		}
		e.logger.Debug("garbage applied", "rows", n)
	}

	next := e.queue[0]
	e.queue = append(e.queue[1:], e.bag.Next())
	e.place(next)
	e.canHold = true
	if !e.board.IsValid(e.pos, e.piece.Shape()) {
		e.topOut("spawn blocked")
		return
	}
	e.logger.Debug("spawn", "piece", next.Kind, "col", e.pos.Col)
}

// lock writes the active piece into the board and either starts the clear
// animation or spawns the next piece.
func (e *Engine) lock() {
	if !e.hasPiece || e.state == StateGameOver {
		return
	}
	e.hasPiece = false
	e.locking = false
	e.lockTimer.cancel()
	e.fall.cancel()
	e.state = StateLocking

	aboveTop := e.board.Lock(e.piece, e.pos)
	e.placed++
	e.logger.Debug("lock", "piece", e.piece.Kind, "row", e.pos.Row, "col", e.pos.Col)
	if aboveTop {
		e.topOut("locked above board")
		return
	}

	rows := e.board.CompletedRows()
	if len(rows) == 0 {
		e.spawn()
		return
	}
	e.clearing = rows
	e.state = StateClearing
	if e.cfg.ClearDelay <= 0 {
		e.finishClear()
		return
	}
	e.clearTimer.arm(e.now+e.cfg.ClearDelay, e.serial)
}

// finishClear removes the completed rows, scores them and spawns.
func (e *Engine) finishClear() {
	if e.state != StateClearing {
		return
	}
	rows := e.clearing
	n := len(rows)
	e.board.RemoveRows(rows)
	e.score += LineScore(n, e.level)
	e.lines += n
	e.level = e.cfg.StartLevel + e.lines/e.cfg.LinesPerLevel
	e.clearing = nil
	e.logger.Debug("lines cleared", "rows", n, "score", e.score, "level", e.level)

	if atk := AttackFor(n); atk > 0 {
		e.sent += atk
		if e.attack != nil {
			e.attack(atk)
		}
	}
	e.spawn()
}

func (e *Engine) topOut(reason string) {
	e.state = StateGameOver
	e.cancelTimers()
	e.softDrop = false
	e.locking = false
	e.logger.Debug("top out", "reason", reason, "score", e.score, "lines", e.lines)
}
