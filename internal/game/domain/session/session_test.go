package session

import (
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/seabattle.space/internal/game/domain/board"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
)

var testCreated = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fleetBoard returns a fresh valid placement.
func fleetBoard() *board.Board {
	var b board.Board
	place := func(row, col, length int) {
		for i := 0; i < length; i++ {
			b[row][col+i] = board.CellShip
		}
	}
	place(0, 0, 4)
	place(2, 0, 3)
	place(2, 4, 3)
	place(4, 0, 2)
	place(4, 3, 2)
	place(4, 6, 2)
	place(6, 0, 1)
	place(6, 2, 1)
	place(6, 4, 1)
	place(6, 6, 1)
	return &b
}

// startedSession returns a session in in_progress with both fleets placed.
func startedSession(t *testing.T) *Session {
	t.Helper()
	s := New("g-1", "alice", true, testCreated)
	if err := s.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := s.PlaceFleet("alice", fleetBoard()); err != nil {
		t.Fatalf("place alice: %v", err)
	}
	if err := s.PlaceFleet("bob", fleetBoard()); err != nil {
		t.Fatalf("place bob: %v", err)
	}
	if err := s.SetReady("alice"); err != nil {
		t.Fatalf("ready alice: %v", err)
	}
	if err := s.SetReady("bob"); err != nil {
		t.Fatalf("ready bob: %v", err)
	}
	return s
}

func TestNewSessionState(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	snap := s.Snapshot("alice")

	if snap.State != StateWaitingForOpponent {
		t.Fatalf("state = %s, want %s", snap.State, StateWaitingForOpponent)
	}
	if snap.CurrentTurn != "alice" {
		t.Fatalf("current turn = %s, want alice", snap.CurrentTurn)
	}
	if !snap.IsCreator {
		t.Fatal("creator snapshot should set isCreator")
	}
}

func TestJoinAdvancesState(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	if err := s.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	snap := s.Snapshot("bob")
	if snap.State != StateWaitingForReady {
		t.Fatalf("state = %s, want %s", snap.State, StateWaitingForReady)
	}
	if snap.JoinerName != "bob" {
		t.Fatalf("joiner = %s, want bob", snap.JoinerName)
	}
}

func TestJoinRejections(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	if err := s.Join("alice"); apperrors.CodeOf(err) != apperrors.CodeGameJoinRejected {
		t.Fatalf("self-join err = %v, want %s", err, apperrors.CodeGameJoinRejected)
	}
	if err := s.Join(""); apperrors.CodeOf(err) != apperrors.CodeGameJoinRejected {
		t.Fatalf("empty-name err = %v, want %s", err, apperrors.CodeGameJoinRejected)
	}
	if err := s.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := s.Join("carol"); apperrors.CodeOf(err) != apperrors.CodeGameJoinRejected {
		t.Fatalf("full-session err = %v, want %s", err, apperrors.CodeGameJoinRejected)
	}
}

func TestPlaceFleetIsIdempotent(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	if err := s.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := s.PlaceFleet("alice", fleetBoard()); err != nil {
		t.Fatalf("first placement: %v", err)
	}

	// Second submission is ignored, even an invalid one.
	var empty board.Board
	if err := s.PlaceFleet("alice", &empty); err != nil {
		t.Fatalf("resubmission should be a no-op, got %v", err)
	}
	snap := s.Snapshot("alice")
	if snap.CreatorBoard.ShipCells() != 20 {
		t.Fatalf("board ship cells = %d, want original 20", snap.CreatorBoard.ShipCells())
	}
}

func TestPlaceFleetRejectsInvalidPlacement(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	var empty board.Board

	err := s.PlaceFleet("alice", &empty)
	if apperrors.CodeOf(err) != apperrors.CodePlacementInvalid {
		t.Fatalf("err = %v, want %s", err, apperrors.CodePlacementInvalid)
	}
	if s.Snapshot("alice").CreatorBoardSet {
		t.Fatal("rejected placement must not set the board flag")
	}
}

func TestPlaceFleetRejectsOutsider(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	err := s.PlaceFleet("mallory", fleetBoard())
	if apperrors.CodeOf(err) != apperrors.CodeGameNotParticipant {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeGameNotParticipant)
	}
}

func TestReadyRequiresBothBoardsAndFlags(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	if err := s.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := s.SetReady("alice"); err != nil {
		t.Fatalf("ready alice: %v", err)
	}
	if err := s.SetReady("bob"); err != nil {
		t.Fatalf("ready bob: %v", err)
	}
	if got := s.Snapshot("alice").State; got != StateWaitingForReady {
		t.Fatalf("state without boards = %s, want %s", got, StateWaitingForReady)
	}

	if err := s.PlaceFleet("alice", fleetBoard()); err != nil {
		t.Fatalf("place alice: %v", err)
	}
	if err := s.PlaceFleet("bob", fleetBoard()); err != nil {
		t.Fatalf("place bob: %v", err)
	}
	// Flags were already set; re-flagging one player starts the game.
	if err := s.SetReady("bob"); err != nil {
		t.Fatalf("ready bob again: %v", err)
	}

	snap := s.Snapshot("alice")
	if snap.State != StateInProgress {
		t.Fatalf("state = %s, want %s", snap.State, StateInProgress)
	}
	if snap.CurrentTurn != "alice" {
		t.Fatalf("first turn = %s, want creator", snap.CurrentTurn)
	}
}

func TestShootMissPassesTurn(t *testing.T) {
	s := startedSession(t)

	outcome, err := s.Shoot("alice", board.Position{Row: 9, Col: 9})
	if err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if outcome != board.OutcomeMiss {
		t.Fatalf("outcome = %s, want %s", outcome, board.OutcomeMiss)
	}
	if got := s.Snapshot("alice").CurrentTurn; got != "bob" {
		t.Fatalf("turn after miss = %s, want bob", got)
	}
}

func TestShootHitRetainsTurn(t *testing.T) {
	s := startedSession(t)

	outcome, err := s.Shoot("alice", board.Position{Row: 0, Col: 0})
	if err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if outcome != board.OutcomeHit {
		t.Fatalf("outcome = %s, want %s", outcome, board.OutcomeHit)
	}
	if got := s.Snapshot("alice").CurrentTurn; got != "alice" {
		t.Fatalf("turn after hit = %s, want alice", got)
	}
}

func TestShootOutOfTurn(t *testing.T) {
	s := startedSession(t)

	_, err := s.Shoot("bob", board.Position{Row: 0, Col: 0})
	if apperrors.CodeOf(err) != apperrors.CodeShotOutOfTurn {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeShotOutOfTurn)
	}
}

func TestShootBeforeStart(t *testing.T) {
	s := New("g-1", "alice", true, testCreated)
	if err := s.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}

	_, err := s.Shoot("alice", board.Position{Row: 0, Col: 0})
	if apperrors.CodeOf(err) != apperrors.CodeShotOutOfTurn {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeShotOutOfTurn)
	}
}

func TestShootByOutsider(t *testing.T) {
	s := startedSession(t)

	_, err := s.Shoot("mallory", board.Position{Row: 0, Col: 0})
	if apperrors.CodeOf(err) != apperrors.CodeGameNotParticipant {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeGameNotParticipant)
	}
}

func TestShootDuplicatePosition(t *testing.T) {
	s := startedSession(t)

	if _, err := s.Shoot("alice", board.Position{Row: 9, Col: 9}); err != nil {
		t.Fatalf("first shot: %v", err)
	}
	// Miss passed the turn to bob; bob misses back to alice.
	if _, err := s.Shoot("bob", board.Position{Row: 9, Col: 9}); err != nil {
		t.Fatalf("bob shot: %v", err)
	}

	_, err := s.Shoot("alice", board.Position{Row: 9, Col: 9})
	if apperrors.CodeOf(err) != apperrors.CodeShotAlreadyTaken {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeShotAlreadyTaken)
	}
	// The rejection must not flip the turn.
	if got := s.Snapshot("alice").CurrentTurn; got != "alice" {
		t.Fatalf("turn after rejected shot = %s, want alice", got)
	}
}

func TestWinFinishesSession(t *testing.T) {
	s := startedSession(t)

	// Alice sinks bob's entire fleet; hits always retain the turn.
	var last board.Outcome
	for _, pos := range fleetPositions() {
		outcome, err := s.Shoot("alice", pos)
		if err != nil {
			t.Fatalf("shot at %v: %v", pos, err)
		}
		last = outcome
	}
	if last != board.OutcomeWin {
		t.Fatalf("final outcome = %s, want %s", last, board.OutcomeWin)
	}

	snap := s.Snapshot("alice")
	if snap.State != StateFinished {
		t.Fatalf("state = %s, want %s", snap.State, StateFinished)
	}
	if snap.Winner != "alice" {
		t.Fatalf("winner = %s, want alice", snap.Winner)
	}
	// Turn never changed during the streak.
	if snap.CurrentTurn != "alice" {
		t.Fatalf("turn = %s, want alice", snap.CurrentTurn)
	}

	// No further shots are legal.
	if _, err := s.Shoot("alice", board.Position{Row: 9, Col: 9}); apperrors.CodeOf(err) != apperrors.CodeShotOutOfTurn {
		t.Fatalf("post-win shot err expected %s", apperrors.CodeShotOutOfTurn)
	}
}

// fleetPositions lists every ship cell of fleetBoard in scan order.
func fleetPositions() []board.Position {
	b := fleetBoard()
	var out []board.Position
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b[r][c] == board.CellShip {
				out = append(out, board.Position{Row: r, Col: c})
			}
		}
	}
	return out
}

func TestSnapshotRedactsOpponentBoard(t *testing.T) {
	s := startedSession(t)
	if _, err := s.Shoot("alice", board.Position{Row: 0, Col: 0}); err != nil {
		t.Fatalf("shoot: %v", err)
	}

	snap := s.Snapshot("alice")
	// Own board is fully visible.
	if snap.CreatorBoard.ShipCells() != 20 {
		t.Fatalf("own board ship cells = %d, want 20", snap.CreatorBoard.ShipCells())
	}
	// Opponent board reveals only shot cells.
	if snap.JoinerBoard.ShipCells() != 0 {
		t.Fatalf("opponent board leaks %d unshot ship cells", snap.JoinerBoard.ShipCells())
	}
	if (*snap.JoinerBoard)[0][0] != board.CellHit {
		t.Fatalf("opponent cell (0,0) = %d, want hit", (*snap.JoinerBoard)[0][0])
	}
	if len(snap.MyShots) != 1 || !snap.MyShots[0].Hit {
		t.Fatalf("my shots = %v, want one hit", snap.MyShots)
	}
}

func TestSnapshotForSpectator(t *testing.T) {
	s := startedSession(t)

	snap := s.Snapshot("watcher")
	if snap.IsCreator {
		t.Fatal("spectator must not be flagged creator")
	}
	if snap.CreatorBoard.ShipCells() != 0 || snap.JoinerBoard.ShipCells() != 0 {
		t.Fatal("spectator snapshot leaks ship cells")
	}
	if len(snap.MyShots) != 0 {
		t.Fatalf("spectator shots = %v, want none", snap.MyShots)
	}
}

func TestSnapshotSharesNoState(t *testing.T) {
	s := startedSession(t)
	snap := s.Snapshot("alice")

	// Mutating the snapshot board must not affect the session.
	snap.CreatorBoard[0][0] = board.CellMiss
	if got := s.Snapshot("alice").CreatorBoard[0][0]; got != board.CellShip {
		t.Fatalf("session board mutated through snapshot: cell = %d", got)
	}
}

func TestOpenLobby(t *testing.T) {
	open := New("g-1", "alice", true, testCreated)
	if !open.OpenLobby() {
		t.Fatal("expected fresh open session to be listed")
	}

	private := New("g-2", "alice", false, testCreated)
	if private.OpenLobby() {
		t.Fatal("private session must not be listed")
	}

	if err := open.Join("bob"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if open.OpenLobby() {
		t.Fatal("joined session must not be listed")
	}
}

func TestShotOrderPreservedUnderConcurrency(t *testing.T) {
	s := startedSession(t)

	// Concurrent duplicate shots at one position: exactly one wins admission.
	const attempts = 8
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := s.Shoot("alice", board.Position{Row: 0, Col: 0})
			errs <- err
		}()
	}

	var ok, dup int
	for i := 0; i < attempts; i++ {
		err := <-errs
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperrors.New(apperrors.CodeShotAlreadyTaken, "")):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != attempts-1 {
		t.Fatalf("admitted = %d, duplicates = %d, want 1 and %d", ok, dup, attempts-1)
	}
	if got := len(s.Snapshot("alice").MyShots); got != 1 {
		t.Fatalf("shot log length = %d, want 1", got)
	}
}
