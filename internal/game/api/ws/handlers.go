package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/louisbranch/seabattle.space/internal/game/domain/board"
	"github.com/louisbranch/seabattle.space/internal/game/domain/session"
	"github.com/louisbranch/seabattle.space/internal/game/storage"
	apperrors "github.com/louisbranch/seabattle.space/internal/platform/errors"
	errsi18n "github.com/louisbranch/seabattle.space/internal/platform/errors/i18n"
)

// dispatch routes one client command. Every failure turns into a localized
// error event on the issuing connection; commands never close it.
func (h *Hub) dispatch(c *Client, cmd Command) {
	ctx := context.Background()

	switch cmd.Type {
	case CmdCreateGame:
		h.handleCreateGame(ctx, c, cmd.Payload)
	case CmdJoinGame:
		h.handleJoinGame(ctx, c, cmd.Payload)
	case CmdGetLobbies:
		c.deliver(Event{Type: EvtLobbiesUpdated, Payload: h.service.ListOpenLobbies(ctx)})
	case CmdPlaceFleet:
		h.handlePlaceFleet(ctx, c, cmd.Payload)
	case CmdSetReady:
		h.handleSetReady(ctx, c, cmd.Payload)
	case CmdShoot:
		h.handleShoot(ctx, c, cmd.Payload)
	case CmdGetState:
		h.handleGetState(ctx, c, cmd.Payload)
	case CmdGetHistory:
		h.handleGetHistory(ctx, c, cmd.Payload)
	case CmdGetLeaderboard:
		h.handleGetLeaderboard(ctx, c, cmd.Payload)
	default:
		log.Printf("ws: unknown command %q", cmd.Type)
		h.sendError(c, apperrors.New(apperrors.CodeUnknown, "unknown command"))
	}
}

// playerFor prefers the identity already bound to the connection over the
// name a payload claims, so a token-authenticated peer cannot impersonate.
func (c *Client) playerFor(claimed string) string {
	bound, _ := c.identity()
	if bound != "" {
		return bound
	}
	return claimed
}

func (h *Hub) decode(c *Client, raw json.RawMessage, into any) bool {
	if err := json.Unmarshal(raw, into); err != nil {
		h.sendError(c, apperrors.Wrap(apperrors.CodeUnknown, "malformed payload", err))
		return false
	}
	return true
}

func (h *Hub) handleCreateGame(ctx context.Context, c *Client, raw json.RawMessage) {
	var p createGamePayload
	if !h.decode(c, raw, &p) {
		return
	}

	snap, err := h.service.CreateSession(ctx, c.playerFor(p.PlayerName), p.IsOpenLobby)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.bind(snap.CreatorName, snap.ID)
	c.deliver(Event{Type: EvtGameCreated, Payload: snap})
	h.broadcastLobbies(ctx)
}

func (h *Hub) handleJoinGame(ctx context.Context, c *Client, raw json.RawMessage) {
	var p joinGamePayload
	if !h.decode(c, raw, &p) {
		return
	}

	snap, err := h.service.JoinSession(ctx, p.GameID, c.playerFor(p.PlayerName))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.bind(snap.JoinerName, snap.ID)
	h.sendGameUpdate(ctx, EvtGameUpdated, snap.ID)
	h.broadcastLobbies(ctx)
}

func (h *Hub) handlePlaceFleet(ctx context.Context, c *Client, raw json.RawMessage) {
	var p placeFleetPayload
	if !h.decode(c, raw, &p) {
		return
	}

	player := c.playerFor(p.PlayerName)
	if _, err := h.service.PlaceFleet(ctx, p.GameID, player, p.Board); err != nil {
		h.sendError(c, err)
		return
	}
	c.bind(player, p.GameID)
	h.sendGameUpdate(ctx, EvtGameUpdated, p.GameID)
}

func (h *Hub) handleSetReady(ctx context.Context, c *Client, raw json.RawMessage) {
	var p setReadyPayload
	if !h.decode(c, raw, &p) {
		return
	}

	player := c.playerFor(p.PlayerName)
	snap, err := h.service.SetReady(ctx, p.GameID, player)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.bind(player, p.GameID)
	h.sendGameUpdate(ctx, EvtGameUpdated, p.GameID)

	if snap.State == session.StateInProgress {
		h.sendGameUpdate(ctx, EvtGameStarted, p.GameID)
		h.broadcastToGame(p.GameID, func(*Client) (Event, bool) {
			return Event{Type: EvtTurnChanged, Payload: turnChangedPayload{
				GameID:      p.GameID,
				CurrentTurn: snap.CurrentTurn,
			}}, true
		})
	}
}

func (h *Hub) handleShoot(ctx context.Context, c *Client, raw json.RawMessage) {
	var p shootPayload
	if !h.decode(c, raw, &p) {
		return
	}

	player := c.playerFor(p.PlayerName)
	res, err := h.service.Shoot(ctx, p.GameID, player, board.Position{Row: p.Row, Col: p.Col})
	if err != nil {
		h.sendError(c, err)
		return
	}

	h.broadcastToGame(p.GameID, func(*Client) (Event, bool) {
		return Event{Type: EvtShotResult, Payload: shotResultPayload{
			GameID:  p.GameID,
			Shooter: player,
			Row:     p.Row,
			Col:     p.Col,
			Outcome: string(res.Outcome),
		}}, true
	})
	h.sendGameUpdate(ctx, EvtGameUpdated, p.GameID)

	switch {
	case res.Outcome == board.OutcomeWin:
		h.broadcastToGame(p.GameID, func(*Client) (Event, bool) {
			return Event{Type: EvtGameEnded, Payload: gameEndedPayload{
				GameID: p.GameID,
				Winner: res.Snapshot.Winner,
			}}, true
		})
	case !res.Outcome.IsHit():
		h.broadcastToGame(p.GameID, func(*Client) (Event, bool) {
			return Event{Type: EvtTurnChanged, Payload: turnChangedPayload{
				GameID:      p.GameID,
				CurrentTurn: res.Snapshot.CurrentTurn,
			}}, true
		})
	}
}

func (h *Hub) handleGetState(ctx context.Context, c *Client, raw json.RawMessage) {
	var p getStatePayload
	if !h.decode(c, raw, &p) {
		return
	}

	name, _ := c.identity()
	snap, err := h.service.GetSession(ctx, p.GameID, name)
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.deliver(Event{Type: EvtGameUpdated, Payload: snap})
}

func (h *Hub) handleGetHistory(ctx context.Context, c *Client, raw json.RawMessage) {
	var p getHistoryPayload
	if !h.decode(c, raw, &p) {
		return
	}

	records, err := h.service.PlayerHistory(ctx, c.playerFor(p.PlayerName), p.Count)
	if err != nil {
		h.sendError(c, err)
		return
	}

	catalog := errsi18n.GetCatalog(c.Locale())
	entries := make([]historyEntryPayload, 0, len(records))
	for _, rec := range records {
		label := errsi18n.LabelDefeat
		if rec.Result == storage.ResultVictory {
			label = errsi18n.LabelVictory
		}
		entries = append(entries, historyEntryPayload{
			OpponentUsername: rec.OpponentUsername,
			Result:           catalog.Format(label, nil),
			GameID:           rec.GameID,
			FinishedAt:       rec.FinishedAt,
		})
	}
	c.deliver(Event{Type: EvtHistory, Payload: entries})
}

// handleGetLeaderboard tolerates a missing payload; topN then falls back to
// the service default.
func (h *Hub) handleGetLeaderboard(ctx context.Context, c *Client, raw json.RawMessage) {
	var p getLeaderboardPayload
	if len(raw) > 0 && !h.decode(c, raw, &p) {
		return
	}

	records, err := h.service.Leaderboard(ctx, p.TopN)
	if err != nil {
		h.sendError(c, err)
		return
	}

	entries := make([]leaderboardEntryPayload, 0, len(records))
	for _, rec := range records {
		entries = append(entries, leaderboardEntryPayload{
			PlayerUsername: rec.PlayerUsername,
			Rating:         rec.Rating,
			Wins:           rec.Wins,
			Losses:         rec.Losses,
			TotalGames:     rec.TotalGames,
		})
	}
	c.deliver(Event{Type: EvtLeaderboard, Payload: entries})
}
