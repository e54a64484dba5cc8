package game

import (
	"time"

	"scrabblesrv/internal/model"
)

// boardEmpty reports whether no tile has been placed on the board yet,
// the condition that makes a move the game's first move.
func boardEmpty(board *model.Board) bool {
	for x := 0; x < model.BoardSize; x++ {
		for y := 0; y < model.BoardSize; y++ {
			if board.At(x, y).Tile != nil {
				return false
			}
		}
	}
	return true
}

// isFirstMove reports whether the room's game has had no successful play
// placed on the board yet.
func isFirstMove(game *model.GameState) bool {
	return boardEmpty(game.Board)
}

// advanceTurn moves the active-player pointer to the next seat, resets the
// turn deadline, and bumps the state version.
func advanceTurn(room *model.Room) {
	g := room.Game
	g.TurnIndex = (g.TurnIndex + 1) % len(room.Players)
	g.ActivePlayerID = room.Players[g.TurnIndex].ID
	g.TurnDeadline = time.Now().Add(g.TurnDuration)
	g.Version++
}

// checkEndOfGame applies the end-of-game condition and, if met, settles
// final scores and marks the room finished. It reports whether the game
// ended.
func checkEndOfGame(room *model.Room, maxConsecutivePasses int) bool {
	g := room.Game
	bagEmptyAndRackEmpty := g.Bag.Size() == 0 && anyEmptyRack(room.Players)
	stalled := g.ConsecutivePasses >= maxConsecutivePasses
	if !bagEmptyAndRackEmpty && !stalled {
		return false
	}

	var emptyRackPlayer *model.Player
	emptyCount := 0
	for _, p := range room.Players {
		if p.Rack.Size() == 0 {
			emptyCount++
			emptyRackPlayer = p
		}
	}

	for _, p := range room.Players {
		p.Score -= p.Rack.FaceValue()
	}
	if emptyCount == 1 {
		bonus := 0
		for _, p := range room.Players {
			if p == emptyRackPlayer {
				continue
			}
			bonus += p.Rack.FaceValue()
		}
		emptyRackPlayer.Score += bonus
	}

	room.Status = model.RoomFinished
	return true
}

func anyEmptyRack(players []*model.Player) bool {
	for _, p := range players {
		if p.Rack.Size() == 0 {
			return true
		}
	}
	return false
}
