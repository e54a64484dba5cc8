package game

import (
	"time"

	"scrabblesrv/internal/model"
	"scrabblesrv/internal/rules"
)

// recordMove appends a move summary to the log and returns it.
func (l *Lifecycle) recordMove(room *model.Room, playerID string, action model.Action, words []string, scoreDelta int, placements []model.Placement) *model.MoveSummary {
	g := room.Game
	m := model.MoveSummary{
		ID:         l.IDGen(),
		PlayerID:   playerID,
		Action:     action,
		Words:      words,
		ScoreDelta: scoreDelta,
		Placements: placements,
		TurnNumber: g.TurnNumber(),
		CreatedAt:  time.Now(),
	}
	g.MoveLog = append(g.MoveLog, m)
	return &m
}

func (l *Lifecycle) applyPass(room *model.Room, player *model.Player) (*model.MoveSummary, bool, error) {
	g := room.Game
	player.Stats.Passes++
	g.ConsecutivePasses++
	m := l.recordMove(room, player.ID, model.ActionPass, nil, 0, nil)
	advanceTurn(room)
	ended := checkEndOfGame(room, l.Config.MaxConsecutivePasses)
	return m, ended, nil
}

func (l *Lifecycle) applyExchange(room *model.Room, player *model.Player, tileIDs []string) (*model.MoveSummary, bool, error) {
	g := room.Game
	if err := rules.ValidateExchange(&player.Rack, g.Bag.Size(), tileIDs); err != nil {
		return nil, false, err
	}

	removed := player.Rack.Remove(tileIDs)
	drawn := g.Bag.Draw(len(removed))
	player.Rack.Add(drawn)
	g.Bag.Return(removed, l.Rand)

	player.Stats.Passes++
	if l.Config.ExchangeCountsAsStall {
		g.ConsecutivePasses++
	} else {
		g.ConsecutivePasses = 0
	}

	m := l.recordMove(room, player.ID, model.ActionExchange, nil, 0, nil)
	advanceTurn(room)
	ended := checkEndOfGame(room, l.Config.MaxConsecutivePasses)
	return m, ended, nil
}

func (l *Lifecycle) applyPlay(room *model.Room, player *model.Player, placements []model.Placement) (*model.MoveSummary, bool, error) {
	g := room.Game
	first := isFirstMove(g)

	result, err := rules.ValidatePlay(g.Board, &player.Rack, placements, first, l.Dict)
	if err != nil {
		return nil, false, err
	}

	turn := g.TurnNumber()
	removed := player.Rack.Remove(placementIDs(placements))
	byID := make(map[string]*model.Tile, len(removed))
	for i := range removed {
		byID[removed[i].ID] = &removed[i]
	}
	for _, p := range placements {
		t := byID[p.TileID]
		t.Place(p.Letter)
		g.Board.Place(p.X, p.Y, t, player.ID, turn)
	}

	draw := model.MaxRackSize - player.Rack.Size()
	player.Rack.Add(g.Bag.Draw(draw))

	player.Score += result.Score
	player.Stats.WordsPlayed += len(result.Words())
	player.Stats.TotalTurns++
	if result.Score > player.Stats.BestWordScore {
		player.Stats.BestWordScore = result.Score
		player.Stats.BestWord = result.MainWord.Word
	}
	g.ConsecutivePasses = 0

	m := l.recordMove(room, player.ID, model.ActionPlay, result.Words(), result.Score, placements)
	advanceTurn(room)
	ended := checkEndOfGame(room, l.Config.MaxConsecutivePasses)
	return m, ended, nil
}

func placementIDs(placements []model.Placement) []string {
	ids := make([]string, len(placements))
	for i, p := range placements {
		ids[i] = p.TileID
	}
	return ids
}
