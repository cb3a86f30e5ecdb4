package autopilot

import (
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
)

// Play drives sess with p from the menu until a game over, the last level is
// won or maxFrames pass. It returns the finished levels in order.
func Play(sess *game.Session, p *Pilot, maxFrames int) ([]game.Result, error) {
	var results []game.Result
	for frame := 0; frame < maxFrames; frame++ {
		res, err := sess.Step(p.Next(sess.Snapshot()))
		if err != nil {
			return results, err
		}
		if res.Finished == nil {
			continue
		}
		results = append(results, *res.Finished)
		if res.Finished.Outcome == core.StateGameOver || !sess.Snapshot().HasNextLevel {
			return results, nil
		}
	}
	return results, nil
}
