package power

import (
	"go.uber.org/zap"

	"github.com/NaughtyFishies/swn-character-generator/internal/game/attr"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/dice"
	"github.com/NaughtyFishies/swn-character-generator/internal/game/rules"
)

// buildTrack resolves a special-ability track at the given level.
func (e *Engine) buildTrack(track *rules.Track, attrs attr.Block, level int) *Profile {
	p := &Profile{Kind: rules.PowerTrack, Track: track.Name}

	for _, a := range track.Level1Abilities {
		p.TrackAbilities = append(p.TrackAbilities, a.Name)
		p.TrackHPBonus += a.HPBonus
	}

	switch track.Mode {
	case rules.TrackAutomatic:
		for _, a := range track.LevelAbilities {
			if a.Level <= level {
				p.TrackAbilities = append(p.TrackAbilities, a.Name)
				p.TrackHPBonus += a.HPBonus
			}
		}
	case rules.TrackEvenSelection:
		taken := make(map[string]bool)
		for even := 2; even <= level; even += 2 {
			pick := e.drawTrackAbility(track, even, taken)
			if pick == nil {
				continue
			}
			taken[pick.Name] = true
			p.TrackAbilities = append(p.TrackAbilities, pick.Name)
			p.TrackHPBonus += pick.HPBonus
		}
	}

	for odd := 1; odd <= level; odd += 2 {
		p.TrackHPBonus += track.HPBonusOddLevel
	}

	if track.Effort != nil {
		p.Effort = effortPool(len(p.TrackAbilities), attrs,
			track.Effort.Attributes[0], track.Effort.Attributes[1])
	}

	if len(track.SacredWeapons) > 0 {
		p.SacredWeapon = dice.Pick(e.roller.Source(), track.SacredWeapons)
	}

	e.logger.Debug("track resolved",
		zap.String("track", track.Name),
		zap.Int("abilities", len(p.TrackAbilities)),
		zap.Int("hp_bonus", p.TrackHPBonus),
	)
	return p
}

// drawTrackAbility picks an unchosen selectable ability whose minimum
// level has been reached, falling back to any unchosen ability when the
// level-gated pool is empty.
func (e *Engine) drawTrackAbility(track *rules.Track, level int, taken map[string]bool) *rules.TrackAbility {
	var gated, open []*rules.TrackAbility
	for _, a := range track.Selectable {
		if taken[a.Name] {
			continue
		}
		open = append(open, a)
		if a.Level <= level {
			gated = append(gated, a)
		}
	}
	if len(gated) > 0 {
		return dice.Pick(e.roller.Source(), gated)
	}
	if len(open) > 0 {
		return dice.Pick(e.roller.Source(), open)
	}
	return nil
}
