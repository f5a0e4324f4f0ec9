package data

import (
	"log/slog"
	"strings"

	"github.com/udisondev/galaxies/internal/model"
)

// effectDef is the YAML form of a skill effect.
type effectDef struct {
	Type     string             `yaml:"type"`
	Value    float64            `yaml:"value"`
	Duration float64            `yaml:"duration"`
	Target   string             `yaml:"target"`
	Stats    model.PrimaryStats `yaml:"stats"`
}

// toEffect maps a definition to its variant. Unrecognised types decode to
// model.UnknownEffect so newer content still loads.
func (d effectDef) toEffect() model.SkillEffect {
	sel := model.Selector{Targets: model.ParseEffectTarget(strings.ToLower(d.Target))}

	switch strings.ToLower(d.Type) {
	case "damage":
		return model.DamageEffect{Selector: sel, Value: d.Value, Duration: d.Duration}
	case "dot":
		return model.DOTEffect{Selector: sel, Value: d.Value, Duration: d.Duration}
	case "hot", "heal":
		return model.HOTEffect{Selector: sel, Value: d.Value, Duration: d.Duration}
	case "stun":
		return model.StunEffect{Selector: sel, Duration: d.Duration}
	case "slow":
		return model.SlowEffect{Selector: sel, Value: d.Value, Duration: d.Duration}
	case "buff":
		return model.BuffEffect{Selector: sel, Value: d.Value, Duration: d.Duration, Stats: d.Stats}
	case "debuff":
		return model.DebuffEffect{Selector: sel, Value: d.Value, Duration: d.Duration, Stats: d.Stats}
	default:
		slog.Debug("unknown effect type kept as-is", "type", d.Type)
		return model.UnknownEffect{Selector: sel, Name: d.Type, Value: d.Value, Duration: d.Duration}
	}
}

func toEffects(defs []effectDef) []model.SkillEffect {
	if len(defs) == 0 {
		return nil
	}
	out := make([]model.SkillEffect, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.toEffect())
	}
	return out
}
