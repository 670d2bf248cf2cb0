package agent

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/amoeba-bot/internal/apperror"
	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

const (
	WeightedName = "weighted"
	RandomName   = "random"
)

// Agent - chooses where the given mark plays next.
type Agent interface {
	Act(board *entity.Board, sign entity.Mark) entity.Position
}

type Factory func() Agent

// Registry - maps agent names to their constructors.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry - registry with every agent shipped with the bot.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(WeightedName, func() Agent { return NewWeighted() })
	registry.Register(RandomName, func() Agent { return NewRandom(nil) })

	return registry
}

func (that *Registry) Register(name string, factory Factory) {
	that.factories[name] = factory
}

// New - creates the agent registered under name.
func (that *Registry) New(name string) (Agent, error) {
	factory, ok := that.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", apperror.ErrUnknownAgent, name, that.Names())
	}

	return factory(), nil
}

func (that *Registry) Names() []string {
	names := make([]string, 0, len(that.factories))
	for name := range that.factories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
