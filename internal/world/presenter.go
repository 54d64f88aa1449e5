package world

import (
	"github.com/emberwild/worldcore/internal/component"
	"github.com/emberwild/worldcore/internal/core/ecs"
	"go.uber.org/zap"
)

// Presenter is the presentation-side collaborator. The core never renders;
// it only tells the presenter when entities enter or leave the world.
type Presenter interface {
	// Dimensions returns the sprite size for a type; ok=false falls back to
	// the type registry.
	Dimensions(typeID string) (w, h float64, ok bool)
	CreateVisual(kind component.Kind, x, y float64, typeID string) uint64
	RemoveVisual(id ecs.EntityID)
	ToggleInventory(holder ecs.EntityID)
}

// HeadlessPresenter keeps visual bookkeeping without drawing anything. Used
// by the headless driver and tests.
type HeadlessPresenter struct {
	log     *zap.Logger
	next    uint64
	Created int
	Removed int
	Toggles map[ecs.EntityID]bool // inventory panel open per holder
}

func NewHeadlessPresenter(log *zap.Logger) *HeadlessPresenter {
	return &HeadlessPresenter{
		log:     log.Named("presenter"),
		Toggles: make(map[ecs.EntityID]bool),
	}
}

func (p *HeadlessPresenter) Dimensions(string) (float64, float64, bool) {
	return 0, 0, false
}

func (p *HeadlessPresenter) CreateVisual(kind component.Kind, x, y float64, typeID string) uint64 {
	p.next++
	p.Created++
	return p.next
}

func (p *HeadlessPresenter) RemoveVisual(ecs.EntityID) {
	p.Removed++
}

func (p *HeadlessPresenter) ToggleInventory(holder ecs.EntityID) {
	p.Toggles[holder] = !p.Toggles[holder]
	p.log.Debug("inventory panel toggled",
		zap.Stringer("holder", holder),
		zap.Bool("open", p.Toggles[holder]),
	)
}

// Live returns the number of visuals created and not yet removed.
func (p *HeadlessPresenter) Live() int {
	return p.Created - p.Removed
}
