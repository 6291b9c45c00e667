package settings

import (
	"sync"

	"github.com/rs/zerolog/log"

	"dongne/internal/config"
	"dongne/internal/domain"
	"dongne/internal/eventbus"
)

// Persister keeps the settings file in step with confirmed town selections
type Persister interface {
	// Current returns the last setting written (or loaded)
	Current() domain.TownSetting
	// Save writes setting immediately
	Save(setting domain.TownSetting) error
	// Close stops listening to the bus
	Close()
}

// persister is the concrete implementation
type persister struct {
	bus         eventbus.EventBus
	svc         config.ConfigService
	mu          sync.Mutex
	cfg         config.Config
	current     domain.TownSetting
	lastSeq     uint64
	unsubscribe func()
}

// NewPersister saves every TownSettingConfirmed event published on bus.
// Handlers run concurrently, so a sequenced event older than one already
// saved is skipped. cfg is copied; later changes to it are not seen.
func NewPersister(bus eventbus.EventBus, svc config.ConfigService, cfg *config.Config, initial domain.TownSetting) Persister {
	p := &persister{
		bus:     bus,
		svc:     svc,
		cfg:     *cfg,
		current: initial,
	}

	p.unsubscribe = bus.Subscribe(eventbus.EventTownSettingConfirmed, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.TownSettingConfirmedEvent)
		if !ok {
			return
		}
		if err := p.saveConfirmed(event); err != nil {
			log.Error().Err(err).Msg("failed to save town setting")
			bus.Publish(eventbus.ErrorEvent{Message: "설정을 저장하지 못했어요.", Err: err})
		}
	})

	return p
}

func (p *persister) Current() domain.TownSetting {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *persister) Save(setting domain.TownSetting) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.write(setting)
}

func (p *persister) saveConfirmed(event eventbus.TownSettingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.Seq != 0 {
		if event.Seq <= p.lastSeq {
			log.Debug().Uint64("seq", event.Seq).Uint64("saved", p.lastSeq).Msg("skipping stale town setting")
			return nil
		}
		if err := p.write(event.Setting); err != nil {
			return err
		}
		p.lastSeq = event.Seq
		return nil
	}
	return p.write(event.Setting)
}

// write must be called with mu held
func (p *persister) write(setting domain.TownSetting) error {
	next := p.cfg
	next.SetTowns(setting)
	if err := p.svc.Save(&next); err != nil {
		return err
	}
	p.cfg = next
	p.current = setting
	log.Info().Str("primary", setting.Primary.ID).Str("secondary", setting.Secondary.ID).Msg("town setting saved")
	return nil
}

func (p *persister) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
}
