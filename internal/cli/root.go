package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dongne/internal/catalog"
	"dongne/internal/config"
	"dongne/internal/eventbus"
	"dongne/internal/listing"
	"dongne/internal/logging"
	"dongne/internal/settings"
	"dongne/internal/town"
	"dongne/internal/ui"
)

// options are the persistent flags shared by every command
type options struct {
	configPath string
	debug      bool
}

func (o *options) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.DefaultPath()
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "dongne",
		Short:        "dongne: neighborhood marketplace in the terminal",
		SilenceUsage: true,
		// Subcommands print their results to stdout; logs only show with --debug
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if !cmd.HasParent() {
				return
			}
			if opts.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
				return
			}
			log.Logger = zerolog.New(io.Discard)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			cleanup, err := logging.Setup(logging.Config{
				Dir:   logging.DefaultDir(),
				Debug: opts.debug,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
			}
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default: user config dir/dongne/dongne.toml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging")

	cmd.AddCommand(townsCmd(opts))
	cmd.AddCommand(catalogCmd(opts))
	return cmd
}

// session is everything loaded from disk that commands work on
type session struct {
	svc     config.ConfigService
	cfg     *config.Config
	catalog *catalog.Catalog
	towns   *town.State
}

func openSession(opts *options, bus eventbus.EventBus) (*session, error) {
	var svc config.ConfigService
	if bus != nil {
		svc = config.NewConfigServiceWithBus(opts.path(), bus)
	} else {
		svc = config.NewConfigService(opts.path())
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return nil, err
		}
	}

	policy, err := cfg.ClearPolicy()
	if err != nil {
		return nil, err
	}
	towns := town.NewState(town.WithClearPolicy(policy))

	setting, err := cat.Resolve(cfg.Towns.Primary, cfg.Towns.Secondary)
	if err != nil {
		return nil, fmt.Errorf("saved towns: %w", err)
	}
	if setting.Count() > 0 {
		if err := towns.Restore(setting); err != nil {
			return nil, fmt.Errorf("saved towns: %w", err)
		}
	}

	return &session{svc: svc, cfg: cfg, catalog: cat, towns: towns}, nil
}

// save confirms the current town state and writes it to the settings file
func (s *session) save() (string, error) {
	setting, err := s.towns.Confirm()
	if err != nil {
		return "", err
	}
	s.cfg.SetTowns(setting)
	if err := s.svc.Save(s.cfg); err != nil {
		return "", err
	}
	return s.svc.Path(), nil
}

func runTUI(opts *options) error {
	bus := eventbus.New()
	defer bus.Close()

	sess, err := openSession(opts, bus)
	if err != nil {
		return err
	}

	posts, err := listing.NewSampleStore(bus)
	if err != nil {
		return err
	}

	// Persist confirmed settings off the UI goroutine
	initial, _ := sess.towns.Confirm()
	persister := settings.NewPersister(bus, sess.svc, sess.cfg, initial)
	// Queued confirmations must reach the persister before it unsubscribes
	defer func() {
		bus.Close()
		persister.Close()
	}()

	model := ui.NewModel(bus, sess.cfg, sess.catalog, sess.towns, posts)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward bus events the UI reacts to
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	bus.Subscribe(eventbus.EventConfigSaved, forward)
	bus.Subscribe(eventbus.EventError, forward)

	logEvents(bus, log.Logger)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// logEvents traces town, listing and chat events at debug level
func logEvents(bus eventbus.EventBus, logger zerolog.Logger) {
	types := []eventbus.EventType{
		eventbus.EventTownSelectionChanged,
		eventbus.EventPostStateChanged,
		eventbus.EventPostPublished,
		eventbus.EventMessageSent,
	}
	for _, t := range types {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logger.Debug().Str("event", string(e.Type())).Msg("event")
		})
	}
}
