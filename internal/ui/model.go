package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"dongne/internal/catalog"
	"dongne/internal/chat"
	"dongne/internal/config"
	"dongne/internal/domain"
	"dongne/internal/eventbus"
	"dongne/internal/listing"
	"dongne/internal/town"
	"dongne/internal/ui/input"
	inputtypes "dongne/internal/ui/input/types"
	"dongne/internal/ui/views"
)

// ChatPartner is the counterpart of every room opened from the sales list
const ChatPartner = "당근이"

const defaultAlertDuration = 2 * time.Second

// alert is the transient banner shown under the tabs
type alert struct {
	text    string
	isError bool
	id      int
}

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	catalog *catalog.Catalog
	towns   *town.State
	posts   listing.PostStore

	// snapshot is the last state delivered to our town observer; the town
	// screen renders only from it
	snapshot    town.Snapshot
	unsubscribe func()

	rooms     map[int]*chat.Room
	room      *chat.Room
	roomTitle string

	width       int
	height      int
	screen      inputtypes.Screen
	cursor      int         // sales list row
	slotCursor  domain.Slot // focused slot button
	showHelp    bool
	inPagerMode bool

	pickerSlot  domain.Slot
	results     []domain.Neighborhood
	resultIndex int

	alert    alert
	alertSeq int

	confirmSeq uint64

	// Write form
	title textinput.Model
	price textinput.Model
	body  textarea.Model
	field int

	help         help.Model
	keys         keyMap
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model around an already restored town state
func NewModel(bus eventbus.EventBus, cfg *config.Config, cat *catalog.Catalog, towns *town.State, posts listing.PostStore) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		catalog:      cat,
		towns:        towns,
		posts:        posts,
		rooms:        make(map[int]*chat.Room),
		slotCursor:   domain.SlotFirst,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
	}

	m.snapshot = towns.Snapshot()
	m.unsubscribe = towns.Subscribe(m.onTownsChanged)
	m.initForm()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Close detaches the model from the town state
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) onTownsChanged(s town.Snapshot) {
	m.snapshot = s
	if m.bus == nil {
		return
	}
	ev := eventbus.TownSelectionChangedEvent{Active: s.Active}
	if s.First != nil {
		ev.First = *s.First
	}
	if s.Second != nil {
		ev.Second = *s.Second
	}
	m.bus.Publish(ev)
}

func (m *Model) initForm() {
	m.title = textinput.New()
	m.title.Placeholder = "글 제목"
	m.title.Prompt = "제목 "
	m.title.CharLimit = listing.MaxTitleLength

	m.price = textinput.New()
	m.price.Placeholder = "가격 (0은 나눔)"
	m.price.Prompt = "₩ "
	m.price.CharLimit = 12

	m.body = textarea.New()
	m.body.SetHeight(6)
	m.body.ShowLineNumbers = false
	m.body.Placeholder = listing.BodyPlaceholder(m.primaryName())
}

// primaryName is the first town's display name, or "" when unset
func (m *Model) primaryName() string {
	if n, ok := m.snapshot.Town(domain.SlotFirst); ok {
		return n.DisplayName()
	}
	return ""
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("dongne")
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeForm()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "?", "esc", "q":
				m.showHelp = false
			}
			return m, nil
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.context())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// context builds the read-only view of the model for the input handler
func (m *Model) context() *input.ModelContext {
	ctx := &input.ModelContext{
		Screen:   m.screen,
		Slot:     m.slotCursor,
		Snapshot: m.snapshot,
	}
	switch {
	case m.inputHandler.CurrentMode() == inputtypes.ModePicker:
		ctx.Index, ctx.Total = m.resultIndex, len(m.results)
	case m.screen == inputtypes.ScreenSales:
		ctx.Index, ctx.Total = m.cursor, len(m.posts.All())
	}
	return ctx
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Debug().Str("action", action.Type()).Msg("processAction")
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModePicker {
			m.resultIndex = moveCursor(m.resultIndex, len(m.results), a.Direction)
		} else {
			m.cursor = moveCursor(m.cursor, len(m.posts.All()), a.Direction)
		}

	case inputtypes.SwitchScreenAction:
		n := len(inputtypes.Screens)
		m.screen = inputtypes.Screens[((int(m.screen)+a.Delta)%n+n)%n]

	case inputtypes.FocusSlotAction:
		return m.focusSlot(a.Slot)

	case inputtypes.OpenPickerAction:
		return m.openPicker(a.Slot)

	case inputtypes.AddSecondTownAction:
		switch {
		case m.snapshot.First == nil:
			return m.showAlert("먼저 첫 번째 동네를 선택해주세요.", true)
		case !m.snapshot.CanAddSecond():
			return m.showAlert("동네는 최대 2개까지 설정할 수 있어요.", true)
		}
		return m.openPicker(domain.SlotSecond)

	case inputtypes.UpdateTextAction:
		if m.inputHandler.CurrentMode() == inputtypes.ModePicker {
			m.results = m.catalog.Search(a.Text)
			m.resultIndex = 0
		}

	case inputtypes.PickTownAction:
		return m.pickTown()

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModePicker {
			m.results = nil
			m.towns.SelectSlot(domain.SlotNone)
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeChat {
			return m.sendMessage(a.Text)
		}

	case inputtypes.ClearSlotAction:
		return m.clearSlot(a.Slot)

	case inputtypes.ConfirmTownsAction:
		return m.confirmTowns()

	case inputtypes.ChangeModeAction:
		switch a.Mode {
		case inputtypes.ModeCompose:
			return m.focusField(m.field)
		case inputtypes.ModeNormal:
			m.blurForm()
		}

	case inputtypes.ToggleReservationAction:
		p, ok := m.currentPost()
		if !ok {
			return nil
		}
		updated, err := m.posts.ToggleReservation(p.ID)
		if err != nil {
			log.Warn().Err(err).Int("post", p.ID).Msg("toggle reservation failed")
			return m.showAlert("거래완료된 게시글은 상태를 바꿀 수 없어요.", true)
		}
		return m.showAlert(fmt.Sprintf("%s 상태로 변경했어요.", updated.State.Label()), false)

	case inputtypes.MarkSoldOutAction:
		p, ok := m.currentPost()
		if !ok {
			return nil
		}
		if _, err := m.posts.MarkSoldOut(p.ID); err != nil {
			log.Warn().Err(err).Int("post", p.ID).Msg("mark sold out failed")
			return m.showAlert("이미 거래완료된 게시글이에요.", true)
		}
		return m.showAlert("거래완료로 변경했어요.", false)

	case inputtypes.OpenChatAction:
		return m.openChat()

	case inputtypes.NextFieldAction:
		return m.focusField((m.field + 1) % views.FieldCount)

	case inputtypes.FormKeyAction:
		return m.updateForm(a.Key)

	case inputtypes.PublishDraftAction:
		return m.publishDraft()

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			m.showHelp = true
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// focusSlot moves the slot cursor. Landing on a filled slot selects it, the
// way tapping a slot button does.
func (m *Model) focusSlot(slot domain.Slot) tea.Cmd {
	m.slotCursor = slot
	n, ok := m.snapshot.Town(slot)
	if !ok {
		return nil
	}
	m.towns.SelectSlot(slot)
	return m.showAlert(fmt.Sprintf("%s으로 설정되었습니다.", n.DisplayName()), false)
}

func (m *Model) openPicker(slot domain.Slot) tea.Cmd {
	if slot == domain.SlotSecond && m.snapshot.First == nil {
		return m.showAlert("먼저 첫 번째 동네를 선택해주세요.", true)
	}

	m.slotCursor = slot
	m.pickerSlot = slot
	m.results = m.catalog.Search("")
	m.resultIndex = 0
	m.towns.SelectSlot(slot)

	return m.changeMode(inputtypes.ModePicker)
}

func (m *Model) pickTown() tea.Cmd {
	if m.resultIndex < 0 || m.resultIndex >= len(m.results) {
		return nil
	}
	n := m.results[m.resultIndex]

	if err := m.towns.Assign(m.pickerSlot, n); err != nil {
		log.Warn().Err(err).Str("town", n.ID).Msg("assign failed")
		return m.showAlert(assignErrorText(err, n, m.snapshot), true)
	}

	m.results = nil
	return tea.Batch(
		m.changeMode(inputtypes.ModeNormal),
		m.showAlert(fmt.Sprintf("%s으로 설정되었습니다.", n.DisplayName()), false),
	)
}

// assignErrorText picks the alert for a rejected Assign from the state it was
// rejected in
func assignErrorText(err error, n domain.Neighborhood, before town.Snapshot) string {
	var se *town.SelectionError
	switch {
	case errors.Is(err, town.ErrDuplicateSelection):
		return fmt.Sprintf("%s은 이미 선택한 동네예요.", n.DisplayName())
	case errors.As(err, &se) && se.Slot == domain.SlotSecond && before.First == nil:
		return "먼저 첫 번째 동네를 선택해주세요."
	default:
		return "동네를 설정할 수 없어요."
	}
}

func (m *Model) clearSlot(slot domain.Slot) tea.Cmd {
	before := m.snapshot
	err := m.towns.Clear(slot)
	if err == nil {
		n, _ := before.Town(slot)
		return m.showAlert(fmt.Sprintf("%s을 삭제했어요.", n.DisplayName()), false)
	}

	log.Warn().Err(err).Stringer("slot", slot).Msg("clear failed")
	_, filled := before.Town(slot)
	switch {
	case !filled:
		return m.showAlert("삭제할 동네가 없어요.", true)
	case before.Count() == 1:
		return m.showAlert("동네는 최소 1개 이상 설정해야 해요.", true)
	default:
		return m.showAlert("두 번째 동네를 먼저 삭제해주세요.", true)
	}
}

func (m *Model) confirmTowns() tea.Cmd {
	setting, err := m.towns.Confirm()
	if err != nil {
		return m.showAlert("먼저 첫 번째 동네를 선택해주세요.", true)
	}

	m.body.Placeholder = listing.BodyPlaceholder(setting.Primary.DisplayName())
	if m.bus != nil {
		m.confirmSeq++
		m.bus.Publish(eventbus.TownSettingConfirmedEvent{Setting: setting, Seq: m.confirmSeq})
	}
	return m.showAlert("동네 설정이 완료되었습니다.", false)
}

func (m *Model) currentPost() (domain.Post, bool) {
	posts := m.posts.All()
	if m.cursor < 0 || m.cursor >= len(posts) {
		return domain.Post{}, false
	}
	return posts[m.cursor], true
}

func (m *Model) openChat() tea.Cmd {
	p, ok := m.currentPost()
	if !ok {
		return nil
	}

	room, exists := m.rooms[p.ID]
	if !exists {
		room = chat.NewRoom(ChatPartner, p.ID, m.bus)
		room.Receive(fmt.Sprintf("안녕하세요! %s 아직 판매하시나요?", p.Title), time.Now())
		m.rooms[p.ID] = room
	}
	m.room = room
	m.roomTitle = p.Title
	m.screen = inputtypes.ScreenChat

	return m.changeMode(inputtypes.ModeChat)
}

func (m *Model) sendMessage(text string) tea.Cmd {
	if m.room == nil {
		return m.showAlert("열린 채팅방이 없어요.", true)
	}
	if _, err := m.room.Send(text); err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return nil
		}
		return m.showAlert(err.Error(), true)
	}
	m.inputHandler.ResetText()
	return nil
}

// changeMode switches input mode on the model's initiative and runs the
// resulting enter/exit actions
func (m *Model) changeMode(mode inputtypes.Mode) tea.Cmd {
	actions, cmd := m.inputHandler.ChangeMode(mode, m.context())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) focusField(field int) tea.Cmd {
	m.field = field
	m.blurForm()
	switch field {
	case views.FieldTitle:
		return m.title.Focus()
	case views.FieldPrice:
		return m.price.Focus()
	default:
		return m.body.Focus()
	}
}

func (m *Model) blurForm() {
	m.title.Blur()
	m.price.Blur()
	m.body.Blur()
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.field {
	case views.FieldTitle:
		m.title, cmd = m.title.Update(msg)
	case views.FieldPrice:
		m.price, cmd = m.price.Update(msg)
	default:
		m.body, cmd = m.body.Update(msg)
	}
	return cmd
}

func (m *Model) resizeForm() {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	m.title.Width = w
	m.price.Width = w
	m.body.SetWidth(w)
}

// parsePrice accepts digits with optional thousands separators and a 원 suffix
func parsePrice(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "원")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return n, nil
}

func (m *Model) publishDraft() tea.Cmd {
	price, err := parsePrice(m.price.Value())
	if err != nil {
		return m.showAlert("가격은 숫자로 입력해주세요.", true)
	}

	draft := listing.Draft{Title: m.title.Value(), Price: price, Body: m.body.Value()}
	post, err := m.posts.Publish(draft, m.primaryName())
	if err != nil {
		log.Warn().Err(err).Msg("publish failed")
		return m.showAlert(strings.TrimPrefix(err.Error(), listing.ErrInvalidDraft.Error()+": "), true)
	}

	m.title.Reset()
	m.price.Reset()
	m.body.Reset()
	m.field = views.FieldTitle
	m.screen = inputtypes.ScreenSales
	m.cursor = 0
	for i, p := range m.posts.All() {
		if p.ID == post.ID {
			m.cursor = i
			break
		}
	}

	return tea.Batch(
		m.changeMode(inputtypes.ModeNormal),
		m.showAlert("게시글을 올렸어요.", false),
	)
}

// showAlert displays a banner and schedules its removal
func (m *Model) showAlert(text string, isError bool) tea.Cmd {
	m.alertSeq++
	id := m.alertSeq
	m.alert = alert{text: text, isError: isError, id: id}

	d := defaultAlertDuration
	if m.config.UI.AlertSeconds > 0 {
		d = time.Duration(m.config.UI.AlertSeconds) * time.Second
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return alertExpiredMsg{id: id}
	})
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case alertExpiredMsg:
		if msg.id == m.alert.id {
			m.alert = alert{}
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: fall back to the overlay
			log.Error().Err(msg.err).Msg("help pager failed")
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	// Cursor blink and other widget messages
	if m.inputHandler.CurrentMode() == inputtypes.ModeCompose {
		return m, m.updateForm(msg)
	}
	return m, m.inputHandler.Update(msg)
}

// handleEvent reacts to bus events forwarded by the program
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ConfigSavedEvent:
		log.Debug().Str("path", e.Path).Msg("config saved")
		return m.showAlert("설정을 저장했어요.", false)
	case eventbus.ErrorEvent:
		return m.showAlert(e.Message, true)
	}
	return nil
}

func moveCursor(cur, total int, direction string) int {
	if total == 0 {
		return 0
	}
	switch direction {
	case "up":
		cur--
	case "down":
		cur++
	case "home":
		cur = 0
	case "end":
		cur = total - 1
	}
	if cur < 0 {
		cur = 0
	}
	if cur >= total {
		cur = total - 1
	}
	return cur
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	m.keys.screen = m.screen
	state := views.ViewState{
		Width:    m.width,
		Height:   m.height,
		Screen:   m.screen,
		ModeName: m.inputHandler.ModeName(),
		Town: views.TownState{
			Snapshot:   m.snapshot,
			Focused:    m.slotCursor,
			ShowNearby: m.config.UI.ShowNearby,
		},
		Sales: views.SalesState{
			Posts:  m.posts.All(),
			Cursor: m.cursor,
		},
		Write: views.WriteState{
			Town:      m.primaryName(),
			Title:     m.title.View(),
			Price:     m.price.View(),
			Body:      m.body.View(),
			Field:     m.field,
			Composing: m.inputHandler.CurrentMode() == inputtypes.ModeCompose,
		},
		Alert:    views.AlertState{Text: m.alert.text, IsError: m.alert.isError},
		ShowHelp: m.showHelp,
		HelpText: m.help.View(m.keys),
	}

	if n, ok := m.snapshot.Town(m.snapshot.Active); ok {
		state.Town.Nearby = m.catalog.NearbyCount(n.ID)
	} else if n, ok := m.snapshot.Town(domain.SlotFirst); ok {
		state.Town.Nearby = m.catalog.NearbyCount(n.ID)
	}

	if m.inputHandler.CurrentMode() == inputtypes.ModePicker {
		state.Picker = &views.PickerState{
			Slot:    m.pickerSlot,
			Input:   m.inputHandler.TextInput().View(),
			Results: m.results,
			Index:   m.resultIndex,
		}
	}

	if m.room != nil {
		state.Chat = views.ChatState{
			Partner:   m.room.Partner,
			PostTitle: m.roomTitle,
			Messages:  m.room.Messages(),
		}
		if ti := m.inputHandler.TextInput(); ti != nil && m.inputHandler.CurrentMode() == inputtypes.ModeChat {
			state.Chat.Typing = true
			state.Chat.Input = ti.View()
		}
	}

	if m.showHelp {
		state.HelpPopup = m.helpRenderer.RenderHelpContent()
	}

	return m.renderer.Render(state)
}
