package internal

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
)

// chatModel holds the bubbletea state for the watch-page chat client: the
// input line, the message log, and the websocket connection.
type chatModel struct {
	textInput     textinput.Model
	messages      []ChatMessage
	serverURL     string
	room          string
	username      string
	websocketConn *websocket.Conn
	writeMutex    sync.Mutex
	isConnected   bool
	lastError     error
}

// bubbletea messages for the asynchronous chat events.
type (
	connectedMsg     struct{ conn *websocket.Conn }
	incomingMsg      ChatMessage
	connectFailedMsg struct{ err error }
	disconnectedMsg  struct{ err error }
)

var (
	chatHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	messageBoxStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(1, 2).MarginTop(1)
	inputBoxStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).MarginTop(1)
	timestampStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	usernameStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	ownUsernameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	systemMessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("109")).MarginTop(1)
	connectedStyle     = statusStyle.Copy().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle         = statusStyle.Copy().Foreground(lipgloss.Color("196")).Bold(true)
)

func newChatModel(serverURL, room, username string) *chatModel {
	input := textinput.New()
	input.Placeholder = "Say something…"
	input.CharLimit = 0
	input.Focus()
	input.Prompt = "> "

	if username == "" {
		username = defaultUsername()
	}

	return &chatModel{
		textInput: input,
		messages:  make([]ChatMessage, 0, 64),
		serverURL: serverURL,
		room:      room,
		username:  username,
	}
}

func defaultUsername() string {
	if user := os.Getenv("BYTETUBE_USER"); user != "" {
		return user
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "anon"
}

// joinURL builds the ws:// room endpoint from the configured server URL.
func (model *chatModel) joinURL() (string, error) {
	parsed, err := url.Parse(model.serverURL)
	if err != nil {
		return "", err
	}
	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server URL scheme %q", parsed.Scheme)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/ws/" + model.room
	return parsed.String(), nil
}

func (model *chatModel) connectCmd() tea.Cmd {
	return func() tea.Msg {
		target, err := model.joinURL()
		if err != nil {
			return connectFailedMsg{err: err}
		}
		conn, _, err := websocket.DefaultDialer.Dial(target, nil)
		if err != nil {
			return connectFailedMsg{err: err}
		}
		return connectedMsg{conn: conn}
	}
}

// listenCmd reads one frame from the socket and feeds it back into Update.
func (model *chatModel) listenCmd() tea.Cmd {
	conn := model.websocketConn
	return func() tea.Msg {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return disconnectedMsg{err: err}
		}
		var msg ChatMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			msg = ChatMessage{User: systemUser, Text: string(payload)}
		}
		return incomingMsg(msg)
	}
}

func (model *chatModel) sendCurrentInput() {
	text := strings.TrimSpace(model.textInput.Value())
	if text == "" || model.websocketConn == nil {
		return
	}
	msg := ChatMessage{
		User:      model.username,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	model.writeMutex.Lock()
	err := model.websocketConn.WriteMessage(websocket.TextMessage, msg.encode())
	model.writeMutex.Unlock()
	if err != nil {
		model.lastError = err
		return
	}
	model.textInput.Reset()
}

func (model *chatModel) Init() tea.Cmd {
	return model.connectCmd()
}

func (model *chatModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := message.(type) {
	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if model.websocketConn != nil {
				_ = model.websocketConn.Close()
			}
			return model, tea.Quit
		case tea.KeyEnter:
			model.sendCurrentInput()
			return model, nil
		}
	case connectedMsg:
		model.websocketConn = typed.conn
		model.isConnected = true
		model.lastError = nil
		return model, model.listenCmd()
	case incomingMsg:
		model.messages = append(model.messages, ChatMessage(typed))
		return model, model.listenCmd()
	case connectFailedMsg:
		model.isConnected = false
		model.lastError = typed.err
		return model, nil
	case disconnectedMsg:
		model.isConnected = false
		model.lastError = typed.err
		return model, nil
	}

	var cmd tea.Cmd
	model.textInput, cmd = model.textInput.Update(message)
	return model, cmd
}

func (model *chatModel) View() string {
	var view strings.Builder
	view.WriteString(chatHeaderStyle.Render(fmt.Sprintf("bytetube chat — room %s", model.room)))
	view.WriteString("\n")

	if len(model.messages) == 0 {
		view.WriteString(messageBoxStyle.Render("No messages yet."))
	} else {
		lines := make([]string, 0, len(model.messages))
		for _, msg := range model.messages {
			lines = append(lines, model.renderMessage(msg))
		}
		view.WriteString(messageBoxStyle.Render(strings.Join(lines, "\n")))
	}
	view.WriteString("\n")
	view.WriteString(inputBoxStyle.Render(model.textInput.View()))
	view.WriteString("\n")

	switch {
	case model.lastError != nil:
		view.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", model.lastError)))
	case model.isConnected:
		view.WriteString(connectedStyle.Render("● connected"))
	default:
		view.WriteString(statusStyle.Render("… connecting"))
	}
	view.WriteString("\n")
	return view.String()
}

func (model *chatModel) renderMessage(msg ChatMessage) string {
	when := msg.Timestamp
	if parsed, err := time.Parse(time.RFC3339, msg.Timestamp); err == nil {
		when = parsed.Local().Format("15:04:05")
	}
	if msg.User == systemUser {
		return fmt.Sprintf("%s %s", timestampStyle.Render(when), systemMessageStyle.Render(msg.Text))
	}
	nameStyle := usernameStyle
	if msg.User == model.username {
		nameStyle = ownUsernameStyle
	}
	return fmt.Sprintf("%s %s %s", timestampStyle.Render(when), nameStyle.Render(msg.User+":"), msg.Text)
}

// RunClient connects to a room and runs the chat TUI until the user quits.
func RunClient(serverURL, room, username string) error {
	program := tea.NewProgram(newChatModel(serverURL, room, username), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
