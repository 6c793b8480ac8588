package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginAction int

const (
	loginNone loginAction = iota
	loginSubmit
	registerSubmit
)

const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// loginForm is the sign-in / registration screen shown while no user
// identity is held. The login collaborator only yields a credential;
// everything after that belongs to the controller.
type loginForm struct {
	registering bool
	focus       int
	inputs      [fieldCount]textinput.Model
	errText     string
	infoText    string
	busy        bool
}

func newLoginForm() loginForm {
	var f loginForm

	name := textinput.New()
	name.Placeholder = "Name"
	f.inputs[fieldName] = name

	email := textinput.New()
	email.Placeholder = "Email"
	f.inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	f.inputs[fieldPassword] = password

	f.focus = fieldEmail
	f.inputs[fieldEmail].Focus()
	return f
}

func (f *loginForm) firstField() int {
	if f.registering {
		return fieldName
	}
	return fieldEmail
}

func (f *loginForm) setFocus(idx int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = idx
	f.inputs[idx].Focus()
}

func (f *loginForm) cycleFocus(delta int) {
	first := f.firstField()
	span := fieldCount - first
	next := first + ((f.focus-first+delta)%span+span)%span
	f.setFocus(next)
}

// handleKey processes one keypress and reports whether a submission
// should go out.
func (f *loginForm) handleKey(msg tea.KeyMsg) (loginAction, tea.Cmd) {
	if f.busy {
		return loginNone, nil
	}

	switch msg.String() {
	case "tab", "down":
		f.cycleFocus(1)
		return loginNone, nil

	case "shift+tab", "up":
		f.cycleFocus(-1)
		return loginNone, nil

	case "ctrl+r":
		f.registering = !f.registering
		f.errText = ""
		f.infoText = ""
		f.setFocus(f.firstField())
		return loginNone, nil

	case "enter":
		f.errText = ""
		if f.registering {
			if f.name() == "" || f.email() == "" || f.password() == "" {
				f.errText = "All fields are required."
				return loginNone, nil
			}
			f.busy = true
			return registerSubmit, nil
		}
		if f.email() == "" || f.password() == "" {
			f.errText = "Email and password are required."
			return loginNone, nil
		}
		f.busy = true
		return loginSubmit, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return loginNone, cmd
}

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// fail surfaces a backend rejection under the form.
func (f *loginForm) fail(err error) {
	f.busy = false
	f.errText = err.Error()
}

// finishRegister reports the registration outcome and, on success,
// drops back to the login mode so the fresh account can sign in.
func (f *loginForm) finishRegister(err error) {
	f.busy = false
	if err != nil {
		f.errText = err.Error()
		return
	}
	f.registering = false
	f.infoText = "Account created. Sign in to continue."
	f.setFocus(fieldEmail)
}

func (f *loginForm) name() string     { return strings.TrimSpace(f.inputs[fieldName].Value()) }
func (f *loginForm) email() string    { return strings.TrimSpace(f.inputs[fieldEmail].Value()) }
func (f *loginForm) username() string { return f.email() }
func (f *loginForm) password() string { return f.inputs[fieldPassword].Value() }

func (f loginForm) view(width, height int, notice string) string {
	var b strings.Builder

	heading := "Sign in to your math tutor"
	action := "Sign in"
	toggle := "ctrl+r Register instead"
	if f.registering {
		heading = "Create your account"
		action = "Register"
		toggle = "ctrl+r Back to sign in"
	}

	b.WriteString(TitleStyle.Render(heading))
	b.WriteString("\n\n")

	if f.registering {
		b.WriteString(f.inputs[fieldName].View())
		b.WriteString("\n")
	}
	b.WriteString(f.inputs[fieldEmail].View())
	b.WriteString("\n")
	b.WriteString(f.inputs[fieldPassword].View())
	b.WriteString("\n\n")

	switch {
	case f.busy:
		b.WriteString(DimStyle.Render("Contacting the tutor service…"))
	case f.errText != "":
		b.WriteString(ErrorStyle.Render(f.errText))
	case f.infoText != "":
		b.WriteString(NoticeStyle.Render(f.infoText))
	case notice != "":
		b.WriteString(NoticeStyle.Render(notice))
	}
	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render(FormatFooter("enter", action, "tab", "Next field") + "  " + toggle))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
