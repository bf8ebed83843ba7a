package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/models"
)

// Users prints every other registered user with a presence marker.
func (a *App) Users(ctx context.Context) error {
	st := a.chat.State()
	if len(st.Users) == 0 {
		fmt.Fprintln(a.out, "No other users yet")
		return nil
	}
	for i, u := range st.Users {
		fmt.Fprintf(a.out, "%2d. %s %s <%s>%s\n", i+1, presenceMark(&u), u.Name, u.Email, lastSeenHint(&u))
	}
	return nil
}

// Chats prints every chat with the other participant's name, the unread
// count, and the last-message timestamp.
func (a *App) Chats(ctx context.Context) error {
	user := a.session.User()
	if user == nil {
		return nil
	}
	st := a.chat.State()
	if len(st.Chats) == 0 {
		fmt.Fprintln(a.out, "No chats yet; use 'send' to start one")
		return nil
	}
	for i, c := range st.Chats {
		name := "(unknown)"
		if other, ok := a.chat.OtherParticipant(c.ID); ok {
			name = other.Name
		}
		line := fmt.Sprintf("%2d. %s", i+1, name)
		if n := c.UnreadCount(user.ID); n > 0 {
			line += fmt.Sprintf(" [%d unread]", n)
		}
		if c.LastMessageTimestamp != nil {
			line += " — " + c.LastMessageTimestamp.Format("15:04:05")
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// Open selects a chat by its list number and prints its messages. Opening a
// chat marks every incoming message as seen.
func (a *App) Open(ctx context.Context, arg string) error {
	user := a.session.User()
	if user == nil {
		return nil
	}
	st := a.chat.State()

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(st.Chats) {
		fmt.Fprintf(a.out, "No such chat: %s\n", arg)
		return nil
	}
	chat := st.Chats[n-1]

	a.chat.SelectChat(ctx, chat.ID)

	// Re-read so the just-applied seen transitions show up.
	for _, c := range a.chat.State().Chats {
		if c.ID != chat.ID {
			continue
		}
		a.printChat(user.ID, &c)
	}
	return nil
}

func (a *App) printChat(userID string, c *models.Chat) {
	if len(c.Messages) == 0 {
		fmt.Fprintln(a.out, "(no messages)")
		return
	}
	for _, m := range c.Messages {
		who := "them"
		if m.SenderID == userID {
			who = "me"
		}
		lock := ""
		if m.Encrypted {
			lock = " 🔒"
		}
		fmt.Fprintf(a.out, "[%s] %4s: %s%s %s\n",
			m.Timestamp.Format("15:04:05"), who, m.Content, lock, statusTicks(m.Status))
	}
}

// Send interactively composes a message: recipient, text, encryption, and
// an optional self-destruct delay.
func (a *App) Send(ctx context.Context) error {
	st := a.chat.State()
	if len(st.Users) == 0 {
		fmt.Fprintln(a.out, "No one to chat with yet")
		return nil
	}

	_ = a.Users(ctx)
	n, err := GetInt(a.reader, "Send to (number)", 0, a.out)
	if err != nil || n < 1 || n > len(st.Users) {
		fmt.Fprintln(a.out, "No such user")
		return nil
	}
	receiver := st.Users[n-1]

	text, err := GetSimpleText(a.reader, "Message", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	encrypted, err := GetConfirm(a.reader, "Encrypt?", true, a.out)
	if err != nil {
		return err
	}

	var selfDestruct *models.SelfDestruct
	seconds, err := GetInt(a.reader, "Self-destruct after seconds (0 to disable)", 0, a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}
	if seconds > 0 {
		selfDestruct = &models.SelfDestruct{Enabled: true, Timeout: seconds}
	}

	a.chat.Send(ctx, receiver.ID, text, encrypted, selfDestruct)

	if st := a.chat.State(); st.Err != "" {
		fmt.Fprintln(a.out, st.Err)
		a.chat.ClearError()
		return nil
	}

	fmt.Fprintln(a.out, "Sent")
	return nil
}

func presenceMark(u *models.User) string {
	if u.IsOnline() {
		return "●"
	}
	return "○"
}

func lastSeenHint(u *models.User) string {
	if u.IsOnline() || u.LastSeen == nil {
		return ""
	}
	return fmt.Sprintf(" (last seen %s)", u.LastSeen.Format(time.DateTime))
}

func statusTicks(s models.MessageStatus) string {
	switch s {
	case models.StatusSent:
		return "✓"
	case models.StatusDelivered:
		return "✓✓"
	case models.StatusSeen:
		return "✓✓ seen"
	default:
		return ""
	}
}
