package reminders

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts reminders to a fixed chat (an operations
// channel), since end users register with an email, not a Telegram
// account.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(_ context.Context, note Note) error {
	res := note.Reservation

	room := note.Room.Name
	if room == "" {
		room = fmt.Sprintf("room #%d", res.RoomID)
	}
	holder := note.User.Name
	if holder == "" {
		holder = fmt.Sprintf("user #%d", res.UserID)
	}

	text := fmt.Sprintf(
		"Upcoming reservation #%d\n%s %s-%s\n%s, booked by %s\nReason: %s",
		res.ID, res.Date, res.StartTime, res.EndTime, room, holder, res.Reason,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	return nil
}
