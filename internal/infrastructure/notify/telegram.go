// Package notify entrega las alertas críticas nuevas a un canal externo.
package notify

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/application/monitor"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

var _ monitor.Notifier = (*Telegram)(nil)

// maxMessageLen límite de Telegram para el texto de un mensaje.
const maxMessageLen = 4096

// Sender lo cumple *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram publica las alertas en un chat.
type Telegram struct {
	api    Sender
	chatID int64
	log    zerolog.Logger
}

// NewTelegram conecta con la API de bots (valida el token con getMe).
func NewTelegram(token string, chatID int64, log zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	log.Info().Str("bot", api.Self.UserName).Int64("chat_id", chatID).Msg("notificador Telegram listo")
	return NewTelegramWithSender(api, chatID, log), nil
}

// NewTelegramWithSender permite inyectar el cliente.
func NewTelegramWithSender(api Sender, chatID int64, log zerolog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, log: log}
}

// Notify parte el texto en mensajes de hasta maxMessageLen. El primer error corta el envío.
func (t *Telegram) Notify(ctx context.Context, alerts []entity.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	for _, chunk := range splitMessages(formatAlerts(alerts), maxMessageLen) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, chunk)); err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
	}
	t.log.Debug().Int("alerts", len(alerts)).Msg("alertas enviadas a Telegram")
	return nil
}

func formatAlerts(alerts []entity.Alert) []string {
	lines := make([]string, 0, len(alerts)+1)
	lines = append(lines, fmt.Sprintf("🚨 %d critical alert(s)", len(alerts)))
	for _, a := range alerts {
		lines = append(lines, fmt.Sprintf("• %s: %s (%s)", a.Title, a.Description, a.Location))
	}
	return lines
}

// splitMessages agrupa líneas sin partir ninguna salvo que por sí sola supere limit.
func splitMessages(lines []string, limit int) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, l := range lines {
		if len(l) > limit {
			l = truncateUTF8(l, limit)
		}
		if cur.Len() > 0 && cur.Len()+1+len(l) > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(l)
	}
	flush()
	return out
}

// truncateUTF8 corta s a lo sumo en limit bytes sin partir una runa.
func truncateUTF8(s string, limit int) string {
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
