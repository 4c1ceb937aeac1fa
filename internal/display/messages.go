// Package display renders the kiosk's fixed status messages on a monochrome screen.
package display

// Message is one of the kiosk's fixed 4-line status messages.
type Message int

const (
	MessageNone Message = iota
	MessageStartup
	MessagePresenceConfirmed
	MessageResetting
	MessageThanks
)

// Lines per message, padded as laid out on the 128x64 panel.
var catalog = map[Message][4]string{
	MessageStartup: {
		"   APERTE O    ",
		"  BOTÃO A PARA ",
		"  CONFIRMAR A  ",
		"    PRESENÇA   ",
	},
	MessagePresenceConfirmed: {
		"   PRESENCA    ",
		"  CONFIRMADA   ",
		"    PRESS B    ",
		"   (COLETE)    ",
	},
	MessageResetting: {
		"   PRONTO      ",
		"  DADOS SENDO  ",
		"  REINICIADOS  ",
		"    AGUARDE    ",
	},
	MessageThanks: {
		"  OBRIGADO ATÉ  ",
		"  O PROXIMO     ",
		"   HORARIO      ",
		"               ",
	},
}

// Lines returns the message's four lines. MessageNone is four empty lines.
func (m Message) Lines() [4]string {
	return catalog[m]
}

func (m Message) String() string {
	switch m {
	case MessageNone:
		return "NONE"
	case MessageStartup:
		return "STARTUP"
	case MessagePresenceConfirmed:
		return "PRESENCE_CONFIRMED"
	case MessageResetting:
		return "RESETTING"
	case MessageThanks:
		return "THANKS"
	}
	return "UNKNOWN"
}
