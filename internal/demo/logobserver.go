package demo

import "github.com/rs/zerolog"

// LogObserver writes every notification it receives to a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

func NewLogObserver(l zerolog.Logger) *LogObserver {
	return &LogObserver{log: l.With().Str("component", "log_observer").Logger()}
}

func (o *LogObserver) OnLeftMouseButton(x, y int) {
	o.log.Info().Str("interface", "MouseListener").Int("x", x).Int("y", y).Msg("notification received")
}

func (o *LogObserver) OnKeyPressed(code int) {
	o.log.Info().Str("interface", "KeyboardListener").Int("code", code).Msg("notification received")
}
