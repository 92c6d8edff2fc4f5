// Package logger arma el logger estructurado del servicio sobre zerolog.
// Toda línea lleva timestamp y el campo "service" para distinguir procesos
// cuando varios talleres comparten la misma salida de logs.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Service string // nombre del servicio, va como campo fijo en cada línea
	Env     string // development -> consola legible; otro valor -> JSON
	Level   string // debug, info, warn, error; vacío = info (debug en development)
}

// Logger envuelve zerolog para inyectarlo por constructor.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger del proceso y lo fija también como logger global de
// zerolog para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(w).
		Level(nivel(cfg)).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// nivel resuelve el nivel efectivo: lo configurado, o info por omisión
// (debug en development, donde el ruido ayuda).
func nivel(cfg Config) zerolog.Level {
	if cfg.Level == "" {
		if cfg.Env == "development" {
			return zerolog.DebugLevel
		}
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos adicionales.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}
