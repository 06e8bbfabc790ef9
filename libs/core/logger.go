package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// LoggerItem is one structured log entry emitted by the runtime
type LoggerItem struct {
	Event    string
	Messages string
	Error    error       `json:"error,omitempty"`
	Data     interface{} `json:"data"`
}

// Logger receives runtime events: resolution traces, module loads, binding
// lifecycle. Implementations must be safe for concurrent use.
type Logger interface {
	Infor(*LoggerItem)
}

type logger struct{}

// InitLogger returns the built-in JSON logger writing to stdout
func InitLogger() Logger {
	return &logger{}
}

func (l *logger) Infor(payload *LoggerItem) {
	b, _ := json.MarshalIndent(payload.Data, "", " ")
	if payload.Error != nil {
		fmt.Printf("[Inject-Event]::%s::[Message]::::%s:::[Error]::%v:::[Data]----->`\n%s\n", payload.Event, payload.Messages, payload.Error, string(b))
		return
	}
	fmt.Printf("[Inject-Event]::%s::[Message]::::%s:::[Data]----->`\n%s\n", payload.Event, payload.Messages, string(b))
}

// DefaultLogger creates the built-in logger and announces it
func DefaultLogger() Logger {
	logger := InitLogger()

	payload := &LoggerItem{
		Event:    "initLoggerSuccefully",
		Messages: "init logger successfully",
		Data: struct {
			CreatedAt time.Time `json:"create_at"`
		}{
			CreatedAt: time.Now().UTC(),
		},
	}
	logger.Infor(payload)

	return logger
}
