package routingalgorithm

import (
	"log/slog"
)

// Observer receives search events. Implementations must not mutate the search.
type Observer interface {
	NotifyOriginProcessed(node int32)
	NotifyNodeReached(node int32)
	NotifyNodeMarked(node int32)
	NotifyDestinationReached(node int32)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnOriginProcessed    func(node int32)
	OnNodeReached        func(node int32)
	OnNodeMarked         func(node int32)
	OnDestinationReached func(node int32)
}

func (o ObserverFuncs) NotifyOriginProcessed(node int32) {
	if o.OnOriginProcessed != nil {
		o.OnOriginProcessed(node)
	}
}

func (o ObserverFuncs) NotifyNodeReached(node int32) {
	if o.OnNodeReached != nil {
		o.OnNodeReached(node)
	}
}

func (o ObserverFuncs) NotifyNodeMarked(node int32) {
	if o.OnNodeMarked != nil {
		o.OnNodeMarked(node)
	}
}

func (o ObserverFuncs) NotifyDestinationReached(node int32) {
	if o.OnDestinationReached != nil {
		o.OnDestinationReached(node)
	}
}

type LoggingObserver struct {
	log *slog.Logger
}

func NewLoggingObserver(log *slog.Logger) *LoggingObserver {
	return &LoggingObserver{log: log}
}

func (o *LoggingObserver) NotifyOriginProcessed(node int32) {
	o.log.Debug("origin processed", slog.Int("node", int(node)))
}

func (o *LoggingObserver) NotifyNodeReached(node int32) {
	o.log.Debug("node reached", slog.Int("node", int(node)))
}

func (o *LoggingObserver) NotifyNodeMarked(node int32) {
	o.log.Debug("node marked", slog.Int("node", int(node)))
}

func (o *LoggingObserver) NotifyDestinationReached(node int32) {
	o.log.Debug("destination reached", slog.Int("node", int(node)))
}

type observers []Observer

func (obs observers) originProcessed(node int32) {
	for _, o := range obs {
		o.NotifyOriginProcessed(node)
	}
}

func (obs observers) nodeReached(node int32) {
	for _, o := range obs {
		o.NotifyNodeReached(node)
	}
}

func (obs observers) nodeMarked(node int32) {
	for _, o := range obs {
		o.NotifyNodeMarked(node)
	}
}

func (obs observers) destinationReached(node int32) {
	for _, o := range obs {
		o.NotifyDestinationReached(node)
	}
}
