// Package enrichers provides common core.LogEventEnricher implementations.
package enrichers

import (
	"os"
	"sync"

	"github.com/willibrandon/mtlog-attributed/core"
)

// MachineNameEnricher adds the machine name to log events.
type MachineNameEnricher struct {
	propertyName string
	machineName  string
	once         sync.Once
}

// NewMachineNameEnricher creates a new machine name enricher.
func NewMachineNameEnricher() *MachineNameEnricher {
	return NewMachineNameEnricherWithName("MachineName")
}

// NewMachineNameEnricherWithName creates a new machine name enricher with a custom property name.
func NewMachineNameEnricherWithName(propertyName string) *MachineNameEnricher {
	return &MachineNameEnricher{propertyName: propertyName}
}

// Enrich adds the machine name unless the event already has the property.
func (me *MachineNameEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	me.once.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		me.machineName = hostname
	})

	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(me.propertyName, core.NewScalarValue(me.machineName)))
}
