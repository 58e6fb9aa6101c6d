package logger

import "sync"

// components caches the per-component loggers handed out by Get.
var components sync.Map

// Get returns the global logger tagged with the component name. The result
// is cached until the global logger is replaced.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	l, _ := components.LoadOrStore(name, GetGlobalLogger().WithComponent(name))
	return l.(*Logger)
}

func reset() {
	components.Clear()
}
