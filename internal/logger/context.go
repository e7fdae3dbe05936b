package logger

// Component-specific logger functions

// Store returns a logger for document store operations
func Store() Logger {
	return WithField("component", "store")
}

// KV returns a logger for key-value backend operations
func KV() Logger {
	return WithField("component", "kv")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}

// Export returns a logger for report export operations
func Export() Logger {
	return WithField("component", "export")
}

// Config returns a logger for configuration loading
func Config() Logger {
	return WithField("component", "config")
}
