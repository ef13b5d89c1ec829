package logger

// ToolName is the fixed name for this tool; log files are prefixed with it.
const ToolName = "sigtask"
