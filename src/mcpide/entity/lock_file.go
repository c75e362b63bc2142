package entity

// TransportWebSocket is the transport advertised in lock files.
const TransportWebSocket = "ws"

// LockFile is the discovery record written for each listening server.
type LockFile struct {
	PID              int      `json:"pid" yaml:"pid"`
	WorkspaceFolders []string `json:"workspaceFolders" yaml:"workspaceFolders"`
	IDEName          string   `json:"ideName" yaml:"ideName"`
	Transport        string   `json:"transport" yaml:"transport"`
	RunningInWindows bool     `json:"runningInWindows" yaml:"runningInWindows"`
	AuthToken        string   `json:"authToken" yaml:"-"`
	Port             int      `json:"port" yaml:"port"`
	Version          string   `json:"version" yaml:"version"`
}
