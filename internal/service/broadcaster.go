package service

// Broadcaster pushes live updates to connected dashboard clients. The ws hub
// implements this; services depend only on the interface.
type Broadcaster interface {
	BroadcastToDashboards(surveyVersion string, msgType string, payload interface{})
}
