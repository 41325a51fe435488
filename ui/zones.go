package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneHeaderBack    = "zone-header-back"
	ZoneHeaderSearch  = "zone-header-search"
	ZoneHeaderFilter  = "zone-header-filter"
	ZoneHeaderRefresh = "zone-header-refresh"
	ZonePanelWindow   = "zone-panel-window"
)

// ConversationRowZoneID returns the zone ID for a conversation list row by
// its rows-slice index.
func ConversationRowZoneID(idx int) string {
	return fmt.Sprintf("zone-conversation-row-%d", idx)
}
