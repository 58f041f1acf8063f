package saw

// ItemTypeFolder is the catalog item type tag identifying folders.
const ItemTypeFolder = "Folder"

// ItemInfo describes a single catalog entry as returned by getSubItems.
type ItemInfo struct {
	Path      string `xml:"path"`
	Type      string `xml:"type"`
	Caption   string `xml:"caption"`
	Signature string `xml:"signature"`
}

// AgentStatus is the scheduler view of an agent as returned by getIBotStatus.
type AgentStatus struct {
	LastRun           string `xml:"lastRun"`
	NextRun           string `xml:"nextRun"`
	LastRunStatus     string `xml:"lastRunStatus"`
	Priority          string `xml:"priority"`
	AgentEnabled      bool   `xml:"agentEnabled"`
	Subscribed        bool   `xml:"subscribed"`
	SpecificRecipient bool   `xml:"specificRecipient"`
}

type logonResult struct {
	SessionID string `xml:"sessionID"`
}

type subItemsResult struct {
	Items []ItemInfo `xml:"itemInfo"`
}

type errorInfo struct {
	ErrorCode string `xml:"errorCode"`
	Message   string `xml:"message"`
}

type catalogObject struct {
	CatalogObject string    `xml:"catalogObject"`
	ErrorInfo     errorInfo `xml:"errorInfo"`
}

type readObjectsResult struct {
	Objects []catalogObject `xml:"object"`
}

type exportResult struct {
	Data string `xml:",chardata"`
}
