package constant

// Pattern sync status. A fully synced pattern renders identically in
// every document that embeds it; an unsynced pattern is copied into the
// document at insertion time and never rendered by reference.
const (
	SyncStatusSynced   = "synced"
	SyncStatusUnsynced = "unsynced"
)
