package catalog

// Targeted correction tables for known slskd spec errors and omissions.
// These are data-only lookups consulted at fixed points in the assembler so
// the correction surface stays auditable and separate from the general-case
// algorithms.

// operationKey identifies one operation exactly.
type operationKey struct {
	Method string
	Path   string
}

// paramKey identifies one parameter of one tool.
type paramKey struct {
	Tool  string
	Param string
}

// nameOverrides replaces mechanically-derived names for known collision
// pairs with hand-authored ones. Applied before mechanical deduplication.
var nameOverrides = map[operationKey]string{
	{"get", "/api/v0/transfers/downloads/{username}/{id}"}: "slskd_get_transfer_download",
	{"get", "/api/v0/transfers/uploads/{username}/{id}"}:   "slskd_get_transfer_upload",
	{"put", "/api/v0/conversations/{username}/{id}"}:       "slskd_update_conversation_message",
}

// responseTypeOverrides corrects endpoints whose spec omits a response
// schema. Consulted only when classification yielded ResponseNone.
var responseTypeOverrides = map[operationKey]string{
	{"get", "/api/v0/searches"}:            ResponseArray,
	{"get", "/api/v0/transfers/downloads"}: ResponseArray,
	{"get", "/api/v0/transfers/uploads"}:   ResponseArray,
	{"get", "/api/v0/logs"}:                ResponseArray,
}

// paramDescriptionOverrides replaces spec parameter descriptions known to be
// wrong. Applied after extraction.
var paramDescriptionOverrides = map[paramKey]string{
	{"slskd_create_search", "searchTimeout"}: "Search timeout in milliseconds (default: 15000), not seconds as the upstream docs claim.",
}

// workflowHints are follow-up-workflow sentences appended to descriptions of
// tools that start multi-step operations. Keys must match the exact names
// BuildToolName generates for the corresponding operations, or the hint
// silently stops applying.
var workflowHints = map[string]string{
	"slskd_create_search": "Note: Search is async. Poll slskd_get_search until state is 'Completed'," +
		" then call slskd_get_searches_responses to fetch results.",
	"slskd_create_transfers_downloads": "Note: After queueing, monitor progress with slskd_list_transfers_downloads." +
		" Clear finished entries with slskd_delete_transfers_downloads_all_completed.",
	"slskd_get_users_browse": "Note: Returns the user's shared directory tree." +
		" Queue files for download with slskd_create_transfers_downloads.",
	"slskd_create_rooms_joined": "Note: After joining, send messages with slskd_create_rooms_joined_messages.",
	"slskd_create_conversation": "Note: Read replies with slskd_get_conversations_messages.",
}

// responseEnumDocs documents response-payload enumerations the spec leaves
// untyped. Written without a trailing period; the assembler punctuates.
var responseEnumDocs = map[string]string{
	"slskd_list_transfers_downloads": "Transfer states: Requested, Queued, Initializing, InProgress," +
		" Completed, Succeeded, Cancelled, TimedOut, Errored, Rejected, Aborted",
	"slskd_list_transfers_uploads": "Transfer states: Requested, Queued, Initializing, InProgress," +
		" Completed, Succeeded, Cancelled, TimedOut, Errored, Rejected, Aborted",
	"slskd_list_server":     "Server states: Disconnected, Connecting, Connected, LoggedIn, Disconnecting",
	"slskd_list_events":     "Event types: DownloadFileComplete, DownloadDirectoryComplete, UploadFileComplete, PrivateMessageReceived, RoomMessageReceived",
	"slskd_get_users_status": "Presence values: Offline, Away, Online",
}

// base64Params are path parameter names whose values must be base64 encoded
// by the runtime before substitution.
var base64Params = map[string]bool{
	"base64SubdirectoryName": true,
	"base64FileName":         true,
}

// IsBase64Param reports whether a parameter value requires base64 encoding
// at call time.
func IsBase64Param(name string) bool {
	return base64Params[name]
}
