package middleware

const (
	LoginPath = "/auth/login"
	HomePath  = "/"

	ContentType     = "Content-Type"
	ContentTypeJson = "application/json"

	MsgInternalError = "Internal server error"

	headerAccept        = "Accept"
	headerRequestedWith = "X-Requested-With"
	xmlHTTPRequest      = "XMLHttpRequest"
	unmatchedRouteLabel = "unmatched"
)
