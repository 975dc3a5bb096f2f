package routes

const (
	// API route constants
	HomeRouteAPI       = "/"
	RegisterRouteAPI   = "/auth/register"
	LoginRouteAPI      = "/auth/login"
	LogoutRouteAPI     = "/auth/logout"
	BlogRouteAPI       = "/blog"
	CreatePostRouteAPI = "/blog/create"
	StatsRouteAPI      = "/blog/stats"
	MetricsRouteAPI    = "/metrics"

	// Content-Type constants
	ContentType               = "Content-Type"
	ContentTypeJson           = "application/json"
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"

	// query parameters
	SearchParam = "search"
	SortParam   = "sort"

	// message constants
	MsgLoginSuccessful  = "Login successful"
	MsgRegistered       = "Registration successful"
	MsgUnsupportedBody  = "Request body must be JSON or form encoded"
	MsgInvalidBody      = "Invalid request body"
	MsgRegisterFailed   = "Failed to register user"
	MsgListFailed       = "Failed to load posts"
	MsgCreatePostFailed = "Failed to create post"
	MsgStatsFailed      = "Failed to load stats"
	MsgLogoutFailed     = "Failed to log out"

	// Error messages
	ErrInvalidContentTypeFormat = "invalid content-type: %s"
	ErrFailedToDecodeRequest    = "failed to decode request body"
	ErrFailedToEstablishSession = "failed to establish session"
)

var (
	RegisterFormFields = []string{"username", "email", "password", "password2"}
	LoginFormFields    = []string{"username", "password"}
)
