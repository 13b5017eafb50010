package constants

// Centralized constants for headers, env keys and relay endpoints.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "TRIFATE_CONFIG"
	EnvDBPath              = "TRIFATE_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "t_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the relay router
const (
	RouteAPIPrefix          = "/api"
	RouteArchetypes         = "/archetypes"
	RoutePublicMatches      = "/public-matches"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteVersion            = "/version"
	RouteMatches            = "/matches"
	RouteMatchesJoin        = "/matches/join"
	RouteMatchByCode        = "/matches/:matchCode"
	RouteMatchStart         = "/matches/:matchCode/start"
	RouteMatchLeave         = "/matches/:matchCode/leave"
	RouteMatchIntents       = "/matches/:matchCode/intents"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMissingGoogleEnv       = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidMatchCode       = "Invalid match code"
	ErrMatchNotFound          = "Match not found"
	ErrFailedFetchMatches     = "Failed to fetch matches"
	ErrFailedEncodeMatches    = "Failed to encode matches"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeMatch      = "Failed to encode match"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateMatch          = "Failed to create match"
	ErrMatchNameExceeds           = "Match name exceeds 32 characters"
	ErrMatchFull                  = "Match is full"
	ErrNotEnoughPlayers           = "Not enough players to start the match"
	ErrMatchAlreadyStarted        = "Match already started"
	ErrFailedUpdateMatch          = "Failed to update match"
	ErrFailedEndMatch             = "Failed to end match"
	ErrFailedRemovePlayer         = "Failed to remove player"
	ErrPlayerNotInThisMatch       = "Player not in this match"
	ErrCannotLeaveAfterStart      = "Cannot leave after the match has started"
	ErrFailedAppendIntent         = "Failed to append intent"
	ErrFailedFetchIntents         = "Failed to fetch intents"
	ErrMatchNotInProgress         = "Match is not in progress"
	ErrPeerNotInMatch             = "Peer not in match"
	ErrIntentPayloadTooLarge      = "Intent payload too large"
	ErrInvalidAfterCursor         = "Invalid after cursor"
	ErrFailedReportMatchOutcome   = "Failed to report match outcome"
	ErrOutcomeAlreadyCounted      = "Match outcome already counted"
	ErrWinnerNotPartOfThisMatch   = "Winner not part of this match"
	ErrResignerNotPartOfThisMatch = "Resigner not part of this match"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldMatchID  = "match_id"
	LogFieldJoinCode = "join_code"
	LogFieldPeerUUID = "peer_uuid"
	LogFieldSeq      = "seq"
	LogFieldSource   = "source"
	LogFieldName     = "name"
	LogFieldAddr     = "addr"
)
