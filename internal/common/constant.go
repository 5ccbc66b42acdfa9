package common

// AuthorizationHeaderName carries the session token as "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// LoginRoute is where clients are sent after signing out.
const LoginRoute = "/auth/login"
