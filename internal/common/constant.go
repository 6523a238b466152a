package common

// AccessTokenHeaderName is the request header carrying the session token
// on every protected call.
const AccessTokenHeaderName = "x-auth-token"
