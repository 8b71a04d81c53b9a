package common

// TokenHeaderName is the HTTP header that carries the bearer token on
// authorized requests.
const TokenHeaderName = "token"
