package core

// Version is the lockreapd release version.
const Version = "0.3.1"
