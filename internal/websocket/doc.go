// Package websocket pushes dashboard state changes to browsers.
//
// A single Hub goroutine owns the client set. Each Client runs a read pump
// (heartbeats and pong handling) and a write pump (queued messages and
// pings). Slow clients whose send buffer fills are disconnected instead of
// blocking the broadcast.
package websocket
